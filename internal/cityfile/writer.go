package cityfile

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// CityWriter receives aggregates when the aggregator flushes its table.
type CityWriter interface {
	WriteCity(c *City) error
	Flush() error
}

// JSONLWriter writes one JSON object per line to an underlying writer.
type JSONLWriter struct {
	bw  *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter wraps w. Output is buffered until Flush.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &JSONLWriter{bw: bw, enc: enc}
}

// WriteCity encodes c followed by a newline.
func (w *JSONLWriter) WriteCity(c *City) error {
	if err := w.enc.Encode(c); err != nil {
		return eris.Wrapf(err, "jsonl: encode city %s", c.Key)
	}
	return nil
}

// Flush writes buffered lines to the underlying writer.
func (w *JSONLWriter) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return eris.Wrap(err, "jsonl: flush")
	}
	return nil
}
