package cityfile

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// row joins the twelve GeoNames columns with tabs.
func row(cc, postal, city, admin1, lat, lon string) string {
	return strings.Join([]string{cc, postal, city, admin1, "", "", "", "", "", lat, lon, "4"}, "\t")
}

func tsv(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

// decodeLines parses newline-delimited JSON output into maps, preserving raw
// field presence for assertions on omitted keys.
func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var objs []map[string]any
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		objs = append(objs, m)
	}
	require.NoError(t, sc.Err())
	return objs
}

// recordingWriter keeps written cities in memory and records flush boundaries.
type recordingWriter struct {
	cities  []City
	batches [][]string // keys written between flushes
	pending []string
	failOn  string
}

func (w *recordingWriter) WriteCity(c *City) error {
	if w.failOn != "" && c.Key == w.failOn {
		return errWriteFailed
	}
	w.cities = append(w.cities, *c)
	w.pending = append(w.pending, c.Key)
	return nil
}

func (w *recordingWriter) Flush() error {
	w.batches = append(w.batches, w.pending)
	w.pending = nil
	return nil
}
