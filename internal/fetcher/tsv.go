// Package fetcher downloads archives over HTTP and reads delimited text out of them.
package fetcher

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// MaxLineBytes bounds a single input line. Longer lines end the read with an error.
const MaxLineBytes = 1 << 20

// RowFunc receives one row. line is the 1-based line number in the input.
// Returning an error stops ReadRows.
type RowFunc func(line int, fields []string) error

// ReadRows splits r into lines and each line into fields on delim, handing
// every row to fn in order. Fields are taken verbatim: quotes carry no
// meaning, so one bad line never swallows the lines after it. Blank lines are
// skipped and a trailing carriage return is dropped. Only I/O failures,
// context cancellation, or an error from fn end the read early.
func ReadRows(ctx context.Context, r io.Reader, delim string, fn RowFunc) error {
	if delim == "" {
		delim = "\t"
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	line := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "tsv: context cancelled")
		}
		line++

		text := strings.TrimSuffix(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		if err := fn(line, strings.Split(text, delim)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return eris.Wrapf(err, "tsv: read line %d", line+1)
	}
	return nil
}
