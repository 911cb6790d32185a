package fetcher

import (
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// DecodeReader wraps r so that it yields UTF-8 text decoded from the named
// charset (any WHATWG label such as "utf-8", "latin1", "windows-1252").
// Invalid byte sequences become U+FFFD rather than errors.
func DecodeReader(r io.Reader, charset string) (io.Reader, error) {
	if charset == "" {
		charset = "utf-8"
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, eris.Wrapf(err, "decode: unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(r), nil
}
