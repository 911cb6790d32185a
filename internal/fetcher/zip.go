package fetcher

import (
	"archive/zip"
	"bytes"
	"io"
	"slices"

	"github.com/rotisserie/eris"
)

// ZIPEntryFunc receives the decompressed content of one archive entry.
// The reader is only valid for the duration of the call.
type ZIPEntryFunc func(name string, r io.Reader) error

// ReadZIP buffers an archive body in memory and opens it. The ZIP central
// directory sits at the end of the file, so the body cannot be streamed.
func ReadZIP(body io.Reader) (*zip.Reader, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, eris.Wrap(err, "zip: read body")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, eris.Wrap(err, "zip: open archive")
	}
	return zr, nil
}

// WalkZIP calls fn for every file entry in the order the archive stores them.
// Directories and entries whose name exactly matches one of skip are passed over.
// The first error returned by fn stops the walk.
func WalkZIP(zr *zip.Reader, skip []string, fn ZIPEntryFunc) error {
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || slices.Contains(skip, f.Name) {
			continue
		}
		if err := walkZIPEntry(f, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkZIPEntry(f *zip.File, fn ZIPEntryFunc) error {
	rc, err := f.Open()
	if err != nil {
		return eris.Wrapf(err, "zip: open entry %s", f.Name)
	}
	defer rc.Close() //nolint:errcheck

	return fn(f.Name, rc)
}
