// Package source provides the input streams for a city file run: GeoNames
// archives downloaded per country code, or a single local file.
package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cityfile/internal/fetcher"
)

// StreamFunc consumes one input stream. The reader is only valid during the call.
type StreamFunc func(name string, r io.Reader) error

// Provider yields input streams one at a time, in order. Each stream is fully
// consumed by fn before the next one is opened.
type Provider interface {
	Each(ctx context.Context, fn StreamFunc) error
}

// RetrievalError reports that a country's archive could not be downloaded.
type RetrievalError struct {
	CountryCode string
	URL         string
	Err         error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s archive from %s: %v", e.CountryCode, e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Remote downloads one ZIP archive per country code and yields every entry
// except the skipped names.
type Remote struct {
	CountryCodes []string
	URLTemplate  string   // fmt template with a single %s for the country code
	SkipEntries  []string // exact entry names, e.g. "readme.txt"
	Encoding     string
	Fetcher      fetcher.Fetcher
}

// URL returns the archive location for a country code.
func (p *Remote) URL(countryCode string) string {
	return fmt.Sprintf(p.URLTemplate, countryCode)
}

// Each downloads the archives in order. A failed download aborts with a
// *RetrievalError; nothing is retried beyond what the fetcher does.
func (p *Remote) Each(ctx context.Context, fn StreamFunc) error {
	for _, code := range p.CountryCodes {
		if err := p.eachCountry(ctx, code, fn); err != nil {
			return err
		}
	}
	return nil
}

func (p *Remote) eachCountry(ctx context.Context, code string, fn StreamFunc) error {
	url := p.URL(code)
	log := zap.L().With(
		zap.String("component", "source.remote"),
		zap.String("country_code", code),
		zap.String("url", url),
	)

	log.Info("downloading postal code archive")
	body, err := p.Fetcher.Download(ctx, url)
	if err != nil {
		return &RetrievalError{CountryCode: code, URL: url, Err: err}
	}
	defer body.Close() //nolint:errcheck

	zr, err := fetcher.ReadZIP(body)
	if err != nil {
		return eris.Wrapf(err, "source: archive for %s", code)
	}

	return fetcher.WalkZIP(zr, p.SkipEntries, func(name string, r io.Reader) error {
		dr, err := fetcher.DecodeReader(r, p.Encoding)
		if err != nil {
			return eris.Wrap(err, "source: decode entry")
		}
		log.Debug("reading archive entry", zap.String("entry", name))
		return fn(code+"/"+name, dr)
	})
}

// Local yields a single file from disk.
type Local struct {
	Path     string
	Encoding string
}

// Each opens the file and passes it to fn.
func (p *Local) Each(_ context.Context, fn StreamFunc) error {
	f, err := os.Open(p.Path)
	if err != nil {
		return eris.Wrap(err, "source: open local file")
	}
	defer f.Close() //nolint:errcheck

	dr, err := fetcher.DecodeReader(f, p.Encoding)
	if err != nil {
		return eris.Wrap(err, "source: decode local file")
	}
	return fn(p.Path, dr)
}

// Options selects and configures a provider.
type Options struct {
	LocalFile    string
	CountryCodes []string
	URLTemplate  string
	SkipEntries  []string
	Encoding     string
}

// New returns a Local provider when opts.LocalFile is set, otherwise a Remote
// provider over opts.CountryCodes using f.
func New(opts Options, f fetcher.Fetcher) Provider {
	if opts.LocalFile != "" {
		return &Local{Path: opts.LocalFile, Encoding: opts.Encoding}
	}
	return &Remote{
		CountryCodes: opts.CountryCodes,
		URLTemplate:  opts.URLTemplate,
		SkipEntries:  opts.SkipEntries,
		Encoding:     opts.Encoding,
		Fetcher:      f,
	}
}
