package cityfile

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cityfile/internal/fetcher"
)

// Importer feeds input streams through a fresh Aggregator each, all writing
// to the same output.
type Importer struct {
	w      CityWriter
	log    *zap.Logger
	totals Stats
}

// NewImporter returns an importer writing to w. A nil logger uses zap.L().
func NewImporter(w CityWriter, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.L()
	}
	return &Importer{w: w, log: log.With(zap.String("component", "cityfile.import"))}
}

// Import reads every tab-separated row of r, groups them, and performs the
// final flush when the stream ends. Malformed rows are skipped. An error
// means the stream was abandoned part way; cities already flushed stay written.
func (im *Importer) Import(ctx context.Context, name string, r io.Reader) (Stats, error) {
	log := im.log.With(zap.String("source", name))
	agg := NewAggregator(im.w, log)

	err := fetcher.ReadRows(ctx, r, "\t", func(line int, fields []string) error {
		return agg.Add(ParseRow(line, fields))
	})
	if err != nil {
		im.totals.Add(agg.Stats())
		return agg.Stats(), eris.Wrapf(err, "import: %s", name)
	}

	if err := agg.Close(); err != nil {
		im.totals.Add(agg.Stats())
		return agg.Stats(), eris.Wrapf(err, "import: %s", name)
	}

	stats := agg.Stats()
	im.totals.Add(stats)
	log.Info("imported stream",
		zap.Int("rows", stats.Rows),
		zap.Int("cities", stats.Cities),
		zap.Int("skipped", stats.Skipped),
		zap.Int("dropped", stats.Dropped),
	)
	return stats, nil
}

// Totals returns stats accumulated over every Import call.
func (im *Importer) Totals() Stats {
	return im.totals
}
