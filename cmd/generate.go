package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cityfile/internal/cityfile"
	"github.com/sells-group/cityfile/internal/config"
	"github.com/sells-group/cityfile/internal/fetcher"
	"github.com/sells-group/cityfile/internal/source"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the city file",
	Long: `Downloads the GeoNames postal code archive for each country code (or reads
--local_file instead) and writes one JSON object per city per line.

Input rows are expected to be sorted by country code. Cities are grouped within
each contiguous block of a country code only.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cmd.Flags().Changed("country_code") {
			codes, _ := cmd.Flags().GetString("country_code")
			cfg.Geonames.CountryCodes = config.SplitCodes(codes)
		}
		if cmd.Flags().Changed("output_file") {
			cfg.Output.File, _ = cmd.Flags().GetString("output_file")
		}
		localFile, _ := cmd.Flags().GetString("local_file")

		if err := cfg.Validate(); err != nil {
			return err
		}
		if localFile == "" {
			if err := cfg.Geonames.Validate(); err != nil {
				return err
			}
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  cfg.Geonames.UserAgent,
			Timeout:    time.Duration(cfg.Geonames.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Geonames.MaxRetries,
		})
		provider := source.New(source.Options{
			LocalFile:    localFile,
			CountryCodes: cfg.Geonames.CountryCodes,
			URLTemplate:  cfg.Geonames.URLTemplate,
			SkipEntries:  cfg.Geonames.SkipEntries,
			Encoding:     cfg.Geonames.Encoding,
		}, f)

		return generate(ctx, provider, cfg.Output.File)
	},
}

// generate truncates outPath and imports every stream of p into it.
func generate(ctx context.Context, p source.Provider, outPath string) error {
	log := zap.L().With(zap.String("command", "generate"), zap.String("output_file", outPath))
	start := time.Now()

	out, err := os.Create(outPath)
	if err != nil {
		return eris.Wrap(err, "generate: create output file")
	}
	defer out.Close() //nolint:errcheck

	w := cityfile.NewJSONLWriter(out)
	im := cityfile.NewImporter(w, zap.L())

	err = p.Each(ctx, func(name string, r io.Reader) error {
		_, err := im.Import(ctx, name, r)
		return err
	})
	if err != nil {
		return eris.Wrap(err, "generate")
	}

	if err := out.Close(); err != nil {
		return eris.Wrap(err, "generate: close output file")
	}

	totals := im.Totals()
	log.Info("city file complete",
		zap.Int("rows", totals.Rows),
		zap.Int("cities", totals.Cities),
		zap.Int("skipped", totals.Skipped),
		zap.Int("dropped", totals.Dropped),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func init() {
	generateCmd.Flags().String("country_code", "US", "comma-separated 2 letter country codes to download from GeoNames")
	generateCmd.Flags().String("local_file", "", "path to a local GeoNames postal code file to import instead of downloading")
	generateCmd.Flags().String("output_file", "cities.json", "output file name")
	rootCmd.AddCommand(generateCmd)
}
