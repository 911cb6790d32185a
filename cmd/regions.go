package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cityfile/internal/region"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Print the region abbreviation tables",
	Long:  "Prints the region name to abbreviation tables used to build city labels, keyed by country code.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		country, _ := cmd.Flags().GetString("country")
		format, _ := cmd.Flags().GetString("format")
		return printRegions(cmd.OutOrStdout(), country, format)
	},
}

// printRegions writes the tables for country (all when empty) as yaml or json.
func printRegions(w io.Writer, country, format string) error {
	tables := make(map[string]map[string]string)
	if country != "" {
		t, ok := region.Table(country)
		if !ok {
			return eris.Errorf("regions: no abbreviation table for %q (have %v)", country, region.Countries())
		}
		tables[country] = t
	} else {
		for _, code := range region.Countries() {
			t, _ := region.Table(code)
			tables[code] = t
		}
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tables); err != nil {
			return eris.Wrap(err, "regions: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "regions: encode yaml")
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tables); err != nil {
			return eris.Wrap(err, "regions: encode json")
		}
		return nil
	default:
		return eris.Errorf("regions: unknown format %q (want yaml or json)", format)
	}
}

func init() {
	regionsCmd.Flags().String("country", "", "country code to print (default: all)")
	regionsCmd.Flags().String("format", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(regionsCmd)
}
