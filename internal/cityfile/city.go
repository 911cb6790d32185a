package cityfile

import (
	"strings"

	"github.com/sells-group/cityfile/internal/region"
)

// City is the aggregate written to the output file, one per line.
type City struct {
	Key         string       `json:"_key"`
	Name        string       `json:"name"`
	Region      string       `json:"state,omitempty"`
	CountryCode string       `json:"country_code"`
	Label       string       `json:"label"`
	PostalCodes []PostalCode `json:"postal_codes"`
}

// PostalCode is one postal code observed for a city.
type PostalCode struct {
	PostalCode string    `json:"postal_code"`
	Location   *Location `json:"location"`
}

// CityKey builds the grouping identity for a city: name, resolved region and
// country joined with dots, spaces replaced by underscores.
func CityKey(name, regionAbbr, countryCode string) string {
	return strings.ReplaceAll(name+"."+regionAbbr+"."+countryCode, " ", "_")
}

// Label returns the display string for a city. The abbreviated region is used
// when present, otherwise the country code.
func Label(name, regionAbbr, countryCode string) string {
	if regionAbbr == "" {
		return name + ", " + countryCode
	}
	return name + ", " + regionAbbr
}

// resolveRegion returns the abbreviation used for keys and labels.
func resolveRegion(rec Record) string {
	return region.Abbreviate(rec.CountryCode, rec.AdminName1)
}
