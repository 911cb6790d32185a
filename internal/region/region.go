// Package region resolves first-level administrative division names to
// their postal abbreviations for the countries that have a known table.
package region

import "sort"

// USStates maps US state, district, and territory names (as GeoNames spells
// them in admin_name1) to USPS abbreviations.
var USStates = map[string]string{
	"Alabama":              "AL",
	"Alaska":               "AK",
	"American Samoa":       "AS",
	"Arizona":              "AZ",
	"Arkansas":             "AR",
	"California":           "CA",
	"Colorado":             "CO",
	"Connecticut":          "CT",
	"Delaware":             "DE",
	"District of Columbia": "DC",
	"Florida":              "FL",
	"Georgia":              "GA",
	"Guam":                 "GU",
	"Hawaii":               "HI",
	"Idaho":                "ID",
	"Illinois":             "IL",
	"Indiana":              "IN",
	"Iowa":                 "IA",
	"Kansas":               "KS",
	"Kentucky":             "KY",
	"Louisiana":            "LA",
	"Maine":                "ME",
	"Maryland":             "MD",
	"Massachusetts":        "MA",
	"Michigan":             "MI",
	"Minnesota":            "MN",
	"Mississippi":          "MS",
	"Missouri":             "MO",
	"Montana":              "MT",
	"National":             "NA",
	"Nebraska":             "NE",
	"Nevada":               "NV",
	"New Hampshire":        "NH",
	"New Jersey":           "NJ",
	"New Mexico":           "NM",
	"New York":             "NY",
	"North Carolina":       "NC",
	"North Dakota":         "ND",
	"Ohio":                 "OH",
	"Oklahoma":             "OK",
	"Oregon":               "OR",
	"Pennsylvania":         "PA",
	"Puerto Rico":          "PR",
	"Rhode Island":         "RI",
	"South Carolina":       "SC",
	"South Dakota":         "SD",
	"Tennessee":            "TN",
	"Texas":                "TX",
	"Utah":                 "UT",
	"Vermont":              "VT",
	"Virgin Islands":       "VI",
	"Virginia":             "VA",
	"Washington":           "WA",
	"West Virginia":        "WV",
	"Wisconsin":            "WI",
	"Wyoming":              "WY",
}

// CAProvinces maps Canadian province and territory names to Canada Post abbreviations.
var CAProvinces = map[string]string{
	"Alberta":                   "AB",
	"British Columbia":          "BC",
	"Manitoba":                  "MB",
	"New Brunswick":             "NB",
	"Newfoundland and Labrador": "NL",
	"Northwest Territories":     "NT",
	"Nova Scotia":               "NS",
	"Nunavut":                   "NU",
	"Ontario":                   "ON",
	"Prince Edward Island":      "PE",
	"Quebec":                    "QC",
	"Saskatchewan":              "SK",
	"Yukon":                     "YT",
}

var tables = map[string]map[string]string{
	"US": USStates,
	"CA": CAProvinces,
}

// Abbreviate returns the abbreviation for name in the given country's table.
// Matching is exact. When the country has no table or the name is not in it,
// name is returned unchanged.
func Abbreviate(countryCode, name string) string {
	if t, ok := tables[countryCode]; ok {
		if abbr, ok := t[name]; ok {
			return abbr
		}
	}
	return name
}

// Table returns the abbreviation table for a country code.
func Table(countryCode string) (map[string]string, bool) {
	t, ok := tables[countryCode]
	return t, ok
}

// Countries lists the country codes that have an abbreviation table, sorted.
func Countries() []string {
	codes := make([]string, 0, len(tables))
	for code := range tables {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
