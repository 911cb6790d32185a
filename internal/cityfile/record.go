// Package cityfile groups GeoNames postal code rows into per-city aggregates
// and writes them as newline-delimited JSON.
package cityfile

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// RecordFields is the number of tab-separated columns in a GeoNames postal code row.
const RecordFields = 12

// ErrFieldCount is reported for rows that do not have exactly RecordFields columns.
var ErrFieldCount = eris.New("cityfile: wrong number of fields")

// Record is one row of a GeoNames postal code dump. All fields are raw text.
type Record struct {
	CountryCode string
	PostalCode  string
	CityName    string
	AdminName1  string // state or province
	AdminCode1  string
	AdminName2  string // county
	AdminCode2  string
	AdminName3  string
	AdminCode3  string
	Latitude    string
	Longitude   string
	Accuracy    string
}

// Location is a [latitude, longitude] pair.
type Location [2]float64

// Location parses the record's coordinates. It returns nil when latitude is
// empty or either value is not a finite number; a partial pair is never returned.
func (r Record) Location() *Location {
	if r.Latitude == "" {
		return nil
	}
	lat, ok := parseCoord(r.Latitude)
	if !ok {
		return nil
	}
	lon, ok := parseCoord(r.Longitude)
	if !ok {
		return nil
	}
	return &Location{lat, lon}
}

func parseCoord(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// RowResult is the outcome of decoding one input row. Err is nil on success.
type RowResult struct {
	Line   int
	Fields []string
	Record Record
	Err    error
}

// OK reports whether the row decoded into a Record.
func (r RowResult) OK() bool {
	return r.Err == nil
}

// ParseRow decodes the fields of one row.
func ParseRow(line int, fields []string) RowResult {
	res := RowResult{Line: line, Fields: fields}
	if len(fields) != RecordFields {
		res.Err = eris.Wrapf(ErrFieldCount, "got %d, want %d", len(fields), RecordFields)
		return res
	}
	res.Record = Record{
		CountryCode: fields[0],
		PostalCode:  fields[1],
		CityName:    fields[2],
		AdminName1:  fields[3],
		AdminCode1:  fields[4],
		AdminName2:  fields[5],
		AdminCode2:  fields[6],
		AdminName3:  fields[7],
		AdminCode3:  fields[8],
		Latitude:    fields[9],
		Longitude:   fields[10],
		Accuracy:    fields[11],
	}
	return res
}
