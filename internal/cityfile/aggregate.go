package cityfile

import (
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// State is the aggregator's lifecycle state.
type State int

const (
	// StateEmpty means no aggregates are held.
	StateEmpty State = iota
	// StateAccumulating means aggregates are held for the current country block.
	StateAccumulating
	// StateFlushing means the table is being written out.
	StateFlushing
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	case StateFlushing:
		return "flushing"
	default:
		return "unknown"
	}
}

// Stats counts what happened to the rows of one or more input streams.
type Stats struct {
	Rows    int // rows read, including skipped ones
	Skipped int // rows that failed to decode
	Dropped int // US rows without a resolvable state
	Cities  int // aggregates written
	Flushes int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Rows += o.Rows
	s.Skipped += o.Skipped
	s.Dropped += o.Dropped
	s.Cities += o.Cities
	s.Flushes += o.Flushes
}

// Aggregator groups records into cities for one contiguous block of a country
// code at a time. Input is expected to be sorted by country: whenever the
// country changes the whole table is flushed to the writer and discarded, so
// a country that reappears later starts a new set of aggregates.
type Aggregator struct {
	w   CityWriter
	log *zap.Logger

	started     bool
	lastCountry string
	state       State

	cities  map[string]*City
	order   []*City
	counter int

	stats Stats
}

// NewAggregator returns an aggregator writing to w. A nil logger uses zap.L().
func NewAggregator(w CityWriter, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.L()
	}
	return &Aggregator{
		w:      w,
		log:    log,
		cities: make(map[string]*City),
	}
}

// Add applies one decoded row. Failed rows are logged and skipped. The only
// errors returned come from the writer during a flush.
func (a *Aggregator) Add(res RowResult) error {
	a.stats.Rows++

	if !res.OK() {
		a.stats.Skipped++
		a.log.Warn("skipping malformed row",
			zap.Int("line", res.Line),
			zap.Strings("fields", res.Fields),
			zap.Error(res.Err),
		)
		return nil
	}

	rec := res.Record
	if !a.started || rec.CountryCode != a.lastCountry {
		if err := a.flush(); err != nil {
			return err
		}
		a.started = true
		a.lastCountry = rec.CountryCode
	}

	abbr := resolveRegion(rec)
	if abbr == "" && rec.CountryCode == "US" {
		a.stats.Dropped++
		a.log.Debug("dropping US row without state",
			zap.Int("line", res.Line),
			zap.String("postal_code", rec.PostalCode),
		)
		return nil
	}

	key := CityKey(rec.CityName, abbr, rec.CountryCode)
	city, ok := a.cities[key]
	if !ok {
		a.counter++
		city = &City{
			Key:         rec.CountryCode + strconv.Itoa(a.counter),
			Name:        rec.CityName,
			Region:      rec.AdminName1,
			CountryCode: rec.CountryCode,
			Label:       Label(rec.CityName, abbr, rec.CountryCode),
			PostalCodes: []PostalCode{},
		}
		a.cities[key] = city
		a.order = append(a.order, city)
		a.state = StateAccumulating
	}

	loc := rec.Location()
	if loc == nil && rec.Latitude != "" {
		a.log.Warn("unparseable coordinates",
			zap.Int("line", res.Line),
			zap.String("postal_code", rec.PostalCode),
			zap.String("latitude", rec.Latitude),
			zap.String("longitude", rec.Longitude),
		)
	}
	city.PostalCodes = append(city.PostalCodes, PostalCode{
		PostalCode: rec.PostalCode,
		Location:   loc,
	})

	return nil
}

// Close performs the final flush. The aggregator must not be used afterwards.
func (a *Aggregator) Close() error {
	return a.flush()
}

// State returns the current lifecycle state.
func (a *Aggregator) State() State {
	return a.state
}

// Stats returns the counters for rows seen so far.
func (a *Aggregator) Stats() Stats {
	return a.stats
}

// flush writes every held city in creation order, then resets the table and
// the key counter. An empty table still counts as a flush.
func (a *Aggregator) flush() error {
	a.state = StateFlushing
	for _, c := range a.order {
		if err := a.w.WriteCity(c); err != nil {
			return eris.Wrapf(err, "aggregate: flush %s", a.lastCountry)
		}
	}
	if err := a.w.Flush(); err != nil {
		return eris.Wrapf(err, "aggregate: flush %s", a.lastCountry)
	}

	if len(a.order) > 0 {
		a.log.Debug("flushed cities",
			zap.String("country_code", a.lastCountry),
			zap.Int("cities", len(a.order)),
		)
	}
	a.stats.Cities += len(a.order)
	a.stats.Flushes++

	a.cities = make(map[string]*City)
	a.order = nil
	a.counter = 0
	a.state = StateEmpty
	return nil
}
