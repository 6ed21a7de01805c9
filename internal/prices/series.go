package prices

import (
	"sort"
	"time"

	"dcabench/internal/domain"
	"dcabench/internal/util"
)

// Series is an immutable, indexed view over historical price records.
// Lookups never touch disk; everything is held in memory for the duration
// of one batch. A Series built by Window shares no mutable state with its
// parent, so concurrent runs over different windows are safe.
type Series struct {
	records []domain.PriceRecord

	byDay        map[time.Time]map[string]domain.PriceRecord
	byInstrument map[string][]domain.PriceRecord
	days         []time.Time
}

// New indexes the given records. Records are sorted ascending by
// (date, instrument) first, matching the ingest contract, so the caller
// may pass them in any order.
func New(records []domain.PriceRecord) *Series {
	sorted := make([]domain.PriceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Instrument < sorted[j].Instrument
	})

	s := &Series{
		records:      sorted,
		byDay:        map[time.Time]map[string]domain.PriceRecord{},
		byInstrument: map[string][]domain.PriceRecord{},
	}
	for _, r := range sorted {
		day := util.Day(r.Date)
		if _, ok := s.byDay[day]; !ok {
			s.byDay[day] = map[string]domain.PriceRecord{}
			s.days = append(s.days, day)
		}
		s.byDay[day][r.Instrument] = r
		s.byInstrument[r.Instrument] = append(s.byInstrument[r.Instrument], r)
	}
	return s
}

func (s *Series) Len() int {
	return len(s.records)
}

// TradingDays returns the ordered distinct dates present in the data.
// This is the trading calendar: a day counts as a trading day when at
// least one instrument has a record on it.
func (s *Series) TradingDays() []time.Time {
	days := make([]time.Time, len(s.days))
	copy(days, s.days)
	return days
}

func (s *Series) Instruments() []string {
	instruments := make([]string, 0, len(s.byInstrument))
	for instrument := range s.byInstrument {
		instruments = append(instruments, instrument)
	}
	sort.Strings(instruments)
	return instruments
}

// RecordOn returns the record for (date, instrument), if any.
func (s *Series) RecordOn(date time.Time, instrument string) (domain.PriceRecord, bool) {
	r, ok := s.byDay[util.Day(date)][instrument]
	return r, ok
}

// PriceOn returns the requested price field for (date, instrument). The
// returned price may be <= 0; callers decide whether that is usable.
func (s *Series) PriceOn(date time.Time, instrument string, field domain.PriceField) (float64, bool) {
	r, ok := s.RecordOn(date, instrument)
	if !ok {
		return 0, false
	}
	return r.Price(field), true
}

// InstrumentsTradingOn lists the instruments with a record on the given
// date, sorted so iteration order is deterministic across runs.
func (s *Series) InstrumentsTradingOn(date time.Time) []string {
	dayRecords, ok := s.byDay[util.Day(date)]
	if !ok {
		return nil
	}
	instruments := make([]string, 0, len(dayRecords))
	for instrument := range dayRecords {
		instruments = append(instruments, instrument)
	}
	sort.Strings(instruments)
	return instruments
}

// LastKnownPrice resolves the instrument's most recent price at or before
// the given date, searching only this series. Calling it on a
// window-filtered series therefore never reaches outside the window;
// final-day valuation depends on that.
func (s *Series) LastKnownPrice(instrument string, onOrBefore time.Time, field domain.PriceField) (float64, bool) {
	records := s.byInstrument[instrument]
	limit := util.Day(onOrBefore)
	for i := len(records) - 1; i >= 0; i-- {
		if util.DateLte(records[i].Date, limit) {
			return records[i].Price(field), true
		}
	}
	return 0, false
}

// Window returns the sub-series with start <= date <= end, optionally
// restricted to one instrument. An empty result is returned as an empty
// series; deciding whether that is an error belongs to the caller.
func (s *Series) Window(start, end time.Time, instrument string) *Series {
	filtered := []domain.PriceRecord{}
	for _, r := range s.records {
		if r.Date.Before(util.Day(start)) || r.Date.After(util.Day(end)) {
			continue
		}
		if instrument != "" && r.Instrument != instrument {
			continue
		}
		filtered = append(filtered, r)
	}
	return New(filtered)
}
