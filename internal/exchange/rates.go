// Package exchange tracks the daily CZK/EUR exchange rate discovered inside
// the day-ahead market sheets and completes it into a gap-free series.
//
// The rate column is only present in some report years and may be missing for
// individual days, so the tracker works in two phases: rates are accumulated
// while the DAM sheets are extracted, then Fill walks every date that appears
// in any dataset and carries the last seen rate forward. Dates before the
// first observation fall back to DefaultRate.
package exchange

import "log/slog"

// DefaultRate is the CZK per EUR fallback used before the first observed rate.
const DefaultRate = 25.0

// Tracker accumulates date -> rate entries and answers lookups after Fill.
type Tracker struct {
	rates map[string]float64
}

// NewTracker returns an empty rate tracker.
func NewTracker() *Tracker {
	return &Tracker{rates: make(map[string]float64)}
}

// Record stores the rate for a date. The first rate seen for a date wins;
// later rows for the same date never overwrite it.
func (t *Tracker) Record(date string, rate float64) {
	if _, ok := t.rates[date]; ok {
		return
	}
	t.rates[date] = rate
}

// Observed reports whether a rate was recorded (or filled) for the date.
func (t *Tracker) Observed(date string) bool {
	_, ok := t.rates[date]
	return ok
}

// Fill completes the series over the given dates, which must be sorted
// ascending. Gaps are forward-filled from the most recent observation and
// dates before the first observation get DefaultRate.
func (t *Tracker) Fill(dates []string) {
	last := DefaultRate
	filled := 0
	for _, d := range dates {
		if r, ok := t.rates[d]; ok {
			last = r
			continue
		}
		t.rates[d] = last
		filled++
	}
	slog.Debug("exchange rate series completed",
		slog.Int("dates", len(dates)),
		slog.Int("forward_filled", filled))
}

// Rate returns the resolved rate for a date. Dates outside the filled series
// answer DefaultRate so a conversion is always possible.
func (t *Tracker) Rate(date string) float64 {
	if r, ok := t.rates[date]; ok {
		return r
	}
	return DefaultRate
}

// Len returns the number of dates with a resolved rate.
func (t *Tracker) Len() int {
	return len(t.rates)
}
