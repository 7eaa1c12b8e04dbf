// Package ratedata holds the plain data model shared by the feed parser,
// the cache and the rebasing/conversion algorithms: a day's worth of
// EUR-quoted exchange rates, and a sequence of such days.
package ratedata

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyRateSet is one day of exchange rates, expressed against Base (EUR
// unless the set has been rebased). Rates maps an ISO alpha code to its
// value relative to Base; Base itself is present with rate exactly one.
type DailyRateSet struct {
	Date  time.Time
	Base  string
	Rates map[string]decimal.Decimal
}

// Clone returns a deep copy of the rate set - callers that rebase or filter
// a set must not mutate one still referenced by the cache.
func (d DailyRateSet) Clone() DailyRateSet {
	out := DailyRateSet{Date: d.Date, Base: d.Base, Rates: make(map[string]decimal.Decimal, len(d.Rates))}
	for k, v := range d.Rates {
		out.Rates[k] = v
	}
	return out
}

// Feed is a non-empty, most-recent-first sequence of daily rate sets, as
// returned by a single fetch of an ECB XML endpoint.
type Feed []DailyRateSet

// ByDate returns the first entry in the feed whose Date matches day (UTC,
// truncated to the calendar day), and true if one was found.
func (f Feed) ByDate(day time.Time) (DailyRateSet, bool) {
	day = day.UTC().Truncate(24 * time.Hour)
	for _, d := range f {
		if d.Date.Equal(day) {
			return d, true
		}
	}
	return DailyRateSet{}, false
}

// Between returns every entry in the feed whose Date falls within
// [from, to] inclusive, most-recent-first, as the feed itself is ordered.
func (f Feed) Between(from, to time.Time) Feed {
	from = from.UTC().Truncate(24 * time.Hour)
	to = to.UTC().Truncate(24 * time.Hour)
	out := make(Feed, 0, len(f))
	for _, d := range f {
		if !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out
}
