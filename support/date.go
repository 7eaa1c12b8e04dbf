// Package support collects small parsing and formatting helpers used by the
// ecbrates client - currency-code normalization lives in
// currency, decimal rounding in rates; this package covers date parsing
// (spec.md §1's "Support utilities").
package support

import (
	"fmt"
	"time"

	"github.com/ecbrates/ecbrates/rates"
)

// DateTuple is the {y, m, d} shape ParseDate also accepts, alongside ISO
// strings, per spec.md §8.
type DateTuple struct {
	Year  int
	Month int
	Day   int
}

const isoDateLayout = "2006-01-02"

// ParseDate accepts an ISO calendar date ("2024-11-08"), an ISO datetime
// with a trailing "Z" ("2024-11-08T00:00:00Z"), a DateTuple, or a time.Time
// (whose calendar day is kept), and returns
// the UTC midnight instant for that calendar day. Any other shape, or a
// calendar-impossible date (2024-02-31), returns rates.ErrDate.
func ParseDate(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case string:
		return parseDateString(v)
	case DateTuple:
		return fromTuple(v.Year, v.Month, v.Day)
	case time.Time:
		y, m, d := v.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("date of type %T: %w", value, rates.ErrDate)
	}
}

func parseDateString(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, rates.ErrDate)
	}
	return t, nil
}

// fromTuple rejects calendar-impossible dates by round-tripping through
// time.Date and comparing the normalized result back against the input,
// since time.Date silently rolls February 31 into March.
func fromTuple(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, fmt.Errorf("date %04d-%02d-%02d: %w", year, month, day, rates.ErrDate)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if y, m, d := t.Date(); y != year || int(m) != month || d != day {
		return time.Time{}, fmt.Errorf("date %04d-%02d-%02d: %w", year, month, day, rates.ErrDate)
	}
	return t, nil
}

// FormatDate renders t as the ISO calendar date string used throughout the
// public API and its error messages.
func FormatDate(t time.Time) string {
	return t.UTC().Format(isoDateLayout)
}
