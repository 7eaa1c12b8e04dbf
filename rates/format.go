package rates

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecbrates/ecbrates/currency"
	"github.com/ecbrates/ecbrates/ratedata"
)

// Render applies the requested rounding and then the requested output
// format to d. round may be nil (no rounding). An unknown Format value is a
// programming error - it panics, per spec.md §4.5 ("Unknown format is a
// programming error").
func Render(d decimal.Decimal, round *int, format Format) interface{} {
	if round != nil {
		d = d.Round(int32(*round))
	}

	switch format {
	case FormatDecimal:
		return d
	case FormatString:
		return d.String()
	default:
		panic(fmt.Sprintf("rates: %v: unknown format %d", ErrFormat, int(format)))
	}
}

// RenderSet applies opts' rounding and format to every value in set.Rates,
// keyed the way opts.Keys selects, and returns a plain map ready for
// external consumption.
func RenderSet(set ratedata.DailyRateSet, opts Options) map[string]interface{} {
	out := make(map[string]interface{}, len(set.Rates))
	for code, rate := range set.Rates {
		key := code
		if opts.Keys == currency.LowerSymbolKeys {
			key = lowerCode(code)
		}
		out[key] = Render(rate, opts.Round, opts.Format)
	}
	return out
}

// RenderedRateSet is a daily rate set whose values have already had opts'
// round, format and key style applied - the shape every query-facing client
// method returns, so that WithRound/WithFormat/WithKeys take effect on them
// the same way they already do on RenderSet and the cmd/ exporters (spec.md
// §6's "Apply round then format" applies per rates call, not only to
// Exchange).
type RenderedRateSet struct {
	Date  time.Time
	Base  string
	Rates map[string]interface{}
}

// RenderDailyRateSet renders set's rates per opts, preserving its Date and
// Base.
func RenderDailyRateSet(set ratedata.DailyRateSet, opts Options) RenderedRateSet {
	return RenderedRateSet{Date: set.Date, Base: set.Base, Rates: RenderSet(set, opts)}
}

func lowerCode(code string) string {
	b := []byte(code)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}
