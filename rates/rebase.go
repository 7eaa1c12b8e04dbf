package rates

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ecbrates/ecbrates/currency"
	"github.com/ecbrates/ecbrates/ratedata"
)

// Rebase re-expresses an EUR-quoted daily rate set around base, per
// spec.md §4.5:
//
//   - base == EUR: the set is returned unchanged (still a copy).
//   - base unknown to the currency registry: ErrBaseCurrencyNotFound.
//   - base not present in set.Rates: the set is returned unchanged (there is
//     no EUR quote for base to divide by).
//   - otherwise every entry is divided by base's EUR rate; base itself
//     becomes exactly 1.
//
// Iteration order is irrelevant (Rates is a map); currency-code
// capitalization in the keys is preserved exactly as given.
func Rebase(set ratedata.DailyRateSet, base string) (ratedata.DailyRateSet, error) {
	if base == "EUR" {
		out := set.Clone()
		out.Base = "EUR"
		return out, nil
	}

	if !currency.Exists(base) {
		return ratedata.DailyRateSet{}, fmt.Errorf("rebase to %q: %w", base, ErrBaseCurrencyNotFound)
	}

	rBase, ok := set.Rates[base]
	if !ok {
		return set.Clone(), nil
	}

	out := ratedata.DailyRateSet{Date: set.Date, Base: base, Rates: make(map[string]decimal.Decimal, len(set.Rates))}
	for code, rate := range set.Rates {
		if code == base {
			out.Rates[code] = decimal.NewFromInt(1)
			continue
		}
		out.Rates[code] = rate.DivRound(rBase, divisionPrecision)
	}
	return out, nil
}

// FilterSymbols restricts set.Rates to the given non-empty symbol set,
// applied before Rebase per spec.md §4.5 so a base explicitly present in
// symbols remains usable. A nil or empty symbols leaves the set unchanged.
func FilterSymbols(set ratedata.DailyRateSet, symbols map[string]bool) ratedata.DailyRateSet {
	if len(symbols) == 0 {
		return set.Clone()
	}

	out := ratedata.DailyRateSet{Date: set.Date, Base: set.Base, Rates: make(map[string]decimal.Decimal, len(symbols))}
	for code, rate := range set.Rates {
		if symbols[code] {
			out.Rates[code] = rate
		}
	}
	return out
}

// Apply runs FilterSymbols followed by Rebase using the settings in opts,
// the order every query operation in the fetcher-facing API uses.
func Apply(set ratedata.DailyRateSet, opts Options) (ratedata.DailyRateSet, error) {
	filtered := FilterSymbols(set, opts.Symbols)
	base := opts.Base
	if base == "" {
		base = "EUR"
	}
	return Rebase(filtered, base)
}
