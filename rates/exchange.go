package rates

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ecbrates/ecbrates/currency"
	"github.com/ecbrates/ecbrates/ratedata"
)

// withEUR returns a copy of set's rates with an EUR entry of exactly 1
// synthesized if not already present, per spec.md §4.5's Exchange algorithm.
func withEUR(set ratedata.DailyRateSet) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(set.Rates)+1)
	for k, v := range set.Rates {
		out[k] = v
	}
	if _, ok := out["EUR"]; !ok {
		out["EUR"] = decimal.NewFromInt(1)
	}
	return out
}

// Exchange converts amount from the from currency to the to currency using
// the quotes in set, per spec.md §4.5:
//
//  1. from and to must both name currencies in the registry.
//  2. EUR is synthesized into the working rate map if absent.
//  3. result = amount * (rate[to] / rate[from]).
//  4. round then format is applied via opts.
func Exchange(set ratedata.DailyRateSet, amount decimal.Decimal, from, to string, opts Options) (interface{}, error) {
	if !currency.Exists(from) {
		return nil, fmt.Errorf("exchange: source currency %q: %w", from, ErrCurrency)
	}
	if !currency.Exists(to) {
		return nil, fmt.Errorf("exchange: target currency %q: %w", to, ErrCurrency)
	}

	working := withEUR(set)

	rFrom, ok := working[from]
	if !ok {
		return nil, fmt.Errorf("exchange: no quote for %q in this rate set: %w", from, ErrCurrency)
	}
	rTo, ok := working[to]
	if !ok {
		return nil, fmt.Errorf("exchange: no quote for %q in this rate set: %w", to, ErrCurrency)
	}

	if from == to {
		return Render(amount, opts.Round, opts.Format), nil
	}

	factor := rTo.DivRound(rFrom, divisionPrecision)
	result := amount.Mul(factor)
	return Render(result, opts.Round, opts.Format), nil
}

// ParseAmount coerces a caller-supplied amount into a decimal.Decimal. It
// accepts an int, float64, decimal.Decimal or a numeric string - any other
// shape is a format error (spec.md §4.5: "Invalid amount shape ... raises a
// format error").
func ParseAmount(amount interface{}) (decimal.Decimal, error) {
	switch v := amount.(type) {
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("parse amount %q: %w", v, ErrFormat)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("amount of type %T: %w", amount, ErrFormat)
	}
}

// ExchangeAny is the safe entry point that also validates the shape of
// amount before delegating to Exchange. An amount that is nil, a slice, or
// otherwise not coercible to a number/decimal/numeric-string yields
// ErrInvalidExchange (spec.md §4.5). A string that is not a valid number
// yields ParseAmount's ErrFormat instead.
func ExchangeAny(set ratedata.DailyRateSet, amount interface{}, from, to string, opts Options) (interface{}, error) {
	if amount == nil {
		return nil, fmt.Errorf("exchange: nil amount: %w", ErrInvalidExchange)
	}
	switch amount.(type) {
	case int, int64, float64, string, decimal.Decimal:
		d, err := ParseAmount(amount)
		if err != nil {
			return nil, err
		}
		return Exchange(set, d, from, to, opts)
	default:
		return nil, fmt.Errorf("exchange: amount of type %T: %w", amount, ErrInvalidExchange)
	}
}
