// Package rates implements the rebasing and amount-conversion algebra from
// spec.md §4.5: re-expressing an EUR-quoted daily rate set around an
// arbitrary base currency, and converting an amount between any two
// supported currencies using that rate set.
//
// All arithmetic uses github.com/shopspring/decimal, never binary floats,
// per spec.md §9.
package rates

import (
	"github.com/ecbrates/ecbrates/currency"
)

// Format selects how a computed value is rendered.
type Format int

const (
	// FormatDecimal renders results as decimal.Decimal.
	FormatDecimal Format = iota
	// FormatString renders results as the decimal's canonical string.
	FormatString
)

// divisionPrecision is the number of decimal places Rebase and Exchange
// carry internally before the caller's requested Round is applied. 24
// decimal places keeps a rebase-then-rebase-back round trip stable at
// every advertised rounding (spec.md §8, §9).
const divisionPrecision = 24

// Options configures Rebase, Exchange and the fetcher-facing query
// operations built on top of them. The zero value is not valid; build one
// with NewOptions.
type Options struct {
	Base    string
	Format  Format
	Round   *int
	Symbols map[string]bool
	Keys    currency.KeyStyle
}

// Option mutates an Options value under construction.
type Option func(*Options)

// WithBase sets the rebase target. Default: EUR.
func WithBase(code string) Option {
	return func(o *Options) { o.Base = code }
}

// WithFormat selects decimal or string rendering. Default: FormatDecimal.
func WithFormat(f Format) Option {
	return func(o *Options) { o.Format = f }
}

// WithRound sets the number of decimal places results are rounded to (0-15).
// Default: 5. WithNoRound disables rounding entirely.
func WithRound(n int) Option {
	return func(o *Options) { o.Round = &n }
}

// WithNoRound disables rounding: results are returned at full computed
// precision.
func WithNoRound() Option {
	return func(o *Options) { o.Round = nil }
}

// WithSymbols restricts the exposed rates to the given ISO codes, applied
// before rebasing so a base explicitly included in symbols is still usable.
func WithSymbols(codes ...string) Option {
	return func(o *Options) {
		set := make(map[string]bool, len(codes))
		for _, c := range codes {
			set[c] = true
		}
		o.Symbols = set
	}
}

// WithKeys selects whether result maps use lower-case symbol keys or
// upper-case string keys. Default: LowerSymbolKeys.
func WithKeys(style currency.KeyStyle) Option {
	return func(o *Options) { o.Keys = style }
}

// defaultRound is spec.md §6's recognized default for the `round` option.
const defaultRound = 5

// NewOptions builds an Options value with spec.md §6's defaults, then
// applies opts in order.
func NewOptions(opts ...Option) Options {
	round := defaultRound
	o := Options{
		Base:   "EUR",
		Format: FormatDecimal,
		Round:  &round,
		Keys:   currency.LowerSymbolKeys,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
