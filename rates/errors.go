package rates

import "errors"

// Sentinel errors behind the rates package's slice of the error taxonomy in
// spec.md §7. Every returned error wraps one of these with errors.Is-able
// context, via fmt.Errorf("...: %w", ...).
var (
	// ErrDate is returned when an input date string can't be parsed as an
	// ISO calendar date, or when a requested date has no data.
	ErrDate = errors.New("rates: date error")
	// ErrCurrency is returned when an ISO code is unknown, or an
	// amount-conversion names an unknown or empty currency.
	ErrCurrency = errors.New("rates: currency error")
	// ErrFormat is returned when an amount or a format option has an
	// unsupported shape.
	ErrFormat = errors.New("rates: format error")
	// ErrBaseCurrencyNotFound is returned by Rebase when the requested base
	// doesn't exist in the currency registry.
	ErrBaseCurrencyNotFound = errors.New("rates: base currency not found")
	// ErrInvalidExchange is returned by Exchange when its arguments are
	// malformed in a way that isn't simply an unknown currency (e.g. a nil
	// or list-shaped amount).
	ErrInvalidExchange = errors.New("rates: invalid exchange")
)
