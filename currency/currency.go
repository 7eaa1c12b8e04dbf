// Package currency provides the static, process-wide table of currencies
// known to ecbrates, along with case-insensitive lookup helpers.
//
// The table is a compile-time constant: it is never mutated after package
// initialization, and every exported function is safe to call without
// synchronization.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Descriptor describes one currency in the registry.
type Descriptor struct {
	Name        string
	ISOAlpha    string
	ISONumeric  string
	Symbol      string
	Subunit     decimal.Decimal
	SubunitName string
	AltNames    []string
	AltSymbols  []string
	// Enabled is true for currencies present in the ECB "latest" feed.
	// Disabled currencies may still appear in the historic feed.
	Enabled bool
}

// KeyStyle selects how map keys are rendered by All, Available and Disabled.
type KeyStyle int

const (
	// LowerSymbolKeys renders keys as lower-case ISO alpha codes, e.g. "usd".
	// This mirrors the source ecosystem's convention of using symbol-like
	// keys for machine consumption.
	LowerSymbolKeys KeyStyle = iota
	// UpperStringKeys renders keys as upper-case ISO alpha codes, e.g. "USD".
	UpperStringKeys
)

func renderKey(isoAlpha string, style KeyStyle) string {
	switch style {
	case LowerSymbolKeys:
		return strings.ToLower(isoAlpha)
	default:
		return strings.ToUpper(isoAlpha)
	}
}

// All returns every registry entry, keyed per the requested style.
func All(style KeyStyle) map[string]Descriptor {
	out := make(map[string]Descriptor, len(registry))
	for code, d := range registry {
		out[renderKey(code, style)] = d
	}
	return out
}

// Available returns only currencies with Enabled = true.
func Available(style KeyStyle) map[string]Descriptor {
	out := make(map[string]Descriptor, len(registry))
	for code, d := range registry {
		if d.Enabled {
			out[renderKey(code, style)] = d
		}
	}
	return out
}

// Disabled returns only currencies with Enabled = false.
func Disabled(style KeyStyle) map[string]Descriptor {
	out := make(map[string]Descriptor, len(registry))
	for code, d := range registry {
		if !d.Enabled {
			out[renderKey(code, style)] = d
		}
	}
	return out
}

// normalize trims and upper-cases a candidate ISO alpha code. It returns
// false if the input isn't shaped like a 3-letter currency code.
func normalize(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return code, true
}

// Get looks up a currency by ISO alpha code, case-insensitively. The second
// return value is false if the code is malformed or unknown - Get never
// panics.
func Get(code string) (Descriptor, bool) {
	norm, ok := normalize(code)
	if !ok {
		return Descriptor{}, false
	}
	d, ok := registry[norm]
	return d, ok
}

// GetOrFail is the throwing sibling of Get. It panics with a descriptive
// message if code is unknown - it exists for interactive/CLI callers that
// have already validated their input and want to skip the ok-check.
func GetOrFail(code string) Descriptor {
	d, ok := Get(code)
	if !ok {
		panic(fmt.Sprintf("currency: unknown code %q", code))
	}
	return d
}

// Exists reports whether code names a currency in the registry, regardless
// of its Enabled flag.
func Exists(code string) bool {
	_, ok := Get(code)
	return ok
}
