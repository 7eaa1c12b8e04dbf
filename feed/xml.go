package feed

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecbrates/ecbrates/ratedata"
)

// Parser decodes a raw feed body into a sequence of daily rate sets. It is a
// narrow seam so tests (and, in principle, alternative feed formats) can
// supply their own implementation - see SPEC_FULL.md §4 (feed orchestrator).
type Parser interface {
	Parse(body []byte) (ratedata.Feed, error)
}

// DefaultParser decodes the ECB XML envelope described in spec.md §6:
// an outer Cube wrapping per-day Cube elements (attribute "time"), each
// wrapping per-currency Cube elements (attributes "currency" and "rate").
type DefaultParser struct{}

// envelope mirrors the ECB XML schema. Only the Cube nesting matters; the
// surrounding gesmes: namespace elements are ignored by encoding/xml because
// we only declare the fields we read.
type envelope struct {
	XMLName xml.Name   `xml:"Envelope"`
	Cube    outerCube  `xml:"Cube"`
}

type outerCube struct {
	Days []dayCube `xml:"Cube"`
}

type dayCube struct {
	Time         string         `xml:"time,attr"`
	CurrencyCube []currencyCube `xml:"Cube"`
}

type currencyCube struct {
	Currency string `xml:"currency,attr"`
	Rate     string `xml:"rate,attr"`
}

// Parse implements Parser.
func (DefaultParser) Parse(body []byte) (ratedata.Feed, error) {
	var env envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode ECB envelope: %w", err)
	}

	if len(env.Cube.Days) == 0 {
		return nil, fmt.Errorf("ECB envelope has no dated Cube elements")
	}

	out := make(ratedata.Feed, 0, len(env.Cube.Days))
	for _, day := range env.Cube.Days {
		t, err := time.Parse("2006-01-02", day.Time)
		if err != nil {
			return nil, fmt.Errorf("parse Cube time attribute %q: %w", day.Time, err)
		}
		t = t.UTC().Truncate(24 * time.Hour)

		rates := make(map[string]decimal.Decimal, len(day.CurrencyCube)+1)
		// EUR is never enumerated by ECB - it is always the implicit base.
		rates["EUR"] = decimal.NewFromInt(1)

		for _, c := range day.CurrencyCube {
			if c.Currency == "" {
				return nil, fmt.Errorf("Cube element on %s is missing a currency attribute", day.Time)
			}
			rate, err := decimal.NewFromString(c.Rate)
			if err != nil {
				return nil, fmt.Errorf("parse rate %q for %s on %s: %w", c.Rate, c.Currency, day.Time, err)
			}
			rates[c.Currency] = rate
		}

		out = append(out, ratedata.DailyRateSet{Date: t, Base: "EUR", Rates: rates})
	}

	return out, nil
}
