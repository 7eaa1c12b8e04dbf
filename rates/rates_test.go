package rates

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ecbrates/ecbrates/ratedata"
)

func fixtureSet() ratedata.DailyRateSet {
	return ratedata.DailyRateSet{
		Date: time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC),
		Base: "EUR",
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.NewFromInt(1),
			"USD": decimal.RequireFromString("1.0772"),
			"GBP": decimal.RequireFromString("0.83188"),
			"JPY": decimal.RequireFromString("164.18"),
		},
	}
}

func TestRebaseToEURIsUnchanged(t *testing.T) {
	set := fixtureSet()
	out, err := Rebase(set, "EUR")
	require.NoError(t, err)
	require.True(t, out.Rates["USD"].Equal(set.Rates["USD"]))
	require.True(t, out.Rates["EUR"].Equal(decimal.NewFromInt(1)))
}

func TestRebaseToUSD(t *testing.T) {
	set := fixtureSet()
	out, err := Rebase(set, "USD")
	require.NoError(t, err)

	require.True(t, out.Rates["USD"].Equal(decimal.NewFromInt(1)))

	wantEUR := decimal.NewFromInt(1).DivRound(set.Rates["USD"], divisionPrecision)
	require.True(t, out.Rates["EUR"].Equal(wantEUR))

	wantGBP := set.Rates["GBP"].DivRound(set.Rates["USD"], divisionPrecision)
	require.True(t, out.Rates["GBP"].Equal(wantGBP))
}

func TestRebaseUnknownBase(t *testing.T) {
	_, err := Rebase(fixtureSet(), "ZZZ")
	require.ErrorIs(t, err, ErrBaseCurrencyNotFound)
}

func TestRebaseBaseNotInSetIsUnchanged(t *testing.T) {
	set := fixtureSet()
	delete(set.Rates, "USD")
	// CAD exists in the registry but has no quote in this set.
	out, err := Rebase(set, "CAD")
	require.NoError(t, err)
	require.Equal(t, set.Rates, out.Rates)
}

func TestRebaseIsReciprocalAcrossBases(t *testing.T) {
	set := fixtureSet()

	toUSD, err := Rebase(set, "USD")
	require.NoError(t, err)
	toGBP, err := Rebase(set, "GBP")
	require.NoError(t, err)

	// GBP-per-USD in the USD-based set and USD-per-GBP in the GBP-based set
	// must be reciprocals of one another.
	product := toUSD.Rates["GBP"].Mul(toGBP.Rates["USD"])
	diff := product.Sub(decimal.NewFromInt(1)).Abs()
	require.True(t, diff.LessThanOrEqual(decimal.New(1, -10)), "product=%s", product)
}

func TestFilterSymbolsAppliedBeforeRebase(t *testing.T) {
	set := fixtureSet()
	opts := NewOptions(WithBase("USD"), WithSymbols("USD", "GBP"))
	out, err := Apply(set, opts)
	require.NoError(t, err)

	require.Len(t, out.Rates, 2)
	require.True(t, out.Rates["USD"].Equal(decimal.NewFromInt(1)))
	_, hasJPY := out.Rates["JPY"]
	require.False(t, hasJPY)
}

func TestExchangeBasic(t *testing.T) {
	set := fixtureSet()
	opts := NewOptions(WithRound(5))

	got, err := Exchange(set, decimal.NewFromInt(1), "GBP", "EUR", opts)
	require.NoError(t, err)

	want := decimal.NewFromInt(1).DivRound(set.Rates["GBP"], divisionPrecision).Round(5)
	require.True(t, got.(decimal.Decimal).Equal(want))
}

func TestExchangeZeroAmount(t *testing.T) {
	set := fixtureSet()
	got, err := Exchange(set, decimal.Zero, "USD", "GBP", NewOptions())
	require.NoError(t, err)
	require.True(t, got.(decimal.Decimal).Equal(decimal.Zero))
}

func TestExchangeNegativeAmountIsNegationOfPositive(t *testing.T) {
	set := fixtureSet()
	opts := NewOptions(WithRound(8))

	pos, err := Exchange(set, decimal.NewFromInt(7), "USD", "GBP", opts)
	require.NoError(t, err)
	neg, err := Exchange(set, decimal.NewFromInt(-7), "USD", "GBP", opts)
	require.NoError(t, err)

	require.True(t, pos.(decimal.Decimal).Equal(neg.(decimal.Decimal).Neg()))
}

func TestExchangeEURToEURReturnsAmount(t *testing.T) {
	set := fixtureSet()
	got, err := Exchange(set, decimal.NewFromInt(100), "EUR", "EUR", NewOptions(WithRound(2)))
	require.NoError(t, err)
	require.True(t, got.(decimal.Decimal).Equal(decimal.NewFromInt(100)))
}

func TestExchangeSymmetry(t *testing.T) {
	set := fixtureSet()
	opts := NewOptions(WithRound(8))

	ab, err := Exchange(set, decimal.NewFromInt(1), "USD", "GBP", opts)
	require.NoError(t, err)
	ba, err := Exchange(set, decimal.NewFromInt(1), "GBP", "USD", opts)
	require.NoError(t, err)

	product := ab.(decimal.Decimal).Mul(ba.(decimal.Decimal))
	tolerance := decimal.New(1, -8)
	diff := product.Sub(decimal.NewFromInt(1)).Abs()
	require.True(t, diff.LessThanOrEqual(tolerance), "product=%s", product)
}

func TestExchangeUnknownCurrency(t *testing.T) {
	set := fixtureSet()
	_, err := Exchange(set, decimal.NewFromInt(1), "ZZZ", "EUR", NewOptions())
	require.ErrorIs(t, err, ErrCurrency)
}

func TestExchangeAnyInvalidAmountType(t *testing.T) {
	set := fixtureSet()
	_, err := ExchangeAny(set, []int{1, 2}, "USD", "EUR", NewOptions())
	require.ErrorIs(t, err, ErrInvalidExchange)

	_, err = ExchangeAny(set, nil, "USD", "EUR", NewOptions())
	require.ErrorIs(t, err, ErrInvalidExchange)
}

func TestExchangeAnyNumericString(t *testing.T) {
	set := fixtureSet()
	got, err := ExchangeAny(set, "10", "USD", "EUR", NewOptions(WithRound(4)))
	require.NoError(t, err)
	require.True(t, got.(decimal.Decimal).GreaterThan(decimal.Zero))
}

func TestParseAmountInvalidString(t *testing.T) {
	_, err := ParseAmount("not-a-number")
	require.ErrorIs(t, err, ErrFormat)
}

func TestRenderFormats(t *testing.T) {
	d := decimal.RequireFromString("1.234567")
	round := 2

	got := Render(d, &round, FormatDecimal)
	require.True(t, got.(decimal.Decimal).Equal(decimal.RequireFromString("1.23")))

	got = Render(d, &round, FormatString)
	require.Equal(t, "1.23", got.(string))
}

func TestRenderUnknownFormatPanics(t *testing.T) {
	require.Panics(t, func() {
		Render(decimal.NewFromInt(1), nil, Format(99))
	})
}

func TestRenderDailyRateSetAppliesOptionsAndKeepsMetadata(t *testing.T) {
	set := fixtureSet()
	opts := NewOptions(WithRound(2), WithFormat(FormatString))

	out := RenderDailyRateSet(set, opts)

	require.True(t, out.Date.Equal(set.Date))
	require.Equal(t, set.Base, out.Base)
	require.Equal(t, "1.08", out.Rates["usd"].(string))
}

func TestRenderSetRounding(t *testing.T) {
	set := fixtureSet()
	opts := NewOptions(WithRound(2), WithFormat(FormatString))
	out := RenderSet(set, opts)

	for code, v := range out {
		s := v.(string)
		idx := -1
		for i, r := range s {
			if r == '.' {
				idx = i
			}
		}
		if idx >= 0 {
			require.LessOrEqual(t, len(s)-idx-1, 2, "code %s: %s has too many fractional digits", code, s)
		}
	}
}
