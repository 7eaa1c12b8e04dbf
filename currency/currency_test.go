package currency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistrySize(t *testing.T) {
	require.Len(t, All(UpperStringKeys), 41)
}

func TestAvailableDisabledPartitionAll(t *testing.T) {
	all := All(UpperStringKeys)
	avail := Available(UpperStringKeys)
	disabled := Disabled(UpperStringKeys)

	require.Equal(t, len(all), len(avail)+len(disabled))

	for code := range avail {
		_, inDisabled := disabled[code]
		require.False(t, inDisabled, "code %s present in both partitions", code)
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	d, ok := Get("usd")
	require.True(t, ok)
	require.Equal(t, "USD", d.ISOAlpha)

	d, ok = Get("  UsD ")
	require.True(t, ok)
	require.Equal(t, "USD", d.ISOAlpha)
}

func TestGetUnknownOrMalformed(t *testing.T) {
	for _, code := range []string{"ZZZ", "US", "USDD", "123", ""} {
		_, ok := Get(code)
		require.False(t, ok, "code %q should not resolve", code)
	}
}

func TestExists(t *testing.T) {
	require.True(t, Exists("EUR"))
	require.True(t, Exists("hrk"))
	require.False(t, Exists("zzz"))
}

func TestGetOrFailPanicsOnUnknown(t *testing.T) {
	require.Panics(t, func() { GetOrFail("ZZZ") })
	require.NotPanics(t, func() { GetOrFail("EUR") })
}

func TestKeyStyleRendering(t *testing.T) {
	lower := All(LowerSymbolKeys)
	upper := All(UpperStringKeys)

	_, lowerOK := lower["usd"]
	_, upperOK := upper["USD"]
	require.True(t, lowerOK)
	require.True(t, upperOK)
}

func TestHRKIsDisabledButHistorical(t *testing.T) {
	d, ok := Get("HRK")
	require.True(t, ok)
	require.False(t, d.Enabled)
}
