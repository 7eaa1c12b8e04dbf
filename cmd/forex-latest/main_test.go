package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWritesJSONFromFixtureSource(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	args := []string{"forex-latest", "-source", "../../feed/testdata/eurofxref-daily-2024-11-08.xml", "-output", dir}
	code := run(args, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	require.Contains(t, stdout.String(), "wrote")
}

func TestRunHelpExitsZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"forex-latest", "-help"}, &stdout, &stderr)
	require.Equal(t, 0, code)
}

func TestRunUnknownFlagExitsNonZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"forex-latest", "-not-a-flag"}, &stdout, &stderr)
	require.NotEqual(t, 0, code)
}
