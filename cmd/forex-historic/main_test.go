package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWritesJSONFromFixtureSource(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	args := []string{"forex-historic", "-source", "../../feed/testdata/eurofxref-hist-sample.xml", "-output", dir, "-base", "usd"}
	code := run(args, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	require.Contains(t, stdout.String(), "wrote")
}
