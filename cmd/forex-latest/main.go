// forex-latest exports today's ECB reference rates to a JSON file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ecbrates/ecbrates/feed"
	"github.com/ecbrates/ecbrates/internal/climain"
	"github.com/ecbrates/ecbrates/rates"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := climain.Parse(args, stderr)
	if err != nil {
		return 2
	}
	if cfg.Help {
		return 0
	}

	result, err := climain.Fetch(context.Background(), feed.Latest, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "forex-latest: %v\n", err)
		return 1
	}
	if len(result.Days) == 0 {
		fmt.Fprintln(stderr, "forex-latest: feed returned no data")
		return 1
	}

	set, err := rates.Apply(result.Days[0], rates.NewOptions(cfg.RatesOptions()...))
	if err != nil {
		fmt.Fprintf(stderr, "forex-latest: %v\n", err)
		return 1
	}

	rendered := rates.RenderSet(set, rates.NewOptions(cfg.RatesOptions()...))
	path, err := climain.WriteJSON(cfg, climain.DefaultOutputName(feed.Latest, time.Now()), rendered)
	if err != nil {
		fmt.Fprintf(stderr, "forex-latest: writing output: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "wrote %s\n", path)
	return 0
}
