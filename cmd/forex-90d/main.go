// forex-90d exports the last 90 days of ECB reference rates to a JSON file.
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

	result, err := climain.Fetch(context.Background(), feed.NinetyDays, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "forex-90d: %v\n", err)
		return 1
	}

	opts := rates.NewOptions(cfg.RatesOptions()...)
	rendered := make([]map[string]interface{}, 0, len(result.Days))
	for _, day := range result.Days {
		set, err := rates.Apply(day, opts)
		if err != nil {
			fmt.Fprintf(stderr, "forex-90d: %v\n", err)
			return 1
		}
		row := rates.RenderSet(set, opts)
		row["date"] = set.Date.Format("2006-01-02")
		rendered = append(rendered, row)
	}

	path, err := climain.WriteJSON(cfg, climain.DefaultOutputName(feed.NinetyDays, time.Now()), rendered)
	if err != nil {
		fmt.Fprintf(stderr, "forex-90d: writing output: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "wrote %s\n", path)
	return 0
}
