// Package climain holds the flag parsing and JSON-export logic shared by
// the three forex-* command-line tools (spec.md §6), so each cmd/ main.go
// is a thin wrapper naming its feed kind, in the teacher's
// cmd/forex-convert.go single-binary idiom generalized across three.
package climain

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/ecbrates/ecbrates/feed"
	"github.com/ecbrates/ecbrates/internal/fetchutil"
	"github.com/ecbrates/ecbrates/rates"
)

// Config is one CLI invocation's parsed flags.
type Config struct {
	Base    string
	Symbols []string
	Output  string
	Source  string
	Help    bool
}

// Parse defines and parses the flag set common to every forex-* tool.
func Parse(args []string, out io.Writer) (Config, error) {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(out)

	var cfg Config
	var symbols string
	fs.StringVar(&cfg.Base, "base", "EUR", "base currency to rebase the export around")
	fs.StringVar(&symbols, "symbols", "", "comma-separated list of currency codes to include (default: all)")
	fs.StringVar(&cfg.Output, "output", ".", "directory to write the exported JSON file into")
	fs.StringVar(&cfg.Source, "source", "", "override the feed source (file path or data: URL); default fetches live from ECB")
	fs.BoolVar(&cfg.Help, "help", false, "print usage and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return Config{}, err
	}
	if cfg.Help {
		fs.Usage()
	}
	if symbols != "" {
		cfg.Symbols = strings.Split(symbols, ",")
	}
	return cfg, nil
}

// RatesOptions translates Config into rates.Option values.
func (c Config) RatesOptions() []rates.Option {
	opts := []rates.Option{rates.WithBase(strings.ToUpper(c.Base)), rates.WithFormat(rates.FormatString)}
	if len(c.Symbols) > 0 {
		upper := make([]string, len(c.Symbols))
		for i, s := range c.Symbols {
			upper[i] = strings.ToUpper(strings.TrimSpace(s))
		}
		opts = append(opts, rates.WithSymbols(upper...))
	}
	return opts
}

// Fetch retrieves and parses kind's feed, using cfg.Source in place of a
// live HTTP call when set.
func Fetch(ctx context.Context, kind feed.Kind, cfg Config) (feed.Result, error) {
	if cfg.Source == "" {
		return feed.New().Fetch(ctx, kind)
	}

	body, err := fetchutil.Fetch(cfg.Source)
	if err != nil {
		return feed.Result{}, fmt.Errorf("%w: reading source %q: %v", feed.ErrFeed, cfg.Source, err)
	}
	days, err := (feed.DefaultParser{}).Parse(body)
	if err != nil {
		return feed.Result{}, fmt.Errorf("%w: parsing source %q: %v", feed.ErrFeed, cfg.Source, err)
	}
	return feed.Result{Kind: kind, Days: days}, nil
}

// WriteJSON renders value as JSON via goccy/go-json and writes it to
// <cfg.Output>/<name>, creating the output directory if absent.
func WriteJSON(cfg Config, name string, value interface{}) (string, error) {
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(cfg.Output, name)

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// DefaultOutputName builds the conventional export filename for kind,
// stamped with the current date.
func DefaultOutputName(kind feed.Kind, now time.Time) string {
	return fmt.Sprintf("%s-%s.json", kind, now.UTC().Format("2006-01-02"))
}
