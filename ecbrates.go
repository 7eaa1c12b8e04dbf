// Package ecbrates is the public entry point: it ties together the
// currency registry, feed orchestrator, cache, fetcher and supervisor into
// the query surface described in spec.md §1 - current rates, rates for a
// past date, rates over a range, and amount conversion.
//
// The preconfigured way to obtain a Client is Default(), which reads
// process configuration once (pkg/config) and lazily builds a
// supervisor-owned fetcher, mirroring the teacher package's
// once-guarded LiveExchange()/OfflineExchange() singletons.
package ecbrates

import (
	"context"
	"fmt"
	"sync"

	"github.com/ecbrates/ecbrates/cache"
	"github.com/ecbrates/ecbrates/feed"
	"github.com/ecbrates/ecbrates/fetcher"
	"github.com/ecbrates/ecbrates/pkg/config"
	"github.com/ecbrates/ecbrates/ratedata"
	"github.com/ecbrates/ecbrates/rates"
	"github.com/ecbrates/ecbrates/support"
	"github.com/ecbrates/ecbrates/supervisor"
)

// Client is the facade over one supervised fetcher. Build one with New, or
// use the process-wide Default().
type Client struct {
	sup *supervisor.Supervisor
}

// ClientOption configures New.
type ClientOption func(*clientSettings)

type clientSettings struct {
	cfg            config.Config
	backend        cache.Backend
	orchestrator   *feed.Orchestrator
	feedFnOverride fetcher.FeedFunc
}

// WithConfig overrides the configuration New would otherwise load from the
// environment.
func WithConfig(cfg config.Config) ClientOption {
	return func(s *clientSettings) { s.cfg = cfg }
}

// WithBackend overrides the cache backend New would otherwise build from
// cfg.CacheBackend. Mainly for tests.
func WithBackend(backend cache.Backend) ClientOption {
	return func(s *clientSettings) { s.backend = backend }
}

// WithOrchestrator overrides the feed orchestrator, mainly so tests can
// point it at a fixture server.
func WithOrchestrator(o *feed.Orchestrator) ClientOption {
	return func(s *clientSettings) { s.orchestrator = o }
}

// WithFeedFnOverride injects fetcher.Options.FeedFnOverride directly,
// bypassing the orchestrator entirely. Mainly for tests.
func WithFeedFnOverride(fn fetcher.FeedFunc) ClientOption {
	return func(s *clientSettings) { s.feedFnOverride = fn }
}

// New builds a Client from the given options, loading configuration from
// the environment first unless WithConfig overrides it.
func New(opts ...ClientOption) (*Client, error) {
	cfg, err := config.Load(nil, "")
	if err != nil {
		return nil, fmt.Errorf("ecbrates: loading config: %w", err)
	}

	settings := clientSettings{cfg: *cfg}
	for _, opt := range opts {
		opt(&settings)
	}

	if settings.backend == nil {
		settings.backend = buildBackend(settings.cfg)
	}
	if settings.orchestrator == nil {
		settings.orchestrator = feed.New()
		if settings.cfg.FeedBaseURL != "" {
			settings.orchestrator.Base = settings.cfg.FeedBaseURL
		}
	}

	autoStart := settings.cfg.AutoStart
	sup, err := supervisor.New(supervisor.Options{
		AutoStart: &autoStart,
		FetcherOptions: fetcher.Options{
			UseCache:          settings.cfg.UseCache,
			SchedulerInterval: settings.cfg.SchedulerInterval,
			Cache:             settings.backend,
			Orchestrator:      settings.orchestrator,
			FeedFnOverride:    settings.feedFnOverride,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ecbrates: starting supervisor: %w", err)
	}

	return &Client{sup: sup}, nil
}

func buildBackend(cfg config.Config) cache.Backend {
	if cfg.CacheBackend == "file" {
		return cache.NewFile(cfg.CachePath)
	}
	return cache.NewMemory()
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
	defaultErr    error
)

// Default returns the process-wide Client, building it on first use.
func Default() (*Client, error) {
	defaultOnce.Do(func() {
		defaultClient, defaultErr = New()
	})
	return defaultClient, defaultErr
}

// ensureRunning lazily starts the supervisor's fetcher if it isn't running
// (e.g. after AutoStart was false, or the caller previously called Stop).
func (c *Client) ensureRunning(ctx context.Context) error {
	if c.sup.FetcherRunning() {
		return nil
	}
	switch c.sup.FetcherStatus() {
	case supervisor.NotStarted:
		_, err := c.sup.StartFetcher(ctx)
		return err
	case supervisor.Stopped:
		_, err := c.sup.RestartFetcher(ctx)
		return err
	default:
		return nil
	}
}

func (c *Client) fetch(ctx context.Context, key cache.Key) (ratedata.Feed, error) {
	if err := c.ensureRunning(ctx); err != nil {
		return nil, err
	}
	value, err := c.sup.Child().Get(ctx, key)
	if err != nil {
		return nil, err
	}
	days, ok := value.(ratedata.Feed)
	if !ok {
		return nil, fmt.Errorf("ecbrates: unexpected cached value type %T for key %s", value, key)
	}
	return days, nil
}

// LatestRates returns today's ECB rate set, rebased/filtered/rounded/
// formatted per opts.
func (c *Client) LatestRates(ctx context.Context, opts ...rates.Option) (rates.RenderedRateSet, error) {
	days, err := c.fetch(ctx, cache.LatestRates)
	if err != nil {
		return rates.RenderedRateSet{}, err
	}
	if len(days) == 0 {
		return rates.RenderedRateSet{}, fmt.Errorf("ecbrates: empty latest feed")
	}
	return applyAndRender(days[0], rates.NewOptions(opts...))
}

// NinetyDayRates returns the last-90-days rate sequence, most-recent-first,
// each day rebased/filtered/rounded/formatted per opts. This is the only
// client accessor for cache.LastNinetyDaysRates; spec.md §8 scenario 5
// (`last_ninety_days_rates(round: 2)`) exercises it directly.
func (c *Client) NinetyDayRates(ctx context.Context, opts ...rates.Option) ([]rates.RenderedRateSet, error) {
	days, err := c.fetch(ctx, cache.LastNinetyDaysRates)
	if err != nil {
		return nil, err
	}
	return applyAndRenderAll(days, rates.NewOptions(opts...))
}

// HistoricRate returns the rate set for the given calendar date (accepted
// in any shape support.ParseDate understands), searching the full historic
// feed. Returns rates.ErrDate if the date is unparseable or absent.
func (c *Client) HistoricRate(ctx context.Context, date interface{}, opts ...rates.Option) (rates.RenderedRateSet, error) {
	day, err := support.ParseDate(date)
	if err != nil {
		return rates.RenderedRateSet{}, err
	}

	days, err := c.fetch(ctx, cache.HistoricRates)
	if err != nil {
		return rates.RenderedRateSet{}, err
	}
	set, ok := days.ByDate(day)
	if !ok {
		return rates.RenderedRateSet{}, fmt.Errorf("ecbrates: rate not found for date: %s: %w", support.FormatDate(day), rates.ErrDate)
	}
	return applyAndRender(set, rates.NewOptions(opts...))
}

// RatesBetween returns every historic rate set between from and to
// (inclusive), most-recent-first, rebased/filtered/rounded/formatted per
// opts. This supplements spec.md §1's query list with a ranged variant of
// get_historic_rate, built the same way HistoricRate is.
func (c *Client) RatesBetween(ctx context.Context, from, to interface{}, opts ...rates.Option) ([]rates.RenderedRateSet, error) {
	fromDay, err := support.ParseDate(from)
	if err != nil {
		return nil, err
	}
	toDay, err := support.ParseDate(to)
	if err != nil {
		return nil, err
	}

	days, err := c.fetch(ctx, cache.HistoricRates)
	if err != nil {
		return nil, err
	}

	return applyAndRenderAll(days.Between(fromDay, toDay), rates.NewOptions(opts...))
}

// applyAndRender runs the filter/rebase/round/format pipeline every query
// method shares: rates.Apply first (filter then rebase, still full
// precision), then rates.RenderDailyRateSet so opts.Round, opts.Format and
// opts.Keys actually take effect on the returned value, not only on
// Exchange and the cmd/ exporters.
func applyAndRender(set ratedata.DailyRateSet, opts rates.Options) (rates.RenderedRateSet, error) {
	applied, err := rates.Apply(set, opts)
	if err != nil {
		return rates.RenderedRateSet{}, err
	}
	return rates.RenderDailyRateSet(applied, opts), nil
}

func applyAndRenderAll(days ratedata.Feed, opts rates.Options) ([]rates.RenderedRateSet, error) {
	out := make([]rates.RenderedRateSet, 0, len(days))
	for _, set := range days {
		rendered, err := applyAndRender(set, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}

// Exchange converts amount from one currency to another using today's
// latest rate set.
func (c *Client) Exchange(ctx context.Context, amount interface{}, from, to string, opts ...rates.Option) (interface{}, error) {
	days, err := c.fetch(ctx, cache.LatestRates)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("ecbrates: empty latest feed")
	}
	return rates.ExchangeAny(days[0], amount, from, to, rates.NewOptions(opts...))
}

// ExchangeOnDate converts amount using the rate set for a specific past
// date, a supplement to spec.md §4.5's exchange operation grounded in the
// same historic lookup as HistoricRate.
func (c *Client) ExchangeOnDate(ctx context.Context, date interface{}, amount interface{}, from, to string, opts ...rates.Option) (interface{}, error) {
	day, err := support.ParseDate(date)
	if err != nil {
		return nil, err
	}
	days, err := c.fetch(ctx, cache.HistoricRates)
	if err != nil {
		return nil, err
	}
	set, ok := days.ByDate(day)
	if !ok {
		return nil, fmt.Errorf("ecbrates: rate not found for date: %s: %w", support.FormatDate(day), rates.ErrDate)
	}
	return rates.ExchangeAny(set, amount, from, to, rates.NewOptions(opts...))
}

// Stop stops the underlying fetcher and releases its cache.
func (c *Client) Stop(ctx context.Context) error {
	return c.sup.Stop(ctx)
}
