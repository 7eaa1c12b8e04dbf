// Package fetcher implements the supervised background worker from
// spec.md §4.4: it schedules periodic refreshes of the two scheduled cache
// keys, coordinates a parallel warm-up at start, and serves synchronous
// queries that delegate to the cache's single-flight resolve operation.
package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ecbrates/ecbrates/cache"
	"github.com/ecbrates/ecbrates/feed"
)

// DefaultSchedulerInterval is the spec's 12-hour default: ECB publishes once
// per business day near 16:00 CET.
const DefaultSchedulerInterval = 12 * time.Hour

// warmUpDeadline bounds the initial parallel refresh of the scheduled keys.
const warmUpDeadline = 20 * time.Second

// scheduledKeys is the fixed pair of cache keys the fetcher refreshes on a
// timer. HistoricRates is deliberately absent: it is fetched on demand only.
var scheduledKeys = []cache.Key{cache.LatestRates, cache.LastNinetyDaysRates}

// FeedFunc resolves one cache key to its feed data. The default dispatches
// to a feed.Orchestrator; FeedFnOverride lets tests inject a fixture or a
// deliberately failing producer, per spec.md §4.4's feed_fn_override.
type FeedFunc func(ctx context.Context, key cache.Key) (interface{}, error)

// Options configures a Fetcher.
type Options struct {
	// UseCache bypasses the cache entirely when false: every Get invokes the
	// feed directly and never writes.
	UseCache bool
	// SchedulerInterval is the refresh period and TTL for both scheduled
	// keys. Defaults to DefaultSchedulerInterval.
	SchedulerInterval time.Duration
	// FeedFnOverride replaces the default feed.Orchestrator dispatch.
	FeedFnOverride FeedFunc
	// Cache backend. Required when UseCache is true.
	Cache cache.Backend
	// Orchestrator is used when FeedFnOverride is nil.
	Orchestrator *feed.Orchestrator
	// Logger receives scheduled-refresh warnings and warm-up notices.
	Logger *log.Logger
	// Metrics is optional; a nil value disables instrumentation.
	Metrics *Metrics
}

// Metrics is the set of prometheus collectors the fetcher updates. Callers
// share one Metrics across fetchers registered against the same registry.
type Metrics struct {
	RefreshTotal   *prometheus.CounterVec
	RefreshErrors  *prometheus.CounterVec
	RefreshSeconds *prometheus.HistogramVec
}

// NewMetrics builds and registers a Metrics against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecbrates_fetcher_refresh_total",
			Help: "Number of scheduled feed refreshes attempted, by cache key.",
		}, []string{"key"}),
		RefreshErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecbrates_fetcher_refresh_errors_total",
			Help: "Number of scheduled feed refreshes that failed, by cache key.",
		}, []string{"key"}),
		RefreshSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "ecbrates_fetcher_refresh_seconds",
			Help: "Duration of a scheduled feed refresh, by cache key.",
		}, []string{"key"}),
	}
	reg.MustRegister(m.RefreshTotal, m.RefreshErrors, m.RefreshSeconds)
	return m
}

// command is sent on the fetcher's inbound channel; the run loop selects
// over it alongside the scheduler ticks, per spec.md §9's "ticker channel
// plus an inbound command channel" re-architecture note.
type command struct {
	kind  commandKind
	key   cache.Key
	reply chan commandReply
}

type commandKind int

const (
	cmdGet commandKind = iota
	cmdStop
)

type commandReply struct {
	value interface{}
	err   error
}

// Fetcher is the supervised background worker. Build one with New and call
// Start to launch its run loop.
type Fetcher struct {
	id   string
	opts Options

	cmds    chan command
	stopped chan struct{}
	once    sync.Once
}

// New builds a Fetcher. opts.SchedulerInterval defaults to
// DefaultSchedulerInterval when zero. opts.Cache is required when
// opts.UseCache is true.
func New(opts Options) *Fetcher {
	if opts.SchedulerInterval <= 0 {
		opts.SchedulerInterval = DefaultSchedulerInterval
	}
	if opts.Orchestrator == nil {
		opts.Orchestrator = feed.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Fetcher{
		id:      uuid.NewString(),
		opts:    opts,
		cmds:    make(chan command),
		stopped: make(chan struct{}),
	}
}

// ID is this fetcher instance's identity, used in log lines so a supervisor
// running several fetchers can tell them apart.
func (f *Fetcher) ID() string { return f.id }

func (f *Fetcher) feedFn(ctx context.Context, key cache.Key) (interface{}, error) {
	if f.opts.FeedFnOverride != nil {
		return f.opts.FeedFnOverride(ctx, key)
	}
	kind, err := keyToKind(key)
	if err != nil {
		return nil, err
	}
	result, err := f.opts.Orchestrator.Fetch(ctx, kind)
	if err != nil {
		return nil, err
	}
	return result.Days, nil
}

func keyToKind(key cache.Key) (feed.Kind, error) {
	switch key {
	case cache.LatestRates:
		return feed.Latest, nil
	case cache.LastNinetyDaysRates:
		return feed.NinetyDays, nil
	case cache.HistoricRates:
		return feed.Historic, nil
	default:
		return 0, fmt.Errorf("fetcher: unknown cache key %q", key)
	}
}

// Start initializes the cache (if enabled), performs the initial warm-up
// (unless the on-disk cache is already warm) and launches the run loop in
// its own goroutine. Start must be called at most once per Fetcher.
func (f *Fetcher) Start(ctx context.Context) error {
	if f.opts.UseCache {
		if f.opts.Cache == nil {
			return fmt.Errorf("fetcher: UseCache is true but no Cache backend was provided")
		}
		if err := f.opts.Cache.Init(); err != nil {
			return fmt.Errorf("fetcher: cache init: %w", err)
		}
		if f.cacheWarm() {
			f.opts.Logger.Info("cache warm at start, skipping initial refresh", "fetcher", f.id)
		} else {
			f.warmUp(ctx)
		}
	}

	go f.run()
	return nil
}

// cacheWarm reports whether every scheduled key already has a non-expired
// entry, per spec.md §4.4 step 1.
func (f *Fetcher) cacheWarm() bool {
	for _, key := range scheduledKeys {
		if _, ok := f.opts.Cache.Get(key, f.opts.SchedulerInterval); !ok {
			return false
		}
	}
	return true
}

// warmUp launches parallel refreshes of the scheduled keys and waits up to
// warmUpDeadline for both, per spec.md §4.4 step 2 and §5's 20s joint
// deadline. A failure or timeout is logged but never prevents Start from
// returning - the fetcher stays alive either way.
func (f *Fetcher) warmUp(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, warmUpDeadline)
	defer cancel()

	var wg sync.WaitGroup
	results := make([]error, len(scheduledKeys))
	for i, key := range scheduledKeys {
		wg.Add(1)
		go func(i int, key cache.Key) {
			defer wg.Done()
			results[i] = f.refresh(warmCtx, key)
		}(i, key)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-warmCtx.Done():
		f.opts.Logger.Warn("warm-up timed out before every scheduled key refreshed", "fetcher", f.id)
		return
	}

	var failed []cache.Key
	for i, err := range results {
		if err != nil {
			failed = append(failed, scheduledKeys[i])
		}
	}
	if len(failed) == 0 {
		f.opts.Logger.Info("warm-up complete", "fetcher", f.id)
	} else {
		f.opts.Logger.Warn("warm-up partially failed", "fetcher", f.id, "keys", failed)
	}
}

// refresh fetches key and writes it to the cache with a fresh timestamp.
// Failure is returned to the caller but never invalidates a pre-existing
// cache entry, per spec.md §4.4's failure semantics.
func (f *Fetcher) refresh(ctx context.Context, key cache.Key) error {
	start := time.Now()
	value, err := f.feedFn(ctx, key)
	if f.opts.Metrics != nil {
		f.opts.Metrics.RefreshTotal.WithLabelValues(string(key)).Inc()
		f.opts.Metrics.RefreshSeconds.WithLabelValues(string(key)).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if f.opts.Metrics != nil {
			f.opts.Metrics.RefreshErrors.WithLabelValues(string(key)).Inc()
		}
		return err
	}
	f.opts.Cache.Put(key, value, time.Now().UTC())
	return nil
}

// run is the fetcher's single long-lived task. It owns a ticker per
// scheduled key plus the inbound command channel, and selects over both in
// one loop, per spec.md §9.
func (f *Fetcher) run() {
	tickers := make(map[cache.Key]*time.Ticker, len(scheduledKeys))
	for _, key := range scheduledKeys {
		tickers[key] = time.NewTicker(f.opts.SchedulerInterval)
	}
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// A fixed two-ticker select is simpler and just as correct as a
	// reflect.Select over an arbitrary number of scheduled keys, since
	// scheduledKeys never changes at runtime.
	latestTick := tickers[cache.LatestRates].C
	ninetyTick := tickers[cache.LastNinetyDaysRates].C

	ctx := context.Background()
	for {
		select {
		case <-latestTick:
			f.tick(ctx, cache.LatestRates)
		case <-ninetyTick:
			f.tick(ctx, cache.LastNinetyDaysRates)
		case cmd := <-f.cmds:
			switch cmd.kind {
			case cmdGet:
				value, err := f.handleGet(ctx, cmd.key)
				cmd.reply <- commandReply{value: value, err: err}
			case cmdStop:
				cmd.reply <- commandReply{}
				close(f.stopped)
				return
			}
		}
	}
}

func (f *Fetcher) tick(ctx context.Context, key cache.Key) {
	if !f.opts.UseCache {
		return
	}
	if err := f.refresh(ctx, key); err != nil {
		f.opts.Logger.Warn("scheduled refresh failed", "fetcher", f.id, "key", key, "err", err)
	}
}

// Get serves a synchronous query for key, per spec.md §4.4 step 4. When
// UseCache is true and the cache is initialized, the read goes through
// cache.Resolve with a TTL equal to the scheduler interval; otherwise the
// feed is invoked directly and the cache is never consulted or written.
func (f *Fetcher) Get(ctx context.Context, key cache.Key) (interface{}, error) {
	switch key {
	case cache.LatestRates, cache.LastNinetyDaysRates, cache.HistoricRates:
	default:
		return nil, fmt.Errorf("fetcher: unknown cache key %q", key)
	}

	reply := make(chan commandReply, 1)
	select {
	case f.cmds <- command{kind: cmdGet, key: key, reply: reply}:
	case <-f.stopped:
		return nil, fmt.Errorf("fetcher: already stopped")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case r := <-reply:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// handleGet runs on the fetcher's own goroutine, called from run's select.
func (f *Fetcher) handleGet(ctx context.Context, key cache.Key) (interface{}, error) {
	if !f.opts.UseCache || f.opts.Cache == nil || !f.opts.Cache.Initialized() {
		return f.feedFn(ctx, key)
	}
	resolver := cache.ResolverFunc(func(ctx context.Context) (interface{}, error) {
		return f.feedFn(ctx, key)
	})
	return f.opts.Cache.Resolve(ctx, key, resolver, f.opts.SchedulerInterval)
}

// Stop terminates the run loop and, if UseCache, the cache backend. Stop is
// idempotent; calling it more than once is a no-op.
func (f *Fetcher) Stop(ctx context.Context) error {
	var stopErr error
	f.once.Do(func() {
		reply := make(chan commandReply, 1)
		select {
		case f.cmds <- command{kind: cmdStop, reply: reply}:
			<-reply
		case <-ctx.Done():
			stopErr = ctx.Err()
			return
		}
		if f.opts.UseCache && f.opts.Cache != nil {
			stopErr = f.opts.Cache.Terminate()
		}
	})
	return stopErr
}
