// Package cache defines the behavioral contract shared by ecbrates's two
// cache backends (in-memory and on-disk) and the single-flight resolve
// helper both of them reuse. See spec.md §4.3.
package cache

import (
	"context"
	"errors"
	"time"
)

// Key is a cache key. It is a closed set - there is no exported constructor,
// only the three constants below, matching spec.md §9's "tagged variant"
// guidance for the cache-key enumeration.
type Key string

const (
	// LatestRates is refreshed on every scheduler tick.
	LatestRates Key = "latest_rates"
	// LastNinetyDaysRates is refreshed on every scheduler tick.
	LastNinetyDaysRates Key = "last_ninety_days_rates"
	// HistoricRates is fetched only on demand; never scheduled.
	HistoricRates Key = "historic_rates"
)

// Entry is one cached value together with the UTC instant it was written.
type Entry struct {
	Value     interface{}
	UpdatedAt time.Time
}

// ErrResolverFailed wraps whatever error a Resolver returned to Resolve. It
// is the sentinel behind spec.md §7's resolver-failed taxonomy entry.
var ErrResolverFailed = errors.New("cache: resolver failed")

// Resolver is either a plain closure (ResolverFunc) or a reified
// named-call descriptor (NamedResolver), matching spec.md §4.4's
// "feed_fn_for" call-spec. Any other shape is a compile error, since both
// concrete types, and nothing else, implement this interface in practice.
type Resolver interface {
	Resolve(ctx context.Context) (interface{}, error)
}

// ResolverFunc adapts a plain closure to Resolver.
type ResolverFunc func(ctx context.Context) (interface{}, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context) (interface{}, error) { return f(ctx) }

// NamedResolver is a reified call-spec: a name for logging/test assertions,
// free-form arguments, and the closure that actually does the work. It
// exists so tests can inject a feed producer (or a deliberately failing one)
// and assert on which one ran, without the fetcher depending on the feed
// package's concrete types.
type NamedResolver struct {
	Name string
	Args map[string]interface{}
	Fn   func(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Resolve implements Resolver.
func (n NamedResolver) Resolve(ctx context.Context) (interface{}, error) {
	return n.Fn(ctx, n.Args)
}

// Backend is the contract every cache implementation satisfies.
type Backend interface {
	// Init ensures the backing store exists. Idempotent.
	Init() error
	// Get returns the stored value for key, or ok = false if absent or
	// expired. A ttl <= 0 means "no expiry".
	Get(key Key, ttl time.Duration) (Entry, bool)
	// Put upserts value under key, stamped with updatedAt, and returns the
	// stored Entry.
	Put(key Key, value interface{}, updatedAt time.Time) Entry
	// Delete removes key. Succeeds whether or not it existed.
	Delete(key Key) error
	// LastUpdated returns the UpdatedAt timestamp of every present key.
	LastUpdated() map[Key]time.Time
	// LastUpdatedKey returns the UpdatedAt timestamp of one key.
	LastUpdatedKey(key Key) (time.Time, bool)
	// Reset clears every entry and reinitializes an empty store.
	Reset() error
	// Terminate releases backing resources. The backend may not be used
	// again until Init is called.
	Terminate() error
	// Initialized reports whether the backing store currently exists.
	Initialized() bool
	// Resolve is the single-flight read-through operation from spec.md
	// §4.3: on a cache hit (subject to ttl) it returns the cached value; on
	// a miss it invokes resolver, and on success stores the result with
	// updatedAt = now before returning it. Any other resolver outcome
	// leaves the cache untouched and returns ErrResolverFailed.
	Resolve(ctx context.Context, key Key, resolver Resolver, ttl time.Duration) (interface{}, error)
}
