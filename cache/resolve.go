package cache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// resolveGroup implements the Resolve half of the Backend contract on top of
// any Get/Put pair. Both backends embed one. Using singleflight.Group
// stiffens spec.md §4.3's "at-most-once store per success" into genuine
// single-flight per key, which the spec explicitly allows ("Implementers
// are free to add key-level locking to stiffen this ... when the resolver
// is expensive").
type resolveGroup struct {
	g singleflight.Group
}

// resolve is called by each backend's Resolve method with that backend's own
// Get/Put. A successful resolution is stamped with time.Now() in UTC.
func (r *resolveGroup) resolve(ctx context.Context, key Key, resolver Resolver, ttl time.Duration, get func(Key, time.Duration) (Entry, bool), put func(Key, interface{}, time.Time) Entry) (interface{}, error) {
	if entry, ok := get(key, ttl); ok {
		return entry.Value, nil
	}

	v, err, _ := r.g.Do(string(key), func() (interface{}, error) {
		// Re-check under the single-flight key: a concurrent caller may have
		// just populated the cache while we were waiting to be scheduled.
		if entry, ok := get(key, ttl); ok {
			return entry.Value, nil
		}

		value, err := resolver.Resolve(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResolverFailed, err)
		}

		entry := put(key, value, time.Now().UTC())
		return entry.Value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
