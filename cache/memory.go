package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is the in-memory cache backend: a process-wide shared mutable map
// with many-reader/few-writer concurrency, backed by patrickmn/go-cache.
// Per-entry TTL is handled by ecbrates itself (see Get), not by go-cache's
// own expiration sweep, so that a zero ttl (no expiry) and the exact
// millisecond-resolution eviction semantics in spec.md §4.3 are respected
// regardless of go-cache's background janitor.
type Memory struct {
	resolveGroup

	mu    sync.RWMutex
	store *gocache.Cache
}

// NewMemory constructs an uninitialized in-memory backend. Call Init before
// use.
func NewMemory() *Memory {
	return &Memory{}
}

// Init implements Backend.
func (m *Memory) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		m.store = gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	}
	return nil
}

// Initialized implements Backend.
func (m *Memory) Initialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store != nil
}

func (m *Memory) mustStore() *gocache.Cache {
	m.mu.RLock()
	s := m.store
	m.mu.RUnlock()
	if s == nil {
		panic("cache: Memory backend used before Init")
	}
	return s
}

// Get implements Backend.
func (m *Memory) Get(key Key, ttl time.Duration) (Entry, bool) {
	store := m.mustStore()
	raw, ok := store.Get(string(key))
	if !ok {
		return Entry{}, false
	}
	entry := raw.(Entry)

	if ttl > 0 && time.Since(entry.UpdatedAt) >= ttl {
		store.Delete(string(key))
		return Entry{}, false
	}
	return entry, true
}

// Put implements Backend.
func (m *Memory) Put(key Key, value interface{}, updatedAt time.Time) Entry {
	entry := Entry{Value: value, UpdatedAt: updatedAt}
	m.mustStore().Set(string(key), entry, gocache.NoExpiration)
	return entry
}

// Delete implements Backend.
func (m *Memory) Delete(key Key) error {
	m.mustStore().Delete(string(key))
	return nil
}

// LastUpdated implements Backend.
func (m *Memory) LastUpdated() map[Key]time.Time {
	store := m.mustStore()
	items := store.Items()
	out := make(map[Key]time.Time, len(items))
	for k, item := range items {
		out[Key(k)] = item.Object.(Entry).UpdatedAt
	}
	return out
}

// LastUpdatedKey implements Backend.
func (m *Memory) LastUpdatedKey(key Key) (time.Time, bool) {
	entry, ok := m.Get(key, 0)
	if !ok {
		return time.Time{}, false
	}
	return entry.UpdatedAt, true
}

// Reset implements Backend.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	return nil
}

// Terminate implements Backend.
func (m *Memory) Terminate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = nil
	return nil
}

// Resolve implements Backend.
func (m *Memory) Resolve(ctx context.Context, key Key, resolver Resolver, ttl time.Duration) (interface{}, error) {
	return m.resolveGroup.resolve(ctx, key, resolver, ttl, m.Get, m.Put)
}
