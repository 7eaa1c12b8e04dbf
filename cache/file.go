package cache

import (
	"context"
	"encoding/gob"
	"os"
	"path/filepath"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ecbrates/ecbrates/ratedata"
)

func init() {
	// go-cache's own Save registers Item.Object's concrete type (Entry) in
	// the writing process before encoding, but Load/LoadFile never registers
	// anything - a fresh process decoding a persisted file needs both Entry
	// itself and whatever concrete type Entry.Value holds registered up
	// front, or gob.Decode fails with "name not registered for interface".
	gob.Register(Entry{})
	gob.Register(ratedata.Feed{})
}

// DefaultCacheFileName is the default on-disk cache file name, relative to a
// caller-supplied data directory, per spec.md §6.
const DefaultCacheFileName = ".forex_cache"

// File is the on-disk cache backend. It persists identical semantics to
// Memory in a single gob-encoded file, so that an Init following a prior
// Terminate observes exactly the entries last written. The file's parent
// directory is created if absent.
type File struct {
	resolveGroup

	Path string

	mu    sync.RWMutex
	store *gocache.Cache
}

// NewFile constructs an uninitialized on-disk backend rooted at path. Call
// Init before use.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Init implements Backend: it loads any existing file at f.Path into memory,
// or starts with an empty store if the file doesn't exist yet. Idempotent -
// calling Init twice without an intervening Terminate is a no-op.
func (f *File) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.store != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o740); err != nil {
		return err
	}

	c := gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	if err := c.LoadFile(f.Path); err != nil && !os.IsNotExist(err) {
		return err
	}

	f.store = c
	return nil
}

// persist flushes the in-memory store to f.Path using go-cache's own gob
// encoding, matching the on-disk backend's concrete format to the library
// already used for the in-memory store.
func (f *File) persist() error {
	return f.store.SaveFile(f.Path)
}

// Initialized implements Backend.
func (f *File) Initialized() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.store != nil
}

func (f *File) mustStore() *gocache.Cache {
	f.mu.RLock()
	s := f.store
	f.mu.RUnlock()
	if s == nil {
		panic("cache: File backend used before Init")
	}
	return s
}

// Get implements Backend.
func (f *File) Get(key Key, ttl time.Duration) (Entry, bool) {
	store := f.mustStore()
	raw, ok := store.Get(string(key))
	if !ok {
		return Entry{}, false
	}
	entry := raw.(Entry)

	if ttl > 0 && time.Since(entry.UpdatedAt) >= ttl {
		store.Delete(string(key))
		f.mu.Lock()
		f.persist() // best effort: a failed write here just delays eviction on disk
		f.mu.Unlock()
		return Entry{}, false
	}
	return entry, true
}

// Put implements Backend.
func (f *File) Put(key Key, value interface{}, updatedAt time.Time) Entry {
	entry := Entry{Value: value, UpdatedAt: updatedAt}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store.Set(string(key), entry, gocache.NoExpiration)
	f.persist() // best effort, like the teacher's forex.go rateSource.reload
	return entry
}

// Delete implements Backend.
func (f *File) Delete(key Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store.Delete(string(key))
	return f.persist()
}

// LastUpdated implements Backend.
func (f *File) LastUpdated() map[Key]time.Time {
	store := f.mustStore()
	items := store.Items()
	out := make(map[Key]time.Time, len(items))
	for k, item := range items {
		out[Key(k)] = item.Object.(Entry).UpdatedAt
	}
	return out
}

// LastUpdatedKey implements Backend.
func (f *File) LastUpdatedKey(key Key) (time.Time, bool) {
	entry, ok := f.Get(key, 0)
	if !ok {
		return time.Time{}, false
	}
	return entry.UpdatedAt, true
}

// Reset implements Backend.
func (f *File) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store = gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	return f.persist()
}

// Terminate implements Backend.
func (f *File) Terminate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.store == nil {
		return nil
	}
	err := f.persist()
	f.store = nil
	return err
}

// Resolve implements Backend.
func (f *File) Resolve(ctx context.Context, key Key, resolver Resolver, ttl time.Duration) (interface{}, error) {
	return f.resolveGroup.resolve(ctx, key, resolver, ttl, f.Get, f.Put)
}
