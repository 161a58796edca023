// Package ttlcache provides an in-memory key/value store where every entry
// carries its own time-to-live.
//
// Expired entries are purged lazily when they are read. There is no
// background sweeper. Loads through GetOrLoad are collapsed per key so that
// concurrent callers asking for the same key trigger a single upstream call.
package ttlcache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Namespace tags a family of cache keys.
type Namespace string

const (
	NamespaceBalance      Namespace = "balance"
	NamespaceTokenBalance Namespace = "token-balance"
	NamespaceTransactions Namespace = "transactions"
	NamespaceTokenInfo    Namespace = "token-info"
	NamespacePrice        Namespace = "price"
)

// Key builds a deterministic cache key from a namespace and its identifiers.
//
// Identical logical requests must pass parts in the same order. Callers that
// key by an unordered collection are expected to sort it first.
func Key(ns Namespace, parts ...string) string {
	return string(ns) + ":" + strings.Join(parts, ":")
}

// entry is a stored value with its expiry metadata.
type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// expired reports whether the entry must be treated as absent at now.
// An entry read at exactly storedAt+ttl is still present.
func (e entry) expired(now time.Time) bool {
	return now.After(e.storedAt.Add(e.ttl))
}

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// Cache is a concurrency-safe TTL cache. The zero value is not usable; call New.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	hits    uint64
	misses  uint64

	loads singleflight.Group
	now   func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// withClock replaces the wall clock. It exists for tests.
func withClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// lookup returns the live value for key, purging it if it has expired.
func (c *Cache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && e.expired(c.now()) {
		delete(c.entries, key)
		ok = false
	}

	if !ok {
		c.misses++
		return nil, false
	}

	c.hits++
	return e.value, true
}

// Get returns the value stored under key, or false if it is absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.lookup(key)
	recordLookup(context.Background(), ok)
	return v, ok
}

// Set stores value under key for ttl. A non-positive ttl stores nothing.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:    value,
		storedAt: c.now(),
		ttl:      ttl,
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear removes every entry and resets the hit and miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	c.hits, c.misses = 0, 0
}

// Stats reports the number of stored entries and the lookup counters.
// Entries may include expired values that have not been read since expiring.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// GetOrLoad returns the cached value for key or calls load to produce it.
//
// Concurrent calls for the same key share a single load. The load runs
// detached from the cancellation of the caller that started it, so a cancelled
// caller cannot fail the others waiting on the same key. The loaded value is
// stored for ttl only when load returns a nil error; on error the value load
// returned is still handed back so callers can use it as a fallback.
//
// A cached value of a different type than T is treated as a miss and replaced.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		if typed, ok := v.(T); ok {
			recordLookup(ctx, true)
			return typed, nil
		}
	}
	recordLookup(ctx, false)

	type result struct {
		value T
		err   error
	}

	shared, _, _ := c.loads.Do(key, func() (any, error) {
		// another caller may have stored the value while this one was queued
		c.mu.Lock()
		e, ok := c.entries[key]
		c.mu.Unlock()
		if ok && !e.expired(c.now()) {
			if typed, ok := e.value.(T); ok {
				return result{value: typed}, nil
			}
		}

		v, err := load(context.WithoutCancel(ctx))
		if err == nil {
			c.Set(key, v, ttl)
		}
		return result{value: v, err: err}, nil
	})

	r := shared.(result)
	return r.value, r.err
}
