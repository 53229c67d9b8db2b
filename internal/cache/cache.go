// Package cache provides a small TTL-aware read-through cache.
//
// The upstream lookups this server performs are cheap to recompute and have
// low key cardinality, so entries are only invalidated lazily on read; there
// is no background eviction.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value V
	ts    time.Time
}

// TTL is a mutex-guarded cache whose entries expire ttl after being set.
// Negative results can be stored like any other value, which lets callers
// cache "no data" outcomes and avoid hammering an upstream that has none.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]
	now     func() time.Time // injectable clock for testing
}

// NewTTL creates a cache with the given entry lifetime.
func NewTTL[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// SetClock replaces the cache's clock. Test helper.
func (c *TTL[V]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the cached value for key if it is younger than the TTL.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.ts) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, resetting its lifetime.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, ts: c.now()}
}

// Len returns the number of entries, expired or not.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
