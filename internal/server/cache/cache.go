// Package cache provides the in-memory response cache for the HTTP server.
// It uses patrickmn/go-cache for TTL-based expiry.
package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a typed TTL cache that counts hits and misses.
type Cache[V any] struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache with the given TTL and cleanup interval.
// defaultTTL is the expiration time for entries stored with Set.
// cleanupInterval is how often expired entries are removed from memory.
func New[V any](defaultTTL, cleanupInterval time.Duration) *Cache[V] {
	return &Cache[V]{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Cache[V]) Get(key string) (V, bool) {
	if v, ok := c.store.Get(key); ok {
		if typed, ok := v.(V); ok {
			c.hits.Add(1)
			return typed, true
		}
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set stores a value with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete removes a value from the cache.
func (c *Cache[V]) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache[V]) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache, including expired
// items not yet cleaned up.
func (c *Cache[V]) ItemCount() int {
	return c.store.ItemCount()
}

// Stats are cache counters.
type Stats struct {
	ItemCount int   `json:"item_count"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
}

// GetStats returns current cache statistics.
func (c *Cache[V]) GetStats() Stats {
	return Stats{
		ItemCount: c.store.ItemCount(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
	}
}
