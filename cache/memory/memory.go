// Package memory provides an in-memory cache.KV with lazy expiry. It suits
// single-node deployments and tests.
package memory

import (
	"context"
	"sync"
	"time"
)

type item struct {
	data      []byte
	expiresAt time.Time
}

// Cache is a minimal in-memory TTL cache safe for concurrent access.
type Cache struct {
	mu    sync.RWMutex
	items map[string]item

	// now is swappable for tests.
	now func() time.Time
}

// New constructs an empty Cache.
func New() *Cache {
	return &Cache{items: make(map[string]item), now: time.Now}
}

// Get retrieves a non-expired value for key. Expired entries are evicted on
// access.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !it.expiresAt.IsZero() && c.now().After(it.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return it.data, true, nil
}

// Set stores a value with a time-to-live. A non-positive ttl stores the
// entry without expiry.
func (c *Cache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	it := item{data: val}
	if ttl > 0 {
		it.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = it
	c.mu.Unlock()
	return nil
}

// Close releases resources; a no-op for the in-memory backend.
func (c *Cache) Close() error { return nil }
