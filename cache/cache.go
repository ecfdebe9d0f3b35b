// Package cache defines a small TTL'd key-value interface used to memoize
// external lookups, with in-memory and Redis backends.
package cache

import (
	"context"
	"time"
)

// KV is a byte-oriented cache with per-entry expiry. Implementations must be
// safe for concurrent use. A miss is (nil, false, nil); errors indicate
// backend failures and callers are expected to degrade to a live lookup.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Close() error
}
