// Package redis provides a Redis-backed cache.KV for multi-node
// deployments, leaning on Redis' native key expiry.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config contains configuration options for the Redis cache.
type Config struct {
	// Client is the Redis client instance.
	Client *redis.Client

	// KeyPrefix is the prefix for all Redis keys.
	// Default: "toolhost:cache:"
	KeyPrefix string
}

// Cache implements cache.KV using Redis.
type Cache struct {
	client    *redis.Client
	keyPrefix string
}

// New creates a new Redis-backed cache instance.
func New(cfg Config) (*Cache, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "toolhost:cache:"
	}
	return &Cache{client: cfg.Client, keyPrefix: cfg.KeyPrefix}, nil
}

// NewFromURL creates a cache from a redis:// connection URL.
func NewFromURL(rawURL string) (*Cache, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return New(Config{Client: redis.NewClient(opts)})
}

// Get retrieves a value for key. Expiry is handled by Redis itself.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res := c.client.Get(ctx, c.keyPrefix+key)
	if err := res.Err(); err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	data, err := res.Bytes()
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return data, true, nil
}

// Set stores a value with a time-to-live.
func (c *Cache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
