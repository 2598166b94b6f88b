// Package redis implements the cache against a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/chaingate-io/chaingate/internal/cache"
)

// Cache adapts a Redis connection to the cache.Cache contract. Connection
// errors are reported as cache.ErrUnavailable and never retried here.
type Cache struct {
	rdb *goredis.Client
}

// New creates a cache client for the given address ("host:port"). The
// connection is established lazily; an unreachable server surfaces on
// first use, not here.
func New(addr string) *Cache {
	return &Cache{
		rdb: goredis.NewClient(&goredis.Options{Addr: addr}),
	}
}

// Get returns the value at key, cache.ErrMiss when absent, or
// cache.ErrUnavailable when Redis cannot be reached.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, fmt.Errorf("%w: %v", cache.ErrUnavailable, err)
	}
	return val, nil
}

// SetTTL stores value at key with the given expiry.
func (c *Cache) SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", cache.ErrUnavailable, err)
	}
	return nil
}

// Ping checks connectivity. Used at startup for a log line only; the data
// path degrades to the durable store when Redis is down.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
