// Package memory provides an in-process cache for tests and local runs
// without Redis.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/chaingate-io/chaingate/internal/cache"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache keeps entries in a map guarded by a mutex, honouring per-entry
// expiry on read.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry), now: time.Now}
}

// Get returns the unexpired value at key or cache.ErrMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, cache.ErrMiss
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// SetTTL stores a copy of value at key with the given expiry.
func (c *Cache) SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	c.entries[key] = entry{value: stored, expiresAt: c.now().Add(ttl)}
	return nil
}
