// Package cache defines the key/value cache boundary.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// ErrUnavailable is returned when the cache backend cannot be reached.
// Callers must treat it exactly as a miss; retry policy belongs to them.
var ErrUnavailable = errors.New("cache unavailable")

// Cache is a key/value store with per-entry expiry. It is a pure
// accelerator: nothing in it is ever the source of truth.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
