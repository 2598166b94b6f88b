// Package data serves the shared data blob through a cache-aside read
// path over the durable store.
package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chaingate-io/chaingate/internal/cache"
	"github.com/chaingate-io/chaingate/internal/metrics"
	"github.com/chaingate-io/chaingate/internal/storage"
	"github.com/chaingate-io/chaingate/pkg/logger"
)

const (
	// objectName is the fixed durable-store key of the shared blob. The
	// blob is externally populated; this service never writes it.
	objectName = "data.json"
	// cacheKey is the fixed cache key of the shared blob.
	cacheKey = "cached_data"
	// cacheTTL bounds how long a cached copy is served before the store
	// is consulted again.
	cacheTTL = 300 * time.Second
)

// ErrNotFound indicates the shared blob is absent from the durable store.
var ErrNotFound = errors.New("data not found in storage")

// Result is the outcome of a fetch: where the payload came from and the
// payload itself, passed through verbatim.
type Result struct {
	Source  string          `json:"source"`
	Payload json.RawMessage `json:"data"`
}

// Service orchestrates cache-aside retrieval of the shared blob.
type Service struct {
	cache cache.Cache
	store storage.ObjectStore
	log   *logger.Logger
}

// New creates the data service.
func New(c cache.Cache, store storage.ObjectStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("data")
	}
	return &Service{cache: c, store: store, log: log}
}

// Fetch returns the shared blob. A cache hit short-circuits with no
// durable-store access. A miss, or an unreachable cache, falls through to
// the store; on success the cache is refreshed best-effort with the fixed
// TTL. Concurrent misses may refresh the cache more than once; the
// re-read is idempotent so this costs latency, not correctness.
func (s *Service) Fetch(ctx context.Context) (Result, error) {
	val, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		metrics.RecordDataFetch("cache")
		return Result{Source: "cache", Payload: val}, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.log.WithError(err).Warn("cache unreachable; falling back to storage")
	}

	raw, err := s.store.Read(ctx, objectName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, fmt.Errorf("read %s: %w", objectName, err)
	}
	if !json.Valid(raw) {
		return Result{}, fmt.Errorf("stored %s is not valid JSON", objectName)
	}

	if err := s.cache.SetTTL(ctx, cacheKey, raw, cacheTTL); err != nil {
		s.log.WithError(err).Warn("cache refresh failed")
	}

	metrics.RecordDataFetch("store")
	return Result{Source: "store", Payload: raw}, nil
}
