// Package memory provides an in-memory object store for tests and local
// runs without GCP credentials.
package memory

import (
	"context"
	"sync"

	"github.com/chaingate-io/chaingate/internal/storage"
)

// Store keeps objects in a map guarded by a mutex.
type Store struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New creates an empty store.
func New() *Store {
	return &Store{objects: make(map[string][]byte)}
}

// Read returns a copy of the named object, or storage.ErrNotFound.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores a copy of data under name, overwriting any previous value.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[name] = stored
	return nil
}

// Names returns every stored object name. Intended for tests.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	return names
}
