// Package storage defines the durable object store boundary.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when the named object does not exist.
// Callers map it to a 404 semantic; any other error is a dependency
// failure.
var ErrNotFound = errors.New("object not found")

// ObjectStore reads and writes named JSON objects in a bucket. Writes are
// whole-object overwrites; every write target is either a singleton
// refresh artifact or a uniquely named, write-once receipt.
type ObjectStore interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}
