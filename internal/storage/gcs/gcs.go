// Package gcs implements the object store against a Google Cloud Storage
// bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/chaingate-io/chaingate/internal/storage"
)

// Store adapts a GCS bucket to the storage.ObjectStore contract.
type Store struct {
	client *gstorage.Client
	bucket string
}

// New connects to GCS and binds the named bucket. When keyFile points to a
// readable service-account file it is used explicitly; otherwise the
// ambient application-default credentials apply.
func New(ctx context.Context, projectID, bucket, keyFile string) (*Store, error) {
	opts := []option.ClientOption{}
	if keyFile != "" {
		if _, err := os.Stat(keyFile); err == nil {
			opts = append(opts, option.WithCredentialsFile(keyFile))
		}
	}

	client, err := gstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Store{client: client, bucket: bucket}, nil
}

// Read downloads the whole named object.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	rc, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Write uploads data as the whole content of the named object.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
