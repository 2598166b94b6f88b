package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/chaingate-io/chaingate/internal/storage"
)

func TestReadWriteRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Read(ctx, "data.json"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Write(ctx, "data.json", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := s.Read(ctx, "data.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"x":1}` {
		t.Fatalf("unexpected data: %s", data)
	}
}

func TestWriteOverwritesWholeObject(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.Write(ctx, "data.json", []byte(`{"x":1}`))
	_ = s.Write(ctx, "data.json", []byte(`{"y":2}`))

	data, err := s.Read(ctx, "data.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"y":2}` {
		t.Fatalf("expected whole-object overwrite, got %s", data)
	}
	if names := s.Names(); len(names) != 1 {
		t.Fatalf("expected one object, got %v", names)
	}
}
