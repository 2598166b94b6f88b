package qos

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestRecorderKeepsMostRecentTen(t *testing.T) {
	rec := NewRecorder()
	for i := 0; i < 11; i++ {
		rec.Record(fmt.Sprintf("GET /call/%d", i), time.Duration(i)*time.Millisecond, i)
	}

	samples := rec.Samples()
	if len(samples) != DefaultLimit {
		t.Fatalf("expected %d samples, got %d", DefaultLimit, len(samples))
	}
	// Oldest (call 0) evicted; remainder in call order, newest last.
	for i, s := range samples {
		want := fmt.Sprintf("GET /call/%d", i+1)
		if s.Endpoint != want {
			t.Fatalf("sample %d: expected %s, got %s", i, want, s.Endpoint)
		}
	}
	if samples[len(samples)-1].Endpoint != "GET /call/10" {
		t.Fatalf("newest sample not last: %s", samples[len(samples)-1].Endpoint)
	}
}

func TestRecorderBoundUnderConcurrency(t *testing.T) {
	rec := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rec.Record("GET /api/data", time.Millisecond, n)
		}(i)
	}
	wg.Wait()

	if got := len(rec.Samples()); got != DefaultLimit {
		t.Fatalf("expected buffer capped at %d, got %d", DefaultLimit, got)
	}
}

func TestSamplesReturnsCopy(t *testing.T) {
	rec := NewRecorder()
	rec.Record("GET /health", time.Millisecond, 10)

	first := rec.Samples()
	first[0].Endpoint = "mutated"

	if rec.Samples()[0].Endpoint != "GET /health" {
		t.Fatal("Samples must return a copy, not the backing buffer")
	}
}
