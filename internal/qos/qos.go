// Package qos records per-call latency and response size for operational
// display.
package qos

import (
	"sync"
	"time"
)

// DefaultLimit is how many samples the recorder retains.
const DefaultLimit = 10

// Sample is one observed API call. Purely observational; samples are
// ordered oldest first, newest last.
type Sample struct {
	Endpoint   string `json:"endpoint"`
	Timestamp  string `json:"timestamp"`
	DurationMS int64  `json:"durationMs"`
	SizeBytes  int    `json:"sizeBytes"`
}

// Recorder keeps the most recent samples in a mutex-guarded bounded
// buffer. Appends from concurrent requests are safe; the buffer truncates
// to the limit after every append.
type Recorder struct {
	mu      sync.Mutex
	samples []Sample
	limit   int
	now     func() time.Time
}

// NewRecorder creates a recorder bounded to DefaultLimit samples.
func NewRecorder() *Recorder {
	return &Recorder{limit: DefaultLimit, now: time.Now}
}

// Record appends one sample, evicting the oldest beyond the limit.
func (r *Recorder) Record(endpoint string, duration time.Duration, sizeBytes int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples = append(r.samples, Sample{
		Endpoint:   endpoint,
		Timestamp:  r.now().UTC().Format(time.RFC3339),
		DurationMS: duration.Milliseconds(),
		SizeBytes:  sizeBytes,
	})
	if len(r.samples) > r.limit {
		r.samples = append(r.samples[:0], r.samples[len(r.samples)-r.limit:]...)
	}
}

// Samples returns a copy of the retained samples, oldest first.
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}
