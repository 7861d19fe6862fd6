package logging

import (
	"strings"
	"sync"
)

// ProgressSampler decides when a progress update is worth a log record. It
// tracks each stream independently and emits only when a stream crosses into
// a new percentage bucket. It is safe for concurrent use.
type ProgressSampler struct {
	mu         sync.Mutex
	bucketSize float64
	buckets    map[string]int
}

// NewProgressSampler constructs a sampler with the given bucket width in
// percent (default 25).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 25
	}
	return &ProgressSampler{bucketSize: bucketSize, buckets: make(map[string]int)}
}

// Observe records done of total units for stream and reports the percentage
// and whether it should be logged. Unknown totals (<= 0) never log.
func (s *ProgressSampler) Observe(stream string, done, total int) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	percent := 100 * float64(done) / float64(total)
	if percent > 100 {
		percent = 100
	}
	if s == nil {
		return percent, true
	}
	bucket := int(percent / s.bucketSize)

	stream = strings.TrimSpace(stream)
	s.mu.Lock()
	defer s.mu.Unlock()
	last, seen := s.buckets[stream]
	if seen && bucket <= last {
		return percent, false
	}
	s.buckets[stream] = bucket
	return percent, true
}

// Reset forgets every stream.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.buckets)
}
