package printer

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Stats accumulates windowed per-channel min/avg/max over telemetry
// records. The telemetry shape is fixed per firmware build, so every
// record is expected to carry the same number of channels.
type Stats struct {
	window int
	count  int
	min    []float32
	max    []float32
	sum    []float32
}

// NewStats creates a Stats accumulator over a window of records.
func NewStats(window int) *Stats {
	if window <= 0 {
		window = 1
	}
	return &Stats{window: window}
}

// Add folds one telemetry record into the window.
func (s *Stats) Add(values []float32) {
	for i, v := range values {
		if i >= len(s.min) {
			s.min = append(s.min, v)
			s.max = append(s.max, v)
			s.sum = append(s.sum, 0)
		}
		s.min[i] = math32.Min(s.min[i], v)
		s.max[i] = math32.Max(s.max[i], v)
		s.sum[i] += v
	}
	s.count++
}

// Count returns the number of records folded in since the last Reset.
func (s *Stats) Count() int {
	return s.count
}

// Ready reports whether a full window has been accumulated.
func (s *Stats) Ready() bool {
	return s.count >= s.window
}

// Reset clears the window.
func (s *Stats) Reset() {
	s.count = 0
	s.min = s.min[:0]
	s.max = s.max[:0]
	s.sum = s.sum[:0]
}

// Summary renders the window as "n=50 ch0=min/avg/max ch1=min/avg/max".
func (s *Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "n=%d", s.count)

	for i := range s.min {
		avg := s.sum[i] / float32(s.count)
		fmt.Fprintf(&b, " ch%d=%.3f/%.3f/%.3f", i, s.min[i], avg, s.max[i])
	}

	return b.String()
}
