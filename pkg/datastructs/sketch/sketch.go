// Package sketch implements a Count-Min sketch for per-key frequency
// estimation in bounded memory. Estimates are one-sided: they may exceed
// the true count but never fall below it.
package sketch

import (
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// Sketch is a Count-Min sketch with 32-bit counters.
// NOT thread-safe; callers must serialize access.
type Sketch struct {
	rows  []cmRow
	seeds []uint64
	mask  uint64
	width int
}

// New creates a sketch sized from accuracy bounds. errorMargin is the
// tolerated estimation error as a fraction of total insertions, certainty
// the probability that the error stays within that margin. Width and depth
// derived from the bounds are capped at maxWidth and maxDepth so memory
// stays bounded regardless of how tight the accuracy request is.
func New(errorMargin, certainty float64, maxWidth, maxDepth int) (*Sketch, error) {
	if errorMargin <= 0 || errorMargin >= 1 {
		return nil, errors.Errorf("error margin must be in (0, 1), got %v", errorMargin)
	}
	if certainty <= 0 || certainty >= 1 {
		return nil, errors.Errorf("certainty must be in (0, 1), got %v", certainty)
	}
	if maxWidth < 1 || maxDepth < 1 {
		return nil, errors.Errorf("max width and depth must be positive, got %d x %d", maxWidth, maxDepth)
	}

	width := ceilToPowerOfTwo(int(math.Ceil(math.E / errorMargin)))
	if width > maxWidth {
		width = floorToPowerOfTwo(maxWidth)
	}

	depth := int(math.Ceil(math.Log(1 / (1 - certainty))))
	if depth < 1 {
		depth = 1
	}
	if depth > maxDepth {
		depth = maxDepth
	}

	s := &Sketch{
		rows:  make([]cmRow, depth),
		seeds: make([]uint64, depth),
		mask:  uint64(width - 1),
		width: width,
	}

	source := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range s.rows {
		s.seeds[i] = source.Uint64()
		s.rows[i] = newCmRow(width)
	}
	return s, nil
}

// Increment increments the counter for the given hash in every row.
func (s *Sketch) Increment(hash uint64) {
	for i := range s.rows {
		idx := (hash ^ s.seeds[i]) & s.mask
		s.rows[i].increment(idx)
	}
}

// Estimate returns the estimated frequency of the given hash: the minimum
// counter across rows. Never below the true insertion count.
func (s *Sketch) Estimate(hash uint64) uint64 {
	min := uint32(math.MaxUint32)
	for i := range s.rows {
		idx := (hash ^ s.seeds[i]) & s.mask
		if val := s.rows[i].get(idx); val < min {
			min = val
		}
	}
	return uint64(min)
}

// Clear zeroes all counters.
func (s *Sketch) Clear() {
	for _, r := range s.rows {
		r.clear()
	}
}

// Width returns the number of counters per row.
func (s *Sketch) Width() int { return s.width }

// Depth returns the number of rows.
func (s *Sketch) Depth() int { return len(s.rows) }

// ByteSize returns the counter memory footprint in bytes.
func (s *Sketch) ByteSize() uint64 {
	return uint64(s.width) * uint64(len(s.rows)) * 4
}

func ceilToPowerOfTwo(n int) int {
	if n <= 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

func floorToPowerOfTwo(n int) int {
	if n <= 2 {
		return n
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n - (n >> 1)
}
