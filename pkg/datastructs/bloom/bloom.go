// Package bloom provides a sliced set-membership filter: a fixed number of
// independently clearable bloom filter slices sharing one configuration.
// Membership answers are one-sided: false positives are possible at the
// configured rate, false negatives are not.
package bloom

import (
	"encoding/binary"

	blooms "github.com/bits-and-blooms/bloom/v3"
	"github.com/pkg/errors"
)

// Sliced is a bloom filter split into slices, one per time bucket.
// NOT thread-safe; callers must serialize access per slice.
type Sliced struct {
	slices []*blooms.BloomFilter
}

// NewSliced creates numSlices filters, each sized for itemsPerSlice
// expected insertions at the given false positive rate.
func NewSliced(numSlices int, itemsPerSlice uint64, fpRate float64) (*Sliced, error) {
	if numSlices < 1 {
		return nil, errors.Errorf("number of slices must be at least 1, got %d", numSlices)
	}
	if itemsPerSlice == 0 {
		return nil, errors.New("items per slice must be greater than 0")
	}
	if fpRate <= 0 || fpRate >= 1 {
		return nil, errors.Errorf("false positive rate must be in (0, 1), got %v", fpRate)
	}

	s := &Sliced{
		slices: make([]*blooms.BloomFilter, numSlices),
	}
	for i := range s.slices {
		s.slices[i] = blooms.NewWithEstimates(uint(itemsPerSlice), fpRate)
	}
	return s, nil
}

// Set marks the hash as present in the given slice.
func (s *Sliced) Set(idx int, hash uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], hash)
	s.slices[idx].Add(b[:])
}

// CouldExist reports whether the hash may have been set in the given slice.
// A true result may be a false positive; a false result is definitive.
func (s *Sliced) CouldExist(idx int, hash uint64) bool {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], hash)
	return s.slices[idx].Test(b[:])
}

// Clear empties the given slice. Other slices are untouched.
func (s *Sliced) Clear(idx int) {
	s.slices[idx].ClearAll()
}

// NumSlices returns the number of slices.
func (s *Sliced) NumSlices() int {
	return len(s.slices)
}

// ByteSize returns the bit array footprint across all slices in bytes.
func (s *Sliced) ByteSize() uint64 {
	var total uint64
	for _, f := range s.slices {
		total += uint64(f.Cap()) / 8
	}
	return total
}
