package bloom

import (
	"testing"
)

// =============================================================================
// Constructor Tests: NewSliced()
// =============================================================================

func TestNewSliced(t *testing.T) {
	tests := []struct {
		name          string
		numSlices     int
		itemsPerSlice uint64
		fpRate        float64
		wantErr       bool
	}{
		// Happy path
		{"valid_standard", 6, 100_000, 0.02, false},
		{"single_slice", 1, 1000, 0.01, false},
		// Error cases
		{"zero_slices", 0, 1000, 0.01, true},
		{"negative_slices", -1, 1000, 0.01, true},
		{"zero_items", 4, 0, 0.01, true},
		{"zero_fpRate", 4, 1000, 0, true},
		{"fpRate_equals_1", 4, 1000, 1.0, true},
		{"fpRate_above_1", 4, 1000, 1.5, true},
		// Boundary
		{"min_items", 1, 1, 0.5, false},
		{"large", 8, 1_000_000, 0.01, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSliced(tt.numSlices, tt.itemsPerSlice, tt.fpRate)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSliced() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got == nil {
				t.Fatal("NewSliced() returned nil without error")
			}
			if got.NumSlices() != tt.numSlices {
				t.Errorf("NumSlices() = %d, want %d", got.NumSlices(), tt.numSlices)
			}
		})
	}
}

// =============================================================================
// Set / CouldExist Tests
// =============================================================================

func TestSet_NoFalseNegatives(t *testing.T) {
	s, err := NewSliced(4, 10_000, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	for i := uint64(0); i < 10_000; i++ {
		s.Set(int(i%4), i)
	}
	for i := uint64(0); i < 10_000; i++ {
		if !s.CouldExist(int(i%4), i) {
			t.Fatalf("CouldExist(%d, %d) = false for a set hash", i%4, i)
		}
	}
}

func TestCouldExist_SlicesIndependent(t *testing.T) {
	s, err := NewSliced(3, 1000, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	s.Set(1, 42)

	if s.CouldExist(0, 42) {
		t.Error("hash leaked into slice 0")
	}
	if !s.CouldExist(1, 42) {
		t.Error("hash missing from slice 1")
	}
	if s.CouldExist(2, 42) {
		t.Error("hash leaked into slice 2")
	}
}

func TestCouldExist_UnseenHash(t *testing.T) {
	s, err := NewSliced(2, 100_000, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	s.Set(0, 7)
	if s.CouldExist(0, 987654321) {
		t.Error("unexpected positive for unseen hash (fp rate makes this vanishingly unlikely)")
	}
}

// =============================================================================
// Clear / ByteSize Tests
// =============================================================================

func TestClear(t *testing.T) {
	s, err := NewSliced(3, 1000, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	for i := uint64(0); i < 100; i++ {
		s.Set(0, i)
		s.Set(1, i)
	}
	s.Clear(0)

	for i := uint64(0); i < 100; i++ {
		if s.CouldExist(0, i) {
			t.Fatalf("slice 0 still reports %d after Clear", i)
		}
		if !s.CouldExist(1, i) {
			t.Fatalf("Clear(0) wiped slice 1 entry %d", i)
		}
	}
}

func TestByteSize(t *testing.T) {
	small, err := NewSliced(2, 1000, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	large, err := NewSliced(2, 100_000, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	if small.ByteSize() == 0 {
		t.Error("ByteSize() = 0, want > 0")
	}
	if large.ByteSize() <= small.ByteSize() {
		t.Errorf("more capacity should cost more memory: large=%d small=%d", large.ByteSize(), small.ByteSize())
	}
}
