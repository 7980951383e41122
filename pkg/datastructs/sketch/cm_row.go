package sketch

import "math"

type cmRow []uint32

func newCmRow(width int) cmRow {
	return make(cmRow, width)
}

func (r cmRow) get(n uint64) uint32 {
	return r[n]
}

// increment saturates at MaxUint32 instead of wrapping, so a counter can
// only over-estimate, never fall back to a small value.
func (r cmRow) increment(n uint64) {
	if r[n] < math.MaxUint32 {
		r[n]++
	}
}

func (r cmRow) clear() {
	for i := range r {
		r[i] = 0
	}
}
