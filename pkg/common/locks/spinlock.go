// Package locks provides lightweight mutual-exclusion primitives for
// short critical sections.
package locks

import (
	"sync"
	"sync/atomic"

	"github.com/huynhanx03/go-accesstrack/pkg/runtime"
)

const maxSpinCycles = 30

// SpinLock is a test-and-set lock with CPU-pause backoff.
// Intended for critical sections of a few loads/stores; it never
// parks the goroutine.
type SpinLock struct {
	state atomic.Int32
}

// NewSpinLock creates a new SpinLock.
func NewSpinLock() sync.Locker {
	return &SpinLock{}
}

// Lock spins until the lock is acquired.
func (l *SpinLock) Lock() {
	cycles := uint32(1)
	for !l.state.CompareAndSwap(0, 1) {
		runtime.Procyield(cycles)
		if cycles < maxSpinCycles {
			cycles <<= 1
		}
	}
}

// Unlock releases the lock.
func (l *SpinLock) Unlock() {
	l.state.Store(0)
}
