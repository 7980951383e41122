// Package ticker provides monotonic tick sources for time-bucketed
// structures. A tick is an abstract, non-decreasing unit of time; callers
// decide how many ticks one bucket spans.
package ticker

import (
	"sync/atomic"
	"time"
)

// Ticker supplies the current tick. Implementations must be safe for
// concurrent use and must never return a value smaller than a previously
// returned one.
type Ticker interface {
	CurrentTick() uint64
}

// Clock ticks once per wall-clock second. This is the default tick source.
type Clock struct{}

// NewClock creates a wall-clock based Ticker.
func NewClock() *Clock {
	return &Clock{}
}

// CurrentTick returns the current Unix time in seconds.
func (*Clock) CurrentTick() uint64 {
	return uint64(time.Now().Unix())
}

// Manual is a Ticker driven entirely by the caller. Useful in tests and
// in systems that already own a logical clock.
type Manual struct {
	tick atomic.Uint64
}

// NewManual creates a Manual ticker starting at the given tick.
func NewManual(start uint64) *Manual {
	m := &Manual{}
	m.tick.Store(start)
	return m
}

// CurrentTick returns the last value set or advanced to.
func (m *Manual) CurrentTick() uint64 {
	return m.tick.Load()
}

// Advance moves the tick forward by n.
func (m *Manual) Advance(n uint64) {
	m.tick.Add(n)
}
