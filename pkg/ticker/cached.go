package ticker

import (
	"sync"
	"sync/atomic"
	"time"
)

// Cached is a Ticker advanced by a background goroutine once per step.
// It trades up to one step of staleness for a single atomic load on the
// read path, which matters when CurrentTick sits on a hot path.
type Cached struct {
	tick   atomic.Uint64
	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewCached creates a Cached ticker that increments once per step.
func NewCached(step time.Duration) *Cached {
	c := &Cached{
		ticker: time.NewTicker(step),
		done:   make(chan struct{}),
	}

	c.wg.Add(1)
	go c.run()

	return c
}

func (c *Cached) run() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ticker.C:
			c.tick.Add(1)
		case <-c.done:
			c.ticker.Stop()
			return
		}
	}
}

// CurrentTick returns the number of steps elapsed since the ticker started.
func (c *Cached) CurrentTick() uint64 {
	return c.tick.Load()
}

// Stop terminates the background goroutine. The tick no longer advances
// after Stop returns.
func (c *Cached) Stop() {
	close(c.done)
	c.wg.Wait()
}
