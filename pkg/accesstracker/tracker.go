// Package accesstracker estimates how frequently and how recently cache
// keys have been accessed over a sliding window of time buckets, using
// probabilistic structures instead of per-key state so memory stays
// bounded at any key cardinality. Admission and eviction policies consume
// the per-bucket feature vectors it produces.
package accesstracker

import (
	"sync"
	"sync/atomic"

	"github.com/axiomhq/hyperloglog"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-accesstrack/pkg/common/locks"
	"github.com/huynhanx03/go-accesstrack/pkg/datastructs/bloom"
	"github.com/huynhanx03/go-accesstrack/pkg/datastructs/sketch"
	"github.com/huynhanx03/go-accesstrack/pkg/hash"
)

// Tracker is a ring of time buckets, each holding either a frequency
// sketch (counting mode) or a membership filter slice, plus a raw access
// counter and a distinct-key estimator for diagnostics. All methods are
// safe for concurrent use.
type Tracker struct {
	cfg Config
	log *zap.Logger

	// mostRecent is the most recently active bucket index. It is advanced
	// by compare-and-swap; the winner clears the entered bucket exactly
	// once per rotation.
	mostRecent atomic.Uint64

	// Exactly one of counts/filters is populated, fixed at construction.
	counts  []*sketch.Sketch
	filters *bloom.Sliced

	bucketLocks []sync.Locker
	itemCounts  []uint64
	uniques     []*hyperloglog.Sketch
}

// New builds a tracker from cfg. It fails only on invalid parameters.
func New(cfg Config) (*Tracker, error) {
	cfg.applyDefaults()
	if cfg.NumBuckets < 1 {
		return nil, errors.Errorf("number of buckets must be at least 1, got %d", cfg.NumBuckets)
	}

	t := &Tracker{
		cfg:         cfg,
		log:         cfg.Logger,
		bucketLocks: make([]sync.Locker, cfg.NumBuckets),
		itemCounts:  make([]uint64, cfg.NumBuckets),
		uniques:     make([]*hyperloglog.Sketch, cfg.NumBuckets),
	}

	if cfg.UseCounts {
		errorMargin := float64(cfg.MaxErrorValue) / float64(cfg.MaxOpsPerBucket)
		t.counts = make([]*sketch.Sketch, cfg.NumBuckets)
		for i := range t.counts {
			s, err := sketch.New(errorMargin, cfg.ErrorCertainty, cfg.MaxWidth, cfg.MaxDepth)
			if err != nil {
				return nil, errors.Wrap(err, "failed to create frequency sketch")
			}
			t.counts[i] = s
		}
	} else {
		filters, err := bloom.NewSliced(cfg.NumBuckets, cfg.MaxOpsPerBucket, cfg.FalsePositiveRate)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create membership filter")
		}
		t.filters = filters
	}

	for i := range t.bucketLocks {
		t.bucketLocks[i] = locks.NewSpinLock()
		t.uniques[i] = hyperloglog.New16()
	}

	t.log.Debug("access tracker ready",
		zap.Int("buckets", cfg.NumBuckets),
		zap.Uint64("ticks_per_bucket", cfg.TicksPerBucket),
		zap.Bool("counting", cfg.UseCounts),
		zap.Uint64("bytes", t.ByteSize()),
	)
	return t, nil
}

// NumBuckets returns the number of tracked buckets.
func (t *Tracker) NumBuckets() int {
	return t.cfg.NumBuckets
}

// RecordAccess folds one access to key into the current bucket.
func (t *Tracker) RecordAccess(key string) {
	t.updateMostRecentBucket()
	h := hash.Sum64String(key, hash.DefaultSeed)
	idx := t.mostRecent.Load()
	t.bucketLocks[idx].Lock()
	t.updateBucketLocked(idx, h)
	t.bucketLocks[idx].Unlock()
}

// GetAccesses returns key's estimated access history: element i is the
// estimate for the bucket i bucket-widths ago, element 0 the current
// bucket. Counting mode yields estimated counts (possibly above, never
// below, the true count); membership mode yields 1 or 0. Buckets are
// locked one at a time, so a rotation racing with this call may leave
// later elements reflecting the newer layout.
func (t *Tracker) GetAccesses(key string) []float64 {
	t.updateMostRecentBucket()
	h := hash.Sum64String(key, hash.DefaultSeed)
	mostRecent := t.mostRecent.Load()

	n := uint64(t.cfg.NumBuckets)
	features := make([]float64, n)
	for i := uint64(0); i < n; i++ {
		idx := t.rotatedIdx(mostRecent + n - i)
		t.bucketLocks[idx].Lock()
		features[i] = t.bucketEstimateLocked(idx, h)
		t.bucketLocks[idx].Unlock()
	}
	return features
}

// RecordAndPopulateAccessFeatures returns key's access history computed
// before this call's own access is recorded, then records it. Callers
// score a request on its history so far; the returned vector never
// includes the access being recorded.
func (t *Tracker) RecordAndPopulateAccessFeatures(key string) []float64 {
	features := t.GetAccesses(key)
	t.RecordAccess(key)
	return features
}

// GetRotatedAccessCounts returns the raw number of recorded accesses per
// bucket, element i covering the bucket i bucket-widths ago. These are
// exact write counts, independent of the probabilistic estimates.
func (t *Tracker) GetRotatedAccessCounts() []uint64 {
	current := t.currentBucketIndex()

	n := uint64(t.cfg.NumBuckets)
	counts := make([]uint64, n)
	for i := uint64(0); i < n; i++ {
		idx := t.rotatedIdx(current + n - i)
		t.bucketLocks[idx].Lock()
		counts[i] = t.itemCounts[idx]
		t.bucketLocks[idx].Unlock()
	}
	return counts
}

// EstimateCardinalities returns the estimated number of distinct keys
// recorded per bucket, in the same ordering as GetRotatedAccessCounts.
func (t *Tracker) EstimateCardinalities() []uint64 {
	current := t.currentBucketIndex()

	n := uint64(t.cfg.NumBuckets)
	estimates := make([]uint64, n)
	for i := uint64(0); i < n; i++ {
		idx := t.rotatedIdx(current + n - i)
		t.bucketLocks[idx].Lock()
		estimates[i] = t.uniques[idx].Estimate()
		t.bucketLocks[idx].Unlock()
	}
	return estimates
}

// ByteSize returns the memory footprint of the probabilistic bucket state,
// for capacity accounting by the owning cache.
func (t *Tracker) ByteSize() uint64 {
	if t.cfg.UseCounts {
		var total uint64
		for _, s := range t.counts {
			total += s.ByteSize()
		}
		return total
	}
	return t.filters.ByteSize()
}

func (t *Tracker) rotatedIdx(bucket uint64) uint64 {
	return bucket % uint64(t.cfg.NumBuckets)
}

func (t *Tracker) currentBucketIndex() uint64 {
	return t.rotatedIdx(t.cfg.Ticker.CurrentTick() / t.cfg.TicksPerBucket)
}

// updateMostRecentBucket advances the shared bucket index when the tick
// has moved into a new bucket, and clears the entered bucket exactly once.
// A caller whose tick observation trails the already-advanced index by one
// bucket skips the update; callers are assumed never to lag by more than
// one bucket width between reading the tick and reaching this check, so a
// heavily descheduled caller can still contribute stale writes to a reused
// bucket. That staleness bound is accepted behavior.
func (t *Tracker) updateMostRecentBucket() {
	target := t.currentBucketIndex()
	for {
		mostRecent := t.mostRecent.Load()
		if target == mostRecent || t.rotatedIdx(target+1) == mostRecent {
			return
		}

		if t.mostRecent.CompareAndSwap(mostRecent, target) {
			t.bucketLocks[target].Lock()
			t.resetBucketLocked(target)
			t.bucketLocks[target].Unlock()
			t.log.Debug("rotated into bucket", zap.Uint64("bucket", target))
			return
		}
	}
}

func (t *Tracker) bucketEstimateLocked(idx, h uint64) float64 {
	if t.cfg.UseCounts {
		return float64(t.counts[idx].Estimate(h))
	}
	if t.filters.CouldExist(int(idx), h) {
		return 1
	}
	return 0
}

func (t *Tracker) updateBucketLocked(idx, h uint64) {
	if t.cfg.UseCounts {
		t.counts[idx].Increment(h)
	} else {
		t.filters.Set(int(idx), h)
	}
	t.itemCounts[idx]++
	t.uniques[idx].InsertHash(h)
}

func (t *Tracker) resetBucketLocked(idx uint64) {
	if t.cfg.UseCounts {
		t.counts[idx].Clear()
	} else {
		t.filters.Clear(int(idx))
	}
	t.itemCounts[idx] = 0
	t.uniques[idx] = hyperloglog.New16()
}
