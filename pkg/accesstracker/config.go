package accesstracker

import (
	"go.uber.org/zap"

	"github.com/huynhanx03/go-accesstrack/pkg/ticker"
)

// Config holds tracker configuration. The zero value is not usable on its
// own: NumBuckets must be set by the caller. Every other field falls back
// to a default, and a zero UseCounts selects membership mode; start from
// DefaultConfig for a counting tracker.
type Config struct {
	// NumBuckets is the number of past time buckets to track. Required.
	NumBuckets int

	// TicksPerBucket is the width of one bucket in ticks.
	// Defaults to 3600 (one hour with the wall-clock seconds ticker).
	TicksPerBucket uint64

	// UseCounts selects the counting strategy (per-key frequency sketches).
	// When false the tracker keeps membership filters instead, which are
	// smaller but only answer "seen in this bucket" as 1 or 0. A zero-value
	// Config therefore gets membership mode; use DefaultConfig for the
	// default counting behavior.
	UseCounts bool

	// MaxOpsPerBucket is the expected number of recorded accesses per
	// bucket, used to size both strategies. Defaults to 1_000_000.
	MaxOpsPerBucket uint64

	// MaxErrorValue bounds the absolute error of counting estimates;
	// the sketch error margin is MaxErrorValue / MaxOpsPerBucket.
	// Defaults to 1.
	MaxErrorValue uint64

	// ErrorCertainty is the probability that a counting estimate stays
	// within the error margin. Defaults to 0.99.
	ErrorCertainty float64

	// MaxWidth and MaxDepth cap the per-bucket sketch dimensions so memory
	// stays bounded regardless of the accuracy request.
	// Default to 8_000_000 and 8.
	MaxWidth int
	MaxDepth int

	// FalsePositiveRate is the membership filter false positive rate.
	// Defaults to 0.02.
	FalsePositiveRate float64

	// Ticker is the tick source. Defaults to wall-clock seconds.
	Ticker ticker.Ticker

	// Logger receives construction and rotation events at debug level.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultConfig returns a counting-mode configuration with all knobs at
// their defaults. NumBuckets must still be set by the caller.
func DefaultConfig() Config {
	cfg := Config{UseCounts: true}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.TicksPerBucket == 0 {
		c.TicksPerBucket = 3600
	}
	if c.MaxOpsPerBucket == 0 {
		c.MaxOpsPerBucket = 1_000_000
	}
	if c.MaxErrorValue == 0 {
		c.MaxErrorValue = 1
	}
	if c.ErrorCertainty == 0 {
		c.ErrorCertainty = 0.99
	}
	if c.MaxWidth == 0 {
		c.MaxWidth = 8_000_000
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = 8
	}
	if c.FalsePositiveRate == 0 {
		c.FalsePositiveRate = 0.02
	}
	if c.Ticker == nil {
		c.Ticker = ticker.NewClock()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}
