package uhash

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	// DefaultMinSize is the smallest slot count a table ever has.
	DefaultMinSize = 8
	// DefaultMaxSize caps the slot array. Growing past it fails with
	// ErrAllocation.
	DefaultMaxSize = 1 << 30
	// DefaultGrowthLoad triggers doubling once N reaches M.
	DefaultGrowthLoad = 1.0
	// DefaultShrinkLoad triggers halving once N falls to M/4.
	DefaultShrinkLoad = 0.25
	// DefaultGrowthFactor scales M on growth.
	DefaultGrowthFactor = 2.0
	// DefaultShrinkFactor scales M on shrink.
	DefaultShrinkFactor = 0.5
)

type options struct {
	minSize      int
	initialSize  int
	maxSize      int
	growthLoad   float64
	shrinkLoad   float64
	growthFactor float64
	shrinkFactor float64

	seeded       bool
	seed1, seed2 uint64

	logger *zap.Logger
}

// Option configures a Table.
type Option func(*options)

// WithMinSize sets the minimum slot count. It is rounded up to a power of two.
func WithMinSize(n int) Option {
	return func(o *options) { o.minSize = n }
}

// WithInitialSize sets the slot count the table starts with and returns to on
// Clear. It is rounded up to a power of two and never below the minimum.
func WithInitialSize(n int) Option {
	return func(o *options) { o.initialSize = n }
}

// WithMaxSize caps the slot count.
func WithMaxSize(n int) Option {
	return func(o *options) { o.maxSize = n }
}

// WithGrowthLoad sets the load factor N/M at which the table grows.
func WithGrowthLoad(f float64) Option {
	return func(o *options) { o.growthLoad = f }
}

// WithShrinkLoad sets the load factor N/M at or below which the table shrinks.
func WithShrinkLoad(f float64) Option {
	return func(o *options) { o.shrinkLoad = f }
}

// WithGrowthFactor sets the scaling factor applied to M on growth.
func WithGrowthFactor(f float64) Option {
	return func(o *options) { o.growthFactor = f }
}

// WithShrinkFactor sets the scaling factor applied to M on shrink.
func WithShrinkFactor(f float64) Option {
	return func(o *options) { o.shrinkFactor = f }
}

// WithSeed makes the table's random source deterministic.
func WithSeed(seed1, seed2 uint64) Option {
	return func(o *options) {
		o.seeded = true
		o.seed1, o.seed2 = seed1, seed2
	}
}

// WithLogger sets the logger resize events are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func defaultOptions() options {
	return options{
		minSize:      DefaultMinSize,
		maxSize:      DefaultMaxSize,
		growthLoad:   DefaultGrowthLoad,
		shrinkLoad:   DefaultShrinkLoad,
		growthFactor: DefaultGrowthFactor,
		shrinkFactor: DefaultShrinkFactor,
	}
}

// normalize rounds the sizes to powers of two and checks that the thresholds
// cannot make the table oscillate between growing and shrinking.
func (o *options) normalize() error {
	if o.minSize < 1 {
		return fmt.Errorf("%w: min size %d must be positive", ErrInvalidConfig, o.minSize)
	}
	o.minSize = nextPow2(o.minSize)
	if o.initialSize < o.minSize {
		o.initialSize = o.minSize
	}
	o.initialSize = nextPow2(o.initialSize)
	if o.maxSize < o.initialSize {
		return fmt.Errorf("%w: max size %d is below initial size %d", ErrInvalidConfig, o.maxSize, o.initialSize)
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"growth load", o.growthLoad},
		{"shrink load", o.shrinkLoad},
		{"growth factor", o.growthFactor},
		{"shrink factor", o.shrinkFactor},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s %g must be finite", ErrInvalidConfig, f.name, f.value)
		}
	}

	switch {
	case o.growthLoad <= 0:
		return fmt.Errorf("%w: growth load %g must be positive", ErrInvalidConfig, o.growthLoad)
	case o.growthFactor < 2:
		return fmt.Errorf("%w: growth factor %g must be at least 2", ErrInvalidConfig, o.growthFactor)
	case o.shrinkFactor <= 0 || o.shrinkFactor > 0.5:
		return fmt.Errorf("%w: shrink factor %g must be in (0, 0.5]", ErrInvalidConfig, o.shrinkFactor)
	case o.shrinkLoad <= 0:
		return fmt.Errorf("%w: shrink load %g must be positive", ErrInvalidConfig, o.shrinkLoad)
	case o.shrinkLoad/o.shrinkFactor >= o.growthLoad:
		return fmt.Errorf("%w: shrinking at load %g by %g would land on the growth load %g",
			ErrInvalidConfig, o.shrinkLoad, o.shrinkFactor, o.growthLoad)
	case o.growthFactor > float64(o.maxSize):
		return fmt.Errorf("%w: growth factor %g exceeds max size %d", ErrInvalidConfig, o.growthFactor, o.maxSize)
	}

	// resize rounds the scaled size up to a power of two, so a growth factor
	// of 3 really quadruples the table.
	if grown := float64(nextPow2(int(math.Ceil(o.growthFactor)))); o.growthLoad/grown <= o.shrinkLoad {
		return fmt.Errorf("%w: growing at load %g by %g (%g after rounding) would land on the shrink load %g",
			ErrInvalidConfig, o.growthLoad, o.growthFactor, grown, o.shrinkLoad)
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return nil
}
