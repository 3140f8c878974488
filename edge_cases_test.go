package uhash_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theflywheel/uhash"
)

// TestIntegerWidths checks the extremes of several integer key types
func TestIntegerWidths(t *testing.T) {
	t.Run("Int8", func(t *testing.T) {
		h, err := uhash.NewInteger[int8, int]()
		require.NoError(t, err)
		for k := math.MinInt8; k <= math.MaxInt8; k++ {
			require.NoError(t, h.Set(int8(k), k))
		}
		assert.Equal(t, 256, h.Len())
		for k := math.MinInt8; k <= math.MaxInt8; k++ {
			v, err := h.Get(int8(k))
			require.NoError(t, err)
			require.Equal(t, k, v)
		}
	})

	t.Run("Uint64", func(t *testing.T) {
		h, err := uhash.NewInteger[uint64, string]()
		require.NoError(t, err)
		keys := []uint64{0, 1, math.MaxUint64, math.MaxUint64 - 1, 1 << 63}
		for _, k := range keys {
			require.NoError(t, h.Set(k, "v"))
		}
		assert.Equal(t, len(keys), h.Len())
		for _, k := range keys {
			assert.True(t, h.Contains(k), "key %d", k)
		}
	})

	t.Run("Int64_Negative", func(t *testing.T) {
		h, err := uhash.NewInteger[int64, int64]()
		require.NoError(t, err)
		for k := int64(-500); k < 500; k++ {
			require.NoError(t, h.Set(k, -k))
		}
		for k := int64(-500); k < 500; k++ {
			v, err := h.Get(k)
			require.NoError(t, err)
			require.Equal(t, -k, v)
		}
	})
}

// TestStringKeys tests different string key lengths
func TestStringKeys(t *testing.T) {
	testCases := []struct {
		name string
		key  string
	}{
		{"Empty", ""},
		{"Tiny", "a"},
		{"Medium", strings.Repeat("k", 32)},
		{"Large", strings.Repeat("large-key-", 1024)},
		{"Unicode", "ключ-鍵-🔑"},
	}

	h, err := uhash.NewString[string]()
	require.NoError(t, err)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, h.Set(tc.key, tc.name))

			v, err := h.Get(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.name, v)
		})
	}
	assert.Equal(t, len(testCases), h.Len())
}

// TestResizing tests that the table stays consistent across many resizes
func TestResizing(t *testing.T) {
	h, err := uhash.NewInteger[int, int]()
	require.NoError(t, err)

	numEntries := 5000
	for i := 0; i < numEntries; i++ {
		require.NoError(t, h.Set(i, i*7), "set entry %d", i)

		v, err := h.Get(i)
		require.NoError(t, err, "entry %d not found immediately after insertion", i)
		require.Equal(t, i*7, v)
	}
	assert.Equal(t, 8192, h.Size())

	for i := 0; i < numEntries; i += numEntries / 100 {
		v, err := h.Get(i)
		require.NoError(t, err, "entry %d not found after all insertions", i)
		assert.Equal(t, i*7, v)
	}

	for i := 0; i < numEntries; i++ {
		_, err := h.Remove(i)
		require.NoError(t, err, "remove entry %d", i)
	}
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, uhash.DefaultMinSize, h.Size())
}

// TestZeroValues tests storing zero values, which must not read as missing
func TestZeroValues(t *testing.T) {
	h, err := uhash.NewInteger[int, []byte]()
	require.NoError(t, err)

	require.NoError(t, h.Set(0, nil))
	require.NoError(t, h.Set(1, []byte{}))

	v, err := h.Get(0)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, ok := h.Lookup(1)
	require.True(t, ok)
	assert.Empty(t, v)
}

func TestInvalidConfig(t *testing.T) {
	testCases := []struct {
		name string
		opts []uhash.Option
	}{
		{"ZeroMinSize", []uhash.Option{uhash.WithMinSize(0)}},
		{"MaxBelowInitial", []uhash.Option{uhash.WithMaxSize(4)}},
		{"SmallGrowthFactor", []uhash.Option{uhash.WithGrowthFactor(1.5)}},
		{"LargeShrinkFactor", []uhash.Option{uhash.WithShrinkFactor(0.75)}},
		{"ZeroShrinkFactor", []uhash.Option{uhash.WithShrinkFactor(0)}},
		{"ZeroShrinkLoad", []uhash.Option{uhash.WithShrinkLoad(0)}},
		{"ShrinkLandsOnGrowth", []uhash.Option{uhash.WithShrinkLoad(0.6)}},
		{"GrowthLandsOnShrink", []uhash.Option{uhash.WithGrowthFactor(8), uhash.WithShrinkFactor(0.25), uhash.WithShrinkLoad(0.2)}},
		{"GrowthFactorRoundsUpOntoShrink", []uhash.Option{uhash.WithGrowthFactor(3)}},
		{"HugeGrowthFactor", []uhash.Option{uhash.WithGrowthFactor(1e300)}},
		{"NegativeGrowthLoad", []uhash.Option{uhash.WithGrowthLoad(-1)}},
		{"NaNGrowthLoad", []uhash.Option{uhash.WithGrowthLoad(math.NaN())}},
		{"NaNGrowthFactor", []uhash.Option{uhash.WithGrowthFactor(math.NaN())}},
		{"NaNShrinkLoad", []uhash.Option{uhash.WithShrinkLoad(math.NaN())}},
		{"NaNShrinkFactor", []uhash.Option{uhash.WithShrinkFactor(math.NaN())}},
		{"InfGrowthLoad", []uhash.Option{uhash.WithGrowthLoad(math.Inf(1))}},
		{"InfGrowthFactor", []uhash.Option{uhash.WithGrowthFactor(math.Inf(1))}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uhash.NewInteger[int, int](tc.opts...)
			assert.ErrorIs(t, err, uhash.ErrInvalidConfig)
		})
	}

	_, err := uhash.New[int, int](nil)
	assert.ErrorIs(t, err, uhash.ErrInvalidConfig)
}

func TestSizesRoundToPowersOfTwo(t *testing.T) {
	h, err := uhash.NewInteger[int, int](uhash.WithMinSize(5), uhash.WithInitialSize(20))
	require.NoError(t, err)
	assert.Equal(t, 32, h.Size())

	for i := 0; i < 20; i++ {
		require.NoError(t, h.Set(i, i))
	}
	for i := 0; i < 20; i++ {
		_, err := h.Remove(i)
		require.NoError(t, err)
	}
	assert.Equal(t, 8, h.Size())
}

// TestRoundedGrowthFactor checks that a growth factor that is not a power of
// two is rounded up consistently with the thresholds.
func TestRoundedGrowthFactor(t *testing.T) {
	h, err := uhash.NewInteger[int, int](uhash.WithGrowthFactor(3), uhash.WithShrinkLoad(0.2))
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		require.NoError(t, h.Set(i, i))
	}
	require.Equal(t, 32, h.Size())

	_, err = h.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, 32, h.Size(), "a remove right after growing must not shrink")
}

func TestCustomThresholds(t *testing.T) {
	h, err := uhash.NewInteger[int, int](
		uhash.WithGrowthLoad(0.5),
		uhash.WithShrinkLoad(0.1),
		uhash.WithGrowthFactor(4),
	)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, h.Set(i, i))
	}
	assert.Equal(t, 32, h.Size(), "half-full table of 8 grows by 4x")

	for i := 0; i < 4; i++ {
		_, err := h.Remove(i)
		require.NoError(t, err)
	}
	assert.Equal(t, 8, h.Size())
}
