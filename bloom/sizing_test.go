package bloom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsForProbability(t *testing.T) {
	params, err := ParamsForProbability(0.001, 100000)
	require.NoError(t, err)
	require.Equal(t, 10, params.K)
	require.InDelta(t, 10/math.Ln2, params.C, 1e-12)
	require.Equal(t, uint64(1442696), params.MBits)
	require.Equal(t, uint64(100000), params.N)

	params, err = ParamsForProbability(0.01, 10000)
	require.NoError(t, err)
	require.Equal(t, 7, params.K)
	require.Equal(t, uint64(100989), params.MBits)

	params, err = ParamsForProbability(0.5, 1)
	require.NoError(t, err)
	require.Equal(t, 1, params.K)
	require.Equal(t, uint64(2), params.MBits)
}

func TestParamsBeyondUint32(t *testing.T) {
	params, err := ParamsForProbability(0.01, 1<<29)
	require.NoError(t, err)
	require.Greater(t, params.MBits, uint64(math.MaxUint32))
	require.LessOrEqual(t, params.MBits, MaxMBits)

	params, err = ParamsForSize(1<<40, 1<<36)
	require.NoError(t, err)
	require.Equal(t, uint64(1)<<40, params.MBits)
	require.Equal(t, 11, params.K)
}

func TestCapacityForProbability(t *testing.T) {
	for _, p := range []float64{0.5, 0.01, 0.001, 1e-9, math.Pow(2, -MaxK)} {
		n, err := CapacityForProbability(p)
		require.NoError(t, err, "p=%v", p)
		require.Greater(t, n, uint64(1)<<39, "p=%v", p)

		params, err := ParamsForProbability(p, n)
		require.NoError(t, err, "p=%v", p)
		require.LessOrEqual(t, params.MBits, MaxMBits)

		_, err = ParamsForProbability(p, n+16)
		require.ErrorIs(t, err, ErrMBitsOverflow, "p=%v", p)
	}

	_, err := CapacityForProbability(1)
	require.ErrorIs(t, err, ErrBadProbability)
	_, err = CapacityForProbability(math.Pow(2, -MaxK-1))
	require.ErrorIs(t, err, ErrBadK)
}

func TestParamsForProbabilityRejects(t *testing.T) {
	for _, p := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err := ParamsForProbability(p, 10)
		assert.ErrorIs(t, err, ErrBadProbability, "p=%v", p)
	}
	_, err := ParamsForProbability(0.01, 0)
	require.ErrorIs(t, err, ErrBadExpected)
}

func TestParamsForSize(t *testing.T) {
	params, err := ParamsForSize(1000, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), params.MBits)
	require.Equal(t, 7, params.K)
	require.InDelta(t, 10.0, params.C, 1e-12)

	// Too few bits per element rounds k to zero.
	_, err = ParamsForSize(10, 100)
	require.ErrorIs(t, err, ErrBadK)

	_, err = ParamsForSize(0, 100)
	require.ErrorIs(t, err, ErrBadMBits)
	_, err = ParamsForSize(100, 0)
	require.ErrorIs(t, err, ErrBadExpected)
	_, err = ParamsForSize(MaxMBits+1, 1)
	require.ErrorIs(t, err, ErrMBitsOverflow)
}

func TestParamsDirect(t *testing.T) {
	params, err := ParamsDirect(9.5, 10, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(95), params.MBits)
	require.Equal(t, 3, params.K)

	_, err = ParamsDirect(0, 10, 3)
	require.ErrorIs(t, err, ErrBadLoad)
	_, err = ParamsDirect(math.Inf(1), 10, 3)
	require.ErrorIs(t, err, ErrBadLoad)
	_, err = ParamsDirect(math.NaN(), 10, 3)
	require.ErrorIs(t, err, ErrBadLoad)
	_, err = ParamsDirect(8, 0, 3)
	require.ErrorIs(t, err, ErrBadExpected)
	_, err = ParamsDirect(8, 10, 0)
	require.ErrorIs(t, err, ErrBadK)
	_, err = ParamsDirect(8, 10, MaxK+1)
	require.ErrorIs(t, err, ErrBadK)
	_, err = ParamsDirect(float64(MaxMBits), 2, 1)
	require.ErrorIs(t, err, ErrMBitsOverflow)
}

func TestRegionBytesV1(t *testing.T) {
	require.Equal(t, uint64(0), BitsetBytes(0))
	require.Equal(t, uint64(1), BitsetBytes(1))
	require.Equal(t, uint64(1), BitsetBytes(8))
	require.Equal(t, uint64(2), BitsetBytes(9))
	require.Equal(t, uint64(HeaderBytesV1+2), RegionBytesV1(10))
	require.Equal(t, uint64(64), RegionBytesV1(256))
}

func TestFalsePositiveProbability(t *testing.T) {
	require.Equal(t, 0.0, FalsePositiveProbability(7, 0, 1000))

	// At n = m*ln2/k the estimate is exactly 2^-k.
	k := 7
	m := uint64(100000)
	n := uint64(float64(m) * math.Ln2 / float64(k))
	require.InDelta(t, math.Pow(0.5, float64(k)), FalsePositiveProbability(k, n, m), 1e-4)

	// Monotonic in n.
	prev := 0.0
	for n := uint64(0); n <= 2000; n += 100 {
		p := FalsePositiveProbability(k, n, 10000)
		require.GreaterOrEqual(t, p, prev)
		prev = p
	}
}
