package scalable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-probset/bloom"
	"github.com/forestrie/go-probset/hashgen"
)

func grownSet(t *testing.T, n int, opts ...Option[string]) *Set[string] {
	t.Helper()
	s, err := New(0.01, opts...)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, s.Put(fmt.Sprintf("value-%d", i)))
	}
	return s
}

func TestStateRoundTrip(t *testing.T) {
	s := grownSet(t, 500, WithAlgorithm[string](hashgen.SHA1), WithInitialExponent[string](3))
	st := s.State()
	require.Equal(t, 0.01, st.TargetProbability)
	require.Equal(t, uint8(3), st.InitialExponent)
	require.Equal(t, uint64(s.Generation()), st.Generation)
	require.Equal(t, uint64(500), st.InsertedCount)
	require.Len(t, st.Filters, s.FilterCount())

	data, err := MarshalState(st)
	require.NoError(t, err)
	// Deterministic encoding.
	again, err := s.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, data, again)

	decoded, err := UnmarshalState(data)
	require.NoError(t, err)
	require.Equal(t, st, decoded)

	restored, err := FromState[string](decoded)
	require.NoError(t, err)
	require.Equal(t, s.Size(), restored.Size())
	require.Equal(t, s.FilterCount(), restored.FilterCount())
	require.Equal(t, s.Generation(), restored.Generation())
	require.Equal(t, uint(3), restored.InitialExponent())
	require.Equal(t, hashgen.SHA1, restored.Algorithm())
	require.Equal(t, s.FalsePositiveProbability(), restored.FalsePositiveProbability())

	for i := 0; i < 500; i++ {
		ok, err := restored.MightContain(fmt.Sprintf("value-%d", i))
		require.NoError(t, err)
		require.True(t, ok)
	}
	for i := 0; i < 1000; i++ {
		query := fmt.Sprintf("query-%d", i)
		a, err := s.MightContain(query)
		require.NoError(t, err)
		b, err := restored.MightContain(query)
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestRestoredSetKeepsGrowing(t *testing.T) {
	s := grownSet(t, 100)
	restored, err := FromState[string](s.State())
	require.NoError(t, err)

	for i := 0; i < 400; i++ {
		require.NoError(t, s.Put(fmt.Sprintf("more-%d", i)))
		require.NoError(t, restored.Put(fmt.Sprintf("more-%d", i)))
	}
	require.Equal(t, s.FilterCount(), restored.FilterCount())
	require.Equal(t, s.State(), restored.State())
}

func TestFromStateRejects(t *testing.T) {
	good := grownSet(t, 100).State()
	require.Greater(t, len(good.Filters), 1)

	check := func(name string, mutate func(st *State)) {
		t.Run(name, func(t *testing.T) {
			st := good
			st.Filters = append([]bloom.State(nil), good.Filters...)
			mutate(&st)
			_, err := FromState[string](st)
			require.ErrorIs(t, err, ErrBadState)
		})
	}
	check("probability", func(st *State) { st.TargetProbability = 0 })
	check("exponent", func(st *State) { st.InitialExponent = MaxInitialExponent + 1 })
	check("empty", func(st *State) { st.Filters = nil })
	check("generation", func(st *State) { st.Generation++ })
	check("inserted", func(st *State) { st.InsertedCount++ })
	check("algorithm", func(st *State) { st.Filters[1].Algorithm = hashgen.XXH64 })
	check("filter", func(st *State) { st.Filters[0].BitArray = st.Filters[0].BitArray[:1] })

	_, err := FromState(good, WithAlgorithm[string](hashgen.SHA256))
	require.ErrorIs(t, err, bloom.ErrAlgorithmMismatch)
}

func TestUnmarshalStateRejects(t *testing.T) {
	_, err := UnmarshalState([]byte{0xff, 0x00})
	require.ErrorIs(t, err, ErrBadState)

	// Map with an unknown key 9.
	_, err = UnmarshalState([]byte{0xa1, 0x09, 0x01})
	require.ErrorIs(t, err, ErrBadState)

	// Duplicate key 3.
	_, err = UnmarshalState([]byte{0xa2, 0x03, 0x01, 0x03, 0x02})
	require.ErrorIs(t, err, ErrBadState)
}
