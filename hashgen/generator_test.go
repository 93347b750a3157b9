package hashgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHashesMD5KnownAnswer(t *testing.T) {
	g, err := New(MD5)
	require.NoError(t, err)

	// md5(0x00 || "apple") = f2deafcf 01463cd0 5454aaf7 2ef24f0b
	// md5(0x01 || "apple") = 6611e9db 6b63d39f ...
	got := g.CreateHashes([]byte("apple"), 6)
	require.Equal(t, []int32{-220287025, 21380304, 1414834935, 787631883, 1712450011, 1801704351}, got)

	got = g.CreateHashes(nil, 2)
	require.Equal(t, []int32{-1816623699, -32661367}, got)
}

func TestCreateHashesCount(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			g, err := New(alg)
			require.NoError(t, err)

			for _, count := range []int{1, 3, 4, 5, 17, 40} {
				hashes := g.CreateHashes([]byte("element"), count)
				assert.Len(t, hashes, count)
			}
			assert.Nil(t, g.CreateHashes([]byte("element"), 0))
			assert.Nil(t, g.CreateHashes([]byte("element"), -1))
		})
	}
}

func TestCreateHashesDeterministic(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			a, err := New(alg)
			require.NoError(t, err)
			b, err := New(alg)
			require.NoError(t, err)

			data := []byte("the quick brown fox")
			require.Equal(t, a.CreateHashes(data, 12), b.CreateHashes(data, 12))
			require.Equal(t, a.CreateHashes(data, 12), a.CreateHashes(data, 12))
		})
	}
}

func TestCreateHashesPrefixStable(t *testing.T) {
	g := Default()
	long := g.CreateHashes([]byte("prefix"), 10)
	short := g.CreateHashes([]byte("prefix"), 3)
	require.Equal(t, long[:3], short)
}

// Values from successive salts must come from independent digests.
func TestCreateHashesSaltsDiffer(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			g, err := New(alg)
			require.NoError(t, err)

			per := alg.DigestSize() / 4
			hashes := g.CreateHashes([]byte("salted"), per*2)
			assert.NotEqual(t, hashes[:per], hashes[per:])
		})
	}
}

func TestCreateHashesDistinctInputs(t *testing.T) {
	g := Default()
	assert.NotEqual(t, g.CreateHashes([]byte("apple"), 4), g.CreateHashes([]byte("banana"), 4))
}

func TestCreateHashesConcurrent(t *testing.T) {
	g := Default()
	want := g.CreateHashes([]byte("shared"), 9)

	var wg sync.WaitGroup
	errs := make(chan []int32, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got := g.CreateHashes([]byte("shared"), 9)
				if len(got) != len(want) || got[0] != want[0] || got[8] != want[8] {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("interleaved digest produced %v, want %v", got, want)
	}
}

func TestNewUnavailable(t *testing.T) {
	_, err := New(AlgorithmUnknown)
	require.ErrorIs(t, err, ErrDigestUnavailable)

	_, err = New(Algorithm(200))
	require.ErrorIs(t, err, ErrDigestUnavailable)

	_, err = NewByName("WHIRLPOOL")
	require.ErrorIs(t, err, ErrDigestUnavailable)
}

func TestLookup(t *testing.T) {
	cases := []struct {
		name string
		want Algorithm
	}{
		{"MD5", MD5},
		{"md5", MD5},
		{"SHA-1", SHA1},
		{"sha1", SHA1},
		{"SHA256", SHA256},
		{"xxh64", XXH64},
		{"Murmur3-128", Murmur3x128},
	}
	for _, c := range cases {
		got, err := Lookup(c.name)
		require.NoError(t, err, c.name)
		assert.Equal(t, c.want, got, c.name)
	}

	g, err := NewByName("sha-256")
	require.NoError(t, err)
	assert.Equal(t, SHA256, g.Algorithm())
}

func TestAlgorithmString(t *testing.T) {
	assert.Equal(t, "MD5", MD5.String())
	assert.Equal(t, "MURMUR3-128", Murmur3x128.String())
	assert.Equal(t, "Algorithm(99)", Algorithm(99).String())
	assert.False(t, Algorithm(99).Available())
	assert.Equal(t, 0, Algorithm(99).DigestSize())
	assert.Equal(t, []Algorithm{MD5, SHA1, SHA256, XXH64, Murmur3x128}, Algorithms())
}
