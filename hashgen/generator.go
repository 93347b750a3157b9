// Package hashgen derives k integer hash values for an element from a family
// of salted digests.
//
// For salt 0, 1, 2, ... the generator computes digest(salt || data) and
// slices each digest into big-endian signed 32 bit values until k values have
// been produced. A 16 byte digest such as MD5 therefore yields four values
// per salt. The salt is a single byte, so a family longer than 256 digests
// repeats.
package hashgen

import (
	"fmt"
	"hash"
	"sync"
)

// Generator produces salted digest hash families for a single algorithm.
//
// A Generator is safe for concurrent use. Each CreateHashes call takes an
// exclusive digest instance from a pool, so the reset, salt, data, sum
// sequence is never interleaved with another call.
type Generator struct {
	alg  Algorithm
	size int
	pool sync.Pool
}

// New returns a generator for alg. It fails with ErrDigestUnavailable if alg
// is not registered.
func New(alg Algorithm) (*Generator, error) {
	d, ok := digests[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrDigestUnavailable, alg)
	}
	g := &Generator{alg: alg, size: d.size}
	g.pool.New = func() any { return d.newHash() }
	return g, nil
}

// NewByName is New for a digest name accepted by Lookup.
func NewByName(name string) (*Generator, error) {
	alg, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(alg)
}

var defaultGenerator = func() *Generator {
	g, err := New(DefaultAlgorithm)
	if err != nil {
		panic(err)
	}
	return g
}()

// Default returns the shared generator for DefaultAlgorithm.
func Default() *Generator { return defaultGenerator }

// Algorithm returns the digest algorithm used by g.
func (g *Generator) Algorithm() Algorithm { return g.alg }

// CreateHashes returns count hash values for data. The result is nil when
// count is not positive. Empty data is permitted and yields a fixed family.
func (g *Generator) CreateHashes(data []byte, count int) []int32 {
	if count <= 0 {
		return nil
	}
	result := make([]int32, 0, count)

	d := g.pool.Get().(hash.Hash)
	defer g.pool.Put(d)

	var salt [1]byte
	sum := make([]byte, 0, g.size)
	for len(result) < count {
		d.Reset()
		d.Write(salt[:])
		d.Write(data)
		sum = d.Sum(sum[:0])

		for i := 0; i+4 <= len(sum) && len(result) < count; i += 4 {
			result = append(result, readI32BE(sum[i:i+4]))
		}
		salt[0]++
	}
	return result
}
