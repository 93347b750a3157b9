package probsettesting

import (
	"fmt"
	"math/rand"
	"testing"
)

// TestGenerator produces deterministic element streams. Members and Absent
// never overlap.
type TestGenerator struct {
	T      *testing.T
	rng    *rand.Rand
	prefix string
}

func NewTestGenerator(t *testing.T, cfg TestConfig) *TestGenerator {
	return &TestGenerator{
		T:      t,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		prefix: cfg.TestLabelPrefix,
	}
}

// Members returns n distinct strings.
func (g *TestGenerator) Members(n int) []string {
	return g.strings("member", n)
}

// Absent returns n distinct strings disjoint from any Members result.
func (g *TestGenerator) Absent(n int) []string {
	return g.strings("absent", n)
}

func (g *TestGenerator) strings(kind string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s/%s/%d/%08x", g.prefix, kind, i, g.rng.Uint32())
	}
	return out
}

// RandomBytes returns n random values of size bytes each. Values may repeat
// for small sizes.
func (g *TestGenerator) RandomBytes(n, size int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = make([]byte, size)
		g.rng.Read(out[i])
	}
	return out
}
