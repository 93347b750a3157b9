package bloom

import (
	"github.com/forestrie/go-probset/hashgen"
	"github.com/forestrie/go-probset/probset"
)

type Options[E any] struct {
	// Algorithm selects the digest family. Zero means hashgen.DefaultAlgorithm,
	// or the algorithm recorded in a restored State.
	Algorithm hashgen.Algorithm

	// Generator, when set, takes precedence over Algorithm. Filters may share
	// a generator.
	Generator *hashgen.Generator

	// Encoder renders elements to bytes. Defaults to probset.DefaultEncoder.
	Encoder probset.Encoder[E]
}

type Option[E any] func(*Options[E])

func WithAlgorithm[E any](alg hashgen.Algorithm) Option[E] {
	return func(o *Options[E]) {
		o.Algorithm = alg
	}
}

// WithGenerator shares g between filters. It takes precedence over
// WithAlgorithm.
func WithGenerator[E any](g *hashgen.Generator) Option[E] {
	return func(o *Options[E]) {
		o.Generator = g
	}
}

func WithEncoder[E any](enc probset.Encoder[E]) Option[E] {
	return func(o *Options[E]) {
		o.Encoder = enc
	}
}

// resolve applies opts and fills in the defaults. fallback is the algorithm
// used when neither a generator nor an algorithm was given.
func resolve[E any](fallback hashgen.Algorithm, opts ...Option[E]) (Options[E], error) {
	var o Options[E]
	for _, opt := range opts {
		opt(&o)
	}
	if o.Encoder == nil {
		o.Encoder = probset.DefaultEncoder[E]()
	}
	if o.Generator != nil {
		o.Algorithm = o.Generator.Algorithm()
		return o, nil
	}
	if o.Algorithm == hashgen.AlgorithmUnknown {
		o.Algorithm = fallback
	}
	if o.Algorithm == hashgen.DefaultAlgorithm {
		o.Generator = hashgen.Default()
		return o, nil
	}
	g, err := hashgen.New(o.Algorithm)
	if err != nil {
		return Options[E]{}, err
	}
	o.Generator = g
	return o, nil
}
