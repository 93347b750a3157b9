package scalable

import (
	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-probset/hashgen"
	"github.com/forestrie/go-probset/probset"
)

const (
	// DefaultInitialExponent sizes the first filter for 2^4 elements.
	DefaultInitialExponent = 4

	// MaxInitialExponent is the largest exponent whose first filter fits
	// bloom.MaxMBits for every probability bloom accepts. At 255 hashes a
	// filter needs under 2^9 bits per element, and 2^(39+9) = 2^48.
	MaxInitialExponent = 39
)

type Options[E any] struct {
	InitialExponent uint
	Algorithm       hashgen.Algorithm
	Encoder         probset.Encoder[E]
	// Log, when set, receives a debug line for each growth step.
	Log logger.Logger
}

type Option[E any] func(*Options[E])

func WithInitialExponent[E any](exp uint) Option[E] {
	return func(o *Options[E]) {
		o.InitialExponent = exp
	}
}

func WithAlgorithm[E any](alg hashgen.Algorithm) Option[E] {
	return func(o *Options[E]) {
		o.Algorithm = alg
	}
}

func WithEncoder[E any](enc probset.Encoder[E]) Option[E] {
	return func(o *Options[E]) {
		o.Encoder = enc
	}
}

// WithLogger enables a debug line for each growth step.
func WithLogger[E any](log logger.Logger) Option[E] {
	return func(o *Options[E]) {
		o.Log = log
	}
}

func newOptions[E any](opts ...Option[E]) Options[E] {
	o := Options[E]{InitialExponent: DefaultInitialExponent}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Encoder == nil {
		o.Encoder = probset.DefaultEncoder[E]()
	}
	return o
}
