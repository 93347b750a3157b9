package bloom

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/forestrie/go-probset/hashgen"
	"github.com/forestrie/go-probset/probset"
)

// Filter is a fixed capacity Bloom filter over elements of type E.
//
// The bit array length, expected count, hash count and digest are fixed at
// construction. Put sets bits and never clears them. A Filter is safe for
// concurrent use.
type Filter[E any] struct {
	mu       sync.RWMutex
	bits     *bitset.BitSet
	mBits    uint64
	k        int
	expected uint64
	inserted uint64
	gen      *hashgen.Generator
	encode   probset.Encoder[E]
}

var _ probset.ProbabilisticSet[string] = (*Filter[string])(nil)

// NewWithEstimates returns a filter sized for false positive probability p
// once n elements have been inserted.
func NewWithEstimates[E any](p float64, n uint64, opts ...Option[E]) (*Filter[E], error) {
	params, err := ParamsForProbability(p, n)
	if err != nil {
		return nil, err
	}
	return New(params, opts...)
}

// NewWithSize returns a filter with an mBits bit array expecting n elements.
func NewWithSize[E any](mBits uint64, n uint64, opts ...Option[E]) (*Filter[E], error) {
	params, err := ParamsForSize(mBits, n)
	if err != nil {
		return nil, err
	}
	return New(params, opts...)
}

// NewWithParams returns a filter using c bits per element for n elements and
// k hashes per element.
func NewWithParams[E any](c float64, n uint64, k int, opts ...Option[E]) (*Filter[E], error) {
	params, err := ParamsDirect(c, n, k)
	if err != nil {
		return nil, err
	}
	return New(params, opts...)
}

// New returns an empty filter with the given dimensions.
func New[E any](params Params, opts ...Option[E]) (*Filter[E], error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	o, err := resolve(hashgen.DefaultAlgorithm, opts...)
	if err != nil {
		return nil, err
	}
	return &Filter[E]{
		bits:     bitset.New(uint(params.MBits)),
		mBits:    params.MBits,
		k:        params.K,
		expected: params.N,
		gen:      o.Generator,
		encode:   o.Encoder,
	}, nil
}

func checkParams(params Params) error {
	if params.MBits == 0 {
		return ErrBadMBits
	}
	if params.MBits > MaxMBits {
		return ErrMBitsOverflow
	}
	if params.N == 0 {
		return ErrBadExpected
	}
	return CheckK(params.K)
}

// Put adds element to the filter. Unencodable elements fail with
// probset.ErrInvalidElement and leave the filter untouched.
func (f *Filter[E]) Put(element E) error {
	data, err := f.encodeElement(element)
	if err != nil {
		return err
	}
	return f.PutBytes(data)
}

// MightContain reports false if element was definitely never added.
func (f *Filter[E]) MightContain(element E) (bool, error) {
	data, err := f.encodeElement(element)
	if err != nil {
		return false, err
	}
	return f.MightContainBytes(data), nil
}

// PutBytes adds an already encoded element.
func (f *Filter[E]) PutBytes(data []byte) error {
	idx := f.indexes(data)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inserted == math.MaxUint64 {
		return ErrInsertedOverflow
	}
	for _, i := range idx {
		f.bits.Set(i)
	}
	f.inserted++
	return nil
}

// MightContainBytes is MightContain for an already encoded element.
func (f *Filter[E]) MightContainBytes(data []byte) bool {
	idx := f.indexes(data)

	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, i := range idx {
		if !f.bits.Test(i) {
			return false
		}
	}
	return true
}

func (f *Filter[E]) indexes(data []byte) []uint {
	hashes := f.gen.CreateHashes(data, hashesPerElement(f.k, f.mBits))
	return bitIndexes(hashes, f.k, f.mBits)
}

func (f *Filter[E]) encodeElement(element E) ([]byte, error) {
	data, err := f.encode(element)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, probset.ErrInvalidElement) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", probset.ErrInvalidElement, err)
}

// Size returns the number of Put calls, duplicates included.
func (f *Filter[E]) Size() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.inserted
}

// FalsePositiveProbability estimates the current false positive rate from
// the number of inserts so far.
func (f *Filter[E]) FalsePositiveProbability() float64 {
	f.mu.RLock()
	n := f.inserted
	f.mu.RUnlock()
	return FalsePositiveProbability(f.k, n, f.mBits)
}

// FillRatio returns the fraction of bits set.
func (f *Filter[E]) FillRatio() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return float64(f.bits.Count()) / float64(f.mBits)
}

// HashCount returns the number of bit positions set per element.
func (f *Filter[E]) HashCount() int { return f.k }

// BitSetSize returns the bit array length.
func (f *Filter[E]) BitSetSize() uint64 { return f.mBits }

// ExpectedElements returns the element count the filter was sized for.
func (f *Filter[E]) ExpectedElements() uint64 { return f.expected }

// Algorithm returns the digest used to hash elements.
func (f *Filter[E]) Algorithm() hashgen.Algorithm { return f.gen.Algorithm() }
