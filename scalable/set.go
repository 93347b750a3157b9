// Package scalable provides a set membership filter that grows without a
// capacity declared up front.
//
// A Set holds a sequence of fixed capacity Bloom filters that all target
// the same false positive probability. Inserts go to the last filter. When
// its estimated false positive probability reaches the target a new filter
// is appended, sized for 2^(initialExponent+generation) elements, so the
// capacity of each new filter doubles until it reaches the largest filter
// bloom can size for the target probability. From then on new filters are
// all of that size. Queries ask every filter and answer true on the first
// hit. Filters are never merged or removed.
package scalable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-probset/bloom"
	"github.com/forestrie/go-probset/hashgen"
	"github.com/forestrie/go-probset/probset"
)

// Set is a scalable Bloom filter. It is safe for concurrent use.
type Set[E any] struct {
	mu sync.RWMutex

	filters []*bloom.Filter[E]
	p       float64
	exp     uint
	// generation counts every filter allocated so far.
	generation uint
	inserted   uint64
	// limit is the largest filter capacity for p.
	limit uint64

	hashes *hashgen.Generator
	encode probset.Encoder[E]
	log    logger.Logger
}

var _ probset.ProbabilisticSet[string] = (*Set[string])(nil)

// New returns a set targeting false positive probability p, holding a single
// empty filter sized for 2^InitialExponent elements.
func New[E any](p float64, opts ...Option[E]) (*Set[E], error) {
	if !(p > 0 && p < 1) {
		return nil, ErrBadProbability
	}
	o := newOptions(opts...)
	if o.InitialExponent > MaxInitialExponent {
		return nil, ErrBadExponent
	}
	s, err := newSet(p, o, o.Algorithm)
	if err != nil {
		return nil, err
	}
	first, err := s.newFilter(s.capacityAt(0))
	if err != nil {
		return nil, err
	}
	s.filters = []*bloom.Filter[E]{first}
	s.generation = 1
	return s, nil
}

func newSet[E any](p float64, o Options[E], alg hashgen.Algorithm) (*Set[E], error) {
	if alg == hashgen.AlgorithmUnknown {
		alg = hashgen.DefaultAlgorithm
	}
	g, err := hashgen.New(alg)
	if err != nil {
		return nil, err
	}
	limit, err := bloom.CapacityForProbability(p)
	if err != nil {
		return nil, err
	}
	return &Set[E]{
		p:      p,
		exp:    o.InitialExponent,
		limit:  limit,
		hashes: g,
		encode: o.Encoder,
		log:    o.Log,
	}, nil
}

func (s *Set[E]) newFilter(capacity uint64) (*bloom.Filter[E], error) {
	return bloom.NewWithEstimates(s.p, capacity,
		bloom.WithGenerator[E](s.hashes),
		bloom.WithEncoder(s.encode))
}

// Put adds element to the active filter, then grows the set if that filter
// has reached the target probability.
//
// Growth never fails for lack of capacity. Should the next filter still fail
// to construct, the error is returned after the element has been added and
// growth is retried on the next Put.
func (s *Set[E]) Put(element E) error {
	data, err := s.encodeElement(element)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.filters[len(s.filters)-1]
	if err := active.PutBytes(data); err != nil {
		return err
	}
	s.inserted++

	if active.FalsePositiveProbability() < s.p {
		return nil
	}
	return s.grow()
}

// capacityAt returns the capacity of the filter allocated at generation gen,
// 2^(exp+gen) clamped to limit.
func (s *Set[E]) capacityAt(gen uint) uint64 {
	shift := s.exp + gen
	if shift >= 64 || uint64(1)<<shift > s.limit {
		return s.limit
	}
	return uint64(1) << shift
}

// grow appends the filter for the current generation. The caller holds the
// write lock.
func (s *Set[E]) grow() error {
	capacity := s.capacityAt(s.generation)
	next, err := s.newFilter(capacity)
	if err != nil {
		return fmt.Errorf("scalable: grow to %d elements: %w", capacity, err)
	}
	s.filters = append(s.filters, next)
	s.generation++

	if s.log != nil {
		s.log.Debugf("grow: generation=%d, capacity=%d, filters=%d, inserted=%d",
			s.generation, capacity, len(s.filters), s.inserted)
	}
	return nil
}

// MightContain reports whether any filter might contain element.
func (s *Set[E]) MightContain(element E) (bool, error) {
	data, err := s.encodeElement(element)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.filters {
		if f.MightContainBytes(data) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Set[E]) encodeElement(element E) ([]byte, error) {
	data, err := s.encode(element)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, probset.ErrInvalidElement) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", probset.ErrInvalidElement, err)
}

// Size returns the number of Put calls, duplicates included.
func (s *Set[E]) Size() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inserted
}

// FilterCount returns the number of filters allocated so far.
func (s *Set[E]) FilterCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.filters)
}

// Generation returns the generation the next filter will be allocated at.
func (s *Set[E]) Generation() uint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// TargetProbability returns the false positive probability every filter is
// sized for.
func (s *Set[E]) TargetProbability() float64 { return s.p }

// InitialExponent returns log2 of the first filter's capacity.
func (s *Set[E]) InitialExponent() uint { return s.exp }

// Algorithm returns the digest shared by all filters.
func (s *Set[E]) Algorithm() hashgen.Algorithm { return s.hashes.Algorithm() }

// FalsePositiveProbability estimates the probability that a query for an
// absent element answers true, 1 - prod(1 - p_i) over all filters.
func (s *Set[E]) FalsePositiveProbability() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	miss := 1.0
	for _, f := range s.filters {
		miss *= 1 - f.FalsePositiveProbability()
	}
	return 1 - miss
}

// FilterStats describes one filter of a set.
type FilterStats struct {
	ExpectedElements         uint64
	Inserted                 uint64
	BitSetSize               uint64
	HashCount                int
	FalsePositiveProbability float64
	FillRatio                float64
}

// Stats returns per filter statistics, oldest first.
func (s *Set[E]) Stats() []FilterStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make([]FilterStats, 0, len(s.filters))
	for _, f := range s.filters {
		stats = append(stats, FilterStats{
			ExpectedElements:         f.ExpectedElements(),
			Inserted:                 f.Size(),
			BitSetSize:               f.BitSetSize(),
			HashCount:                f.HashCount(),
			FalsePositiveProbability: f.FalsePositiveProbability(),
			FillRatio:                f.FillRatio(),
		})
	}
	return stats
}
