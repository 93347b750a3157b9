package scalable

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/forestrie/go-probset/bloom"
	"github.com/forestrie/go-probset/hashgen"
)

// State is the persisted form of a Set. Filters are oldest first.
type State struct {
	TargetProbability float64       `cbor:"1,keyasint"`
	InitialExponent   uint8         `cbor:"2,keyasint"`
	Generation        uint64        `cbor:"3,keyasint"`
	InsertedCount     uint64        `cbor:"4,keyasint"`
	Filters           []bloom.State `cbor:"5,keyasint"`
}

var (
	encMode = func() cbor.EncMode {
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			panic(err)
		}
		return em
	}()
	decMode = func() cbor.DecMode {
		dm, err := cbor.DecOptions{
			DupMapKey:         cbor.DupMapKeyEnforcedAPF,
			ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		}.DecMode()
		if err != nil {
			panic(err)
		}
		return dm
	}()
)

// MarshalState encodes st as deterministic CBOR.
func MarshalState(st State) ([]byte, error) {
	return encMode.Marshal(st)
}

// UnmarshalState decodes CBOR produced by MarshalState. Duplicate or unknown
// keys are rejected.
func UnmarshalState(data []byte) (State, error) {
	var st State
	if err := decMode.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrBadState, err)
	}
	return st, nil
}

// State returns a snapshot of the set.
func (s *Set[E]) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{
		TargetProbability: s.p,
		InitialExponent:   uint8(s.exp),
		Generation:        uint64(s.generation),
		InsertedCount:     s.inserted,
		Filters:           make([]bloom.State, 0, len(s.filters)),
	}
	for _, f := range s.filters {
		st.Filters = append(st.Filters, f.State())
	}
	return st
}

// MarshalBinary implements encoding.BinaryMarshaler using MarshalState.
func (s *Set[E]) MarshalBinary() ([]byte, error) {
	return MarshalState(s.State())
}

// FromState restores a set. The initial exponent and algorithm recorded in
// st take precedence over WithInitialExponent and WithAlgorithm; an
// algorithm option that disagrees with st is an error.
func FromState[E any](st State, opts ...Option[E]) (*Set[E], error) {
	if !(st.TargetProbability > 0 && st.TargetProbability < 1) {
		return nil, fmt.Errorf("%w: %v", ErrBadState, ErrBadProbability)
	}
	if st.InitialExponent > MaxInitialExponent {
		return nil, fmt.Errorf("%w: %v", ErrBadState, ErrBadExponent)
	}
	if len(st.Filters) == 0 {
		return nil, fmt.Errorf("%w: no filters", ErrBadState)
	}
	if st.Generation != uint64(len(st.Filters)) {
		return nil, fmt.Errorf("%w: generation %d with %d filters", ErrBadState, st.Generation, len(st.Filters))
	}

	alg := st.Filters[0].Algorithm
	var total uint64
	for i, fs := range st.Filters {
		if fs.Algorithm != alg {
			return nil, fmt.Errorf("%w: filter %d algorithm %v, want %v", ErrBadState, i, fs.Algorithm, alg)
		}
		total += fs.InsertedCount
	}
	if total != st.InsertedCount {
		return nil, fmt.Errorf("%w: inserted %d, filters hold %d", ErrBadState, st.InsertedCount, total)
	}

	o := newOptions(opts...)
	if alg == hashgen.AlgorithmUnknown {
		alg = o.Algorithm
	} else if o.Algorithm != hashgen.AlgorithmUnknown && o.Algorithm != alg {
		return nil, bloom.ErrAlgorithmMismatch
	}
	o.InitialExponent = uint(st.InitialExponent)

	s, err := newSet(st.TargetProbability, o, alg)
	if err != nil {
		return nil, err
	}
	s.filters = make([]*bloom.Filter[E], 0, len(st.Filters))
	for i, fs := range st.Filters {
		f, err := bloom.FromState(fs, bloom.WithGenerator[E](s.hashes), bloom.WithEncoder(s.encode))
		if err != nil {
			return nil, fmt.Errorf("%w: filter %d: %w", ErrBadState, i, err)
		}
		s.filters = append(s.filters, f)
	}
	s.generation = uint(st.Generation)
	s.inserted = st.InsertedCount
	return s, nil
}
