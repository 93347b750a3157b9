package bloom

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/forestrie/go-probset/hashgen"
)

// State is the persisted form of a Filter.
//
// HashCount and Algorithm may be zero, in which case the hash count is
// derived from BitArraySize and ExpectedElements and the digest is the one
// selected by the restoring options.
type State struct {
	BitArraySize     uint64            `cbor:"1,keyasint"`
	ExpectedElements uint64            `cbor:"2,keyasint"`
	InsertedCount    uint64            `cbor:"3,keyasint"`
	BitArray         []byte            `cbor:"4,keyasint"`
	HashCount        uint8             `cbor:"5,keyasint,omitempty"`
	Algorithm        hashgen.Algorithm `cbor:"6,keyasint,omitempty"`
}

// State returns a snapshot of the filter. The bit array is copied.
func (f *Filter[E]) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return State{
		BitArraySize:     f.mBits,
		ExpectedElements: f.expected,
		InsertedCount:    f.inserted,
		BitArray:         bytesFromWordsLSB0(f.bits.Bytes(), f.mBits),
		HashCount:        uint8(f.k),
		Algorithm:        f.gen.Algorithm(),
	}
}

// FromState restores a filter from st. Membership answers match the filter
// st was taken from provided the same encoder is used.
func FromState[E any](st State, opts ...Option[E]) (*Filter[E], error) {
	params, err := paramsForState(st)
	if err != nil {
		return nil, err
	}
	fallback := st.Algorithm
	if fallback == hashgen.AlgorithmUnknown {
		fallback = hashgen.DefaultAlgorithm
	}
	o, err := resolve(fallback, opts...)
	if err != nil {
		return nil, err
	}
	if st.Algorithm != hashgen.AlgorithmUnknown && o.Algorithm != st.Algorithm {
		return nil, ErrAlgorithmMismatch
	}
	words, err := wordsFromBytesLSB0(st.BitArray, st.BitArraySize)
	if err != nil {
		return nil, err
	}
	return &Filter[E]{
		bits:     bitset.FromWithLength(uint(params.MBits), words),
		mBits:    params.MBits,
		k:        params.K,
		expected: params.N,
		inserted: st.InsertedCount,
		gen:      o.Generator,
		encode:   o.Encoder,
	}, nil
}

func paramsForState(st State) (Params, error) {
	if st.HashCount == 0 {
		return ParamsForSize(st.BitArraySize, st.ExpectedElements)
	}
	params := Params{
		N:     st.ExpectedElements,
		K:     int(st.HashCount),
		MBits: st.BitArraySize,
	}
	if err := checkParams(params); err != nil {
		return Params{}, err
	}
	params.C = float64(params.MBits) / float64(params.N)
	return params, nil
}

// EncodeStateV1 serializes st as a V1 header followed by the bitset bytes.
func EncodeStateV1(st State) ([]byte, error) {
	if st.BitArraySize > MaxMBits {
		return nil, ErrMBitsOverflow
	}
	if uint64(len(st.BitArray)) != BitsetBytes(st.BitArraySize) {
		return nil, ErrBadRegionSize
	}
	k := st.HashCount
	if k == 0 {
		params, err := ParamsForSize(st.BitArraySize, st.ExpectedElements)
		if err != nil {
			return nil, err
		}
		k = uint8(params.K)
	}
	region := make([]byte, RegionBytesV1(st.BitArraySize))
	err := EncodeHeaderV1(region, HeaderV1{
		BitOrder:  BitOrderLSB0,
		K:         k,
		Algorithm: st.Algorithm,
		MBits:     st.BitArraySize,
		Expected:  st.ExpectedElements,
		Inserted:  st.InsertedCount,
	})
	if err != nil {
		return nil, err
	}
	copy(region[HeaderBytesV1:], st.BitArray)
	return region, nil
}

// DecodeStateV1 parses a region written by EncodeStateV1. The region must
// be exactly RegionBytesV1(mBits) long.
func DecodeStateV1(region []byte) (State, error) {
	h, ok, err := DecodeHeaderV1(region)
	if err != nil {
		return State{}, err
	}
	if !ok {
		return State{}, ErrNotInitialized
	}
	if uint64(len(region)) != RegionBytesV1(h.MBits) {
		return State{}, ErrBadRegionSize
	}
	bits := make([]byte, len(region)-HeaderBytesV1)
	copy(bits, region[HeaderBytesV1:])
	if _, err := wordsFromBytesLSB0(bits, h.MBits); err != nil {
		return State{}, err
	}
	return State{
		BitArraySize:     h.MBits,
		ExpectedElements: h.Expected,
		InsertedCount:    h.Inserted,
		BitArray:         bits,
		HashCount:        h.K,
		Algorithm:        h.Algorithm,
	}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler using the V1 format.
func (f *Filter[E]) MarshalBinary() ([]byte, error) {
	return EncodeStateV1(f.State())
}

// FromBinary restores a filter from a region written by MarshalBinary.
func FromBinary[E any](data []byte, opts ...Option[E]) (*Filter[E], error) {
	st, err := DecodeStateV1(data)
	if err != nil {
		return nil, err
	}
	return FromState(st, opts...)
}

// UnmarshalBinary reloads the bits and inserted count of f from a V1
// region. The region must describe a filter of the same bit array size,
// expected count and hash count, otherwise ErrShapeMismatch is returned and
// f is unchanged. Use FromBinary to restore a filter of any shape.
func (f *Filter[E]) UnmarshalBinary(data []byte) error {
	st, err := DecodeStateV1(data)
	if err != nil {
		return err
	}
	if st.BitArraySize != f.mBits || st.ExpectedElements != f.expected {
		return ErrShapeMismatch
	}
	params, err := paramsForState(st)
	if err != nil {
		return err
	}
	if params.K != f.k {
		return ErrShapeMismatch
	}
	if st.Algorithm != hashgen.AlgorithmUnknown && st.Algorithm != f.gen.Algorithm() {
		return ErrAlgorithmMismatch
	}
	words, err := wordsFromBytesLSB0(st.BitArray, st.BitArraySize)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.bits = bitset.FromWithLength(uint(f.mBits), words)
	f.inserted = st.InsertedCount
	return nil
}
