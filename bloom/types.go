package bloom

import (
	"errors"

	"github.com/forestrie/go-probset/hashgen"
)

const (
	// HeaderBytesV1 is the fixed header size for a V1 filter state.
	HeaderBytesV1 = 32

	MagicV1         = "PBF1"
	VersionV1 uint8 = 1

	// BitOrderLSB0 means bit 0 is the least-significant bit of byte 0.
	BitOrderLSB0 uint8 = 0

	// MaxK is the largest hash count a header can carry.
	MaxK = 255

	// MaxMBits bounds the bit array at 2^48 bits (32 TiB of bitset), well
	// inside what a u64 header field and a 64 bit Go slice can address.
	MaxMBits = uint64(1) << 48

	// narrowMBits is the largest bit array a single int32 hash can address,
	// since abs(h) <= 2^31. Larger arrays index with a pair of hashes.
	narrowMBits = uint64(1)<<31 + 1
)

var (
	ErrBadProbability = errors.New("bloom: false positive probability must be in (0,1)")
	ErrBadExpected    = errors.New("bloom: expected element count must be positive")
	ErrBadLoad        = errors.New("bloom: bits per element must be positive and finite")
	ErrBadK           = errors.New("bloom: hash count invalid")
	ErrBadMBits       = errors.New("bloom: mBits invalid")
	ErrMBitsOverflow  = errors.New("bloom: mBits overflows supported range")

	ErrBadRegionSize  = errors.New("bloom: region buffer size invalid")
	ErrNotInitialized = errors.New("bloom: header not initialized")
	ErrBadMagic       = errors.New("bloom: header magic invalid")
	ErrBadVersion     = errors.New("bloom: header version invalid")
	ErrBadBitOrder    = errors.New("bloom: header bitOrder unsupported")
	ErrBadPadding     = errors.New("bloom: bits set beyond mBits")

	ErrInsertedOverflow = errors.New("bloom: inserted count overflow")

	ErrAlgorithmMismatch = errors.New("bloom: state was built with a different digest algorithm")
	ErrShapeMismatch     = errors.New("bloom: state dimensions differ from the filter")
)

// HeaderV1 is the fixed size prefix of a serialized filter.
type HeaderV1 struct {
	BitOrder  uint8
	K         uint8
	Algorithm hashgen.Algorithm
	MBits     uint64
	Expected  uint64
	Inserted  uint64
}
