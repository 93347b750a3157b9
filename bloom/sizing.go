package bloom

import "math"

// Params are the dimensions of a filter.
type Params struct {
	// C is the number of bits per expected element.
	C float64
	// N is the expected element count.
	N uint64
	// K is the number of hash values per element.
	K int
	// MBits is the bit array length.
	MBits uint64
}

// ParamsForProbability sizes a filter for false positive probability p at n
// elements:
//
//	k = ceil(-log2(p))
//	c = k / ln(2)
//	m = ceil(c * n)
func ParamsForProbability(p float64, n uint64) (Params, error) {
	if !(p > 0 && p < 1) {
		return Params{}, ErrBadProbability
	}
	if n == 0 {
		return Params{}, ErrBadExpected
	}
	k := math.Ceil(-math.Log2(p))
	return ParamsDirect(k/math.Ln2, n, int(k))
}

// CapacityForProbability returns the largest n for which
// ParamsForProbability(p, n) fits within MaxMBits.
func CapacityForProbability(p float64) (uint64, error) {
	params, err := ParamsForProbability(p, 1)
	if err != nil {
		return 0, err
	}
	n := uint64(float64(MaxMBits) / params.C)
	for n > 1 {
		if _, err := ParamsForProbability(p, n); err == nil {
			break
		}
		n--
	}
	return n, nil
}

// ParamsForSize derives the hash count for an m bit array holding n
// elements, k = round(m/n * ln(2)). MBits is m exactly.
func ParamsForSize(mBits uint64, n uint64) (Params, error) {
	if mBits == 0 {
		return Params{}, ErrBadMBits
	}
	if n == 0 {
		return Params{}, ErrBadExpected
	}
	if mBits > MaxMBits {
		return Params{}, ErrMBitsOverflow
	}
	c := float64(mBits) / float64(n)
	k := int(math.Round(c * math.Ln2))
	if err := CheckK(k); err != nil {
		return Params{}, err
	}
	return Params{C: c, N: n, K: k, MBits: mBits}, nil
}

// ParamsDirect returns the parameters for c bits per element, n elements and
// k hashes, with m = ceil(c * n).
func ParamsDirect(c float64, n uint64, k int) (Params, error) {
	if !(c > 0) || math.IsInf(c, 0) {
		return Params{}, ErrBadLoad
	}
	if n == 0 {
		return Params{}, ErrBadExpected
	}
	if err := CheckK(k); err != nil {
		return Params{}, err
	}
	m := math.Ceil(c * float64(n))
	if m > float64(MaxMBits) {
		return Params{}, ErrMBitsOverflow
	}
	if m < 1 {
		return Params{}, ErrBadMBits
	}
	return Params{C: c, N: n, K: k, MBits: uint64(m)}, nil
}

// CheckK validates a hash count.
func CheckK(k int) error {
	if k < 1 || k > MaxK {
		return ErrBadK
	}
	return nil
}

// BitsetBytes returns ceil(mBits/8).
func BitsetBytes(mBits uint64) uint64 {
	return (mBits + 7) / 8
}

// RegionBytesV1 returns the serialized size of a filter with mBits bits:
//
//	HeaderBytesV1 + ceil(mBits/8)
func RegionBytesV1(mBits uint64) uint64 {
	return HeaderBytesV1 + BitsetBytes(mBits)
}

// FalsePositiveProbability estimates the false positive rate of an mBits
// filter using k hashes after n inserts:
//
//	(1 - e^(-k*n/m))^k
func FalsePositiveProbability(k int, n uint64, mBits uint64) float64 {
	return math.Pow(1-math.Exp(-float64(k)*float64(n)/float64(mBits)), float64(k))
}
