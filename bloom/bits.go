package bloom

// bitIndex maps a signed hash onto [0, mBits) as abs(h) mod mBits. The
// widening to int64 keeps abs(math.MinInt32) positive.
func bitIndex(h int32, mBits uint64) uint {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return uint(uint64(v) % mBits)
}

// wideBitIndex joins two hashes into one unsigned 64 bit value and maps it
// onto [0, mBits). It is used for arrays beyond narrowMBits.
func wideBitIndex(hi, lo int32, mBits uint64) uint {
	v := uint64(uint32(hi))<<32 | uint64(uint32(lo))
	return uint(v % mBits)
}

// bitIndexes returns the k bit positions selected by hashes. hashes holds k
// values for arrays up to narrowMBits and 2k values beyond.
func bitIndexes(hashes []int32, k int, mBits uint64) []uint {
	idx := make([]uint, k)
	if mBits <= narrowMBits {
		for i := range idx {
			idx[i] = bitIndex(hashes[i], mBits)
		}
		return idx
	}
	for i := range idx {
		idx[i] = wideBitIndex(hashes[2*i], hashes[2*i+1], mBits)
	}
	return idx
}

// hashesPerElement is the number of hash values bitIndexes needs.
func hashesPerElement(k int, mBits uint64) int {
	if mBits <= narrowMBits {
		return k
	}
	return 2 * k
}

// bytesFromWordsLSB0 renders the first mBits bits of words as bytes, bit i
// stored at byte i/8, bit i%8.
func bytesFromWordsLSB0(words []uint64, mBits uint64) []byte {
	out := make([]byte, BitsetBytes(mBits))
	for i := range out {
		out[i] = byte(words[i/8] >> (8 * (i % 8)))
	}
	return out
}

// wordsFromBytesLSB0 is the inverse of bytesFromWordsLSB0. Bits at or beyond
// mBits must be clear.
func wordsFromBytesLSB0(b []byte, mBits uint64) ([]uint64, error) {
	if uint64(len(b)) != BitsetBytes(mBits) {
		return nil, ErrBadRegionSize
	}
	if tail := mBits % 8; tail != 0 && b[len(b)-1]>>tail != 0 {
		return nil, ErrBadPadding
	}
	words := make([]uint64, (mBits+63)/64)
	for i, v := range b {
		words[i/8] |= uint64(v) << (8 * (i % 8))
	}
	return words, nil
}
