package bloom

/*

# Fixed capacity Bloom filters

A Filter is a bit array of m bits and a hash count k. Put computes k salted
digest hashes for the encoded element and sets bit abs(h) mod m for each.
MightContain tests the same bits and answers false on the first clear one.

- If the filter says "definitely not present", the element was never added.
- If the filter says "maybe present", it may or may not have been added
  (false positives are possible, false negatives are not).

## Sizing

Three constructors cover the usual ways of describing a filter:

	NewWithEstimates(p, n)   k = ceil(-log2 p), c = k/ln2, m = ceil(c*n)
	NewWithSize(m, n)        c = m/n, k = round(c*ln2)
	NewWithParams(c, n, k)   m = ceil(c*n)

The estimated false positive probability after n inserts is

	(1 - e^(-k*n/m))^k

## Serialized layout

	+----------------------+  32B header
	| HeaderV1             |  magic "PBF1", version, bitOrder, k, algorithm,
	|                      |  mBits, expected, inserted (u64 big endian)
	+----------------------+  ceil(mBits/8) bytes
	| bitset               |
	+----------------------+

Bit i lives in byte i/8 at bit position i%8 (LSB0). Bits beyond mBits in the
final byte are zero.

## API versioning: why the `V1` suffix exists

EncodeStateV1, DecodeStateV1 and the header functions implement format
version 1. An incompatible layout or hash scheme gets a V2 side-by-side
rather than silently breaking persisted filters.

*/
