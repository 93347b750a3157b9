// Package probset defines the capability shared by the fixed and scalable
// Bloom filters, and the element encoding they consume.
//
// A ProbabilisticSet never reports a false negative: after Put(e) succeeds,
// MightContain(e) is true for the lifetime of the set. It may report false
// positives. Elements can be neither removed nor enumerated.
package probset

// ProbabilisticSet is implemented by bloom.Filter and scalable.Set.
type ProbabilisticSet[E any] interface {
	// Put records element. It fails with ErrInvalidElement, without
	// modifying the set, if element cannot be encoded.
	Put(element E) error

	// MightContain reports false if element was definitely never added.
	MightContain(element E) (bool, error)

	// Size returns the number of Put calls, counting duplicates.
	Size() uint64
}
