package scalable

import "errors"

var (
	ErrBadProbability = errors.New("scalable: target false positive probability must be in (0,1)")
	ErrBadExponent    = errors.New("scalable: initial capacity exponent out of range")
	ErrBadState       = errors.New("scalable: state invalid")
)
