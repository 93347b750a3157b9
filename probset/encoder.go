package probset

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrInvalidElement = errors.New("probset: invalid element")

// Encoder converts an element to the bytes that are hashed. Encoders must be
// deterministic and must fail with an error wrapping ErrInvalidElement for
// absent elements.
type Encoder[E any] func(element E) ([]byte, error)

// StringEncoder encodes s as its UTF-8 bytes.
func StringEncoder(s string) ([]byte, error) {
	return []byte(s), nil
}

// BytesEncoder passes b through. A nil slice is an absent element; an empty
// non-nil slice is valid.
func BytesEncoder(b []byte) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil byte slice", ErrInvalidElement)
	}
	return b, nil
}

// DefaultEncoder returns the encoder used when none is configured.
//
// Nil values (nil interfaces, pointers, maps, slices, channels and funcs) are
// rejected. Strings and byte slices are used as-is, fmt.Stringer values via
// String(), and anything else via fmt.Sprint. Text is hashed as UTF-8.
func DefaultEncoder[E any]() Encoder[E] {
	return func(element E) ([]byte, error) {
		return encodeAny(element)
	}
}

func encodeAny(v any) ([]byte, error) {
	if isNil(v) {
		return nil, fmt.Errorf("%w: nil %T", ErrInvalidElement, v)
	}
	switch e := v.(type) {
	case string:
		return []byte(e), nil
	case []byte:
		return e, nil
	case fmt.Stringer:
		return []byte(e.String()), nil
	default:
		return []byte(fmt.Sprint(e)), nil
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
