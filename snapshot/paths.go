package snapshot

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Kind identifies the type of object stored under a key.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindFilter
	KindSet
)

const (
	// LenUUIDString is the length of the UUID string representation, per
	// https://www.rfc-editor.org/rfc/rfc9562.html#name-uuid-format
	LenUUIDString = 36

	DefaultPrefix = "v1/"

	V1FilterDir = "filters/"
	V1SetDir    = "sets/"

	V1FilterNameFmt = "%s.pbf"
	V1SetNameFmt    = "%s.cbor"
)

func (k Kind) String() string {
	switch k {
	case KindFilter:
		return "filter"
	case KindSet:
		return "set"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// KindPrefix returns the key prefix under which all objects of kind live.
func KindPrefix(prefix string, kind Kind) (string, error) {
	switch kind {
	case KindFilter:
		return prefix + V1FilterDir, nil
	case KindSet:
		return prefix + V1SetDir, nil
	default:
		return "", errors.Wrapf(ErrKindUnknown, "%v", kind)
	}
}

// ObjectPath returns the key for object id of the given kind:
//
//	{prefix}filters/{uuid}.pbf
//	{prefix}sets/{uuid}.cbor
func ObjectPath(prefix string, id uuid.UUID, kind Kind) (string, error) {
	dir, err := KindPrefix(prefix, kind)
	if err != nil {
		return "", err
	}
	switch kind {
	case KindFilter:
		return dir + fmt.Sprintf(V1FilterNameFmt, id), nil
	default:
		return dir + fmt.Sprintf(V1SetNameFmt, id), nil
	}
}

// ParseID returns the uuid that follows prefix in key, or uuid.Nil if there
// is none. The uuid may be followed by end of string, a '/' or a '.'.
func ParseID(prefix string, key string) uuid.UUID {
	i := strings.Index(key, prefix)
	if i == -1 {
		return uuid.Nil
	}
	rest := key[i+len(prefix):]
	if len(rest) < LenUUIDString {
		return uuid.Nil
	}
	if len(rest) > LenUUIDString && rest[LenUUIDString] != '/' && rest[LenUUIDString] != '.' {
		return uuid.Nil
	}
	id, err := uuid.Parse(rest[:LenUUIDString])
	if err != nil {
		return uuid.Nil
	}
	return id
}
