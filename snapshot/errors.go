package snapshot

import "github.com/pkg/errors"

var (
	ErrNotFound    = errors.New("snapshot: not found")
	ErrKindUnknown = errors.New("snapshot: unknown object kind")
)
