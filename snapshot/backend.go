package snapshot

import "context"

// Backend is a flat key value store for serialized snapshots.
//
// Get returns ErrNotFound for a missing key. List returns the keys that
// start with prefix in ascending order.
type Backend interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
