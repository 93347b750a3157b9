package snapshot

import (
	"bytes"
	"context"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

const boltBucket = "snapshots"

// BoltBackend keeps snapshots in a single bolt bucket.
type BoltBackend struct {
	db *bolt.DB
}

var _ Backend = (*BoltBackend)(nil)

// OpenBolt opens, creating if needed, the bolt database at path.
func OpenBolt(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot: open bolt %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "snapshot: create bucket")
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(key), data)
	})
}

func (b *BoltBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(boltBucket)).Get([]byte(key))
		if v == nil {
			return errors.Wrapf(ErrNotFound, "bolt key %s", key)
		}
		// v is only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

func (b *BoltBackend) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(boltBucket)).Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, err
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
