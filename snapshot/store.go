// Package snapshot persists filter and set state in a local key value store.
package snapshot

import (
	"context"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/forestrie/go-probset/bloom"
	"github.com/forestrie/go-probset/scalable"
)

// Store reads and writes serialized filters and sets through a Backend.
// Filters use the binary V1 format, sets use CBOR.
type Store struct {
	log     logger.Logger
	backend Backend
	prefix  string
}

// NewStore returns a store writing under DefaultPrefix unless WithPrefix is
// given.
func NewStore(log logger.Logger, backend Backend, opts ...StoreOption) *Store {
	o := StoreOptions{Prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{log: log, backend: backend, prefix: o.Prefix}
}

// Prefix returns the key prefix all objects are stored under.
func (s *Store) Prefix() string { return s.prefix }

// SaveFilter writes st under id, replacing any previous snapshot.
func (s *Store) SaveFilter(ctx context.Context, id uuid.UUID, st bloom.State) error {
	data, err := bloom.EncodeStateV1(st)
	if err != nil {
		return errors.Wrapf(err, "snapshot: encode filter %s", id)
	}
	return s.put(ctx, id, KindFilter, data)
}

// LoadFilter reads the filter state saved under id. A missing snapshot is
// ErrNotFound.
func (s *Store) LoadFilter(ctx context.Context, id uuid.UUID) (bloom.State, error) {
	data, err := s.get(ctx, id, KindFilter)
	if err != nil {
		return bloom.State{}, err
	}
	st, err := bloom.DecodeStateV1(data)
	if err != nil {
		return bloom.State{}, errors.Wrapf(err, "snapshot: decode filter %s", id)
	}
	return st, nil
}

// SaveSet writes st under id, replacing any previous snapshot.
func (s *Store) SaveSet(ctx context.Context, id uuid.UUID, st scalable.State) error {
	data, err := scalable.MarshalState(st)
	if err != nil {
		return errors.Wrapf(err, "snapshot: encode set %s", id)
	}
	return s.put(ctx, id, KindSet, data)
}

// LoadSet reads the set state saved under id.
func (s *Store) LoadSet(ctx context.Context, id uuid.UUID) (scalable.State, error) {
	data, err := s.get(ctx, id, KindSet)
	if err != nil {
		return scalable.State{}, err
	}
	st, err := scalable.UnmarshalState(data)
	if err != nil {
		return scalable.State{}, errors.Wrapf(err, "snapshot: decode set %s", id)
	}
	return st, nil
}

// LoadSets loads several sets concurrently. The result is in the order of
// ids. The first failure cancels the remaining loads.
func (s *Store) LoadSets(ctx context.Context, ids []uuid.UUID) ([]scalable.State, error) {
	states := make([]scalable.State, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			st, err := s.LoadSet(gctx, id)
			if err != nil {
				return err
			}
			states[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}

// List returns the ids of all stored objects of kind, in key order. Keys
// that do not carry a uuid are skipped.
func (s *Store) List(ctx context.Context, kind Kind) ([]uuid.UUID, error) {
	prefix, err := KindPrefix(s.prefix, kind)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys, err := s.backend.List(ctx, prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot: list %s", prefix)
	}
	ids := make([]uuid.UUID, 0, len(keys))
	for _, key := range keys {
		id := ParseID(prefix, key)
		if id == uuid.Nil {
			s.log.Debugf("List: skipping key %s", key)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Store) put(ctx context.Context, id uuid.UUID, kind Kind, data []byte) error {
	key, err := ObjectPath(s.prefix, id, kind)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.backend.Put(ctx, key, data); err != nil {
		return errors.Wrapf(err, "snapshot: put %s", key)
	}
	s.log.Infof("saved %v %s: %d bytes", kind, key, len(data))
	return nil
}

func (s *Store) get(ctx context.Context, id uuid.UUID, kind Kind) ([]byte, error) {
	key, err := ObjectPath(s.prefix, id, kind)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot: get %s", key)
	}
	s.log.Debugf("loaded %v %s: %d bytes", kind, key, len(data))
	return data, nil
}
