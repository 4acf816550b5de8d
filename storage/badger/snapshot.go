// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/finanswer/core"
	"github.com/poiesic/finanswer/storage"
)

// SnapshotStore implements storage.SnapshotStore for BadgerDB.
type SnapshotStore struct {
	backend *Backend
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a snapshot store on the given backend.
//
// Returns storage.SnapshotStore interface to enforce abstraction.
func NewSnapshotStore(backend *Backend) storage.SnapshotStore {
	return &SnapshotStore{backend: backend}
}

// SaveSnapshot validates and persists a snapshot.
func (r *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot *core.IndexSnapshot) error {
	if err := core.ValidateSnapshot(snapshot); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		snapshot.CreatedAt = time.Now().UTC()
		key := makeSnapshotKey(snapshot.Dimension, snapshot.Fingerprint)
		value := storage.MarshalSnapshot(snapshot)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSnapshot retrieves the snapshot for a dimension and corpus fingerprint.
// Returns nil, nil if no snapshot exists.
func (r *SnapshotStore) LoadSnapshot(ctx context.Context, dimension int, fingerprint core.ID) (*core.IndexSnapshot, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var snapshot *core.IndexSnapshot
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSnapshotKey(dimension, fingerprint)
		item, err := tx.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			snapshot, unmarshalErr = storage.UnmarshalSnapshot(val)
			if unmarshalErr != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, unmarshalErr)
			}
			return nil
		})
	}, false)

	return snapshot, err
}

// DeleteSnapshots removes all stored snapshots.
func (r *SnapshotStore) DeleteSnapshots(ctx context.Context) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(snapshotPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Close closes the snapshot store. The backend is shared and closed by its owner.
func (r *SnapshotStore) Close() error {
	return nil
}
