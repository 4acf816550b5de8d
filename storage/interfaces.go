package storage

import (
	"context"

	"github.com/poiesic/finanswer/core"
)

// SnapshotStore persists similarity-index snapshots across process restarts.
// Implementations must be thread-safe and support concurrent access.
//
// Snapshots are keyed by embedding dimension and corpus fingerprint, so a
// stored snapshot is only ever returned to a caller whose model and corpus
// still match the one it was built from.
type SnapshotStore interface {
	// SaveSnapshot validates and persists a snapshot, replacing any previous
	// snapshot with the same dimension and fingerprint.
	SaveSnapshot(ctx context.Context, snapshot *core.IndexSnapshot) error

	// LoadSnapshot retrieves the snapshot for the given dimension and corpus
	// fingerprint. Returns nil, nil if no such snapshot exists. A snapshot
	// that exists but cannot be deserialized returns an error wrapping
	// ErrSerializationFailed; callers treat that as absent and rebuild.
	LoadSnapshot(ctx context.Context, dimension int, fingerprint core.ID) (*core.IndexSnapshot, error)

	// DeleteSnapshots removes all stored snapshots.
	DeleteSnapshots(ctx context.Context) error

	// Close closes the storage backend and releases resources.
	Close() error
}
