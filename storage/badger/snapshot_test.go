package badger

import (
	"context"
	"testing"

	"github.com/poiesic/finanswer/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(fingerprint string) *core.IndexSnapshot {
	return &core.IndexSnapshot{
		Dimension:   2,
		Fingerprint: core.IDFromContent(fingerprint),
		Items: []core.KnowledgeItem{
			{Text: "Q: What is an IRA?\nA: A retirement account.", Source: "FAQ"},
			{Text: "Fee Schedule\nNo hidden fees.", Source: "Help Article"},
		},
		Vectors: [][]float32{{1, 0}, {0, 1}},
	}
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	snapshot := testSnapshot("corpus v1")

	require.NoError(t, store.SaveSnapshot(ctx, snapshot))

	loaded, err := store.LoadSnapshot(ctx, snapshot.Dimension, snapshot.Fingerprint)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snapshot.Items, loaded.Items)
	assert.Equal(t, snapshot.Vectors, loaded.Vectors)
	assert.False(t, loaded.CreatedAt.IsZero())
}

func TestSnapshotStore_LoadAbsent(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	t.Run("nothing stored", func(t *testing.T) {
		loaded, err := store.LoadSnapshot(ctx, 2, core.IDFromContent("corpus v1"))
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("fingerprint mismatch", func(t *testing.T) {
		require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("corpus v1")))

		loaded, err := store.LoadSnapshot(ctx, 2, core.IDFromContent("corpus v2"))
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		loaded, err := store.LoadSnapshot(ctx, 3, core.IDFromContent("corpus v1"))
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})
}

func TestSnapshotStore_SaveInvalid(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()

	snapshot := testSnapshot("corpus v1")
	snapshot.Vectors = snapshot.Vectors[:1]

	err = store.SaveSnapshot(context.Background(), snapshot)
	assert.ErrorIs(t, err, core.ErrVectorCountMismatch)
}

func TestSnapshotStore_Overwrite(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	snapshot := testSnapshot("corpus v1")
	require.NoError(t, store.SaveSnapshot(ctx, snapshot))

	updated := testSnapshot("corpus v1")
	updated.Vectors = [][]float32{{0.5, 0.5}, {0.25, 0.75}}
	require.NoError(t, store.SaveSnapshot(ctx, updated))

	loaded, err := store.LoadSnapshot(ctx, 2, snapshot.Fingerprint)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, updated.Vectors, loaded.Vectors)
}

func TestSnapshotStore_DeleteSnapshots(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("corpus v1")))
	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot("corpus v2")))

	require.NoError(t, store.DeleteSnapshots(ctx))

	loaded, err := store.LoadSnapshot(ctx, 2, core.IDFromContent("corpus v1"))
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotStore_Closed(t *testing.T) {
	store, backend, err := NewMemorySnapshotStore()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = store.LoadSnapshot(context.Background(), 2, core.IDFromContent("x"))
	assert.Error(t, err)
}
