package index

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/finanswer/ai/mock"
	"github.com/poiesic/finanswer/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes embeddable items in order", func(t *testing.T) {
		embedder := mock.NewEmbedder()
		embedder.Dimension = 8

		items := []core.KnowledgeItem{
			{Text: "Q: What is an IRA?\nA: A retirement account.", Source: "FAQ"},
			{Text: "", Source: "FAQ"}, // skipped
			{Text: "Fee Schedule\nNo hidden fees.", Source: "Help Article"},
		}

		ix, err := Build(ctx, embedder, items, core.IDFromContent("v1"))
		require.NoError(t, err)
		assert.Equal(t, 2, ix.Len())
		assert.Equal(t, 8, ix.Dimension())
	})

	t.Run("no embeddable items", func(t *testing.T) {
		embedder := mock.NewEmbedder()

		_, err := Build(ctx, embedder, []core.KnowledgeItem{{Text: ""}}, 0)
		assert.ErrorIs(t, err, ErrNoEmbeddableItems)

		_, err = Build(ctx, embedder, nil, 0)
		assert.ErrorIs(t, err, ErrNoEmbeddableItems)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := Build(ctx, nil, []core.KnowledgeItem{{Text: "x"}}, 0)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("embedding failure surfaces", func(t *testing.T) {
		embedder := mock.NewEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("model offline")
		}

		_, err := Build(ctx, embedder, []core.KnowledgeItem{{Text: "x"}}, 0)
		assert.Error(t, err)
	})

	t.Run("single worker matches default pool", func(t *testing.T) {
		embedder := mock.NewEmbedder()
		items := []core.KnowledgeItem{{Text: "a"}, {Text: "b"}, {Text: "c"}}

		ix, err := Build(ctx, embedder, items, 0, WithPoolSize(1))
		require.NoError(t, err)
		assert.Equal(t, 3, ix.Len())
	})
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	embedder := mock.NewEmbedder()
	embedder.Dimension = 16

	items := []core.KnowledgeItem{
		{Text: "Q: What is a Roth IRA?\nA: Tax-free withdrawals in retirement.", Source: "FAQ"},
		{Text: "Q: What are your fees?\nA: 0.25% annually.", Source: "FAQ"},
		{Text: "Account Setup\nOpen an account in five minutes.", Source: "Help Article"},
	}

	ix, err := Build(ctx, embedder, items, core.IDFromContent("v1"))
	require.NoError(t, err)

	t.Run("self similarity is zero", func(t *testing.T) {
		vector, err := embedder.EmbedText(ctx, items[1].EmbeddingText())
		require.NoError(t, err)

		candidates := ix.Query(vector, 3)
		require.NotEmpty(t, candidates)
		assert.Equal(t, items[1].Text, candidates[0].Item.Text)
		assert.InDelta(t, 0, candidates[0].Score, 1e-6)
	})

	t.Run("distances ascend", func(t *testing.T) {
		vector, err := embedder.EmbedText(ctx, "retirement accounts")
		require.NoError(t, err)

		candidates := ix.Query(vector, 3)
		require.Len(t, candidates, 3)
		for i := 1; i < len(candidates); i++ {
			assert.LessOrEqual(t, candidates[i-1].Score, candidates[i].Score)
		}
		for _, c := range candidates {
			assert.Equal(t, core.PathVector, c.Path)
		}
	})

	t.Run("k limits results", func(t *testing.T) {
		vector, err := embedder.EmbedText(ctx, "anything")
		require.NoError(t, err)

		assert.Len(t, ix.Query(vector, 2), 2)
		assert.Empty(t, ix.Query(vector, 0))
	})

	t.Run("nil index returns nothing", func(t *testing.T) {
		var nilIx *Index
		assert.Empty(t, nilIx.Query([]float32{1, 2}, 5))
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	embedder := mock.NewEmbedder()
	embedder.Dimension = 4

	items := []core.KnowledgeItem{{Text: "a", Source: "FAQ"}, {Text: "b", Source: "FAQ"}}
	ix, err := Build(ctx, embedder, items, core.IDFromContent("v1"))
	require.NoError(t, err)

	restored, err := FromSnapshot(ix.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, ix.Len(), restored.Len())
	assert.Equal(t, ix.Dimension(), restored.Dimension())
	assert.Equal(t, ix.Fingerprint(), restored.Fingerprint())

	vector, err := embedder.EmbedText(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, ix.Query(vector, 2), restored.Query(vector, 2))
}
