package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/finanswer/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpusFile(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "knowledge_base.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestOpen(t *testing.T) {
	t.Run("loads records in file order", func(t *testing.T) {
		path := writeCorpusFile(t, t.TempDir(), `[
			{"text": "Q: What is an IRA?\nA: A retirement account.", "source": "FAQ"},
			{"text": "Account Setup\nOpen an account online.", "source": "Help Article"}
		]`)

		store, err := Open(path)
		require.NoError(t, err)

		items := store.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "FAQ", items[0].Source)
		assert.Equal(t, "Help Article", items[1].Source)
	})

	t.Run("missing file yields empty corpus", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)
		assert.Zero(t, store.Len())
	})

	t.Run("missing source gets default label", func(t *testing.T) {
		path := writeCorpusFile(t, t.TempDir(), `[{"text": "plain text"}]`)

		store, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, core.DefaultSource, store.Items()[0].Source)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := writeCorpusFile(t, t.TempDir(), `{not json`)

		_, err := Open(path)
		assert.ErrorIs(t, err, ErrCorruptCorpusFile)
	})

	t.Run("duplicates are preserved", func(t *testing.T) {
		path := writeCorpusFile(t, t.TempDir(), `[
			{"text": "same", "source": "FAQ"},
			{"text": "same", "source": "FAQ"}
		]`)

		store, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, 2, store.Len())
	})
}

func TestAppend(t *testing.T) {
	t.Run("appends and persists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "knowledge_base.json")
		store, err := Open(path)
		require.NoError(t, err)

		pos, err := store.Append(core.KnowledgeItem{Text: "Q: Hi?\nA: Hello.", Source: "FAQ"})
		require.NoError(t, err)
		assert.Equal(t, 0, pos)

		pos, err = store.Append(core.KnowledgeItem{Text: "more prose"})
		require.NoError(t, err)
		assert.Equal(t, 1, pos)

		// Reopen from disk: both items survive, default source applied.
		reopened, err := Open(path)
		require.NoError(t, err)
		items := reopened.Items()
		require.Len(t, items, 2)
		assert.Equal(t, core.DefaultSource, items[1].Source)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "kb.json"))
		require.NoError(t, err)

		_, err = store.Append(core.KnowledgeItem{Source: "FAQ"})
		assert.ErrorIs(t, err, core.ErrEmptyText)
		assert.Zero(t, store.Len())
	})
}

func TestItemsReturnsCopy(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "kb.json"))
	require.NoError(t, err)
	_, err = store.Append(core.KnowledgeItem{Text: "original", Source: "FAQ"})
	require.NoError(t, err)

	items := store.Items()
	items[0].Text = "mutated"

	assert.Equal(t, "original", store.Items()[0].Text)
}

func TestFingerprint(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "kb.json"))
	require.NoError(t, err)

	empty := store.Fingerprint()

	_, err = store.Append(core.KnowledgeItem{Text: "first", Source: "FAQ"})
	require.NoError(t, err)
	one := store.Fingerprint()
	assert.NotEqual(t, empty, one)

	// Stable while the corpus is unchanged.
	assert.Equal(t, one, store.Fingerprint())

	_, err = store.Append(core.KnowledgeItem{Text: "second", Source: "FAQ"})
	require.NoError(t, err)
	assert.NotEqual(t, one, store.Fingerprint())
}
