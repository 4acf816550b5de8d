package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecords(t *testing.T) {
	t.Run("faq entries become Q and A text", func(t *testing.T) {
		records := buildRecords([]faqEntry{
			{Question: "What are your fees?", Answer: "A flat 0.25% annual fee."},
		}, nil)

		require.Len(t, records, 1)
		assert.Equal(t, "Q: What are your fees?\nA: A flat 0.25% annual fee.", records[0].Text)
		assert.Equal(t, "FAQ", records[0].Source)
	})

	t.Run("help articles join title and content", func(t *testing.T) {
		records := buildRecords(nil, []helpArticle{
			{Title: "Funding Your Account", Content: "Link a bank account."},
		})

		require.Len(t, records, 1)
		assert.Equal(t, "Funding Your Account\nLink a bank account.", records[0].Text)
		assert.Equal(t, "Help Article", records[0].Source)
	})

	t.Run("faq entries precede help articles", func(t *testing.T) {
		records := buildRecords(
			[]faqEntry{{Question: "q", Answer: "a"}},
			[]helpArticle{{Title: "t", Content: "c"}},
		)

		require.Len(t, records, 2)
		assert.Equal(t, "FAQ", records[0].Source)
		assert.Equal(t, "Help Article", records[1].Source)
	})
}

func TestLoadJSON(t *testing.T) {
	t.Run("empty path yields the fallback", func(t *testing.T) {
		entries, err := loadJSON("", defaultFAQ)
		require.NoError(t, err)
		assert.Equal(t, defaultFAQ, entries)
	})

	t.Run("file contents replace the fallback", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faq.json")
		content := `[{"question": "Who are you?", "answer": "An advisor."}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		entries, err := loadJSON(path, defaultFAQ)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Who are you?", entries[0].Question)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := loadJSON(filepath.Join(t.TempDir(), "absent.json"), defaultFAQ)
		assert.Error(t, err)
	})
}
