package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, ":8000", cfg.Server.Addr)
		assert.Equal(t, "data/knowledge_base.json", cfg.Knowledge.CorpusPath)
		assert.Equal(t, float32(20.0), cfg.Retrieval.DistanceThreshold)
		assert.Equal(t, 3, cfg.Retrieval.TopK)
	})

	t.Run("partial file keeps defaults for the rest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
server:
  addr: ":9090"
retrieval:
  top_k: 5
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 5, cfg.Retrieval.TopK)
		assert.Equal(t, "all-minilm", cfg.Embedding.Model)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("integrations block", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
integrations:
  email:
    enabled: true
    default_recipient: support@example.com
  whatsapp:
    enabled: true
    default_recipient: "+15550000000"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.True(t, cfg.Integrations.Email.Enabled)
		assert.Equal(t, "support@example.com", cfg.Integrations.Email.DefaultRecipient)
		assert.True(t, cfg.Integrations.WhatsApp.Enabled)
		assert.Equal(t, "+15550000000", cfg.Integrations.WhatsApp.DefaultRecipient)
	})
}
