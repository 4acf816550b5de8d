package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// KnowledgeConfig locates the corpus file and index storage.
type KnowledgeConfig struct {
	CorpusPath string `yaml:"corpus_path"`
	IndexPath  string `yaml:"index_path"`
	Watch      bool   `yaml:"watch"`
}

// EmbeddingConfig configures the embedding backend.
type EmbeddingConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// RetrievalConfig tunes candidate retrieval.
type RetrievalConfig struct {
	TopK              int     `yaml:"top_k"`
	DistanceThreshold float32 `yaml:"distance_threshold"`
}

// ChannelConfig configures one outbound delivery channel.
type ChannelConfig struct {
	Enabled          bool   `yaml:"enabled"`
	DefaultRecipient string `yaml:"default_recipient"`
}

// IntegrationsConfig configures outbound delivery channels.
type IntegrationsConfig struct {
	Email    ChannelConfig `yaml:"email"`
	WhatsApp ChannelConfig `yaml:"whatsapp"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Knowledge    KnowledgeConfig    `yaml:"knowledge"`
	Embedding    EmbeddingConfig    `yaml:"embedding"`
	Retrieval    RetrievalConfig    `yaml:"retrieval"`
	Integrations IntegrationsConfig `yaml:"integrations"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// Load reads a config from the given path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Knowledge.CorpusPath == "" {
		cfg.Knowledge.CorpusPath = "data/knowledge_base.json"
	}
	if cfg.Knowledge.IndexPath == "" {
		cfg.Knowledge.IndexPath = "data/index"
	}
	if cfg.Embedding.Host == "" {
		cfg.Embedding.Host = "http://localhost:11434/v1"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "all-minilm"
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.DistanceThreshold == 0 {
		cfg.Retrieval.DistanceThreshold = 20.0
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
