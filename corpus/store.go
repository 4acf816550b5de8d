package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/poiesic/finanswer/core"
)

// Store holds the normalized knowledge corpus: an ordered sequence of
// knowledge items loaded wholesale from a JSON file. Items keep insertion
// order, duplicates are legal, and the only mutation is append.
//
// Concurrent reads are safe; Append and Reload take the write lock.
type Store struct {
	mu     sync.RWMutex
	path   string
	items  []core.KnowledgeItem
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// Open creates a Store backed by the JSON file at path and loads it wholesale.
// A missing file yields an empty corpus, not an error; the file is created on
// the first Append.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// fileRecord is the on-disk shape of a knowledge item.
type fileRecord struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Reload replaces the in-memory corpus with the current file contents.
// Records without a source get the default source label.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.mu.Lock()
			s.items = nil
			s.mu.Unlock()
			s.logger.Info("knowledge base file not found, starting with empty corpus", "path", s.path)
			return nil
		}
		return err
	}

	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptCorpusFile, err)
	}

	items := make([]core.KnowledgeItem, 0, len(records))
	for _, r := range records {
		source := r.Source
		if source == "" {
			source = core.DefaultSource
		}
		items = append(items, core.KnowledgeItem{Text: r.Text, Source: source})
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Info("loaded knowledge base", "path", s.path, "items", len(items))
	return nil
}

// Items returns a copy of the corpus in insertion order.
func (s *Store) Items() []core.KnowledgeItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]core.KnowledgeItem, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the number of items in the corpus.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Append validates the item, appends it to the corpus, and rewrites the
// backing file. Returns the position of the added item. The caller is
// responsible for rebuilding the similarity index afterwards: the index's
// positional correspondence is invalidated by every append.
func (s *Store) Append(item core.KnowledgeItem) (int, error) {
	if err := core.ValidateKnowledgeItem(&item); err != nil {
		return 0, err
	}
	if item.Source == "" {
		item.Source = core.DefaultSource
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
	if err := s.saveLocked(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return 0, err
	}
	return len(s.items) - 1, nil
}

// Fingerprint returns a content hash of the whole corpus, in order.
// It changes whenever any item's text or source changes, and is used to
// detect stale index snapshots.
func (s *Store) Fingerprint() core.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	for _, item := range s.items {
		b.WriteString(item.Text)
		b.WriteByte(0x1f)
		b.WriteString(item.Source)
		b.WriteByte(0x1e)
	}
	return core.IDFromContent(b.String())
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) saveLocked() error {
	records := make([]fileRecord, len(s.items))
	for i, item := range s.items {
		records[i] = fileRecord{Text: item.Text, Source: item.Source}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0644)
}
