package index

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/poiesic/finanswer/ai"
	"github.com/poiesic/finanswer/core"
	"github.com/poiesic/finanswer/storage"
)

// dimensionProbeText is embedded once to discover the model's embedding
// dimension before any snapshot lookup.
const dimensionProbeText = "sample text"

// Manager owns the live similarity index and its persistence.
//
// Readers query through an atomic handle, so in-flight queries always observe
// a consistent index while a rebuild swaps in a new one. Rebuilds are
// serialized by a mutex; the swap itself is atomic.
type Manager struct {
	embedder  ai.Embedder
	snapshots storage.SnapshotStore
	current   atomic.Pointer[Index]
	buildMu   sync.Mutex
	dimension int
	poolSize  int
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
	}
}

// WithManagerPoolSize sets the embedding worker pool size used for rebuilds.
func WithManagerPoolSize(size int) Option {
	return func(m *Manager) {
		m.poolSize = size
	}
}

// NewManager creates a manager. snapshots may be nil, in which case the index
// lives only in memory and is rebuilt on every process start.
func NewManager(embedder ai.Embedder, snapshots storage.SnapshotStore, opts ...Option) (*Manager, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	m := &Manager{
		embedder:  embedder,
		snapshots: snapshots,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Load restores the index for the given corpus from a stored snapshot when
// one matches the embedding dimension and corpus fingerprint, and rebuilds
// from the corpus otherwise. A snapshot that fails to deserialize is treated
// as absent. Returns an error only when the embedder itself is unusable,
// which is the fatal startup condition.
func (m *Manager) Load(ctx context.Context, items []core.KnowledgeItem, fingerprint core.ID) error {
	dimension, err := m.probeDimension(ctx)
	if err != nil {
		return err
	}

	if m.snapshots != nil {
		snapshot, err := m.snapshots.LoadSnapshot(ctx, dimension, fingerprint)
		if err != nil {
			// Corrupt or unreadable snapshot: rebuild transparently.
			m.logger.Warn("stored index snapshot unusable, rebuilding", "err", err)
		} else if snapshot != nil {
			ix, err := FromSnapshot(snapshot)
			if err != nil {
				m.logger.Warn("stored index snapshot invalid, rebuilding", "err", err)
			} else {
				m.current.Store(ix)
				m.logger.Info("restored similarity index from snapshot", "items", ix.Len())
				return nil
			}
		}
	}

	return m.Rebuild(ctx, items, fingerprint)
}

// Rebuild builds a fresh index from the corpus, persists its snapshot, and
// atomically swaps it in. A corpus with nothing to index leaves the manager
// without an index (queries return no candidates); that is the documented
// "index unavailable" state, not an error.
func (m *Manager) Rebuild(ctx context.Context, items []core.KnowledgeItem, fingerprint core.ID) error {
	m.buildMu.Lock()
	defer m.buildMu.Unlock()

	opts := []BuildOption{WithBuildLogger(m.logger)}
	if m.poolSize > 0 {
		opts = append(opts, WithPoolSize(m.poolSize))
	}

	ix, err := Build(ctx, m.embedder, items, fingerprint, opts...)
	if err != nil {
		if errors.Is(err, ErrNoEmbeddableItems) {
			m.current.Store(nil)
			m.logger.Info("corpus has no embeddable items, similarity index unavailable")
			return nil
		}
		return err
	}

	if m.snapshots != nil {
		if err := m.snapshots.SaveSnapshot(ctx, ix.Snapshot()); err != nil {
			// Persistence is best-effort: the in-memory index still serves.
			m.logger.Warn("failed to persist index snapshot", "err", err)
		}
	}

	m.current.Store(ix)
	return nil
}

// Available reports whether an index is loaded.
func (m *Manager) Available() bool {
	return m.current.Load() != nil
}

// Query embeds the text and returns up to k nearest candidates, best first.
// Returns an empty sequence when the index is unavailable or the embedding
// fails; both are the signal to fall back to keyword retrieval.
func (m *Manager) Query(ctx context.Context, text string, k int) []core.Candidate {
	ix := m.current.Load()
	if ix == nil {
		return nil
	}

	vector, err := m.embedder.EmbedText(ctx, text)
	if err != nil {
		m.logger.Warn("query embedding failed, falling back to keyword search", "err", err)
		return nil
	}

	return ix.Query(vector, k)
}

func (m *Manager) probeDimension(ctx context.Context) (int, error) {
	if m.dimension > 0 {
		return m.dimension, nil
	}

	vector, err := m.embedder.EmbedText(ctx, dimensionProbeText)
	if err != nil {
		return 0, err
	}
	m.dimension = len(vector)
	return m.dimension, nil
}
