package index

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/finanswer/ai"
	"github.com/poiesic/finanswer/core"
)

// Index is a flat similarity index: one embedding per embeddable corpus item,
// in corpus order at build time. An Index is immutable once built; a corpus
// mutation requires a full rebuild.
type Index struct {
	dimension   int
	fingerprint core.ID
	items       []core.KnowledgeItem
	vectors     [][]float32
}

// Len returns the number of indexed items.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.items)
}

// Dimension returns the embedding dimension of the index.
func (ix *Index) Dimension() int {
	if ix == nil {
		return 0
	}
	return ix.dimension
}

// Fingerprint returns the corpus fingerprint the index was built from.
func (ix *Index) Fingerprint() core.ID {
	if ix == nil {
		return 0
	}
	return ix.fingerprint
}

// Query returns up to k nearest items to the query vector by L2 distance,
// best first. Returned candidates hold copies of the indexed items, so the
// index's own data is never aliased by callers. A nil index returns nothing.
func (ix *Index) Query(vector []float32, k int) []core.Candidate {
	if ix == nil || len(ix.items) == 0 || k <= 0 {
		return nil
	}

	candidates := make([]core.Candidate, len(ix.items))
	for i := range ix.items {
		candidates[i] = core.Candidate{
			Item:  ix.items[i],
			Score: l2Distance(vector, ix.vectors[i]),
			Path:  core.PathVector,
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score < candidates[j].Score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// Snapshot returns the persistent form of the index.
func (ix *Index) Snapshot() *core.IndexSnapshot {
	items := make([]core.KnowledgeItem, len(ix.items))
	copy(items, ix.items)
	vectors := make([][]float32, len(ix.vectors))
	copy(vectors, ix.vectors)

	return &core.IndexSnapshot{
		Dimension:   ix.dimension,
		Fingerprint: ix.fingerprint,
		Items:       items,
		Vectors:     vectors,
	}
}

// FromSnapshot reconstructs an index from a validated snapshot.
func FromSnapshot(snapshot *core.IndexSnapshot) (*Index, error) {
	if err := core.ValidateSnapshot(snapshot); err != nil {
		return nil, err
	}
	return &Index{
		dimension:   snapshot.Dimension,
		fingerprint: snapshot.Fingerprint,
		items:       snapshot.Items,
		vectors:     snapshot.Vectors,
	}, nil
}

// Build embeds every embeddable corpus item and assembles a flat index.
// Items with empty text are skipped. FAQ items embed the parsed
// question+answer text, not the raw record.
//
// Returns ErrNoEmbeddableItems when the corpus yields nothing to index;
// callers must treat that as "index unavailable", not as a failure.
func Build(ctx context.Context, embedder ai.Embedder, items []core.KnowledgeItem, fingerprint core.ID, opts ...BuildOption) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	options := buildOptions{
		poolSize: runtime.NumCPU() / 2,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.poolSize < 1 {
		options.poolSize = 1
	}

	embeddable := make([]core.KnowledgeItem, 0, len(items))
	for _, item := range items {
		if item.Text == "" {
			continue
		}
		embeddable = append(embeddable, item)
	}
	if len(embeddable) == 0 {
		return nil, ErrNoEmbeddableItems
	}

	pool, err := ants.NewPool(options.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	vectors := make([][]float32, len(embeddable))

	for i := range embeddable {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			vector, err := embedder.EmbedText(ctx, embeddable[i].EmbeddingText())
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			vectors[i] = vector
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	dimension := len(vectors[0])
	for i, vector := range vectors {
		if len(vector) != dimension {
			return nil, &DimensionError{Position: i, Got: len(vector), Want: dimension}
		}
	}

	options.logger.Info("built similarity index", "items", len(embeddable), "dimension", dimension)

	return &Index{
		dimension:   dimension,
		fingerprint: fingerprint,
		items:       embeddable,
		vectors:     vectors,
	}, nil
}

// BuildOption configures index building.
type BuildOption func(*buildOptions)

type buildOptions struct {
	poolSize int
	logger   *slog.Logger
}

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) BuildOption {
	return func(o *buildOptions) {
		o.poolSize = size
	}
}

// WithBuildLogger sets a custom logger for build progress.
func WithBuildLogger(logger *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// l2Distance computes the squared Euclidean distance between two vectors,
// the convention of flat L2 indexes. Lower means more similar; a vector's
// distance to itself is 0.
func l2Distance(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
