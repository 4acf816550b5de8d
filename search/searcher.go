package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/finanswer/core"
	"github.com/poiesic/finanswer/index"
)

// DefaultTopK is the number of candidates requested from either retrieval
// path when the caller does not specify one.
const DefaultTopK = 3

// ItemSource supplies the corpus items scanned by keyword retrieval.
// corpus.Store satisfies it.
type ItemSource interface {
	Items() []core.KnowledgeItem
}

// Searcher produces ranked answer candidates for a query. It tries vector
// similarity first and falls back to keyword ranking when the similarity
// index is unavailable or returns nothing. Candidates carry the path that
// produced them; the two score scales are not comparable.
type Searcher struct {
	manager   *index.Manager
	corpus    ItemSource
	threshold float32
	topK      int
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithTopK sets how many candidates each retrieval path may return.
func WithTopK(topK int) Option {
	return func(s *Searcher) error {
		if topK > 0 {
			s.topK = topK
		}
		return nil
	}
}

// WithDistanceThreshold overrides the vector acceptance threshold.
func WithDistanceThreshold(threshold float32) Option {
	return func(s *Searcher) error {
		if threshold > 0 {
			s.threshold = threshold
		}
		return nil
	}
}

// NewSearcher creates a new searcher. The index manager may be nil, in
// which case every query takes the keyword path.
func NewSearcher(manager *index.Manager, corpus ItemSource, opts ...Option) (*Searcher, error) {
	if corpus == nil {
		return nil, ErrItemSourceRequired
	}

	s := &Searcher{
		manager:   manager,
		corpus:    corpus,
		threshold: DefaultDistanceThreshold,
		topK:      DefaultTopK,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindCandidates retrieves up to topK accepted candidates for the query,
// best first.
func (s *Searcher) FindCandidates(ctx context.Context, query string) []core.Candidate {
	return s.FindCandidatesWithMonitor(ctx, query, nil)
}

// FindCandidatesWithMonitor retrieves candidates with monitoring. The
// monitor receives callbacks at each stage of retrieval.
//
// The vector path runs first when an index is available. Raw matches are
// gated by the distance threshold; matches that survive are the accepted
// candidates. A vector path that produced raw matches but none below the
// threshold yields no candidates at all, it does NOT fall through to
// keywords: the corpus demonstrably has nothing close, and keyword overlap
// would only resurface the same items. The keyword path runs only when the
// vector path produced no raw matches.
func (s *Searcher) FindCandidatesWithMonitor(ctx context.Context, query string, monitor RetrievalMonitor) []core.Candidate {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	if s.manager != nil && s.manager.Available() {
		matches := s.manager.Query(ctx, query, s.topK)
		monitor.AfterVectorSearch(matches)

		if len(matches) > 0 {
			accepted := FilterByDistance(matches, s.threshold)
			monitor.AfterDistanceFilter(accepted)
			s.logger.Debug("vector retrieval",
				"query", query, "matches", len(matches), "accepted", len(accepted))
			monitor.Finish(accepted)
			return accepted
		}
	}

	candidates := RankKeywords(query, s.corpus.Items(), s.topK)
	monitor.AfterKeywordSearch(candidates)
	s.logger.Debug("keyword retrieval", "query", query, "candidates", len(candidates))
	monitor.Finish(candidates)
	return candidates
}
