// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package finanswer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/finanswer/ai"
	"github.com/poiesic/finanswer/ai/openai"
	"github.com/poiesic/finanswer/answer"
	"github.com/poiesic/finanswer/core"
	"github.com/poiesic/finanswer/corpus"
	"github.com/poiesic/finanswer/index"
	"github.com/poiesic/finanswer/search"
	"github.com/poiesic/finanswer/storage/badger"
)

// Assistant is the question answering pipeline: corpus, similarity index,
// retrieval, composition, and validation wired together. One Assistant
// serves concurrent queries; corpus mutation excludes queries only for the
// duration of the index swap.
type Assistant struct {
	corpus   *corpus.Store
	backend  *badger.Backend
	manager  *index.Manager
	searcher *search.Searcher
	composer *answer.Composer
	logger   *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig      *ai.Config
	embedder      ai.Embedder
	indexPath     string
	inMemoryIndex bool
	topK          int
	threshold     float32
	logger        *slog.Logger
}

// WithAIConfig sets the embedding backend configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedder injects an embedder directly, bypassing the AI config.
// Used by tests.
func WithEmbedder(embedder ai.Embedder) AssistantOption {
	return func(o *assistantOptions) {
		o.embedder = embedder
	}
}

// WithIndexPath sets where index snapshots are persisted. Empty means
// in-memory only.
func WithIndexPath(path string) AssistantOption {
	return func(o *assistantOptions) {
		o.indexPath = path
		o.inMemoryIndex = path == ""
	}
}

// WithTopK sets how many candidates retrieval may return per query.
func WithTopK(topK int) AssistantOption {
	return func(o *assistantOptions) {
		o.topK = topK
	}
}

// WithDistanceThreshold overrides the vector acceptance threshold.
func WithDistanceThreshold(threshold float32) AssistantOption {
	return func(o *assistantOptions) {
		o.threshold = threshold
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) AssistantOption {
	return func(o *assistantOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewAssistant loads the corpus, builds or restores the similarity index,
// and wires the retrieval and composition stages. An unreachable embedding
// model fails construction; there is no per-query recovery for it.
func NewAssistant(ctx context.Context, corpusPath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig:      ai.DefaultConfig(),
		inMemoryIndex: true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := corpus.Open(corpusPath, corpus.WithLogger(options.logger))
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, fmt.Errorf("creating embedder: %w", err)
		}
	}

	backend, err := badger.OpenBackend(options.indexPath, options.inMemoryIndex)
	if err != nil {
		return nil, fmt.Errorf("opening index storage: %w", err)
	}

	manager, err := index.NewManager(embedder, badger.NewSnapshotStore(backend),
		index.WithLogger(options.logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	if err := manager.Load(ctx, store.Items(), store.Fingerprint()); err != nil {
		backend.Close()
		return nil, fmt.Errorf("loading similarity index: %w", err)
	}

	searchOpts := []search.Option{search.WithLogger(options.logger)}
	if options.topK > 0 {
		searchOpts = append(searchOpts, search.WithTopK(options.topK))
	}
	if options.threshold > 0 {
		searchOpts = append(searchOpts, search.WithDistanceThreshold(options.threshold))
	}
	searcher, err := search.NewSearcher(manager, store, searchOpts...)
	if err != nil {
		backend.Close()
		return nil, err
	}

	composer, err := answer.NewComposer(answer.NewFallbackProvider(),
		answer.WithComposerLogger(options.logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Assistant{
		corpus:   store,
		backend:  backend,
		manager:  manager,
		searcher: searcher,
		composer: composer,
		logger:   options.logger,
	}, nil
}

// Answer runs one query through the pipeline and always returns a usable,
// validated response. History turns, when present, are prepended to the
// query as transcript text before retrieval, so earlier context shapes
// ranking as well as composition. Failures inside composition surface as a
// visible error string rather than propagating.
func (a *Assistant) Answer(ctx context.Context, query string, history []core.Turn) (response string) {
	prefixed := answer.PrefixHistory(query, history)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("answer pipeline failed", "query", query, "reason", r)
			response = answer.Validate(fmt.Sprintf("Error generating response: %v", r))
		}
	}()

	candidates := a.searcher.FindCandidates(ctx, prefixed)
	return answer.Validate(a.composer.Compose(prefixed, candidates))
}

// AddKnowledge appends an item to the corpus and rebuilds the similarity
// index so the item is immediately retrievable. Returns the item's corpus
// position.
func (a *Assistant) AddKnowledge(ctx context.Context, item core.KnowledgeItem) (int, error) {
	position, err := a.corpus.Append(item)
	if err != nil {
		return 0, err
	}

	if err := a.manager.Rebuild(ctx, a.corpus.Items(), a.corpus.Fingerprint()); err != nil {
		return position, fmt.Errorf("rebuilding index after append: %w", err)
	}
	return position, nil
}

// Reload re-reads the corpus file and rebuilds the index.
func (a *Assistant) Reload(ctx context.Context) error {
	if err := a.corpus.Reload(); err != nil {
		return err
	}
	return a.Reindex(ctx)
}

// Reindex rebuilds the similarity index from the corpus as currently
// loaded. The corpus watcher calls this after it has already re-read the
// file.
func (a *Assistant) Reindex(ctx context.Context) error {
	return a.manager.Rebuild(ctx, a.corpus.Items(), a.corpus.Fingerprint())
}

// Corpus exposes the backing corpus store.
func (a *Assistant) Corpus() *corpus.Store {
	return a.corpus
}

// IndexAvailable reports whether vector retrieval is currently possible.
func (a *Assistant) IndexAvailable() bool {
	return a.manager.Available()
}

func (a *Assistant) Close() error {
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing index storage", "err", err)
		return err
	}
	return nil
}
