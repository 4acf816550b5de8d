package answer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/finanswer/core"
	"github.com/poiesic/finanswer/search"
)

// Composer formats retrieval candidates into a user-facing answer,
// delegating to the fallback provider when nothing usable remains.
type Composer struct {
	fallback *FallbackProvider
	logger   *slog.Logger
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer) error

// WithComposerLogger sets a custom logger.
// Default is slog.Default().
func WithComposerLogger(logger *slog.Logger) ComposerOption {
	return func(c *Composer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewComposer creates a new composer.
func NewComposer(fallback *FallbackProvider, opts ...ComposerOption) (*Composer, error) {
	if fallback == nil {
		return nil, ErrFallbackProviderRequired
	}

	c := &Composer{
		fallback: fallback,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Compose builds the answer for a query from its accepted candidates. The
// query is expected to already carry any history prefix. Zero candidates
// delegate to the fallback provider; one candidate is formatted alone;
// several are combined with a source line.
//
// Keyword-path candidates face a final content-level relevance re-check
// here. Vector-path candidates skip it, having already passed the distance
// gate.
func (c *Composer) Compose(query string, candidates []core.Candidate) string {
	switch len(candidates) {
	case 0:
		return c.fallback.Lookup(query)
	case 1:
		return c.composeSingle(query, candidates[0])
	default:
		return c.composeCombined(query, candidates)
	}
}

func (c *Composer) composeSingle(query string, candidate core.Candidate) string {
	item := candidate.Item

	if faq, ok := core.ParseFAQ(item.Text); ok {
		if c.accepts(query, candidate, faq.Question+" "+faq.Answer) {
			return fmt.Sprintf("%s\n\nThis information is from our FAQ on: %s", faq.Answer, faq.Question)
		}
		return c.fallback.Lookup(query)
	}

	if c.accepts(query, candidate, item.Text) {
		return fmt.Sprintf("%s\n\nSource: %s", item.Text, item.Source)
	}
	return c.fallback.Lookup(query)
}

func (c *Composer) composeCombined(query string, candidates []core.Candidate) string {
	parts := make([]string, 0, len(candidates))
	sources := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))

	for _, candidate := range candidates {
		item := candidate.Item
		if !seen[item.Source] {
			seen[item.Source] = true
			sources = append(sources, item.Source)
		}

		if strings.HasPrefix(item.Text, "Q:") {
			// FAQ-looking text with no answer span contributes nothing.
			if faq, ok := core.ParseFAQ(item.Text); ok {
				if c.accepts(query, candidate, faq.Question+" "+faq.Answer) {
					parts = append(parts, faq.Answer)
				}
			}
			continue
		}

		if c.accepts(query, candidate, item.Text) {
			parts = append(parts, item.Text)
		}
	}

	if len(parts) == 0 {
		c.logger.Debug("no candidate survived relevance re-check", "query", query)
		return c.fallback.Lookup(query)
	}

	return fmt.Sprintf("Here's what I found about '%s':\n\n%s\n\nSource: %s",
		query, strings.Join(parts, "\n\n"), strings.Join(sources, ", "))
}

func (c *Composer) accepts(query string, candidate core.Candidate, content string) bool {
	if candidate.Path == core.PathVector {
		return true
	}
	return search.IsRelevant(query, content)
}
