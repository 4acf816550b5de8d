package search

import (
	"sort"
	"strings"

	"github.com/poiesic/finanswer/core"
)

// Score contributions for keyword ranking. Phrase matches dominate any
// accumulation of single-token hits, domain vocabulary outweighs generic
// overlap, and hits inside an FAQ question line weigh highest because FAQ
// titles are the strongest relevance signal.
const (
	phraseMatchScore  = 10
	tokenMatchScore   = 1
	domainTermScore   = 2
	questionSpanScore = 3
)

var domainTermSet = func() map[string]bool {
	set := make(map[string]bool, len(domainTerms))
	for _, term := range domainTerms {
		set[term] = true
	}
	return set
}()

// RankKeywords scores corpus items against the query and returns up to topK
// candidates, best first. Items scoring zero are excluded. Ties preserve
// corpus order, so the ranking is deterministic for a fixed corpus.
func RankKeywords(query string, items []core.KnowledgeItem, topK int) []core.Candidate {
	queryLower := strings.ToLower(query)
	tokens := tokenize(query)

	candidates := make([]core.Candidate, 0, topK)
	for _, item := range items {
		score := scoreItem(queryLower, tokens, item.Text)
		if score == 0 {
			continue
		}
		candidates = append(candidates, core.Candidate{
			Item:  item,
			Score: float32(score),
			Path:  core.PathKeyword,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if topK >= 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

func scoreItem(queryLower string, tokens []string, text string) int {
	textLower := strings.ToLower(text)

	score := 0
	if strings.Contains(textLower, queryLower) {
		score += phraseMatchScore
	}

	span := questionSpan(text)
	for _, token := range tokens {
		if !strings.Contains(textLower, token) {
			continue
		}
		score += tokenMatchScore
		if domainTermSet[token] {
			score += domainTermScore
		}
		if span != "" && strings.Contains(span, token) {
			score += questionSpanScore
		}
	}
	return score
}
