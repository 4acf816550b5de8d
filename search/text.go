package search

import (
	"strings"
	"unicode"
)

// domainTerms is the fixed financial vocabulary that earns extra ranking
// weight and anchors the relevance gate. Matching is substring-based on
// lowercased text.
var domainTerms = []string{
	"ira", "roth", "401k", "retirement", "investment", "fund",
	"stock", "bond", "fee", "fees", "commission", "cost",
}

// tokenize splits on whitespace after lowercasing. Punctuation is kept
// attached; token matches are substring checks so trailing punctuation on
// the document side does not matter.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// wordTokens extracts lowercase word runs, dropping punctuation entirely.
// Used by the relevance predicate, which needs clean terms.
func wordTokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// queryDomainTerms returns the domain terms that occur in the lowercased
// query, in vocabulary order.
func queryDomainTerms(queryLower string) []string {
	var found []string
	for _, term := range domainTerms {
		if strings.Contains(queryLower, term) {
			found = append(found, term)
		}
	}
	return found
}

// questionSpan returns the lowercased text between the first "Q:" marker and
// the "A:" marker that follows it. Empty when the text is not in FAQ form.
func questionSpan(text string) string {
	_, after, ok := strings.Cut(text, "Q:")
	if !ok {
		return ""
	}
	question, _, ok := strings.Cut(after, "A:")
	if !ok {
		return ""
	}
	return strings.ToLower(question)
}
