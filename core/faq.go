package core

import "strings"

const (
	faqQuestionMarker = "Q:"
	faqAnswerMarker   = "\nA:"
)

// FAQ is a parsed question/answer record.
type FAQ struct {
	Question string
	Answer   string
}

// IsFAQ reports whether text follows the "Q: ...\nA: ..." convention.
func IsFAQ(text string) bool {
	return strings.HasPrefix(text, faqQuestionMarker) && strings.Contains(text, faqAnswerMarker)
}

// ParseFAQ parses an FAQ-structured text into its question and answer spans.
// The text must begin with "Q:" and contain "\nA:"; the split happens on the
// first "\nA:" occurrence, so any later "Q:" or "A:" markers stay inside the
// answer span. Returns ok=false for texts that don't follow the convention,
// including FAQ-looking texts with a missing answer marker.
func ParseFAQ(text string) (FAQ, bool) {
	if !IsFAQ(text) {
		return FAQ{}, false
	}
	question, answer, _ := strings.Cut(text, faqAnswerMarker)
	return FAQ{
		Question: strings.TrimSpace(strings.TrimPrefix(question, faqQuestionMarker)),
		Answer:   strings.TrimSpace(answer),
	}, true
}
