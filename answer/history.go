package answer

import (
	"strings"

	"github.com/poiesic/finanswer/core"
)

// PrefixHistory rewrites the query as a literal conversation transcript
// ending with the current question. The prefixed form feeds both retrieval
// and composition, so earlier turns influence keyword overlap and embedding
// content, not just logging. An empty history returns the query unchanged.
func PrefixHistory(query string, history []core.Turn) string {
	if len(history) == 0 {
		return query
	}

	var b strings.Builder
	for i, turn := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Previous Q: ")
		b.WriteString(turn.Query)
		b.WriteString("\nPrevious A: ")
		b.WriteString(turn.Answer)
	}
	b.WriteString("\n\nCurrent Q: ")
	b.WriteString(query)
	return b.String()
}
