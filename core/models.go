package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DefaultSource is the source label applied to knowledge items that were
// stored without one.
const DefaultSource = "Knowledge Base"

// KnowledgeItem is a single passage of the knowledge corpus.
// Text is either free-form prose or an FAQ record in "Q: ...\nA: ..." form.
// Text is immutable once stored.
type KnowledgeItem struct {
	Text   string
	Source string
}

// EmbeddingText returns the text that should be embedded for this item.
// FAQ items embed the parsed question and answer joined by a space rather
// than the raw "Q:...A:..." string.
func (k KnowledgeItem) EmbeddingText() string {
	if faq, ok := ParseFAQ(k.Text); ok {
		return faq.Question + " " + faq.Answer
	}
	return k.Text
}

// RetrievalPath identifies which ranking strategy produced a candidate.
type RetrievalPath int

const (
	// PathVector means the candidate came from similarity-index search.
	// Its score is an L2 distance: lower is more similar.
	PathVector RetrievalPath = iota + 1
	// PathKeyword means the candidate came from the keyword ranker.
	// Its score is a lexical relevance score: higher is more relevant.
	PathKeyword
)

// Candidate is a knowledge item produced by a ranking operation.
// The Score scale depends on Path; the two scales are not comparable.
type Candidate struct {
	Item  KnowledgeItem
	Score float32
	Path  RetrievalPath
}

// Turn is one completed exchange in a conversation.
type Turn struct {
	Query  string
	Answer string
}

// IndexSnapshot is the persistent form of a similarity index: one embedding
// per corpus item, in corpus order at build time.
type IndexSnapshot struct {
	Dimension   int
	Fingerprint ID
	Items       []KnowledgeItem
	Vectors     [][]float32
	CreatedAt   time.Time
}
