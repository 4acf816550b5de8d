package search

import "github.com/poiesic/finanswer/core"

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results during retrieval.
type RetrievalMonitor interface {
	Start(query string)
	AfterVectorSearch(matches []core.Candidate)
	AfterDistanceFilter(accepted []core.Candidate)
	AfterKeywordSearch(candidates []core.Candidate)
	Finish(candidates []core.Candidate)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                         {}
func (n *noopMonitor) AfterVectorSearch(_ []core.Candidate)   {}
func (n *noopMonitor) AfterDistanceFilter(_ []core.Candidate) {}
func (n *noopMonitor) AfterKeywordSearch(_ []core.Candidate)  {}
func (n *noopMonitor) Finish(_ []core.Candidate)              {}
