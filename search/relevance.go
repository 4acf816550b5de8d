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

package search

import (
	"sort"
	"strings"

	"github.com/poiesic/finanswer/core"
)

// DefaultDistanceThreshold is the squared L2 distance below which a vector
// match is accepted. It is tuned for all-MiniLM class embedding models and
// is a configurable property of the model's distance scale, not a domain
// constant.
const DefaultDistanceThreshold float32 = 20.0

// FilterByDistance keeps candidates whose distance falls strictly below the
// threshold, ordered ascending (best first). A non-positive threshold means
// the default. The input slice is not modified.
func FilterByDistance(candidates []core.Candidate, threshold float32) []core.Candidate {
	if threshold <= 0 {
		threshold = DefaultDistanceThreshold
	}

	kept := make([]core.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Score < threshold {
			kept = append(kept, candidate)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score < kept[j].Score
	})
	return kept
}

// IsRelevant is the content-level gate applied to keyword-retrieved
// candidates before they may enter a composed answer. When the query
// mentions domain vocabulary, the candidate must mention at least one of
// the same terms. Otherwise at least a third of the query's distinct word
// tokens must appear in the candidate, counting only tokens longer than
// three characters as matches. Repeated tokens count once, so transcript
// prefixes with recurring markers do not dilute the ratio.
func IsRelevant(query, candidateText string) bool {
	queryLower := strings.ToLower(query)
	textLower := strings.ToLower(candidateText)

	if queryTerms := queryDomainTerms(queryLower); len(queryTerms) > 0 {
		for _, term := range queryTerms {
			if strings.Contains(textLower, term) {
				return true
			}
		}
		return false
	}

	unique := make(map[string]struct{})
	for _, token := range wordTokens(queryLower) {
		unique[token] = struct{}{}
	}
	if len(unique) == 0 {
		return false
	}

	matching := 0
	for token := range unique {
		if len(token) > 3 && strings.Contains(textLower, token) {
			matching++
		}
	}
	return float64(matching) >= float64(len(unique))/3
}
