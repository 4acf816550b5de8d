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

// Package search retrieves ranked answer candidates for a query.
//
// The Searcher type selects between two retrieval strategies:
//   - Vector similarity over the embedding index, gated by a distance
//     threshold
//   - Keyword ranking over the raw corpus, weighted toward financial
//     vocabulary and FAQ question lines
//
// The keyword path runs only when the similarity index is unavailable or
// produced no matches. Keyword candidates are additionally subject to the
// IsRelevant content gate before they may appear in a composed answer.
package search
