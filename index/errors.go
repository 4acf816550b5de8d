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

package index

import (
	"errors"
	"fmt"
)

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoEmbeddableItems indicates the corpus yielded nothing to index.
	// Callers treat this as "index unavailable" and fall back to keyword
	// retrieval, not as a failure.
	ErrNoEmbeddableItems = errors.New("no embeddable items in corpus")
)

// DimensionError reports an embedding whose length differs from the rest of
// the build.
type DimensionError struct {
	Position int
	Got      int
	Want     int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding at position %d has dimension %d, want %d", e.Position, e.Got, e.Want)
}
