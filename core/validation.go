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

package core

import "fmt"

// ValidateKnowledgeItem validates a KnowledgeItem according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//
// NOT validated:
//   - Source (an empty source is normalized to DefaultSource on load)
func ValidateKnowledgeItem(item *KnowledgeItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidKnowledgeItem)
	}

	if item.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeItem, ErrEmptyText)
	}

	return nil
}

// ValidateSnapshot validates an IndexSnapshot according to domain rules.
//
// Validation rules:
//   - Dimension must be positive
//   - Vector count must equal item count
//   - Every vector must have exactly Dimension components
func ValidateSnapshot(snapshot *IndexSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot is nil", ErrInvalidSnapshot)
	}

	if snapshot.Dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidSnapshot, snapshot.Dimension)
	}

	if len(snapshot.Vectors) != len(snapshot.Items) {
		return fmt.Errorf("%w: %w: %d vectors, %d items",
			ErrInvalidSnapshot, ErrVectorCountMismatch, len(snapshot.Vectors), len(snapshot.Items))
	}

	for i, vector := range snapshot.Vectors {
		if len(vector) != snapshot.Dimension {
			return fmt.Errorf("%w: %w: vector %d has %d components, want %d",
				ErrInvalidSnapshot, ErrDimensionMismatch, i, len(vector), snapshot.Dimension)
		}
	}

	return nil
}
