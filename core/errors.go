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

import "errors"

// Domain validation errors
var (
	// ErrInvalidKnowledgeItem indicates a KnowledgeItem failed validation.
	ErrInvalidKnowledgeItem = errors.New("invalid knowledge item")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrInvalidSnapshot indicates an IndexSnapshot failed validation.
	ErrInvalidSnapshot = errors.New("invalid index snapshot")

	// ErrDimensionMismatch indicates a snapshot vector whose length differs
	// from the snapshot's declared dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrVectorCountMismatch indicates a snapshot whose vector and item
	// counts differ.
	ErrVectorCountMismatch = errors.New("vector count does not match item count")
)
