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

// Package storage provides the persistence abstraction for similarity-index
// snapshots.
//
// The corpus file itself is the source of truth for knowledge items; what
// this layer persists is derived data, so the contract is deliberately loose:
// a snapshot that is missing, stale (wrong dimension or corpus fingerprint),
// or corrupt is simply treated as absent and the caller rebuilds from the
// corpus.
//
// Public constructors return the storage.SnapshotStore interface:
//
//	store, err := badger.NewSnapshotStore(backend)
//
// Use in tests with in-memory storage:
//
//	store, backend, err := badger.NewMemorySnapshotStore()
//	defer backend.Close()
//
// All implementations must be thread-safe and accept context.Context for
// cancellation support.
package storage
