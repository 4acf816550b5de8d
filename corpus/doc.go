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

// Package corpus manages the knowledge base: an ordered, append-only
// collection of knowledge items backed by a single JSON file, which is the
// source of truth loaded wholesale at startup.
//
// The Store supports concurrent readers with exclusive appends and reloads.
// The Watcher observes out-of-process edits to the backing file, reloads the
// store, and notifies the owner so the similarity index can be rebuilt.
package corpus
