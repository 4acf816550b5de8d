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

// Package index implements the flat L2 similarity index over corpus
// embeddings and its lifecycle.
//
// Build embeds corpus items concurrently on a worker pool and assembles an
// immutable Index. The Manager owns the live index behind an atomic handle:
// queries read a consistent snapshot while rebuilds happen on the side and
// swap in atomically. Snapshots persist through storage.SnapshotStore keyed
// by embedding dimension and corpus fingerprint, so model or corpus changes
// invalidate stored state and force a rebuild.
//
// Index position i corresponds to the i-th embeddable corpus item at build
// time; any corpus mutation invalidates that correspondence, which is why
// the owner rebuilds after every append.
package index
