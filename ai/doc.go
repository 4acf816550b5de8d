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

// Package ai provides abstractions for the embedding service used by finanswer.
//
// The package defines the Embedder interface that the index depends on,
// following the dependency inversion principle: core and business logic
// depend on the abstraction rather than a concrete API client.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test double for unit testing without a service
//
// Public constructors (openai.NewEmbedder) return the ai.Embedder INTERFACE
// to enforce abstraction. The mock constructor returns the CONCRETE type so
// tests can inject behavior and make assertions:
//
//	mockEmbed := mock.NewEmbedder()     // returns *mock.Embedder
//	mockEmbed.EmbedTextFunc = ...       // behavior injection
//	count := mockEmbed.CallCount()      // test assertion
//
// # Failure Model
//
// Constructing an embedder validates configuration and fails fast; this is
// the only fatal failure. Per-call errors are returned to the caller, which
// degrades to keyword retrieval rather than failing the request.
package ai
