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

// Package answer turns retrieval candidates into user-facing responses.
//
// The Composer formats one or several accepted candidates, parsing the
// FAQ text convention where present. The FallbackProvider serves curated
// topic answers when retrieval comes up empty. Validate is the final gate
// every response passes through before leaving the pipeline.
package answer
