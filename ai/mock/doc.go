// Package mock provides a deterministic test double for ai.Embedder.
// The default behavior derives a stable pseudo-random vector from the text
// hash, so identical texts embed identically across test runs.
package mock
