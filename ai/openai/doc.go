// Package openai implements ai.Embedder against OpenAI-compatible embedding
// APIs (OpenAI, Ollama, LocalAI, vLLM) via langchaingo.
package openai
