package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error wrapping ErrEmbeddingProvider if the provider call
	// fails or returns malformed data.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings,
	// preserving index correspondence with the input.
	//
	// The batch is all-or-nothing: implementations call the provider once
	// per text, strictly sequentially to bound provider load, and abandon
	// the whole batch on the first failure. Partial results are never
	// returned.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces free text from an ordered message list.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Complete sends the messages to the text-generation provider and
	// returns the raw response text. temperature controls sampling and
	// maxTokens caps the output length.
	// Returns an error wrapping ErrGenerationProvider on provider failure.
	Complete(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
