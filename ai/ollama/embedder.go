package ollama

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"golang.org/x/time/rate"

	"github.com/poiesic/policyatlas/ai"
)

// Embedder implements ai.Embedder against a local Ollama server.
type Embedder struct {
	embedder embeddings.Embedder
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := ollama.New(
		ollama.WithServerURL(config.EmbeddingHost),
		ollama.WithModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	// Embedding calls are issued one text at a time; the limiter keeps a
	// large ingestion batch from saturating the provider.
	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.EmbedRequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.EmbedRequestsPerSecond), 1)
	}

	return &Embedder{
		embedder: embedder,
		limiter:  limiter,
		logger:   slog.Default().With("component", "ollama-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	e.logger.Debug("generating embedding for single text", "length", len(text))

	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrEmbeddingProvider, err)
	}
	if len(vector) == 0 {
		e.logger.Warn("embedder returned empty vector")
		return nil, fmt.Errorf("%w: provider returned an empty vector", ai.ErrEmbeddingProvider)
	}

	return vector, nil
}

// EmbedTexts generates vector embeddings for multiple text strings.
//
// Calls the provider once per text, strictly sequentially, and abandons the
// whole batch on the first failure so that either every text embeds or none
// does.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := e.EmbedText(ctx, text)
		if err != nil {
			e.logger.Error("failed to generate embeddings", "index", i, "count", len(texts), "err", err)
			return nil, err
		}
		vectors[i] = vector
	}

	return vectors, nil
}
