package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434", cfg.GenerationHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.GenerationModel)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("options override defaults", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://ollama.internal:11434"),
			WithEmbeddingModel("embeddinggemma"),
			WithGenerationModel("qwen2.5:3b"),
			WithEmbedRequestsPerSecond(2),
		)
		assert.Equal(t, "http://ollama.internal:11434", cfg.EmbeddingHost)
		assert.Equal(t, "http://ollama.internal:11434", cfg.GenerationHost)
		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
		assert.Equal(t, "qwen2.5:3b", cfg.GenerationModel)
		assert.Equal(t, 2.0, cfg.EmbedRequestsPerSecond)
	})

	t.Run("split hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:11434"),
			WithGenerationHost("http://generate:11434"),
		)
		assert.Equal(t, "http://embed:11434", cfg.EmbeddingHost)
		assert.Equal(t, "http://generate:11434", cfg.GenerationHost)
	})
}

func TestConfigNormalize(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:11434/"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:11434", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434", cfg.GenerationHost)
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing embedding host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingHost = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingHost")
	})

	t.Run("missing generation host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.GenerationHost = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GenerationHost")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingModel = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("missing generation model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.GenerationModel = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GenerationModel")
	})

	t.Run("validate normalizes hosts", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434", cfg.EmbeddingHost)
	})
}
