package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/poiesic/policyatlas/ai"
)

// fileConfig mirrors the optional TOML configuration file. Command-line
// flags override anything set here.
type fileConfig struct {
	DB string         `toml:"db"`
	AI aiFileSettings `toml:"ai"`
}

type aiFileSettings struct {
	EmbeddingHost          string  `toml:"embedding_host"`
	GenerationHost         string  `toml:"generation_host"`
	EmbeddingModel         string  `toml:"embedding_model"`
	GenerationModel        string  `toml:"generation_model"`
	EmbedRequestsPerSecond float64 `toml:"embed_requests_per_second"`
}

// loadFileConfig reads a TOML config file. An empty path returns an empty
// config; a missing file at an explicit path is an error.
func loadFileConfig(path string) (*fileConfig, error) {
	config := &fileConfig{}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// aiConfig builds the provider configuration from file settings, using
// package defaults for anything unset.
func (c *fileConfig) aiConfig() (*ai.Config, error) {
	var opts []ai.ConfigOption
	if c.AI.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(c.AI.EmbeddingHost))
	}
	if c.AI.GenerationHost != "" {
		opts = append(opts, ai.WithGenerationHost(c.AI.GenerationHost))
	}
	if c.AI.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(c.AI.EmbeddingModel))
	}
	if c.AI.GenerationModel != "" {
		opts = append(opts, ai.WithGenerationModel(c.AI.GenerationModel))
	}
	if c.AI.EmbedRequestsPerSecond > 0 {
		opts = append(opts, ai.WithEmbedRequestsPerSecond(c.AI.EmbedRequestsPerSecond))
	}

	config := ai.NewConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}
