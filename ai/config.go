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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434" for a local Ollama server.
	EmbeddingHost string

	// GenerationHost is the base URL for the text-generation service API.
	// Example: "http://localhost:11434" for a local Ollama server.
	GenerationHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "nomic-embed-text:latest", "embeddinggemma"
	EmbeddingModel string

	// GenerationModel is the model identifier to use for answer generation
	// and fact extraction.
	// Example: "mistral:7b-instruct-q4_K_M", "qwen2.5:3b"
	GenerationModel string

	// EmbedRequestsPerSecond caps the rate of embedding provider calls.
	// Zero or negative disables rate limiting.
	// Default: 8
	EmbedRequestsPerSecond float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithGenerationHost sets the generation service host URL.
func WithGenerationHost(host string) ConfigOption {
	return func(c *Config) {
		c.GenerationHost = host
	}
}

// WithHost sets both embedding and generation hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.GenerationHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGenerationModel sets the generation model identifier.
func WithGenerationModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerationModel = model
	}
}

// WithEmbedRequestsPerSecond sets the embedding call rate limit.
func WithEmbedRequestsPerSecond(rps float64) ConfigOption {
	return func(c *Config) {
		c.EmbedRequestsPerSecond = rps
	}
}

// DefaultConfig returns a Config with sensible defaults for a local Ollama
// server. By default, embedding and generation use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434"
	return &Config{
		EmbeddingHost:          defaultHost,
		GenerationHost:         defaultHost,
		EmbeddingModel:         "nomic-embed-text:latest",
		GenerationModel:        "mistral:7b-instruct-q4_K_M",
		EmbedRequestsPerSecond: 8,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithEmbeddingModel("nomic-embed-text:latest"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form by stripping
// trailing slashes from host URLs.
func (c *Config) Normalize() {
	c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
	c.GenerationHost = strings.TrimSuffix(c.GenerationHost, "/")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.GenerationHost == "" {
		return errors.New("ai config: GenerationHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GenerationModel == "" {
		return errors.New("ai config: GenerationModel is required")
	}
	return nil
}
