package ollama

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/poiesic/policyatlas/ai"
)

// Generator implements ai.Generator against a local Ollama server.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := ollama.New(
		ollama.WithServerURL(config.GenerationHost),
		ollama.WithModel(config.GenerationModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "ollama-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Complete sends the conversation to the model and returns its raw text.
func (g *Generator) Complete(ctx context.Context, messages []ai.Message, temperature float64, maxTokens int) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, message := range messages {
		content = append(content, llms.MessageContent{
			Role:  chatMessageType(message.Role),
			Parts: []llms.ContentPart{llms.TextPart(message.Content)},
		})
	}

	g.logger.Debug("generating completion",
		"messages", len(messages),
		"temperature", temperature,
		"maxTokens", maxTokens)

	response, err := g.client.GenerateContent(ctx, content,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens))
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return "", fmt.Errorf("%w: %w", ai.ErrGenerationProvider, err)
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model")
		return "", fmt.Errorf("%w: provider returned no choices", ai.ErrGenerationProvider)
	}

	return response.Choices[0].Content, nil
}

// chatMessageType maps conversation roles onto langchaingo message types.
func chatMessageType(role ai.Role) llms.ChatMessageType {
	switch role {
	case ai.RoleSystem:
		return llms.ChatMessageTypeSystem
	case ai.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
