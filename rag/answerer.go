package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/policyatlas/ai"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/search"
)

const (
	// topKResults is the fixed retrieval depth for answering.
	topKResults = 5

	// maxHistoryMessages bounds how much conversation history reaches the
	// generation provider.
	maxHistoryMessages = 10

	answerTemperature = 0.3
	answerMaxTokens   = 512

	// confidenceScale lifts mean retrieval similarity into a friendlier
	// range. The result is a calibration heuristic, not a probability.
	confidenceScale = 1.2
)

// Citation references one retrieved chunk backing an answer.
type Citation struct {
	Content       string
	PageNumber    int
	RegionName    string
	DocumentTitle string
}

// Response is a generated answer with its supporting evidence.
type Response struct {
	Answer     string
	Confidence float32
	Citations  []Citation

	// SuggestedQueries is non-empty only on the zero-result path.
	SuggestedQueries []string
}

// HistoryMessage is one prior turn of the conversation.
type HistoryMessage struct {
	Role    ai.Role
	Content string
}

// Answerer composes retrieval and generation into question answering.
type Answerer struct {
	logger    *slog.Logger
	searcher  *search.Searcher
	generator ai.Generator
}

// NewAnswerer creates an Answerer over the given searcher and generator.
func NewAnswerer(searcher *search.Searcher, generator ai.Generator) *Answerer {
	return &Answerer{
		logger:    slog.Default().With("component", "rag"),
		searcher:  searcher,
		generator: generator,
	}
}

// Answer retrieves the top chunks for the query and asks the generation
// provider for a cited answer. Zero retrieval results is a success, not an
// error: the caller gets a fixed fallback answer with suggested queries and
// the provider is never called. Citations always cover all retrieved
// chunks in rank order, whether or not the answer text references them.
func (a *Answerer) Answer(ctx context.Context, query string, regionFilter []string, history []HistoryMessage) (*Response, error) {
	results, err := a.searcher.Search(ctx, query, regionFilter, topKResults)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		a.logger.Debug("No search results, returning fallback answer", "query", query)
		return &Response{
			Answer:           fallbackAnswer,
			Confidence:       0,
			Citations:        []Citation{},
			SuggestedQueries: append([]string(nil), fallbackSuggestions...),
		}, nil
	}

	messages := a.buildMessages(query, results, history)
	answer, err := a.generator.Complete(ctx, messages, answerTemperature, answerMaxTokens)
	if err != nil {
		return nil, err
	}

	citations := make([]Citation, len(results))
	for i, result := range results {
		citations[i] = Citation{
			Content:       result.Content,
			PageNumber:    result.PageNumber,
			RegionName:    result.RegionName,
			DocumentTitle: result.DocumentTitle,
		}
	}

	return &Response{
		Answer:     answer,
		Confidence: confidence(results),
		Citations:  citations,
	}, nil
}

func (a *Answerer) buildMessages(query string, results []*core.SearchResult, history []HistoryMessage) []ai.Message {
	rendered := make([]string, len(results))
	for i, result := range results {
		rendered[i] = fmt.Sprintf("[%d] From %s (Page %d):\n%s", i+1, result.RegionName, result.PageNumber, result.Content)
	}
	contextBlock := strings.Join(rendered, "\n\n")

	userPrompt := fmt.Sprintf(`Context from policy documents:
%s

Question: %s

Provide a clear, cited answer. Use [1], [2], etc. to reference the context sources.`, contextBlock, query)

	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: answerSystemPrompt})
	for _, turn := range history {
		messages = append(messages, ai.Message{Role: turn.Role, Content: turn.Content})
	}
	return append(messages, ai.Message{Role: ai.RoleUser, Content: userPrompt})
}

// confidence maps mean retrieval similarity to [0, 1].
func confidence(results []*core.SearchResult) float32 {
	var sum float32
	for _, result := range results {
		sum += result.Similarity
	}
	scaled := sum / float32(len(results)) * confidenceScale
	if scaled > 1 {
		return 1
	}
	return scaled
}
