package rag

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/policyatlas/ai"
	"github.com/poiesic/policyatlas/ai/mock"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/search"
)

type stubChunkRepository struct {
	candidates []*core.ChunkCandidate
}

func (s *stubChunkRepository) Close() error { return nil }

func (s *stubChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	return chunks, nil
}

func (s *stubChunkRepository) GetChunksByDocument(ctx context.Context, documentID core.ID) ([]*core.Chunk, error) {
	return nil, nil
}

func (s *stubChunkRepository) FindCandidates(ctx context.Context, regionNames []string) ([]*core.ChunkCandidate, error) {
	return s.candidates, nil
}

// vectorWithSimilarity builds a unit vector whose cosine against the unit
// query vector {1, 0, 0} is exactly sim.
func vectorWithSimilarity(sim float64) []float32 {
	other := 1 - sim*sim
	if other < 0 {
		other = 0
	}
	return []float32{float32(sim), float32(math.Sqrt(other)), 0}
}

func newAnswerer(generator *mock.MockGenerator, similarities ...float64) *Answerer {
	repo := &stubChunkRepository{}
	for i, sim := range similarities {
		repo.candidates = append(repo.candidates, &core.ChunkCandidate{
			Chunk: &core.Chunk{
				Id:         core.ID(i + 1),
				DocumentId: 1,
				Content:    fmt.Sprintf("chunk %d", i+1),
				PageNumber: i + 1,
				Vector:     vectorWithSimilarity(sim),
			},
			RegionName:    "California",
			DocumentTitle: "ca-telehealth",
		})
	}

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	return NewAnswerer(search.NewSearcher(embedder, repo), generator)
}

func TestAnswerZeroResults(t *testing.T) {
	generator := mock.NewMockGenerator()
	answerer := newAnswerer(generator) // no candidates

	response, err := answerer.Answer(context.Background(), "What about consent?", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, fallbackAnswer, response.Answer)
	assert.Zero(t, response.Confidence)
	assert.Empty(t, response.Citations)
	assert.Len(t, response.SuggestedQueries, 3)
	assert.Zero(t, generator.CallCount(), "generator must not be called without results")
}

func TestAnswerConfidenceHeuristic(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.Response = "Consent is required [1]."
	answerer := newAnswerer(generator, 0.8, 0.9)

	response, err := answerer.Answer(context.Background(), "What about consent?", nil, nil)
	require.NoError(t, err)

	// mean(0.8, 0.9) * 1.2 = 1.02, clamped to 1.0
	assert.InDelta(t, 1.0, response.Confidence, 1e-3)
	assert.Equal(t, "Consent is required [1].", response.Answer)
}

func TestAnswerCitationsInRankOrder(t *testing.T) {
	generator := mock.NewMockGenerator()
	generator.Response = "See [1]."
	answerer := newAnswerer(generator, 0.75, 0.95, 0.85)

	response, err := answerer.Answer(context.Background(), "billing?", nil, nil)
	require.NoError(t, err)

	require.Len(t, response.Citations, 3)
	assert.Equal(t, "chunk 2", response.Citations[0].Content, "highest similarity cited first")
	assert.Equal(t, "chunk 3", response.Citations[1].Content)
	assert.Equal(t, "chunk 1", response.Citations[2].Content)
	assert.Empty(t, response.SuggestedQueries)
}

func TestAnswerContextRendering(t *testing.T) {
	generator := mock.NewMockGenerator()
	answerer := newAnswerer(generator, 0.9)

	_, err := answerer.Answer(context.Background(), "What about consent?", nil, nil)
	require.NoError(t, err)

	messages := generator.LastMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, ai.RoleSystem, messages[0].Role)
	assert.Equal(t, ai.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "[1] From California (Page 1):\nchunk 1")
	assert.Contains(t, messages[1].Content, "Question: What about consent?")
}

func TestAnswerHistoryTruncation(t *testing.T) {
	generator := mock.NewMockGenerator()
	answerer := newAnswerer(generator, 0.9)

	history := make([]HistoryMessage, 15)
	for i := range history {
		role := ai.RoleUser
		if i%2 == 1 {
			role = ai.RoleAssistant
		}
		history[i] = HistoryMessage{Role: role, Content: fmt.Sprintf("turn %d", i)}
	}

	_, err := answerer.Answer(context.Background(), "question", nil, history)
	require.NoError(t, err)

	messages := generator.LastMessages()
	// system + last 10 history turns + user prompt
	require.Len(t, messages, 12)
	assert.Equal(t, "turn 5", messages[1].Content, "oldest turns dropped")
	assert.Equal(t, "turn 14", messages[10].Content)
}
