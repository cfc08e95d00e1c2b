package policyatlas

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/policyatlas/ai/mock"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/ingestion"
)

func openTestAtlas(t *testing.T) (*Atlas, *mock.MockProvider) {
	t.Helper()

	provider := mock.NewMockProvider()
	atlas, err := Open(context.Background(), "", WithProvider(provider))
	require.NoError(t, err)
	t.Cleanup(func() { atlas.Close() })

	return atlas, provider.(*mock.MockProvider)
}

func TestAtlasIngestAndSearch(t *testing.T) {
	atlas, provider := openTestAtlas(t)
	ctx := context.Background()

	provider.GetMockGenerator().Response = `{"facts": [
		{"category": "modality", "field": "live_video", "value": "Allowed", "confidence": 0.9, "page": 1}
	]}`

	region, err := atlas.Regions().GetOrCreateRegion(ctx, "California", "CA")
	require.NoError(t, err)

	doc, err := atlas.Documents().AddDocument(ctx, &core.Document{
		RegionId: region.Id,
		Title:    "ca-telehealth",
		Filename: "ca-telehealth.pdf",
		Status:   core.StatusProcessing,
	})
	require.NoError(t, err)

	text := strings.Repeat("California covers live video telehealth visits. ", 60)
	require.NoError(t, atlas.EnqueueIngestion(&ingestion.Job{DocumentId: doc.Id, Buffer: []byte(text)}))
	atlas.WaitForIngestion()

	processed, err := atlas.Documents().GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCompleted, processed.Status)

	chunks, err := atlas.Chunks().GetChunksByDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, chunks)

	storedFacts, err := atlas.Facts().GetFactsByDocument(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, storedFacts, 1)
	assert.Equal(t, core.CategoryModality, storedFacts[0].Category)

	// The deterministic mock embedder gives identical texts identical
	// vectors, so searching with a chunk's own content scores 1.0.
	results, err := atlas.HybridSearch(ctx, chunks[0].Content, nil, 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "California", results[0].RegionName)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-5)
}

func TestAtlasAnswerFallback(t *testing.T) {
	atlas, provider := openTestAtlas(t)

	response, err := atlas.Answer(context.Background(), "What are the consent rules?", nil, nil)
	require.NoError(t, err)

	assert.Zero(t, response.Confidence)
	assert.Len(t, response.SuggestedQueries, 3)
	assert.Zero(t, provider.GetMockGenerator().CallCount())
}
