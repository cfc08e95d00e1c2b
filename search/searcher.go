package search

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/poiesic/policyatlas/ai"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/storage"
)

// MinSimilarity is the relevance floor. Candidates scoring below it are
// discarded regardless of topK.
const MinSimilarity = 0.7

// DefaultTopK bounds result counts when the caller passes a non-positive
// limit.
const DefaultTopK = 10

// Searcher ranks stored chunks against a free-text query by cosine
// similarity over their embeddings.
//
// Every search is a full linear scan over the candidate set. At the scale
// this system targets (thousands of chunks) that is the right baseline;
// an approximate nearest neighbor index could replace the scan without
// changing the contract.
type Searcher struct {
	logger   *slog.Logger
	embedder ai.Embedder
	chunks   storage.ChunkRepository
}

// NewSearcher creates a Searcher over the given chunk repository.
func NewSearcher(embedder ai.Embedder, chunks storage.ChunkRepository) *Searcher {
	return &Searcher{
		logger:   slog.Default().With("component", "search"),
		embedder: embedder,
		chunks:   chunks,
	}
}

// Search embeds the query and returns up to topK chunks with similarity at
// or above MinSimilarity, sorted descending. Ties keep their original
// retrieval order. An empty regionFilter searches every region.
func (s *Searcher) Search(ctx context.Context, query string, regionFilter []string, topK int) ([]*core.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates, err := s.chunks.FindCandidates(ctx, regionFilter)
	if err != nil {
		return nil, err
	}

	var results []*core.SearchResult
	for _, candidate := range candidates {
		if len(candidate.Chunk.Vector) == 0 {
			continue
		}

		similarity, err := CosineSimilarity(queryVector, candidate.Chunk.Vector)
		if err != nil {
			return nil, err
		}
		// NaN means a degenerate vector, treated as a non-match.
		if math.IsNaN(float64(similarity)) || similarity < MinSimilarity {
			continue
		}

		results = append(results, &core.SearchResult{
			ChunkId:       candidate.Chunk.Id,
			DocumentId:    candidate.Chunk.DocumentId,
			Content:       candidate.Chunk.Content,
			PageNumber:    candidate.Chunk.PageNumber,
			Similarity:    similarity,
			RegionName:    candidate.RegionName,
			DocumentTitle: candidate.DocumentTitle,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}

	s.logger.Debug("Search completed", "candidates", len(candidates), "results", len(results))
	return results, nil
}
