package search

import (
	"fmt"
	"math"
)

// CosineSimilarity computes the cosine of the angle between two vectors,
// in [-1, 1]. Returns ErrVectorDimensionMismatch when the vectors differ
// in length. A zero vector produces NaN, which callers treat as a
// non-match.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrVectorDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}
