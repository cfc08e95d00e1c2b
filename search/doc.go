// Package search implements similarity search over stored chunk embeddings.
//
// Queries are embedded once, compared against every candidate chunk with
// cosine similarity, filtered by a fixed relevance threshold, and returned
// in descending score order. Region filters narrow the candidate set by
// owning region name before scoring.
package search
