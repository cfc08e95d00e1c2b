// Package rag answers policy questions with retrieval-augmented generation.
//
// A question is answered by retrieving the most similar stored chunks,
// rendering them into a numbered context block, and asking the generation
// provider for an answer constrained to that context. Responses carry a
// similarity-derived confidence score and a citation per retrieved chunk.
// Page numbers in citations inherit the chunker's linear page estimate and
// are approximate.
package rag
