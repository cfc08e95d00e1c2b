// Package chunker cuts extracted document text into fixed-size overlapping
// windows suitable for embedding and retrieval.
//
// Splitting is a pure function with no side effects and no failure modes of
// its own; errors from upstream text extraction are the caller's concern.
package chunker
