package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromName generates a deterministic ID from a name using BLAKE2b hashing.
// This ensures that identical names produce identical IDs, which is how
// regions are created lazily without coordination.
func IDFromName(name string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(name))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocumentStatus describes where a document is in its processing lifecycle.
// The status only ever moves forward: processing -> completed or failed.
type DocumentStatus string

const (
	// StatusProcessing indicates the document is queued or being ingested.
	StatusProcessing DocumentStatus = "processing"
	// StatusCompleted indicates chunking, embedding, and fact extraction finished.
	StatusCompleted DocumentStatus = "completed"
	// StatusFailed indicates ingestion failed; the document keeps this status
	// until an external operator resets it.
	StatusFailed DocumentStatus = "failed"
)

// CanTransition reports whether a document status change is legal.
// Forward-only: a completed or failed document never returns to processing
// through this core.
func CanTransition(from, to DocumentStatus) bool {
	if from == StatusProcessing {
		return to == StatusCompleted || to == StatusFailed
	}
	return false
}

// Region is a jurisdiction owning documents and facts.
// Regions are created lazily on the first document uploaded for that name,
// with a content-based ID derived from the name.
type Region struct {
	Id         ID
	Name       string
	Code       string // short abbreviation, e.g. "CA"
	InsertedAt time.Time
}

// Document identifies one ingested policy file and its processing lifecycle.
type Document struct {
	Id          ID
	RegionId    ID
	Title       string
	Filename    string
	SizeBytes   int64
	Status      DocumentStatus
	UploadedAt  time.Time
	ProcessedAt time.Time // zero until the document completes
}

// Chunk is one contiguous text window of a document.
// Chunks are created exactly once during ingestion and are immutable after.
type Chunk struct {
	Id         ID
	DocumentId ID
	Content    string
	PageNumber int // estimated by linear interpolation, not exact pagination
	Index      int // zero-based sequence index within the document
	Vector     []float32
}

// FactCategory classifies an extracted policy fact.
type FactCategory string

// The fact taxonomy is fixed. Downstream coverage and comparison features
// match on these exact values.
const (
	CategoryModality            FactCategory = "modality"
	CategoryConsent             FactCategory = "consent"
	CategoryInPerson            FactCategory = "in_person"
	CategoryProviderEligibility FactCategory = "provider_eligibility"
	CategorySiteEligibility     FactCategory = "site_eligibility"
	CategoryBilling             FactCategory = "billing"
	CategoryDocumentation       FactCategory = "documentation"
	CategoryPrescribing         FactCategory = "prescribing"
)

// FactCategories lists the valid fact categories in taxonomy order.
var FactCategories = []FactCategory{
	CategoryModality,
	CategoryConsent,
	CategoryInPerson,
	CategoryProviderEligibility,
	CategorySiteEligibility,
	CategoryBilling,
	CategoryDocumentation,
	CategoryPrescribing,
}

// IsValidFactCategory reports whether c is one of the taxonomy values.
func IsValidFactCategory(c FactCategory) bool {
	for _, v := range FactCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Fact is a structured assertion extracted from a document.
// Facts are append-only: re-extraction adds new rows and never updates
// existing ones.
type Fact struct {
	Id         ID
	DocumentId ID
	RegionId   ID
	Category   FactCategory
	Field      string
	Value      string
	Confidence float32 // in [0, 1]
	PageNumber int     // 0 when the model did not attribute a page
	InsertedAt time.Time
}

// ChunkCandidate is a stored chunk joined with its owning document and
// region, as loaded for the similarity scan.
type ChunkCandidate struct {
	Chunk         *Chunk
	RegionName    string
	DocumentTitle string
}

// SearchResult is one scored chunk returned by hybrid search, joined with
// the owning document and region for citation rendering.
type SearchResult struct {
	ChunkId       ID
	DocumentId    ID
	Content       string
	PageNumber    int
	Similarity    float32
	RegionName    string
	DocumentTitle string
}
