package storage

import (
	"context"
	"time"

	"github.com/poiesic/policyatlas/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the repository and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing documents.
type DocumentRepository interface {
	Repository

	// AddDocument adds a document to storage.
	// For documents with ID=0, generates a new ID from sequence.
	// Sets UploadedAt if not already set.
	// Returns the document with the generated ID populated.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// ListDocuments retrieves all documents, optionally filtered by owning
	// region. A zero regionID means no filter.
	ListDocuments(ctx context.Context, regionID core.ID) ([]*core.Document, error)

	// ListDocumentsByStatus retrieves all documents in the given lifecycle state.
	ListDocumentsByStatus(ctx context.Context, status core.DocumentStatus) ([]*core.Document, error)

	// UpdateDocumentStatus moves a document to a new lifecycle state,
	// stamping ProcessedAt when processedAt is non-zero. Transitions are
	// forward-only; illegal moves return core.ErrInvalidTransition.
	// Returns ErrNotFound if the document doesn't exist.
	UpdateDocumentStatus(ctx context.Context, id core.ID, status core.DocumentStatus, processedAt time.Time) error
}

// ChunkRepository provides operations for managing chunks.
type ChunkRepository interface {
	Repository

	// AddChunks persists chunks in one batch write. The batch is
	// all-or-nothing: a failure leaves no chunk of the batch behind.
	// Generates IDs from sequence for chunks with ID=0.
	// Returns the chunks with generated IDs populated.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunksByDocument retrieves a document's chunks ordered by their
	// sequence index.
	GetChunksByDocument(ctx context.Context, documentID core.ID) ([]*core.Chunk, error)

	// FindCandidates loads chunks joined with their document title and
	// region name. A nil or empty regionNames loads every chunk; otherwise
	// only chunks whose owning document's region name is in the set.
	FindCandidates(ctx context.Context, regionNames []string) ([]*core.ChunkCandidate, error)
}

// FactRepository provides operations for managing extracted facts.
// Facts are append-only; there is no update operation.
type FactRepository interface {
	Repository

	// AddFacts appends fact rows, generating IDs from sequence and
	// stamping InsertedAt.
	AddFacts(ctx context.Context, facts ...*core.Fact) ([]*core.Fact, error)

	// GetFactsByDocument retrieves all facts extracted from a document,
	// including duplicates from repeated extraction runs.
	GetFactsByDocument(ctx context.Context, documentID core.ID) ([]*core.Fact, error)

	// GetFactsByRegion retrieves all facts for a region across its documents.
	GetFactsByRegion(ctx context.Context, regionID core.ID) ([]*core.Fact, error)
}

// RegionRepository provides operations for managing regions.
type RegionRepository interface {
	Repository

	// GetOrCreateRegion finds or creates a region by name.
	// Regions use content-based IDs (IDFromName), so creation is
	// deterministic and safe under concurrent attempts.
	GetOrCreateRegion(ctx context.Context, name, code string) (*core.Region, error)

	// GetRegion retrieves a single region by ID.
	// Returns ErrNotFound if the region doesn't exist.
	GetRegion(ctx context.Context, id core.ID) (*core.Region, error)

	// GetRegionByName retrieves a region by its name.
	// Returns ErrNotFound if no region with that name exists.
	GetRegionByName(ctx context.Context, name string) (*core.Region, error)

	// ListRegions retrieves all regions.
	ListRegions(ctx context.Context) ([]*core.Region, error)
}
