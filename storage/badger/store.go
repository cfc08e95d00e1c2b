package badger

// Store bundles the BadgerDB-backed repositories behind a single handle
// sharing one Backend.
type Store struct {
	backend   *Backend
	Documents *DocumentRepository
	Chunks    *ChunkRepository
	Facts     *FactRepository
	Regions   *RegionRepository
}

// NewStore opens the database at filePath and wires up all repositories.
func NewStore(filePath string, inMemory bool) (*Store, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	documents, err := NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	chunks, err := NewChunkRepository(backend)
	if err != nil {
		documents.Close()
		backend.Close()
		return nil, err
	}

	facts, err := NewFactRepository(backend)
	if err != nil {
		chunks.Close()
		documents.Close()
		backend.Close()
		return nil, err
	}

	regions := NewRegionRepository(backend)

	return &Store{
		backend:   backend,
		Documents: documents,
		Chunks:    chunks,
		Facts:     facts,
		Regions:   regions,
	}, nil
}

// Close releases the ID sequences and closes the database.
func (s *Store) Close() error {
	s.Regions.Close()
	s.Facts.Close()
	s.Chunks.Close()
	s.Documents.Close()
	return s.backend.Close()
}
