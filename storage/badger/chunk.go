package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	idSeq, err := backend.GetSequence(seqChunk)
	if err != nil {
		return nil, err
	}

	return &ChunkRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ChunkRepository) Close() error {
	return r.idSeq.Release()
}

// AddChunks stores all chunks in a single transaction. Either every chunk
// is written or none are.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			chunk.Id = core.ID(nextID)

			if err := tx.Set(chunkKey(chunk.Id), storage.MarshalChunk(chunk)); err != nil {
				return err
			}

			// Document index keyed by chunk index, so scans return chunks
			// in document order.
			docKey := chunkByDocumentKey(chunk.DocumentId, chunk.Index, chunk.Id)
			if err := tx.Set(docKey, storage.MarshalID(chunk.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// GetChunksByDocument returns all chunks of a document ordered by chunk index.
func (r *ChunkRepository) GetChunksByDocument(ctx context.Context, documentID core.ID) ([]*core.Chunk, error) {
	var results []*core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chunkByDocumentPrefix(documentID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunkID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunkID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			chunk, err := r.readChunk(tx, chunkKey(chunkID))
			if err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)
	return results, err
}

// FindCandidates returns every stored chunk together with its region name and
// document title, optionally restricted to the given region names. An empty
// regionNames slice means no region filter.
func (r *ChunkRepository) FindCandidates(ctx context.Context, regionNames []string) ([]*core.ChunkCandidate, error) {
	wanted := make(map[string]bool, len(regionNames))
	for _, name := range regionNames {
		wanted[name] = true
	}

	var results []*core.ChunkCandidate
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		regions, err := readRegionNames(tx)
		if err != nil {
			return err
		}
		documents, err := readDocumentMeta(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixChunk)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			chunk, err := r.readItem(iter.Item())
			if err != nil {
				return err
			}

			doc, ok := documents[chunk.DocumentId]
			if !ok {
				continue
			}
			regionName := regions[doc.regionID]
			if len(wanted) > 0 && !wanted[regionName] {
				continue
			}

			results = append(results, &core.ChunkCandidate{
				Chunk:         chunk,
				RegionName:    regionName,
				DocumentTitle: doc.title,
			})
		}
		return nil
	}, false)
	return results, err
}

type documentMeta struct {
	regionID core.ID
	title    string
}

func readRegionNames(tx *badger.Txn) (map[core.ID]string, error) {
	regions := make(map[core.ID]string)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixRegion)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var region *core.Region
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			region, err = storage.UnmarshalRegion(val)
			return err
		}); err != nil {
			return nil, err
		}
		regions[region.Id] = region.Name
	}
	return regions, nil
}

func readDocumentMeta(tx *badger.Txn) (map[core.ID]documentMeta, error) {
	documents := make(map[core.ID]documentMeta)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixDocument)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var doc *core.Document
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			doc, err = storage.UnmarshalDocument(val)
			return err
		}); err != nil {
			return nil, err
		}
		documents[doc.Id] = documentMeta{regionID: doc.RegionId, title: doc.Title}
	}
	return documents, nil
}

func (r *ChunkRepository) readChunk(tx *badger.Txn, key []byte) (*core.Chunk, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.readItem(item)
}

func (r *ChunkRepository) readItem(item *badger.Item) (*core.Chunk, error) {
	var chunk *core.Chunk
	err := item.Value(func(val []byte) error {
		var err error
		chunk, err = storage.UnmarshalChunk(val)
		return err
	})
	return chunk, err
}
