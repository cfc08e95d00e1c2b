package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/storage"
)

// FactRepository implements storage.FactRepository for BadgerDB.
type FactRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.FactRepository = (*FactRepository)(nil)

// NewFactRepository creates a new FactRepository.
func NewFactRepository(backend *Backend) (*FactRepository, error) {
	idSeq, err := backend.GetSequence(seqFact)
	if err != nil {
		return nil, err
	}

	return &FactRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *FactRepository) Close() error {
	return r.idSeq.Release()
}

// AddFacts stores facts in a single transaction. Facts are append only;
// re-extracting a document adds new rows rather than replacing old ones.
func (r *FactRepository) AddFacts(ctx context.Context, facts ...*core.Fact) ([]*core.Fact, error) {
	for _, fact := range facts {
		if err := core.ValidateFact(fact); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, fact := range facts {
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
			fact.Id = core.ID(nextID)
			fact.InsertedAt = time.Now().UTC()

			if err := tx.Set(factKey(fact.Id), storage.MarshalFact(fact)); err != nil {
				return err
			}

			idValue := storage.MarshalID(fact.Id)
			if err := tx.Set(factByDocumentKey(fact.DocumentId, fact.Id), idValue); err != nil {
				return err
			}
			if err := tx.Set(factByRegionKey(fact.RegionId, fact.Id), idValue); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return facts, err
}

// GetFactsByDocument returns all facts extracted from a document.
func (r *FactRepository) GetFactsByDocument(ctx context.Context, documentID core.ID) ([]*core.Fact, error) {
	return r.listByIndex(factByDocumentPrefix(documentID))
}

// GetFactsByRegion returns all facts for a region across its documents.
func (r *FactRepository) GetFactsByRegion(ctx context.Context, regionID core.ID) ([]*core.Fact, error) {
	return r.listByIndex(factByRegionPrefix(regionID))
}

func (r *FactRepository) listByIndex(prefix []byte) ([]*core.Fact, error) {
	var results []*core.Fact
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var factID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				factID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			fact, err := r.readFact(tx, factKey(factID))
			if err != nil {
				return err
			}
			if fact != nil {
				results = append(results, fact)
			}
		}
		return nil
	}, false)
	return results, err
}

func (r *FactRepository) readFact(tx *badger.Txn, key []byte) (*core.Fact, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var fact *core.Fact
	err = item.Value(func(val []byte) error {
		var err error
		fact, err = storage.UnmarshalFact(val)
		return err
	})
	return fact, err
}
