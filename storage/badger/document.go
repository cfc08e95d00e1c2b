package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	idSeq, err := backend.GetSequence(seqDocument)
	if err != nil {
		return nil, err
	}

	return &DocumentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *DocumentRepository) Close() error {
	return r.idSeq.Release()
}

// AddDocument stores a new document with a generated ID and status processing.
func (r *DocumentRepository) AddDocument(ctx context.Context, document *core.Document) (*core.Document, error) {
	if err := core.ValidateDocument(document); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
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
		document.Id = core.ID(nextID)
		document.UploadedAt = time.Now().UTC()

		if err := tx.Set(documentKey(document.Id), storage.MarshalDocument(document)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return document, err
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readDocument(tx, documentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListDocuments returns all documents, optionally filtered by region.
// A zero regionID means no region filter.
func (r *DocumentRepository) ListDocuments(ctx context.Context, regionID core.ID) ([]*core.Document, error) {
	return r.listDocuments(func(doc *core.Document) bool {
		return regionID == 0 || doc.RegionId == regionID
	})
}

// ListDocumentsByStatus returns all documents in the given status.
func (r *DocumentRepository) ListDocumentsByStatus(ctx context.Context, status core.DocumentStatus) ([]*core.Document, error) {
	if err := core.ValidateStatus(status); err != nil {
		return nil, err
	}
	return r.listDocuments(func(doc *core.Document) bool {
		return doc.Status == status
	})
}

// UpdateDocumentStatus moves a document to a new status. Transitions only
// run forward: a completed or failed document never changes again.
func (r *DocumentRepository) UpdateDocumentStatus(ctx context.Context, id core.ID, status core.DocumentStatus, processedAt time.Time) error {
	if err := core.ValidateStatus(status); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := documentKey(id)
		doc, err := r.readDocument(tx, key)
		if err != nil {
			return err
		}
		if doc == nil {
			return storage.ErrNotFound
		}

		if !core.CanTransition(doc.Status, status) {
			return fmt.Errorf("%w: %s to %s", core.ErrInvalidTransition, doc.Status, status)
		}

		doc.Status = status
		doc.ProcessedAt = processedAt
		if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (r *DocumentRepository) listDocuments(keep func(*core.Document) bool) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixDocument)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			doc, err := r.readItem(iter.Item())
			if err != nil {
				return err
			}
			if keep(doc) {
				results = append(results, doc)
			}
		}
		return nil
	}, false)
	return results, err
}

func (r *DocumentRepository) readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.readItem(item)
}

func (r *DocumentRepository) readItem(item *badger.Item) (*core.Document, error) {
	var doc *core.Document
	err := item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalDocument(val)
		return err
	})
	return doc, err
}
