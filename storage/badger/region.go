package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/policyatlas/core"
	"github.com/poiesic/policyatlas/storage"
)

// RegionRepository implements storage.RegionRepository for BadgerDB.
// Region IDs are content based (core.IDFromName), so no sequence is needed
// and concurrent creation attempts converge on the same row.
type RegionRepository struct {
	backend *Backend
}

var _ storage.RegionRepository = (*RegionRepository)(nil)

// NewRegionRepository creates a new RegionRepository.
func NewRegionRepository(backend *Backend) *RegionRepository {
	return &RegionRepository{backend: backend}
}

// Close is a no-op; the repository holds no resources of its own.
func (r *RegionRepository) Close() error {
	return nil
}

// GetOrCreateRegion returns the region with the given name, creating it if
// it does not exist yet. Region names are unique by construction of the ID.
func (r *RegionRepository) GetOrCreateRegion(ctx context.Context, name, code string) (*core.Region, error) {
	region := &core.Region{
		Id:   core.IDFromName(name),
		Name: name,
		Code: code,
	}
	if err := core.ValidateRegion(region); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := regionKey(region.Id)
		existing, err := r.readRegion(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			region = existing
			return nil
		}

		region.InsertedAt = time.Now().UTC()
		if err := tx.Set(key, storage.MarshalRegion(region)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return region, err
}

// GetRegion retrieves a single region by ID.
func (r *RegionRepository) GetRegion(ctx context.Context, id core.ID) (*core.Region, error) {
	var result *core.Region
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readRegion(tx, regionKey(id))
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

// GetRegionByName retrieves a region by its unique name.
func (r *RegionRepository) GetRegionByName(ctx context.Context, name string) (*core.Region, error) {
	return r.GetRegion(ctx, core.IDFromName(name))
}

// ListRegions returns all regions.
func (r *RegionRepository) ListRegions(ctx context.Context) ([]*core.Region, error) {
	var results []*core.Region
	err := r.backend.WithTx(func(tx *badger.Txn) error {
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
				return err
			}
			results = append(results, region)
		}
		return nil
	}, false)
	return results, err
}

func (r *RegionRepository) readRegion(tx *badger.Txn, key []byte) (*core.Region, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var region *core.Region
	err = item.Value(func(val []byte) error {
		var err error
		region, err = storage.UnmarshalRegion(val)
		return err
	})
	return region, err
}
