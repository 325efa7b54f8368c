package repositories

import (
	"dummyapi/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// BadgerRunRepository implements RunRepository using BadgerDB
type BadgerRunRepository struct {
	db *badger.DB
}

// NewBadgerRunRepository creates a new BadgerRunRepository
func NewBadgerRunRepository(db *badger.DB) *BadgerRunRepository {
	return &BadgerRunRepository{db: db}
}

// Create stores a run and assigns its ID
func (r *BadgerRunRepository) Create(run *models.Run) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, RunSeqKey)
		if err != nil {
			return err
		}
		run.ID = id

		data, err := marshalEntity(run)
		if err != nil {
			return err
		}
		return txn.Set(runKey(id), data)
	})
	return errors.Wrap(err, "create run")
}

// GetByID retrieves a run by ID
func (r *BadgerRunRepository) GetByID(id int) (*models.Run, error) {
	var run models.Run

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &run)
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get run %d", id)
	}
	return &run, nil
}

// List retrieves runs in ascending ID order
func (r *BadgerRunRepository) List(limit, offset int) ([]*models.Run, error) {
	var runs []*models.Run
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		count := 0
		prefix := []byte(RunKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if count < offset {
				count++
				continue
			}
			if count >= offset+limit {
				break
			}

			var run models.Run
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &run)
			})
			if err != nil {
				return err
			}
			runs = append(runs, &run)
			count++
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	return runs, nil
}

// Delete deletes a run by ID
func (r *BadgerRunRepository) Delete(id int) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		key := runKey(id)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
	return errors.Wrapf(err, "delete run %d", id)
}
