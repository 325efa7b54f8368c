package repositories

import (
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Open opens the badger database backing the run store.
// An empty path opens an in-memory database.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	} else if err := os.MkdirAll(path, 0755); err != nil {
		return nil, errors.Wrapf(err, "create run store directory %q", path)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open run store %q", path)
	}
	return db, nil
}
