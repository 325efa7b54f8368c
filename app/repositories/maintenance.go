package repositories

import (
	"io"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// Backup writes a full backup of the run store to w.
func Backup(db *badger.DB, w io.Writer) error {
	_, err := db.Backup(w, 0)
	return errors.Wrap(err, "backup run store")
}

// Restore loads a backup written by Backup into the run store.
// Existing keys with the same name are overwritten.
func Restore(db *badger.DB, r io.Reader) error {
	return errors.Wrap(db.Load(r, 16), "restore run store")
}

// Clean removes every stored run and resets the run sequence.
func Clean(db *badger.DB) error {
	return errors.Wrap(db.DropAll(), "clean run store")
}
