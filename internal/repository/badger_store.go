package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger"
	"github.com/sirupsen/logrus"
)

const badgerKeyPrefix = "ledger/"

// BadgerStore keeps each blob under its own key in an embedded badger
// database. Every PutBlob is a separate update transaction.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if needed) the badger database at path.
// Badger's internal logging is routed through logrus at the entry's level.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating badger dir %s: %w", path, err)
	}
	opts := badger.DefaultOptions(path).
		WithLogger(logrus.WithField("component", "badger"))
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the database files.
func (s *BadgerStore) Close() error { return s.db.Close() }

// Save writes the snapshot blobs in order.
func (s *BadgerStore) Save(ctx context.Context, snap Snapshot) error {
	return saveSnapshot(ctx, s, snap)
}

// Load reads the snapshot blobs; missing keys load as empty state.
func (s *BadgerStore) Load(ctx context.Context) (Snapshot, error) {
	return loadSnapshot(ctx, s)
}

// PutBlob sets the blob's key in a single transaction.
func (s *BadgerStore) PutBlob(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerKeyPrefix+name), data)
	})
}

// GetBlob reads the blob's key. found is false on badger.ErrKeyNotFound.
func (s *BadgerStore) GetBlob(ctx context.Context, name string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var (
		data  []byte
		found bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		found = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return data, found, nil
}
