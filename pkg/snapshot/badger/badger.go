// Package badger provides a Badger-based implementation of the
// snapshot store.
package badger

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mindcore/mindcore/pkg/snapshot"
)

const keyPrefix = "snapshot:"

// Config holds configuration for BadgerStore.
type Config struct {
	Path             string
	SyncWrites       bool
	ValueLogFileSize int64
}

// BadgerStore implements snapshot.Store using Badger.
type BadgerStore struct {
	db     *badger.DB
	config *Config
}

// NewBadgerStore opens the Badger database at the configured path.
func NewBadgerStore(config *Config) (*BadgerStore, error) {
	opts := badger.DefaultOptions(config.Path)
	opts.SyncWrites = config.SyncWrites
	if config.ValueLogFileSize > 0 {
		opts.ValueLogFileSize = config.ValueLogFileSize
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, &snapshot.UnavailableError{Cause: err}
	}

	return &BadgerStore{db: db, config: config}, nil
}

func snapshotKey(stateID string) []byte {
	return []byte(keyPrefix + stateID)
}

// Put stores snapshot bytes under the given state ID.
func (b *BadgerStore) Put(ctx context.Context, stateID string, data []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(stateID), data)
	})
	if err != nil {
		return fmt.Errorf("badger: put snapshot %s: %w", stateID, err)
	}
	return nil
}

// Get returns the snapshot bytes for the given state ID.
func (b *BadgerStore) Get(ctx context.Context, stateID string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(stateID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return &snapshot.NotFoundError{StateID: stateID}
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// List returns the IDs of all stored snapshots.
func (b *BadgerStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger: list snapshots: %w", err)
	}
	return ids, nil
}

// Delete removes the snapshot for the given state ID.
func (b *BadgerStore) Delete(ctx context.Context, stateID string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(snapshotKey(stateID))
	})
	if err != nil {
		return fmt.Errorf("badger: delete snapshot %s: %w", stateID, err)
	}
	return nil
}

// Close closes the underlying Badger database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
