// Package bolt is the bbolt adapter for the key/value store. It keeps the
// whole cache in a single file with one fixed bucket.
package bolt

import (
	"errors"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/acmoYimke/neomutt/store"
)

const (
	// pageSize is fixed; it is an internal tuning constant, not caller
	// configurable.
	pageSize = 4096

	// lockTimeout bounds the wait on another process holding the file
	// lock, so contention degrades to read-only instead of hanging.
	lockTimeout = 1 * time.Second
)

// records is the single bucket holding all cache entries.
var records = []byte("records")

func init() {
	store.Register(store.Driver{
		Name:       "bolt",
		ModulePath: "go.etcd.io/bbolt",
		Open:       open,
	})
}

type backend struct {
	db *bolt.DB
}

var _ store.Backend = (*backend)(nil)

// open tries a read-write open with creation first, then falls back to a
// strictly read-only open. Created files are owner-only.
func open(path string) (store.Backend, error) {
	db, rwErr := bolt.Open(path, 0600, &bolt.Options{
		Timeout:  lockTimeout,
		PageSize: pageSize,
	})
	if rwErr == nil {
		// Create the bucket up front so later reads and writes can
		// assume it exists.
		err := db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(records)
			return err
		})
		if err != nil {
			db.Close()
			return nil, err
		}
		return &backend{db: db}, nil
	}

	slog.Debug("bolt: read-write open failed, retrying read-only",
		"path", path, "error", rwErr)

	db, roErr := bolt.Open(path, 0600, &bolt.Options{
		Timeout:  lockTimeout,
		ReadOnly: true,
	})
	if roErr != nil {
		return nil, errors.Join(rwErr, roErr)
	}
	return &backend{db: db}, nil
}

func (b *backend) Fetch(key []byte) ([]byte, error) {
	var val []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(records)
		if bkt == nil {
			// Read-only file written before the bucket existed.
			return store.ErrNotFound
		}
		v := bkt.Get(key)
		if v == nil {
			return store.ErrNotFound
		}
		// The slice is only valid inside the transaction.
		val = make([]byte, len(v))
		copy(val, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (b *backend) Store(key, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(records).Put(key, value)
	})
}

func (b *backend) Delete(key []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(records)
		if bkt.Get(key) == nil {
			return store.ErrNotFound
		}
		return bkt.Delete(key)
	})
}

func (b *backend) ReadOnly() bool {
	return b.db.IsReadOnly()
}

func (b *backend) Close() error {
	return b.db.Close()
}
