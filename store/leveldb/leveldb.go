// Package leveldb is the goleveldb adapter for the key/value store. The
// cache occupies a directory rather than a single file.
package leveldb

import (
	"errors"
	"log/slog"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/acmoYimke/neomutt/store"
)

// blockSize is fixed; it is an internal tuning constant, not caller
// configurable.
const blockSize = 4096

func init() {
	store.Register(store.Driver{
		Name:       "leveldb",
		ModulePath: "github.com/syndtr/goleveldb",
		Open:       open,
	})
}

type backend struct {
	db       *leveldb.DB
	readonly bool
}

var _ store.Backend = (*backend)(nil)

func open(path string) (store.Backend, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		// A read-only open of an existing directory may still work.
		slog.Debug("leveldb: create cache directory", "path", path, "error", err)
	}

	db, rwErr := leveldb.OpenFile(path, &opt.Options{BlockSize: blockSize})
	if rwErr == nil {
		return &backend{db: db}, nil
	}

	slog.Debug("leveldb: read-write open failed, retrying read-only",
		"path", path, "error", rwErr)

	db, roErr := leveldb.OpenFile(path, &opt.Options{
		BlockSize: blockSize,
		ReadOnly:  true,
	})
	if roErr != nil {
		return nil, errors.Join(rwErr, roErr)
	}
	return &backend{db: db, readonly: true}, nil
}

func (b *backend) Fetch(key []byte) ([]byte, error) {
	v, err := b.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (b *backend) Store(key, value []byte) error {
	return b.db.Put(key, value, nil)
}

func (b *backend) Delete(key []byte) error {
	// goleveldb deletes of absent keys succeed silently, so check first
	// to report a uniform not-found result.
	ok, err := b.db.Has(key, nil)
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrNotFound
	}
	return b.db.Delete(key, nil)
}

func (b *backend) ReadOnly() bool {
	return b.readonly
}

func (b *backend) Close() error {
	return b.db.Close()
}
