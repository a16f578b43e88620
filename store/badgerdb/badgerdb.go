// Package badgerdb is the BadgerDB adapter for the key/value store. The
// cache occupies a directory rather than a single file.
package badgerdb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/acmoYimke/neomutt/store"
)

func init() {
	store.Register(store.Driver{
		Name:       "badger",
		ModulePath: "github.com/dgraph-io/badger/v4",
		Open:       open,
	})
}

type backend struct {
	db       *badger.DB
	readonly bool
}

var _ store.Backend = (*backend)(nil)

// loggerAdapter routes badger's internal logging through slog.
type loggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*loggerAdapter)(nil)

func (l *loggerAdapter) Errorf(msg string, items ...any) {
	l.logger.Error(fmt.Sprintf(msg, items...))
}

func (l *loggerAdapter) Warningf(msg string, items ...any) {
	l.logger.Warn(fmt.Sprintf(msg, items...))
}

func (l *loggerAdapter) Infof(msg string, items ...any) {
	l.logger.Debug(fmt.Sprintf(msg, items...))
}

func (l *loggerAdapter) Debugf(msg string, items ...any) {
	l.logger.Debug(fmt.Sprintf(msg, items...))
}

func open(path string) (store.Backend, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		// A read-only open of an existing directory may still work.
		slog.Debug("badger: create cache directory", "path", path, "error", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = &loggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, rwErr := badger.Open(opts)
	if rwErr == nil {
		return &backend{db: db}, nil
	}

	slog.Debug("badger: read-write open failed, retrying read-only",
		"path", path, "error", rwErr)

	db, roErr := badger.Open(opts.WithReadOnly(true))
	if roErr != nil {
		return nil, errors.Join(rwErr, roErr)
	}
	return &backend{db: db, readonly: true}, nil
}

func (b *backend) Fetch(key []byte) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (b *backend) Store(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *backend) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		// Badger deletes of absent keys succeed silently, so check first
		// to report a uniform not-found result.
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

func (b *backend) ReadOnly() bool {
	return b.readonly
}

func (b *backend) Close() error {
	return b.db.Close()
}
