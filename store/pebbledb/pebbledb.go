// Package pebbledb is the Pebble adapter for the key/value store. The
// cache occupies a directory rather than a single file.
//
// Pebble hands out fetch results as engine-owned buffers with an explicit
// release step, so this adapter copies at the boundary and releases the
// engine's reference before returning.
package pebbledb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/pebble"

	"github.com/acmoYimke/neomutt/store"
)

func init() {
	store.Register(store.Driver{
		Name:       "pebble",
		ModulePath: "github.com/cockroachdb/pebble",
		Open:       open,
	})
}

type backend struct {
	db       *pebble.DB
	readonly bool
}

var _ store.Backend = (*backend)(nil)

// loggerAdapter routes pebble's internal logging through slog.
type loggerAdapter struct {
	logger *slog.Logger
}

func (l *loggerAdapter) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *loggerAdapter) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *loggerAdapter) Fatalf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

func open(path string) (store.Backend, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		// A read-only open of an existing directory may still work.
		slog.Debug("pebble: create cache directory", "path", path, "error", err)
	}

	logger := &loggerAdapter{logger: slog.Default()}

	db, rwErr := pebble.Open(path, &pebble.Options{Logger: logger})
	if rwErr == nil {
		return &backend{db: db}, nil
	}

	slog.Debug("pebble: read-write open failed, retrying read-only",
		"path", path, "error", rwErr)

	db, roErr := pebble.Open(path, &pebble.Options{
		Logger:   logger,
		ReadOnly: true,
	})
	if roErr != nil {
		return nil, errors.Join(rwErr, roErr)
	}
	return &backend{db: db, readonly: true}, nil
}

func (b *backend) Fetch(key []byte) ([]byte, error) {
	v, closer, err := b.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	// The buffer belongs to pebble; copy before releasing it.
	val := make([]byte, len(v))
	copy(val, v)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return val, nil
}

func (b *backend) Store(key, value []byte) error {
	// Durability follows pebble's WAL; no extra sync is added here.
	return b.db.Set(key, value, pebble.NoSync)
}

func (b *backend) Delete(key []byte) error {
	// Pebble deletes of absent keys succeed silently, so check first to
	// report a uniform not-found result.
	_, closer, err := b.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return store.ErrNotFound
		}
		return err
	}
	if err := closer.Close(); err != nil {
		return err
	}
	return b.db.Delete(key, pebble.NoSync)
}

func (b *backend) ReadOnly() bool {
	return b.readonly
}

func (b *backend) Close() error {
	return b.db.Close()
}
