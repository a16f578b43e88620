package store

import (
	"errors"
	"fmt"
	"math"
)

// maxEntryLen bounds key and value lengths. The embedded engines share a
// 32-bit signed length limit; oversized entries are rejected here rather
// than passed to an engine that would truncate them. A variable so tests
// can exercise the guard without allocating multi-gigabyte slices.
var maxEntryLen = math.MaxInt32

// Backend is one open engine connection. Each adapter subpackage provides
// an implementation and registers a Driver that produces it.
//
// Adapters must return ErrNotFound for a missing key from Fetch and
// Delete, and must return fetch results as caller-owned copies. Argument
// validation and close bookkeeping happen in Handle, so implementations
// may assume a live connection and in-range lengths.
type Backend interface {
	// Fetch returns the value stored for key.
	Fetch(key []byte) ([]byte, error)

	// Store writes value under key, replacing any existing record.
	Store(key, value []byte) error

	// Delete removes the record for key.
	Delete(key []byte) error

	// ReadOnly reports whether the connection was opened read-only.
	ReadOnly() bool

	// Close releases the engine resources. Called at most once.
	Close() error
}

// Handle is an open connection to one storage backend. It guards every
// operation against nil and closed states and normalizes engine errors to
// the sentinel errors of this package. A Handle is bound to the backend
// that produced it for its whole lifetime.
//
// A Handle must not be used concurrently without external locking.
type Handle struct {
	name    string
	backend Backend
}

// Open opens (or creates) the store at path using the named backend.
// Creation is attempted read-write first; if that fails the adapter
// retries strictly read-only, and only if both attempts fail does Open
// return ErrUnavailable with both causes attached. Newly created files
// are owner-only.
//
// Failure to open is not fatal to the application: callers treat it as
// running without a cache.
func Open(name, path string) (*Handle, error) {
	d, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	b, err := d.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, name, err)
	}
	return &Handle{name: name, backend: b}, nil
}

// Fetch returns the value stored for key, as a copy owned by the caller.
// A missing key yields ErrNotFound and is a normal cache miss. Fetch never
// mutates the store.
func (h *Handle) Fetch(key []byte) ([]byte, error) {
	if h == nil || h.backend == nil {
		return nil, ErrUnavailable
	}
	if len(key) > maxEntryLen {
		return nil, ErrCapacityExceeded
	}
	v, err := h.backend.Fetch(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrBackendFailure, err)
	}
	return v, nil
}

// Store writes value under key, fully replacing any existing record for an
// equal key. Durability follows the engine's own flush policy; no extra
// sync is added here.
func (h *Handle) Store(key, value []byte) error {
	if h == nil || h.backend == nil {
		return ErrUnavailable
	}
	if len(key) > maxEntryLen || len(value) > maxEntryLen {
		return ErrCapacityExceeded
	}
	if err := h.backend.Store(key, value); err != nil {
		return errors.Join(ErrBackendFailure, err)
	}
	return nil
}

// Delete removes the record for key. Deleting a key that was never stored
// yields ErrNotFound, which is non-fatal.
func (h *Handle) Delete(key []byte) error {
	if h == nil || h.backend == nil {
		return ErrUnavailable
	}
	if len(key) > maxEntryLen {
		return ErrCapacityExceeded
	}
	if err := h.backend.Delete(key); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return errors.Join(ErrBackendFailure, err)
	}
	return nil
}

// Close releases the backend resources. The first call closes the engine
// connection and detaches it from the handle; subsequent calls are no-ops,
// and any other operation after Close fails with ErrUnavailable.
func (h *Handle) Close() error {
	if h == nil || h.backend == nil {
		return nil
	}
	b := h.backend
	h.backend = nil
	if err := b.Close(); err != nil {
		return errors.Join(ErrBackendFailure, err)
	}
	return nil
}

// Name returns the backend name this handle was opened with.
func (h *Handle) Name() string {
	if h == nil {
		return ""
	}
	return h.name
}

// ReadOnly reports whether the handle was degraded to read-only at open
// time. A closed or nil handle reports false.
func (h *Handle) ReadOnly() bool {
	if h == nil || h.backend == nil {
		return false
	}
	return h.backend.ReadOnly()
}

// Version returns the version identifier of the engine behind this handle,
// for diagnostics. It never fails; see Version.
func (h *Handle) Version() string {
	if h == nil {
		return versionUnknown
	}
	return Version(h.name)
}
