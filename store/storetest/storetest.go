// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storetest provides the conformance suite that every storage
// backend's tests run. It checks the behavior all adapters must share:
// round-trips, replace semantics, miss and delete behavior, idempotent
// close, and durability across handle lifetimes.
package storetest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmoYimke/neomutt/store"
)

// Run exercises the store contract against the named backend. The backend
// must already be registered; each subtest opens a fresh database under a
// temporary directory.
func Run(t *testing.T, backend string) {
	t.Run("RoundTrip", func(t *testing.T) { testRoundTrip(t, backend) })
	t.Run("BinaryKeys", func(t *testing.T) { testBinaryKeys(t, backend) })
	t.Run("Replace", func(t *testing.T) { testReplace(t, backend) })
	t.Run("Miss", func(t *testing.T) { testMiss(t, backend) })
	t.Run("DeleteThenFetch", func(t *testing.T) { testDeleteThenFetch(t, backend) })
	t.Run("DeleteMissing", func(t *testing.T) { testDeleteMissing(t, backend) })
	t.Run("IdempotentClose", func(t *testing.T) { testIdempotentClose(t, backend) })
	t.Run("UseAfterClose", func(t *testing.T) { testUseAfterClose(t, backend) })
	t.Run("Reopen", func(t *testing.T) { testReopen(t, backend) })
	t.Run("Version", func(t *testing.T) { testVersion(t, backend) })
}

func open(t *testing.T, backend string) (*store.Handle, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	h, err := store.Open(backend, path)
	require.NoError(t, err)
	require.NotNil(t, h)
	t.Cleanup(func() { h.Close() })
	return h, path
}

func testRoundTrip(t *testing.T, backend string) {
	h, _ := open(t, backend)

	key := []byte("abc")
	val := []byte("xyz123")
	require.NoError(t, h.Store(key, val))

	got, err := h.Fetch(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	assert.Len(t, got, 6)
}

func testBinaryKeys(t *testing.T, backend string) {
	h, _ := open(t, backend)

	// Keys and values are raw bytes, not text.
	key := []byte{0x00, 0xff, 0x07, 0x00}
	val := []byte{0xde, 0xad, 0x00, 0xbe, 0xef}
	require.NoError(t, h.Store(key, val))

	got, err := h.Fetch(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
}

func testReplace(t *testing.T, backend string) {
	h, _ := open(t, backend)

	key := []byte("abc")
	require.NoError(t, h.Store(key, []byte("first")))
	require.NoError(t, h.Store(key, []byte("second")))

	got, err := h.Fetch(key)
	require.NoError(t, err)

	// Full replacement: never the old value, never a concatenation.
	assert.Equal(t, []byte("second"), got)
}

func testMiss(t *testing.T, backend string) {
	h, _ := open(t, backend)

	got, err := h.Fetch([]byte("never stored"))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotErrorIs(t, err, store.ErrBackendFailure)
}

func testDeleteThenFetch(t *testing.T, backend string) {
	h, _ := open(t, backend)

	key := []byte("abc")
	require.NoError(t, h.Store(key, []byte("xyz123")))
	require.NoError(t, h.Delete(key))

	got, err := h.Fetch(key)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testDeleteMissing(t *testing.T, backend string) {
	h, _ := open(t, backend)

	err := h.Delete([]byte("never stored"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testIdempotentClose(t *testing.T, backend string) {
	h, _ := open(t, backend)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
}

func testUseAfterClose(t *testing.T, backend string) {
	h, _ := open(t, backend)

	require.NoError(t, h.Store([]byte("abc"), []byte("xyz123")))
	require.NoError(t, h.Close())

	_, err := h.Fetch([]byte("abc"))
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.ErrorIs(t, h.Store([]byte("abc"), []byte("v2")), store.ErrUnavailable)
	assert.ErrorIs(t, h.Delete([]byte("abc")), store.ErrUnavailable)
}

func testReopen(t *testing.T, backend string) {
	h, path := open(t, backend)

	require.NoError(t, h.Store([]byte("abc"), []byte("xyz123")))
	require.NoError(t, h.Close())

	h2, err := store.Open(backend, path)
	require.NoError(t, err)
	defer h2.Close()

	got, err := h2.Fetch([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz123"), got)
	assert.Len(t, got, 6)
}

func testVersion(t *testing.T, backend string) {
	h, _ := open(t, backend)

	assert.NotEmpty(t, h.Version())
	assert.Equal(t, store.Version(backend), h.Version())
	assert.Equal(t, backend, h.Name())

	// Version stays answerable after close.
	require.NoError(t, h.Close())
	assert.NotEmpty(t, h.Version())
}
