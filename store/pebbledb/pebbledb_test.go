package pebbledb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmoYimke/neomutt/store"
	"github.com/acmoYimke/neomutt/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, "pebble")
}

func TestOpenInaccessiblePath(t *testing.T) {
	// A regular file sits where the cache directory should be, so neither
	// open mode can succeed.
	path := filepath.Join(t.TempDir(), "shadow")
	require.NoError(t, os.WriteFile(path, []byte("not a directory"), 0600))

	h, err := store.Open("pebble", path)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestFetchReturnsCallerOwnedCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache")
	h, err := store.Open("pebble", path)
	require.NoError(t, err)
	defer h.Close()

	key := []byte("abc")
	require.NoError(t, h.Store(key, []byte("xyz123")))

	got, err := h.Fetch(key)
	require.NoError(t, err)

	// Mutating the returned slice must not affect what a later fetch sees.
	got[0] = 'Z'

	again, err := h.Fetch(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz123"), again)
}
