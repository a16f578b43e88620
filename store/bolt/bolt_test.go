package bolt

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
	storetest.Run(t, "bolt")
}

func TestOpenCreatesOwnerOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	h, err := store.Open("bolt", path)
	require.NoError(t, err)
	defer h.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestOpenFallsBackToReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions do not bind root")
	}

	path := filepath.Join(t.TempDir(), "cache.db")
	h, err := store.Open("bolt", path)
	require.NoError(t, err)
	require.NoError(t, h.Store([]byte("abc"), []byte("xyz123")))
	require.NoError(t, h.Close())

	require.NoError(t, os.Chmod(path, 0400))

	h, err = store.Open("bolt", path)
	require.NoError(t, err)
	defer h.Close()
	assert.True(t, h.ReadOnly())

	// A cache that cannot be written can still be read.
	got, err := h.Fetch([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz123"), got)

	err = h.Store([]byte("abc"), []byte("other"))
	assert.ErrorIs(t, err, store.ErrBackendFailure)
}

func TestOpenInaccessiblePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "cache.db")
	h, err := store.Open("bolt", path)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}
