package badgerdb

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmoYimke/neomutt/store"
	"github.com/acmoYimke/neomutt/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, "badger")
}

func TestOpenInaccessiblePath(t *testing.T) {
	// A regular file sits where the cache directory should be, so neither
	// open mode can succeed.
	path := filepath.Join(t.TempDir(), "shadow")
	require.NoError(t, os.WriteFile(path, []byte("not a directory"), 0600))

	h, err := store.Open("badger", path)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestLoggerAdapterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	l := &loggerAdapter{logger: logger}
	l.Errorf("bad %d", 1)
	l.Warningf("iffy %d", 2)
	l.Infof("routine %d", 3)
	l.Debugf("noise %d", 4)

	out := buf.String()
	assert.Contains(t, out, "bad 1")
	assert.Contains(t, out, "iffy 2")
	assert.Contains(t, out, "routine 3")
	assert.Contains(t, out, "noise 4")
}
