package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/acmoYimke/neomutt/store/bolt"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "bolt", cfg.Store.Backend)
	assert.Equal(t, ":", cfg.Maildir.FieldDelimiter)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Store, cfg.Store)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[store]
backend = "bolt"
path = "/var/cache/hdrs.db"

[maildir]
field_delimiter = ";"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bolt", cfg.Store.Backend)
	assert.Equal(t, "/var/cache/hdrs.db", cfg.Store.Path)
	assert.Equal(t, ";", cfg.Maildir.FieldDelimiter)

	// The file moved the delimiter off its default, so it cannot change
	// again.
	err = cfg.SetFieldDelimiter(",")
	assert.ErrorContains(t, err, "only be set once")
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[store]
backend = "no-such-engine"
path = "/var/cache/hdrs.db"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestSetFieldDelimiterRules(t *testing.T) {
	bad := []string{"", "::", "a", "Z", "1", "-", ".", `\`, "/"}
	for _, delim := range bad {
		cfg := Defaults()
		assert.Error(t, cfg.SetFieldDelimiter(delim), "delimiter %q", delim)
	}

	good := []string{";", ",", "|", "!", "_"}
	for _, delim := range good {
		cfg := Defaults()
		require.NoError(t, cfg.SetFieldDelimiter(delim), "delimiter %q", delim)
		assert.Equal(t, delim, cfg.Maildir.FieldDelimiter)
	}
}

func TestSetFieldDelimiterOnlyOnce(t *testing.T) {
	cfg := Defaults()

	// Re-asserting the default does not consume the one change.
	require.NoError(t, cfg.SetFieldDelimiter(":"))
	require.NoError(t, cfg.SetFieldDelimiter(";"))

	err := cfg.SetFieldDelimiter(",")
	assert.ErrorContains(t, err, "only be set once")

	// Even setting it back to the default is rejected after a change.
	err = cfg.SetFieldDelimiter(":")
	assert.ErrorContains(t, err, "only be set once")

	// A rejected change leaves the value alone.
	assert.Equal(t, ";", cfg.Maildir.FieldDelimiter)

	// Independent configurations are unaffected.
	other := Defaults()
	require.NoError(t, other.SetFieldDelimiter(","))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x"), ExpandHome("~/x"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "relative", ExpandHome("relative"))
}
