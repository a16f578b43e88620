// Package config loads and validates the application configuration:
// which storage backend caches headers, where the cache lives, and the
// maildir field delimiter with its one-time-settable rule.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/acmoYimke/neomutt/store"
)

const defaultFieldDelimiter = ":"

// Config is the full application configuration. The zero value is not
// usable; start from Defaults or Load.
type Config struct {
	Store   StoreConfig   `toml:"store"`
	Maildir MaildirConfig `toml:"maildir"`

	// delimiterChanged records that the field delimiter was moved off its
	// default. The delimiter may be changed at most once per Config, and
	// the flag lives here rather than in package state so independent
	// configurations stay independent.
	delimiterChanged bool
}

// StoreConfig selects the storage backend and its on-disk location.
type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// MaildirConfig holds maildir-related settings.
type MaildirConfig struct {
	FieldDelimiter string `toml:"field_delimiter"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "bolt",
			Path:    "~/.cache/headers.db",
		},
		Maildir: MaildirConfig{
			FieldDelimiter: defaultFieldDelimiter,
		},
	}
}

// Load reads a TOML config file over the defaults and validates the
// result. If path is empty, only defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.delimiterChanged = cfg.Maildir.FieldDelimiter != defaultFieldDelimiter
	return cfg, nil
}

// Validate checks the configuration for internal consistency. The backend
// must name a compiled-in driver and the field delimiter must satisfy the
// delimiter rules.
func (c *Config) Validate() error {
	if !store.Registered(c.Store.Backend) {
		return fmt.Errorf("unknown store backend %q (have %s)",
			c.Store.Backend, strings.Join(store.Backends(), ", "))
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store path must not be empty")
	}
	return validateFieldDelimiter(c.Maildir.FieldDelimiter)
}

// SetFieldDelimiter changes the maildir field delimiter. The delimiter
// must be a single non-alphanumeric character other than '-', '.', '\'
// and '/', and it may be changed away from the default at most once:
// messages on disk already use the old delimiter, so flipping it again
// mid-run would orphan them.
func (c *Config) SetFieldDelimiter(delim string) error {
	if err := validateFieldDelimiter(delim); err != nil {
		return err
	}
	if c.delimiterChanged {
		return fmt.Errorf("field delimiter can only be set once")
	}
	if delim != defaultFieldDelimiter {
		c.delimiterChanged = true
	}
	c.Maildir.FieldDelimiter = delim
	return nil
}

func validateFieldDelimiter(delim string) error {
	if len(delim) != 1 {
		return fmt.Errorf("field delimiter must be exactly one character long")
	}
	ch := delim[0]
	if isAlnum(ch) || strings.ContainsRune(`-.\/`, rune(ch)) {
		return fmt.Errorf(`field delimiter cannot be alphanumeric or '-.\/'`)
	}
	return nil
}

func isAlnum(ch byte) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z')
}

// ExpandHome resolves a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
