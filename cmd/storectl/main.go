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


package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/acmoYimke/neomutt/config"
	"github.com/acmoYimke/neomutt/store"
	_ "github.com/acmoYimke/neomutt/store/badgerdb"
	_ "github.com/acmoYimke/neomutt/store/bolt"
	_ "github.com/acmoYimke/neomutt/store/leveldb"
	_ "github.com/acmoYimke/neomutt/store/pebbledb"
)

func main() {
	app := &cli.App{
		Name:  "storectl",
		Usage: "Inspect and edit the header cache store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Fetch the value for a key and write it to stdout",
				ArgsUsage: "KEY",
				Action:    getCommand,
				Flags:     storeFlags(),
			},
			{
				Name:      "set",
				Usage:     "Store a value under a key, replacing any existing value",
				ArgsUsage: "KEY VALUE",
				Action:    setCommand,
				Flags:     storeFlags(),
			},
			{
				Name:      "delete",
				Usage:     "Remove the record for a key",
				ArgsUsage: "KEY",
				Action:    deleteCommand,
				Flags:     storeFlags(),
			},
			{
				Name:   "version",
				Usage:  "Print the selected backend's engine version",
				Action: versionCommand,
				Flags:  storeFlags(),
			},
			{
				Name:   "backends",
				Usage:  "List compiled-in storage backends",
				Action: backendsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the cache store (overrides the config file)",
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"b"},
			Usage:   "Storage backend to use (overrides the config file)",
		},
	}
}

// openFromFlags resolves backend and path from flags over the config file
// over defaults, then opens the store.
func openFromFlags(c *cli.Context) (*store.Handle, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	backend := cfg.Store.Backend
	if b := c.String("backend"); b != "" {
		backend = b
	}
	path := cfg.Store.Path
	if p := c.String("db"); p != "" {
		path = p
	}

	h, err := store.Open(backend, config.ExpandHome(path))
	if err != nil {
		return nil, err
	}
	if h.ReadOnly() {
		slog.Warn("store opened read-only", "backend", backend, "path", path)
	}
	return h, nil
}

func getCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: get KEY")
	}

	h, err := openFromFlags(c)
	if err != nil {
		return err
	}
	defer h.Close()

	value, err := h.Fetch([]byte(c.Args().Get(0)))
	if errors.Is(err, store.ErrNotFound) {
		return cli.Exit("key not found", 1)
	}
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(value)
	return err
}

func setCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: set KEY VALUE")
	}

	h, err := openFromFlags(c)
	if err != nil {
		return err
	}
	defer h.Close()

	return h.Store([]byte(c.Args().Get(0)), []byte(c.Args().Get(1)))
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: delete KEY")
	}

	h, err := openFromFlags(c)
	if err != nil {
		return err
	}
	defer h.Close()

	err = h.Delete([]byte(c.Args().Get(0)))
	if errors.Is(err, store.ErrNotFound) {
		return cli.Exit("key not found", 1)
	}
	return err
}

func versionCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	backend := cfg.Store.Backend
	if b := c.String("backend"); b != "" {
		backend = b
	}

	fmt.Printf("%s %s\n", backend, store.Version(backend))
	return nil
}

func backendsCommand(c *cli.Context) error {
	for _, name := range store.Backends() {
		fmt.Printf("%s %s\n", name, store.Version(name))
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
