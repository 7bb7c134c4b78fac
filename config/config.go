// Package config holds the command-line configuration of the game.
package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"snake-arcade/game/manager"
)

const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"

	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Backend string
	Speed   int
	Store   string
	DataDir string
	// Watch is the listen address of the spectator feed; empty disables it.
	Watch   string
	Mute    bool
	Seed    uint64
	FPS     int
	Debug   bool
	LogFile string
}

func Default() Config {
	return Config{
		Backend: BackendWindow,
		Speed:   manager.DefaultLevel,
		Store:   StoreFile,
		DataDir: "data",
		FPS:     60,
	}
}

// RegisterFlags binds every field to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Backend, "backend", c.Backend, "drawing surface: window or terminal")
	fs.IntVar(&c.Speed, "speed", c.Speed, "initial speed level 1-10 (higher = faster)")
	fs.StringVar(&c.Store, "store", c.Store, "leaderboard storage: file, sqlite or memory")
	fs.StringVar(&c.DataDir, "data", c.DataDir, "directory for persisted scores")
	fs.StringVar(&c.Watch, "watch", c.Watch, "serve the spectator feed on this address, e.g. :8080")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable sound")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "food placement seed (0 = random)")
	fs.IntVar(&c.FPS, "fps", c.FPS, "target frames per second")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "write logs to this file")
}

// Parse reads args into a default configuration and validates it.
func Parse(name string, args []string) (Config, error) {
	c := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	switch c.Store {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalid, c.Store)
	}
	if c.Speed < manager.MinLevel || c.Speed > manager.MaxLevel {
		return fmt.Errorf("%w: speed %d outside %d-%d", ErrInvalid, c.Speed, manager.MinLevel, manager.MaxLevel)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w: fps %d outside 1-240", ErrInvalid, c.FPS)
	}
	if c.Store != StoreMemory && c.DataDir == "" {
		return fmt.Errorf("%w: data directory required for %s store", ErrInvalid, c.Store)
	}
	return nil
}

// DatabasePath is where the sqlite store keeps its file.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "snake.db")
}
