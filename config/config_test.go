package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Speed != 5 || c.Backend != BackendWindow || c.Store != StoreFile {
		t.Errorf("unexpected defaults %+v", c)
	}
}

func TestParseFlags(t *testing.T) {
	c, err := Parse("snake", []string{"-backend", "terminal", "-speed", "9", "-store", "sqlite", "-data", "/tmp/x", "-watch", ":9000", "-mute", "-seed", "12"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Backend != BackendTerminal || c.Speed != 9 || c.Store != StoreSQLite || c.Watch != ":9000" || !c.Mute || c.Seed != 12 {
		t.Errorf("flags not applied: %+v", c)
	}
	if c.DatabasePath() != filepath.Join("/tmp/x", "snake.db") {
		t.Errorf("unexpected database path %q", c.DatabasePath())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"backend", []string{"-backend", "vga"}},
		{"store", []string{"-store", "floppy"}},
		{"speed low", []string{"-speed", "0"}},
		{"speed high", []string{"-speed", "11"}},
		{"fps", []string{"-fps", "0"}},
		{"data dir", []string{"-data", ""}},
	}
	for _, tt := range tests {
		if _, err := Parse("snake", tt.args); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}

	if _, err := Parse("snake", []string{"-store", "memory", "-data", ""}); err != nil {
		t.Errorf("memory store needs no data dir: %v", err)
	}
}
