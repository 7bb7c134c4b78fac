package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "snakeHighScores"); err != nil || ok {
		t.Fatalf("missing key should report absent, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "snakeHighScores", `[{"score":3,"date":"1/2/2024"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "snakeHighScores")
	if err != nil || !ok || v != `[{"score":3,"date":"1/2/2024"}]` {
		t.Fatalf("unexpected value %q ok=%v err=%v", v, ok, err)
	}
	if err := kv.Set(ctx, "snakeHighScores", "[]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := kv.Get(ctx, "snakeHighScores"); v != "[]" {
		t.Errorf("overwrite lost, got %q", v)
	}
	if err := kv.Set(ctx, "../escape", "x"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestMemKV(t *testing.T) {
	exerciseKV(t, NewMemKV())
}

func TestFileKV(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	exerciseKV(t, kv)

	if _, err := os.Stat(filepath.Join(dir, "data", "snakeHighScores.json")); err != nil {
		t.Errorf("slot file missing: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "data"))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestFileKVPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, _ := NewFileKV(dir)
	if err := first.Set(context.Background(), "k", "v"); err != nil {
		t.Fatal(err)
	}
	second, _ := NewFileKV(dir)
	if v, ok, _ := second.Get(context.Background(), "k"); !ok || v != "v" {
		t.Errorf("expected persisted value, got %q ok=%v", v, ok)
	}
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.db")
	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	exerciseKV(t, kv)
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if v, ok, _ := reopened.Get(context.Background(), "snakeHighScores"); !ok || v != "[]" {
		t.Errorf("value not durable, got %q ok=%v", v, ok)
	}
}
