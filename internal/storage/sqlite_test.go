package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// exerciseKV runs the behavior every backend must share.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "scores:4x4"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on missing key: err = %v, expected ErrNotFound", err)
	}

	if err := kv.Set(ctx, "scores:4x4", `[{"playerName":"Ann"}]`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := kv.Set(ctx, "scores:6x6", `[]`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := kv.Set(ctx, "settings:sound", `{}`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := kv.Get(ctx, "scores:4x4")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got != `[{"playerName":"Ann"}]` {
		t.Errorf("Get() = %q", got)
	}

	// Overwrite
	if err := kv.Set(ctx, "scores:4x4", `[]`); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	if got, _ := kv.Get(ctx, "scores:4x4"); got != `[]` {
		t.Errorf("Get() after overwrite = %q, expected []", got)
	}

	if l, ok := kv.(Lister); ok {
		keys, err := l.Keys(ctx, "scores:")
		if err != nil {
			t.Fatalf("Keys() failed: %v", err)
		}
		if len(keys) != 2 || keys[0] != "scores:4x4" || keys[1] != "scores:6x6" {
			t.Errorf("Keys(scores:) = %v", keys)
		}
	}

	if err := kv.Delete(ctx, "scores:4x4"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := kv.Get(ctx, "scores:4x4"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete: err = %v, expected ErrNotFound", err)
	}
	if err := kv.Delete(ctx, "never-written"); err != nil {
		t.Errorf("Delete() of missing key failed: %v", err)
	}
}

func TestSQLiteOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSQLiteKV(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()

	exerciseKV(t, store)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	if err := store.Set(ctx, "scores:4x5", `[1]`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	store, err = OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if got, err := store.Get(ctx, "scores:4x5"); err != nil || got != `[1]` {
		t.Errorf("Get() after reopen = %q, %v", got, err)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestOpenDispatch(t *testing.T) {
	kv, err := Open("memory")
	if err != nil {
		t.Fatalf("Open(memory) failed: %v", err)
	}
	if _, ok := kv.(*Memory); !ok {
		t.Errorf("Open(memory) = %T, expected *Memory", kv)
	}

	kv, err = Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open(path) failed: %v", err)
	}
	defer kv.Close()
	if _, ok := kv.(*SQLite); !ok {
		t.Errorf("Open(path) = %T, expected *SQLite", kv)
	}
}
