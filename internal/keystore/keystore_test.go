package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestStore_SaveAndLoad(t *testing.T) {
	store := New(t.TempDir())

	if err := store.Save("pd-secret-key"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	key, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if key != "pd-secret-key" {
		t.Errorf("Load() = %q, want pd-secret-key", key)
	}
}

func TestStore_SaveTrimsWhitespace(t *testing.T) {
	store := New(t.TempDir())

	if err := store.Save("  pd-secret-key\n"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	key, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if key != "pd-secret-key" {
		t.Errorf("Load() = %q, want trimmed key", key)
	}
}

func TestStore_SaveEmpty(t *testing.T) {
	store := New(t.TempDir())

	if err := store.Save("   "); err == nil {
		t.Error("Save() should reject an empty key")
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := New(t.TempDir())

	if err := store.Save("pd-secret-key"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Errorf("Delete() should be idempotent, got %v", err)
	}

	_, err := store.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}

	dir := t.TempDir()
	store := New(dir)

	if err := store.Save("pd-secret-key"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "api_key"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("key file mode = %o, want 600", perm)
	}
}
