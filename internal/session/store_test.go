package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if _, ok := store.Token(); ok {
		t.Fatal("fresh store should be logged out")
	}

	if err := store.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	token, ok := store.Token()
	if !ok || token != "tok-123" {
		t.Errorf("expected tok-123, got %q (ok=%v)", token, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Error("expected logged out after Clear")
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	if err := NewFileStore(dir).SetToken("persisted"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	// A fresh store over the same dir models a process restart.
	token, ok := NewFileStore(dir).Token()
	if !ok || token != "persisted" {
		t.Errorf("expected token to survive restart, got %q (ok=%v)", token, ok)
	}
}

func TestFileStore_CorruptFileDegradesToLoggedOut(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, ok := NewFileStore(dir).Token(); ok {
		t.Error("corrupt storage must read as logged out")
	}
}

func TestFileStore_ClearWhenAbsent(t *testing.T) {
	if err := NewFileStore(t.TempDir()).Clear(); err != nil {
		t.Errorf("Clear on absent token should be a no-op, got %v", err)
	}
}

func TestFileStore_TokenFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	if err := store.SetToken("secret"); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file should be 0600, got %o", perm)
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	var m Memory
	if _, ok := m.Token(); ok {
		t.Fatal("fresh memory store should be logged out")
	}
	_ = m.SetToken("t")
	if token, ok := m.Token(); !ok || token != "t" {
		t.Errorf("expected t, got %q", token)
	}
	_ = m.Clear()
	if _, ok := m.Token(); ok {
		t.Error("expected logged out after Clear")
	}
}
