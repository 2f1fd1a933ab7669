package kv

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteBackend(t *testing.T) {
	t.Parallel()
	b, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "nested", "zenta.db"))
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	exerciseBackend(t, b)
}

func TestSQLiteBackendPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "zenta.db")

	b, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	a := NewAdapter(b, 0)
	if !a.Write(ctx, "sidebar-collapsed", "true") {
		t.Fatal("Write failed")
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok := NewAdapter(reopened, 0).ReadString(ctx, "sidebar-collapsed")
	if !ok || got != "true" {
		t.Errorf("after reopen: got %q, %v", got, ok)
	}
}
