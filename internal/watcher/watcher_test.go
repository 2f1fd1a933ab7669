package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/kv"
)

func TestWatcherReportsChangedKeys(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	got := make(chan []string, 4)

	w, err := New(dir, func(keys []string) { got <- keys })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	b, err := kv.NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Set(ctx, "zenta-tasks", []byte("[]")); err != nil {
		t.Fatal(err)
	}
	if err := b.Set(ctx, "sidebar-collapsed", []byte(`"true"`)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	deadline := time.After(3 * time.Second)
	for !seen["zenta-tasks"] || !seen["sidebar-collapsed"] {
		select {
		case keys := <-got:
			for _, k := range keys {
				seen[k] = true
			}
		case <-deadline:
			t.Fatalf("Expected both keys reported, saw %v", seen)
		}
	}
	if len(seen) != 2 {
		t.Errorf("Expected only store keys reported, saw %v", seen)
	}
}
