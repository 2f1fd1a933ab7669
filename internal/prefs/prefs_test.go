package prefs

import (
	"context"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/kv"
)

func TestSidebarCollapsed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := kv.NewAdapter(kv.NewMemoryBackend(), 0)
	s := NewStore(a)

	if s.SidebarCollapsed(ctx) {
		t.Error("Expected false when unset")
	}
	if !s.SetSidebarCollapsed(ctx, true) || !s.SidebarCollapsed(ctx) {
		t.Error("Expected true after set")
	}
	// The web app stored the bare string.
	if err := a.Backend().Set(ctx, KeySidebarCollapsed, []byte("false")); err != nil {
		t.Fatal(err)
	}
	if s.SidebarCollapsed(ctx) {
		t.Error("Expected false from raw value")
	}
	if err := a.Backend().Set(ctx, KeySidebarCollapsed, []byte(`"maybe"`)); err != nil {
		t.Fatal(err)
	}
	if s.SidebarCollapsed(ctx) {
		t.Error("Expected garbage to read as false")
	}
}

func TestRelevant(t *testing.T) {
	t.Parallel()
	if Relevant([]string{"zenta-tasks", "task-lists"}) {
		t.Error("Expected task keys to be ignored")
	}
	if !Relevant([]string{"kanban-columns-a", KeySidebarCollapsed}) {
		t.Error("Expected sidebar key to be relevant")
	}
}

func TestWatchFiresOnlyForSidebar(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	b, err := kv.NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	s := NewStore(kv.NewAdapter(b, 0))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan bool, 4)
	ready := make(chan error, 1)
	go func() { ready <- s.Watch(ctx, dir, func(v bool) { changes <- v }, nil) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	writer := NewStore(kv.NewAdapter(b, 0))
	if err := b.Set(ctx, "zenta-tasks", []byte("[]")); err != nil {
		t.Fatal(err)
	}
	select {
	case v := <-changes:
		t.Fatalf("Expected no notification for task key, got %v", v)
	case <-time.After(300 * time.Millisecond):
	}

	writer.SetSidebarCollapsed(ctx, true)
	select {
	case v := <-changes:
		if !v {
			t.Error("Expected collapsed=true")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Expected a sidebar notification")
	}

	cancel()
	select {
	case err := <-ready:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
