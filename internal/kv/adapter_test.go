package kv

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestAdapterRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), 0)

	values := map[string]any{
		"string": "hello",
		"number": float64(42),
		"bool":   true,
		"null":   nil,
		"array":  []any{"a", float64(1), false, nil},
		"object": map[string]any{
			"id":    "T1",
			"tags":  []any{"x"},
			"inner": map[string]any{"n": float64(3.5)},
		},
		"empty-array": []any{},
	}

	for key, want := range values {
		if !a.Write(ctx, key, want) {
			t.Fatalf("Write(%q) returned false", key)
		}
		var got any
		found, err := a.Read(ctx, key, &got)
		if err != nil {
			t.Fatalf("Read(%q) failed: %v", key, err)
		}
		if !found {
			t.Fatalf("Read(%q): expected found", key)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Read(%q) = %#v, want %#v", key, got, want)
		}
	}
}

func TestAdapterReadMissing(t *testing.T) {
	t.Parallel()
	a := NewAdapter(NewMemoryBackend(), 0)

	var v []string
	found, err := a.Read(context.Background(), "nope", &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for missing key")
	}
}

func TestAdapterReadCorrupt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewMemoryBackend()
	_ = b.Set(ctx, "zenta-tasks", []byte(`[{"id":"T1",`))
	a := NewAdapter(b, 0)

	var v []map[string]any
	found, err := a.Read(ctx, "zenta-tasks", &v)
	if !found {
		t.Error("expected found=true for corrupt value")
	}
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}

	got := ReadOr(ctx, a, "zenta-tasks", []string{"fallback"})
	if len(got) != 1 || got[0] != "fallback" {
		t.Errorf("ReadOr = %v, want [fallback]", got)
	}
}

func TestAdapterWriteFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), 16)

	if a.Write(ctx, "big", strings.Repeat("x", 64)) {
		t.Error("expected quota overflow to return false")
	}
	if a.Write(ctx, "chan", make(chan int)) {
		t.Error("expected unserializable value to return false")
	}
	if found, _ := a.Read(ctx, "big", new(string)); found {
		t.Error("failed write must not leave a value behind")
	}
}

func TestAdapterReadStringLegacy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewMemoryBackend()
	_ = b.Set(ctx, "current-list-id", []byte("L1"))
	a := NewAdapter(b, 0)

	got, ok := a.ReadString(ctx, "current-list-id")
	if !ok || got != "L1" {
		t.Errorf("ReadString legacy = %q, %v; want L1, true", got, ok)
	}

	if !a.WriteString(ctx, "current-list-id", "L2") {
		t.Fatal("WriteString failed")
	}
	raw, _ := b.Get(ctx, "current-list-id")
	if string(raw) != `"L2"` {
		t.Errorf("stored %s, want JSON string", raw)
	}
	got, ok = a.ReadString(ctx, "current-list-id")
	if !ok || got != "L2" {
		t.Errorf("ReadString = %q, %v; want L2, true", got, ok)
	}

	if _, ok := a.ReadString(ctx, "missing"); ok {
		t.Error("expected ok=false for missing key")
	}
}

func TestOpenUnknownKind(t *testing.T) {
	t.Parallel()
	if _, err := Open(context.Background(), Options{Kind: "floppy"}); err == nil {
		t.Error("expected error for unknown backend kind")
	}
}

func TestWriteSliceKeepsUnreadable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), 0)
	type item struct {
		ID string `json:"id"`
		N  int    `json:"n"`
	}
	if err := a.Backend().Set(ctx, "items", []byte(`[{"id":"a","n":1},{"id":"b","n":"two"}]`)); err != nil {
		t.Fatal(err)
	}

	if !WriteSlice(ctx, a, "items", []item{{ID: "c", N: 3}}) {
		t.Fatal("Expected write to succeed")
	}
	data, err := a.Backend().Get(ctx, "items")
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"id":"c","n":3},{"id":"b","n":"two"}]`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}

	got, ok := ReadSlice[item](ctx, a, "items")
	if !ok || len(got) != 1 || got[0].ID != "c" {
		t.Errorf("Expected [c], got %+v", got)
	}
}
