package task

import (
	"context"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/kv"
)

func newTestStore(t *testing.T) (*Store, *kv.Adapter) {
	t.Helper()
	a := kv.NewAdapter(kv.NewMemoryBackend(), 0)
	return NewStore(a), a
}

func TestStoreLoadAllEmpty(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t)
	got := s.LoadAll(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestStoreLoadAllCorrupt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, a := newTestStore(t)
	if err := a.Backend().Set(ctx, KeyTasks, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if got := s.LoadAll(ctx); len(got) != 0 {
		t.Errorf("Expected empty slice for corrupt data, got %+v", got)
	}
}

func TestStoreSkipsMalformedEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, a := newTestStore(t)
	raw := `[{"id":"T1","title":"ok","priority":"low"},{"id":"T2","estimatedTime":"lots"},{"id":"T3","title":"also ok"}]`
	if err := a.Backend().Set(ctx, KeyTasks, []byte(raw)); err != nil {
		t.Fatal(err)
	}
	got := s.LoadAll(ctx)
	if len(got) != 2 || got[0].ID != "T1" || got[1].ID != "T3" {
		t.Errorf("Expected [T1 T3], got %+v", got)
	}
}

func TestStoreSaveIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)

	x := Task{ID: "T1", Title: "write", Priority: PriorityMedium, ListID: "default"}
	if err := s.Save(ctx, x); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, x); err != nil {
		t.Fatal(err)
	}
	got := s.LoadAll(ctx)
	if len(got) != 1 {
		t.Fatalf("Expected 1 task after saving twice, got %d", len(got))
	}
	if got[0] != x {
		t.Errorf("Expected %+v, got %+v", x, got[0])
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)
	for _, id := range []string{"A", "B"} {
		if err := s.Save(ctx, Task{ID: id, Title: id}); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Delete(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Expected deleting unknown ID to succeed, got %v", err)
	}
	got := s.LoadAll(ctx)
	if len(got) != 1 || got[0].ID != "B" {
		t.Errorf("Expected [B], got %+v", got)
	}
}

func TestStoreTrashRestore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := s.Save(ctx, Task{ID: "T1", Title: "bin me"}); err != nil {
		t.Fatal(err)
	}

	trashed, err := s.Trash(ctx, "T1", now)
	if err != nil {
		t.Fatal(err)
	}
	if trashed.DeletedAt == nil || !trashed.DeletedAt.Equal(now) {
		t.Errorf("Expected DeletedAt %v, got %v", now, trashed.DeletedAt)
	}
	if len(s.LoadAll(ctx)) != 0 {
		t.Error("Expected live collection to be empty")
	}
	if deleted := s.LoadDeleted(ctx); len(deleted) != 1 || deleted[0].ID != "T1" {
		t.Errorf("Expected T1 in trash, got %+v", deleted)
	}

	restored, err := s.Restore(ctx, "T1")
	if err != nil {
		t.Fatal(err)
	}
	if restored.DeletedAt != nil {
		t.Error("Expected DeletedAt cleared on restore")
	}
	if got, ok := s.Get(ctx, "T1"); !ok || got.Title != "bin me" {
		t.Errorf("Expected T1 restored, got %+v ok=%v", got, ok)
	}
	if len(s.LoadDeleted(ctx)) != 0 {
		t.Error("Expected trash to be empty")
	}

	if _, err := s.Trash(ctx, "missing", now); !clierr.HasCode(err, clierr.TaskNotFound) {
		t.Errorf("Expected TASK_NOT_FOUND, got %v", err)
	}
}

func TestStorePurgeExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new"} {
		if err := s.Save(ctx, Task{ID: id, Title: id}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Trash(ctx, id, base.Add(time.Duration(i)*20*24*time.Hour)); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.PurgeExpired(ctx, base.Add(31*24*time.Hour), DefaultRetention)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Expected 1 purged, got %d", n)
	}
	deleted := s.LoadDeleted(ctx)
	if len(deleted) != 1 || deleted[0].ID != "new" {
		t.Errorf("Expected [new] left in trash, got %+v", deleted)
	}

	if n, _ := s.PurgeExpired(ctx, base.Add(365*24*time.Hour), 0); n != 0 {
		t.Errorf("Expected zero retention to keep everything, purged %d", n)
	}
}

func TestStoreSaveFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore(kv.NewAdapter(kv.NewMemoryBackend(), 8))
	err := s.Save(ctx, Task{ID: "T1", Title: "too big for the quota"})
	if !clierr.HasCode(err, clierr.StorageError) {
		t.Errorf("Expected STORAGE_ERROR, got %v", err)
	}
}

func TestStoreResolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t)
	if err := s.Save(ctx, Task{ID: "4f1c9a", Title: "x"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Resolve(ctx, "4f1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "4f1c9a" {
		t.Errorf("Expected 4f1c9a, got %q", got.ID)
	}
	if _, err := s.Resolve(ctx, "zz"); !clierr.HasCode(err, clierr.TaskNotFound) {
		t.Errorf("Expected TASK_NOT_FOUND, got %v", err)
	}
}

func TestStoreEmptyDueDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, a := newTestStore(t)
	raw := `[{"id":"T1","title":"cleared","priority":"low","dueDate":"","listId":"default"},{"id":"T2","title":"blank","dueDate":"  "},{"id":"T3","title":"dated","dueDate":"2024-05-03"}]`
	if err := a.Backend().Set(ctx, KeyTasks, []byte(raw)); err != nil {
		t.Fatal(err)
	}

	got := s.LoadAll(ctx)
	if len(got) != 3 {
		t.Fatalf("Expected 3 tasks, got %d: %+v", len(got), got)
	}
	if got[0].DueDate != nil || got[1].DueDate != nil {
		t.Errorf("Expected no due date for empty values, got %v and %v", got[0].DueDate, got[1].DueDate)
	}
	if got[2].DueDate == nil || got[2].DueDate.String() != "2024-05-03" {
		t.Errorf("Expected due date 2024-05-03, got %v", got[2].DueDate)
	}

	if err := s.Save(ctx, Task{ID: "T4", Title: "other", Priority: PriorityMedium}); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(ctx, "T1"); !ok {
		t.Error("Expected T1 to survive an unrelated save")
	}
}

func TestStoreSaveKeepsUnreadableEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, a := newTestStore(t)
	raw := `[{"id":"T1","title":"ok"},{"id":"T2","estimatedTime":"lots"}]`
	if err := a.Backend().Set(ctx, KeyTasks, []byte(raw)); err != nil {
		t.Fatal(err)
	}

	if err := s.Save(ctx, Task{ID: "T3", Title: "new", Priority: PriorityLow}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "T1"); err != nil {
		t.Fatal(err)
	}

	var stored []map[string]any
	if _, err := a.Read(ctx, KeyTasks, &stored); err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 || stored[0]["id"] != "T3" || stored[1]["id"] != "T2" {
		t.Errorf("Expected stored [T3 T2], got %+v", stored)
	}
	if got := s.LoadAll(ctx); len(got) != 1 || got[0].ID != "T3" {
		t.Errorf("Expected live tasks [T3], got %+v", got)
	}
}
