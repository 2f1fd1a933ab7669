package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/kv"
	"github.com/twiced-technology-gmbh/zenta/internal/logger"
)

// Storage keys.
const (
	KeyTasks   = "zenta-tasks"
	KeyDeleted = "zenta-deleted-tasks"
)

// DefaultRetention is how long trashed tasks are kept before PurgeExpired drops them.
const DefaultRetention = 30 * 24 * time.Hour

// Store persists the canonical task collection and its trash.
type Store struct {
	kv  *kv.Adapter
	log *slog.Logger
}

// NewStore returns a Store backed by a.
func NewStore(a *kv.Adapter) *Store {
	return &Store{kv: a, log: logger.With("component", "tasks")}
}

// LoadAll returns every live task. Absent or corrupt data yields an empty
// slice; malformed entries are skipped here and preserved by later saves.
func (s *Store) LoadAll(ctx context.Context) []Task {
	tasks, _ := kv.ReadSlice[Task](ctx, s.kv, KeyTasks)
	return tasks
}

// SaveAll replaces the task collection. It reports false when the write failed.
func (s *Store) SaveAll(ctx context.Context, tasks []Task) bool {
	if tasks == nil {
		tasks = []Task{}
	}
	return kv.WriteSlice(ctx, s.kv, KeyTasks, tasks)
}

// Get returns the live task with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Task, bool) {
	return Find(s.LoadAll(ctx), id)
}

// Resolve looks up a live task by ID or unique ID prefix.
func (s *Store) Resolve(ctx context.Context, ref string) (Task, error) {
	t, found, ambiguous := FindPrefix(s.LoadAll(ctx), ref)
	if ambiguous {
		return Task{}, clierr.Newf(clierr.InvalidTaskID, "task ID prefix %q is ambiguous", ref).
			WithDetails(map[string]any{"input": ref})
	}
	if !found {
		return Task{}, NotFound(ref)
	}
	return t, nil
}

// Save upserts t into the collection.
func (s *Store) Save(ctx context.Context, t Task) error {
	if !s.SaveAll(ctx, Upsert(s.LoadAll(ctx), t)) {
		return clierr.Storage(KeyTasks)
	}
	return nil
}

// Delete removes the task from the live collection without keeping a
// tombstone. Deleting an unknown ID is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	tasks := s.LoadAll(ctx)
	if _, ok := Find(tasks, id); !ok {
		return nil
	}
	if !s.SaveAll(ctx, Remove(tasks, id)) {
		return clierr.Storage(KeyTasks)
	}
	return nil
}

// LoadDeleted returns the trashed tasks.
func (s *Store) LoadDeleted(ctx context.Context) []Task {
	tasks, _ := kv.ReadSlice[Task](ctx, s.kv, KeyDeleted)
	return tasks
}

// Trash moves a live task to the trash, stamping DeletedAt. The trash is
// written before the live collection so an interrupted trash leaves a
// duplicate rather than losing the task.
func (s *Store) Trash(ctx context.Context, id string, now time.Time) (Task, error) {
	live := s.LoadAll(ctx)
	t, ok := Find(live, id)
	if !ok {
		return Task{}, NotFound(id)
	}
	deletedAt := now
	t.DeletedAt = &deletedAt

	if !kv.WriteSlice(ctx, s.kv, KeyDeleted, Upsert(s.LoadDeleted(ctx), t)) {
		return Task{}, clierr.Storage(KeyDeleted)
	}
	if !s.SaveAll(ctx, Remove(live, id)) {
		return Task{}, clierr.Storage(KeyTasks)
	}
	s.log.Debug("trashed task", "id", id)
	return t, nil
}

// Restore moves a trashed task back to the live collection.
func (s *Store) Restore(ctx context.Context, id string) (Task, error) {
	trash := s.LoadDeleted(ctx)
	t, ok := Find(trash, id)
	if !ok {
		return Task{}, NotFound(id)
	}
	t.DeletedAt = nil

	if err := s.Save(ctx, t); err != nil {
		return Task{}, err
	}
	if !kv.WriteSlice(ctx, s.kv, KeyDeleted, Remove(trash, id)) {
		return Task{}, clierr.Storage(KeyDeleted)
	}
	s.log.Debug("restored task", "id", id)
	return t, nil
}

// PurgeExpired drops trashed tasks older than retention and returns how many
// were removed.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time, retention time.Duration) (int, error) {
	trash := s.LoadDeleted(ctx)
	kept := make([]Task, 0, len(trash))
	for _, t := range trash {
		if !Expired(t, now, retention) {
			kept = append(kept, t)
		}
	}
	purged := len(trash) - len(kept)
	if purged == 0 {
		return 0, nil
	}
	if !kv.WriteSlice(ctx, s.kv, KeyDeleted, kept) {
		return 0, clierr.Storage(KeyDeleted)
	}
	s.log.Info("purged trashed tasks", "count", purged)
	return purged, nil
}

// EmptyTrash removes every trashed task.
func (s *Store) EmptyTrash(ctx context.Context) (int, error) {
	n := len(s.LoadDeleted(ctx))
	if n == 0 {
		return 0, nil
	}
	if !s.kv.Write(ctx, KeyDeleted, []Task{}) {
		return 0, clierr.Storage(KeyDeleted)
	}
	return n, nil
}
