package list

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/kv"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// KeyLists is the storage key of the list collection.
const KeyLists = "task-lists"

// Store persists the list collection.
type Store struct {
	kv *kv.Adapter
}

// NewStore returns a Store backed by a.
func NewStore(a *kv.Adapter) *Store {
	return &Store{kv: a}
}

// Load returns the normalized lists. Absent or corrupt data yields the default list.
func (s *Store) Load(ctx context.Context) []List {
	lists, _ := kv.ReadSlice[List](ctx, s.kv, KeyLists)
	return Normalize(lists)
}

// Save replaces the list collection. It reports false when the write failed.
func (s *Store) Save(ctx context.Context, lists []List) bool {
	return kv.WriteSlice(ctx, s.kv, KeyLists, lists)
}

func (s *Store) persist(ctx context.Context, lists []List) error {
	if !s.Save(ctx, lists) {
		return clierr.Storage(KeyLists)
	}
	return nil
}

// Get returns the list with the given ID.
func (s *Store) Get(ctx context.Context, id string) (List, error) {
	l, ok := Find(s.Load(ctx), id)
	if !ok {
		return List{}, NotFound(id)
	}
	return l, nil
}

// Create appends a new empty list.
func (s *Store) Create(ctx context.Context, title string) (List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return List{}, clierr.New(clierr.InvalidInput, "list title must not be empty")
	}
	l := List{ID: uuid.NewString(), Title: title, Tasks: []task.Task{}}
	if err := s.persist(ctx, append(s.Load(ctx), l)); err != nil {
		return List{}, err
	}
	return l, nil
}

// Rename changes a list's title.
func (s *Store) Rename(ctx context.Context, id, title string) (List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return List{}, clierr.New(clierr.InvalidInput, "list title must not be empty")
	}
	lists := s.Load(ctx)
	for i := range lists {
		if lists[i].ID != id {
			continue
		}
		if lists[i].Title == title {
			return lists[i], clierr.New(clierr.NoChanges, "title unchanged")
		}
		lists[i].Title = title
		if err := s.persist(ctx, lists); err != nil {
			return List{}, err
		}
		return lists[i], nil
	}
	return List{}, NotFound(id)
}

// Remove deletes a list. Its tasks keep their ListID; readers filter the
// dangling reference. Removing the last list leaves the default list in place
// on the next load.
func (s *Store) Remove(ctx context.Context, id string) error {
	lists := s.Load(ctx)
	kept := make([]List, 0, len(lists))
	for _, l := range lists {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(lists) {
		return NotFound(id)
	}
	return s.persist(ctx, kept)
}
