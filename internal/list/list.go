// Package list persists task lists. A list's Tasks field is a projection of
// the task store and is rebuilt by the reconciler; it is never the source of truth.
package list

import (
	"encoding/json"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// Default list identity, used when nothing valid is stored.
const (
	DefaultID    = "default"
	DefaultTitle = "Minhas Tarefas"
)

// List is a named task list.
type List struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Tasks []task.Task `json:"tasks"`
}

// Default returns the list created on first run.
func Default() List {
	return List{ID: DefaultID, Title: DefaultTitle, Tasks: []task.Task{}}
}

// UnmarshalJSON tolerates a missing, null or non-array tasks field and skips
// malformed task entries instead of rejecting the whole list.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    string          `json:"id"`
		Title string          `json:"title"`
		Tasks json.RawMessage `json:"tasks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.ID = raw.ID
	l.Title = raw.Title
	l.Tasks = task.DecodeLenient(raw.Tasks)
	return nil
}

// Find returns the list with the given ID.
func Find(lists []List, id string) (List, bool) {
	for _, l := range lists {
		if l.ID == id {
			return l, true
		}
	}
	return List{}, false
}

// NotFound returns the LIST_NOT_FOUND error for id.
func NotFound(id string) *clierr.Error {
	return clierr.Newf(clierr.ListNotFound, "list not found: %s", id).
		WithDetails(map[string]any{"id": id})
}

// Normalize drops entries without an ID and later duplicates of an ID, and
// replaces nil task slices with empty ones. An empty result becomes the
// default list.
func Normalize(lists []List) []List {
	seen := make(map[string]bool, len(lists))
	out := make([]List, 0, len(lists))
	for _, l := range lists {
		if l.ID == "" || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		if l.Tasks == nil {
			l.Tasks = []task.Task{}
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		return []List{Default()}
	}
	return out
}
