package task

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh task ID.
func NewID() string {
	return uuid.NewString()
}

// Upsert returns a new slice in which t replaces the first task with the same
// ID, keeping its position, or is appended when no task matches. Later
// duplicates of the ID are dropped so the result holds exactly one entry for it.
// The input slice is not modified.
func Upsert(tasks []Task, t Task) []Task {
	out := make([]Task, 0, len(tasks)+1)
	replaced := false
	for _, existing := range tasks {
		if existing.ID != t.ID {
			out = append(out, existing)
			continue
		}
		if !replaced {
			out = append(out, t)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, t)
	}
	return out
}

// Remove returns a new slice without any task whose ID is id.
func Remove(tasks []Task, id string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the first task with the given ID.
func Find(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// FindPrefix resolves an ID or an unambiguous ID prefix. ambiguous is true
// when more than one task shares the prefix.
func FindPrefix(tasks []Task, prefix string) (t Task, found, ambiguous bool) {
	if exact, ok := Find(tasks, prefix); ok {
		return exact, true, false
	}
	if prefix == "" {
		return Task{}, false, false
	}
	for _, candidate := range tasks {
		if !strings.HasPrefix(candidate.ID, prefix) {
			continue
		}
		if found {
			return Task{}, false, true
		}
		t, found = candidate, true
	}
	return t, found, false
}

// InList returns the tasks whose ListID is listID, in order.
func InList(tasks []Task, listID string) []Task {
	out := make([]Task, 0)
	for _, t := range tasks {
		if t.ListID == listID {
			out = append(out, t)
		}
	}
	return out
}

// Normalize fills defaults on a task read from an untrusted source: a
// missing ID is generated, a missing priority becomes medium, the title is
// trimmed and a negative estimate is clamped to zero.
func Normalize(t Task) Task {
	if t.ID == "" {
		t.ID = NewID()
	}
	t.Title = strings.TrimSpace(t.Title)
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.EstimatedTime < 0 {
		t.EstimatedTime = 0
	}
	return t
}

// DecodeLenient decodes a JSON array of tasks, skipping malformed entries.
// Anything that is not an array (missing, null, an object) yields an empty slice.
func DecodeLenient(raw json.RawMessage) []Task {
	out := make([]Task, 0)
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return out
	}
	for _, elem := range elems {
		var t Task
		if json.Unmarshal(elem, &t) == nil {
			out = append(out, t)
		}
	}
	return out
}
