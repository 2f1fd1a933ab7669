// Package task holds the Task entity, the pure operations on task slices,
// and the store that persists the canonical task collection.
package task

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/date"
)

// Priority is a task's urgency.
type Priority string

// Priorities, lowest first.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the valid priorities, lowest first.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank orders priorities: high is 2, unknown values are -1.
func (p Priority) Rank() int {
	for i, v := range Priorities {
		if v == p {
			return i
		}
	}
	return -1
}

// Category is one of the three fixed task categories. The zero value means
// "no category" and is stored as JSON null.
type Category string

// Categories.
const (
	CategoryNone Category = ""
	CategoryP    Category = "p"
	CategoryB    Category = "b"
	CategoryG    Category = "g"
)

// Categories lists the valid non-empty categories.
var Categories = []Category{CategoryP, CategoryB, CategoryG}

// MarshalJSON writes the empty category as null.
func (c Category) MarshalJSON() ([]byte, error) {
	if c == CategoryNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON reads null as the empty category.
func (c *Category) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = CategoryNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Category(s)
	return nil
}

// Task is one unit of work. ListID is the only normalized relationship:
// every other place a task appears holds a copy.
type Task struct {
	ID            string     `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Completed     bool       `json:"completed" yaml:"completed"`
	Priority      Priority   `json:"priority" yaml:"priority"`
	Category      Category   `json:"category" yaml:"category,omitempty"`
	EstimatedTime int        `json:"estimatedTime" yaml:"estimated_time"` // minutes
	Description   string     `json:"description,omitempty" yaml:"-"`
	DueDate       *date.Date `json:"dueDate,omitempty" yaml:"due_date,omitempty"`
	ListID        string     `json:"listId,omitempty" yaml:"list_id,omitempty"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty" yaml:"deleted_at,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// Overdue reports whether an open task's due date is before today.
func (t Task) Overdue(today date.Date) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(today.Time)
}

// UnmarshalJSON reads an empty or blank dueDate, as left behind by a cleared
// date input, as no due date.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var aux struct {
		plain
		DueDate json.RawMessage `json:"dueDate"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Task(aux.plain)
	t.DueDate = nil

	raw := bytes.TrimSpace(aux.DueDate)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := date.Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	t.DueDate = &d
	return nil
}
