// Package board holds kanban columns for a list: the per-list column store,
// the pure kanban operations, and the dashboard and listing views built on
// top of the task collection.
package board

import (
	"encoding/json"
	"strings"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// DefaultDoneTitle is the title of the column whose tasks count as completed.
const DefaultDoneTitle = "Concluído"

// Column is one kanban column. Tasks are copies of task-store entries,
// refreshed by the reconciler on every board read.
type Column struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Tasks []task.Task `json:"tasks"`
}

// UnmarshalJSON tolerates a missing or malformed tasks field.
func (c *Column) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    string          `json:"id"`
		Title string          `json:"title"`
		Tasks json.RawMessage `json:"tasks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	c.Title = raw.Title
	c.Tasks = task.DecodeLenient(raw.Tasks)
	return nil
}

// DefaultColumns returns the three columns of a new board.
func DefaultColumns() []Column {
	return []Column{
		{ID: "todo", Title: "A Fazer", Tasks: []task.Task{}},
		{ID: "in-progress", Title: "Em Progresso", Tasks: []task.Task{}},
		{ID: "done", Title: DefaultDoneTitle, Tasks: []task.Task{}},
	}
}

// IsDone reports whether c is the done column.
func (c Column) IsDone(doneTitle string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Title), doneTitle)
}

// Clone deep-copies columns so callers can modify the result freely.
func Clone(columns []Column) []Column {
	out := make([]Column, len(columns))
	for i, c := range columns {
		out[i] = Column{ID: c.ID, Title: c.Title, Tasks: append([]task.Task{}, c.Tasks...)}
	}
	return out
}

// Normalize drops columns without an ID and duplicate column IDs, replaces
// nil task slices, and keeps each task in the first column it appears in.
func Normalize(columns []Column) []Column {
	seenCols := make(map[string]bool, len(columns))
	seenTasks := make(map[string]bool)
	out := make([]Column, 0, len(columns))
	for _, c := range columns {
		if c.ID == "" || seenCols[c.ID] {
			continue
		}
		seenCols[c.ID] = true
		tasks := make([]task.Task, 0, len(c.Tasks))
		for _, t := range c.Tasks {
			if t.ID == "" || seenTasks[t.ID] {
				continue
			}
			seenTasks[t.ID] = true
			tasks = append(tasks, t)
		}
		out = append(out, Column{ID: c.ID, Title: c.Title, Tasks: tasks})
	}
	return out
}

// ColumnNotFound returns the COLUMN_NOT_FOUND error for ref.
func ColumnNotFound(ref string) *clierr.Error {
	return clierr.Newf(clierr.ColumnNotFound, "column not found: %s", ref).
		WithDetails(map[string]any{"column": ref})
}

// ResolveColumn finds a column by ID, or by title ignoring case.
func ResolveColumn(columns []Column, ref string) (Column, int, error) {
	for i, c := range columns {
		if c.ID == ref {
			return c, i, nil
		}
	}
	for i, c := range columns {
		if strings.EqualFold(c.Title, strings.TrimSpace(ref)) {
			return c, i, nil
		}
	}
	return Column{}, -1, ColumnNotFound(ref)
}

// DoneColumn returns the done column, if the board has one.
func DoneColumn(columns []Column, doneTitle string) (Column, bool) {
	for _, c := range columns {
		if c.IsDone(doneTitle) {
			return c, true
		}
	}
	return Column{}, false
}
