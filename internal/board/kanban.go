package board

import (
	"strings"

	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// FlattenTasks returns every task on the board in column order.
func FlattenTasks(columns []Column) []task.Task {
	out := make([]task.Task, 0)
	for _, c := range columns {
		out = append(out, c.Tasks...)
	}
	return out
}

// CompleteTask sets the completion flag of a task in place. Only the
// Completed field changes; the task stays in its column. ok is false when
// the task is not on the board.
func CompleteTask(columns []Column, id string, done bool) ([]Column, task.Task, bool) {
	out := Clone(columns)
	for ci := range out {
		for ti := range out[ci].Tasks {
			if out[ci].Tasks[ti].ID != id {
				continue
			}
			out[ci].Tasks[ti] = task.SetCompleted(out[ci].Tasks[ti], done)
			return out, out[ci].Tasks[ti], true
		}
	}
	return out, task.Task{}, false
}

// MoveTask removes the task from its column and inserts it into toColumnID
// at index. An index outside the column appends. Moving into the done column
// marks the task completed; moving out of it marks it open. Moves between
// other columns keep the flag.
func MoveTask(columns []Column, id, toColumnID string, index int, doneTitle string) ([]Column, task.Task, error) {
	out := Clone(columns)

	_, to, err := ResolveColumn(out, toColumnID)
	if err != nil {
		return columns, task.Task{}, err
	}

	from := -1
	var moved task.Task
	for ci := range out {
		for ti, t := range out[ci].Tasks {
			if t.ID == id {
				from, moved = ci, t
				out[ci].Tasks = append(out[ci].Tasks[:ti], out[ci].Tasks[ti+1:]...)
				break
			}
		}
		if from >= 0 {
			break
		}
	}
	if from < 0 {
		return columns, task.Task{}, task.NotFound(id)
	}

	switch {
	case out[to].IsDone(doneTitle):
		moved = task.SetCompleted(moved, true)
	case out[from].IsDone(doneTitle):
		moved = task.SetCompleted(moved, false)
	}

	out[to].Tasks = insertAt(out[to].Tasks, index, moved)
	return out, moved, nil
}

func insertAt(tasks []task.Task, index int, t task.Task) []task.Task {
	if index < 0 || index >= len(tasks) {
		return append(tasks, t)
	}
	tasks = append(tasks, task.Task{})
	copy(tasks[index+1:], tasks[index:])
	tasks[index] = t
	return tasks
}

// AddTask appends t to a column. A task already on the board is moved
// rather than duplicated.
func AddTask(columns []Column, columnID string, t task.Task) ([]Column, error) {
	out := RemoveTask(columns, t.ID)
	_, idx, err := ResolveColumn(out, columnID)
	if err != nil {
		return columns, err
	}
	out[idx].Tasks = append(out[idx].Tasks, t)
	return out, nil
}

// RemoveTask drops the task from whichever column holds it.
func RemoveTask(columns []Column, id string) []Column {
	out := Clone(columns)
	for ci := range out {
		out[ci].Tasks = task.Remove(out[ci].Tasks, id)
	}
	return out
}

// AddColumn appends a new empty column.
func AddColumn(columns []Column, title string) ([]Column, Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return columns, Column{}, clierr.New(clierr.InvalidInput, "column title must not be empty")
	}
	for _, c := range columns {
		if strings.EqualFold(c.Title, title) {
			return columns, Column{}, clierr.Newf(clierr.AlreadyExists, "column %q already exists", title).
				WithDetails(map[string]any{"column": c.ID})
		}
	}
	col := Column{ID: uuid.NewString(), Title: title, Tasks: []task.Task{}}
	return append(Clone(columns), col), col, nil
}

// RenameColumn changes a column's title.
func RenameColumn(columns []Column, ref, title string) ([]Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return columns, clierr.New(clierr.InvalidInput, "column title must not be empty")
	}
	_, idx, err := ResolveColumn(columns, ref)
	if err != nil {
		return columns, err
	}
	out := Clone(columns)
	out[idx].Title = title
	return out, nil
}

// RemoveColumn deletes an empty column. The last column cannot be removed.
func RemoveColumn(columns []Column, ref string) ([]Column, error) {
	col, idx, err := ResolveColumn(columns, ref)
	if err != nil {
		return columns, err
	}
	if len(col.Tasks) > 0 {
		return columns, clierr.Newf(clierr.ColumnNotEmpty, "column %q still holds %d task(s)", col.Title, len(col.Tasks)).
			WithDetails(map[string]any{"column": col.ID, "count": len(col.Tasks)})
	}
	if len(columns) == 1 {
		return columns, clierr.New(clierr.InvalidInput, "a board needs at least one column")
	}
	out := Clone(columns)
	return append(out[:idx], out[idx+1:]...), nil
}
