// Package reconcile keeps the denormalized task copies held by lists and
// kanban boards consistent with the canonical task store.
package reconcile

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/logger"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// ReconcileListTasks returns a copy of lists in which each list's Tasks is
// the subset of all whose ListID matches, in task-store order. Neither input
// is modified and the result is stable under repeated application.
func ReconcileListTasks(lists []list.List, all []task.Task) []list.List {
	out := make([]list.List, len(lists))
	for i, l := range lists {
		out[i] = list.List{ID: l.ID, Title: l.Title, Tasks: task.InList(all, l.ID)}
	}
	return out
}

// ProjectColumns rebuilds a board's task copies from the task store. Copies
// of tasks that no longer exist, or that moved to another list, are dropped;
// remaining copies are replaced with the current task values in their
// existing position. List tasks missing from every column are appended to
// the done column when completed and to the first column otherwise.
func ProjectColumns(columns []board.Column, all []task.Task, listID, doneTitle string) []board.Column {
	current := make(map[string]task.Task)
	for _, t := range task.InList(all, listID) {
		if _, dup := current[t.ID]; !dup {
			current[t.ID] = t
		}
	}

	placed := make(map[string]bool, len(current))
	out := make([]board.Column, len(columns))
	for ci, c := range columns {
		tasks := make([]task.Task, 0, len(c.Tasks))
		for _, cached := range c.Tasks {
			t, ok := current[cached.ID]
			if !ok || placed[t.ID] {
				continue
			}
			placed[t.ID] = true
			tasks = append(tasks, t)
		}
		out[ci] = board.Column{ID: c.ID, Title: c.Title, Tasks: tasks}
	}
	if len(out) == 0 {
		return out
	}

	done := -1
	for ci, c := range out {
		if c.IsDone(doneTitle) {
			done = ci
			break
		}
	}
	for _, t := range all {
		cur, ok := current[t.ID]
		if !ok || placed[t.ID] {
			continue
		}
		placed[t.ID] = true
		target := 0
		if cur.Completed && done >= 0 {
			target = done
		}
		out[target].Tasks = append(out[target].Tasks, cur)
	}
	return out
}

// Reconciler writes board state back into the list store.
type Reconciler struct {
	lists *list.Store
	log   *slog.Logger
}

// New returns a Reconciler persisting through lists.
func New(lists *list.Store) *Reconciler {
	return &Reconciler{lists: lists, log: logger.With("component", "reconcile")}
}

// ColumnsIntoList replaces the Tasks of list listID with the board's tasks
// that belong to it, in column order, and persists the list collection.
// An unknown listID and an already up-to-date list are no-ops. It reports
// false only when the write failed.
func (r *Reconciler) ColumnsIntoList(ctx context.Context, columns []board.Column, listID string) bool {
	lists := r.lists.Load(ctx)
	idx := -1
	for i, l := range lists {
		if l.ID == listID {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.log.Debug("board list not found, skipping", "list", listID)
		return true
	}

	tasks := task.InList(board.FlattenTasks(columns), listID)
	if reflect.DeepEqual(lists[idx].Tasks, tasks) {
		return true
	}
	lists[idx].Tasks = tasks
	return r.lists.Save(ctx, lists)
}
