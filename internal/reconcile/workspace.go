package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/clierr"
	"github.com/twiced-technology-gmbh/zenta/internal/date"
	"github.com/twiced-technology-gmbh/zenta/internal/kv"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/logger"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// Options configures a Workspace.
type Options struct {
	// Columns seeds boards that have never been saved.
	Columns   []board.Column
	DoneTitle string
	// Retention bounds how long trashed tasks are kept; zero keeps them forever.
	Retention time.Duration
	Now       func() time.Time
}

// Workspace is the single entry point the CLI and the TUI mutate state
// through. Every mutation updates the task store first and then refreshes
// the list and board copies derived from it. Writes to different keys are
// not transactional; the last writer wins per key.
type Workspace struct {
	Tasks  *task.Store
	Lists  *list.Store
	Boards *board.Store

	rec       *Reconciler
	doneTitle string
	retention time.Duration
	now       func() time.Time
	log       *slog.Logger
}

// NewWorkspace builds the stores on top of a.
func NewWorkspace(a *kv.Adapter, opts Options) *Workspace {
	if opts.DoneTitle == "" {
		opts.DoneTitle = board.DefaultDoneTitle
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	lists := list.NewStore(a)
	return &Workspace{
		Tasks:     task.NewStore(a),
		Lists:     lists,
		Boards:    board.NewStore(a, opts.Columns),
		rec:       New(lists),
		doneTitle: opts.DoneTitle,
		retention: opts.Retention,
		now:       opts.Now,
		log:       logger.With("component", "workspace"),
	}
}

// DoneTitle returns the title of the column that marks tasks completed.
func (w *Workspace) DoneTitle() string { return w.doneTitle }

// Migrate moves the legacy shared board into per-list boards.
func (w *Workspace) Migrate(ctx context.Context) int {
	lists := w.Lists.Load(ctx)
	ids := make([]string, len(lists))
	for i, l := range lists {
		ids[i] = l.ID
	}
	return w.Boards.MigrateLegacy(ctx, ids)
}

// AllLists returns every list with its tasks projected from the task store.
func (w *Workspace) AllLists(ctx context.Context) []list.List {
	return ReconcileListTasks(w.Lists.Load(ctx), w.Tasks.LoadAll(ctx))
}

// List returns one list with its tasks projected from the task store.
func (w *Workspace) List(ctx context.Context, id string) (list.List, error) {
	l, ok := list.Find(w.AllLists(ctx), id)
	if !ok {
		return list.List{}, list.NotFound(id)
	}
	return l, nil
}

// CurrentList returns the list last opened, falling back to the first list
// when none is recorded or the recorded one was removed.
func (w *Workspace) CurrentList(ctx context.Context) list.List {
	lists := w.AllLists(ctx)
	if l, ok := list.Find(lists, w.Boards.CurrentList(ctx)); ok {
		return l
	}
	return lists[0]
}

// UseList records id as the current list.
func (w *Workspace) UseList(ctx context.Context, id string) error {
	if _, err := w.Lists.Get(ctx, id); err != nil {
		return err
	}
	if !w.Boards.SetCurrentList(ctx, id) {
		return clierr.Storage(board.KeyCurrentList)
	}
	return nil
}

// CreateList adds a list.
func (w *Workspace) CreateList(ctx context.Context, title string) (list.List, error) {
	return w.Lists.Create(ctx, title)
}

// RenameList renames a list. Boards read the list afresh, so no board needs updating.
func (w *Workspace) RenameList(ctx context.Context, id, title string) (list.List, error) {
	return w.Lists.Rename(ctx, id, title)
}

// RemoveList deletes a list and its board. Tasks keep their ListID.
func (w *Workspace) RemoveList(ctx context.Context, id string) error {
	if err := w.Lists.Remove(ctx, id); err != nil {
		return err
	}
	if !w.Boards.Delete(ctx, id) {
		return clierr.Storage(board.Key(id))
	}
	return nil
}

// Board returns the columns of a list's board, projected from the task store.
func (w *Workspace) Board(ctx context.Context, listID string) ([]board.Column, error) {
	if _, err := w.Lists.Get(ctx, listID); err != nil {
		return nil, err
	}
	return w.project(ctx, listID), nil
}

func (w *Workspace) project(ctx context.Context, listID string) []board.Column {
	return ProjectColumns(w.Boards.Load(ctx, listID), w.Tasks.LoadAll(ctx), listID, w.doneTitle)
}

// SaveBoard persists a list's columns (after a column edit) and syncs the list.
func (w *Workspace) SaveBoard(ctx context.Context, listID string, columns []board.Column) error {
	if !w.Boards.Save(ctx, listID, columns) {
		return clierr.Storage(board.Key(listID))
	}
	if !w.rec.ColumnsIntoList(ctx, columns, listID) {
		return clierr.Storage(list.KeyLists)
	}
	return nil
}

// SaveTask validates and upserts t, then refreshes the lists and the board
// of its list. A task new to a board lands in the first column, or the done
// column when completed. Moving a task to another list takes it off the old board.
func (w *Workspace) SaveTask(ctx context.Context, t task.Task) (task.Task, error) {
	t = task.Normalize(t)
	if err := task.Validate(t); err != nil {
		return task.Task{}, err
	}
	prev, existed := w.Tasks.Get(ctx, t.ID)
	if t.ListID != "" && (!existed || prev.ListID != t.ListID) {
		if _, err := w.Lists.Get(ctx, t.ListID); err != nil {
			return task.Task{}, err
		}
	}

	task.Stamp(&t, w.now())
	if err := w.Tasks.Save(ctx, t); err != nil {
		return task.Task{}, err
	}
	w.log.Debug("saved task", "id", t.ID, "list", t.ListID, "new", !existed)

	if existed && prev.ListID != "" && prev.ListID != t.ListID {
		if err := w.syncBoard(ctx, prev.ListID); err != nil {
			return t, err
		}
	}
	if t.ListID != "" {
		if err := w.syncBoard(ctx, t.ListID); err != nil {
			return t, err
		}
	}
	return t, w.syncLists(ctx)
}

// AddTask saves a new task and places it at the end of column on its list's
// board. Adding to the done column completes the task; any other column
// leaves it open. An empty column falls back to SaveTask's placement.
func (w *Workspace) AddTask(ctx context.Context, t task.Task, column string) (task.Task, error) {
	if column == "" {
		return w.SaveTask(ctx, t)
	}
	if t.ListID == "" {
		return task.Task{}, clierr.New(clierr.InvalidInput, "a task needs a list to be placed in a column")
	}
	if _, err := w.Lists.Get(ctx, t.ListID); err != nil {
		return task.Task{}, err
	}
	col, _, err := board.ResolveColumn(w.project(ctx, t.ListID), column)
	if err != nil {
		return task.Task{}, err
	}
	t.Completed = col.IsDone(w.doneTitle)

	saved, err := w.SaveTask(ctx, t)
	if err != nil {
		return task.Task{}, err
	}
	columns, err := board.AddTask(w.project(ctx, saved.ListID), col.ID, saved)
	if err != nil {
		return saved, err
	}
	return saved, w.SaveBoard(ctx, saved.ListID, columns)
}

// syncBoard writes the projected board back so the stored copy matches the
// task store. Boards of removed lists are left alone.
func (w *Workspace) syncBoard(ctx context.Context, listID string) error {
	if _, err := w.Lists.Get(ctx, listID); err != nil {
		return nil //nolint:nilerr // dangling list reference
	}
	if !w.Boards.Save(ctx, listID, w.project(ctx, listID)) {
		return clierr.Storage(board.Key(listID))
	}
	return nil
}

func (w *Workspace) syncLists(ctx context.Context) error {
	if !w.Lists.Save(ctx, w.AllLists(ctx)) {
		return clierr.Storage(list.KeyLists)
	}
	return nil
}

// kanban resolves the task and the board it sits on.
func (w *Workspace) kanban(ctx context.Context, ref string) (task.Task, []board.Column, error) {
	t, err := w.Tasks.Resolve(ctx, ref)
	if err != nil {
		return task.Task{}, nil, err
	}
	if _, err := w.Lists.Get(ctx, t.ListID); err != nil {
		return t, nil, err
	}
	return t, w.project(ctx, t.ListID), nil
}

// CompleteTask sets a task's completion flag. Tasks on a board go through
// the kanban path, which changes nothing but the flag; tasks without a list
// are updated in the task store directly.
func (w *Workspace) CompleteTask(ctx context.Context, ref string, done bool) (task.Task, error) {
	t, columns, err := w.kanban(ctx, ref)
	if clierr.HasCode(err, clierr.ListNotFound) {
		t = task.SetCompleted(t, done)
		if err := w.Tasks.Save(ctx, t); err != nil {
			return task.Task{}, err
		}
		return t, w.syncLists(ctx)
	}
	if err != nil {
		return task.Task{}, err
	}

	columns, updated, ok := board.CompleteTask(columns, t.ID, done)
	if !ok {
		return task.Task{}, task.NotFound(t.ID)
	}
	return updated, w.commitKanban(ctx, updated, columns)
}

// MoveTask moves a task to another column of its board (or reorders it
// within one) at index; a negative index appends.
func (w *Workspace) MoveTask(ctx context.Context, ref, toColumn string, index int) (task.Task, error) {
	t, columns, err := w.kanban(ctx, ref)
	if err != nil {
		return task.Task{}, err
	}
	columns, moved, err := board.MoveTask(columns, t.ID, toColumn, index, w.doneTitle)
	if err != nil {
		return task.Task{}, err
	}
	return moved, w.commitKanban(ctx, moved, columns)
}

// commitKanban persists a kanban mutation: task store, board, then list.
func (w *Workspace) commitKanban(ctx context.Context, t task.Task, columns []board.Column) error {
	if err := w.Tasks.Save(ctx, t); err != nil {
		return err
	}
	return w.SaveBoard(ctx, t.ListID, columns)
}

// DeleteTask removes a task. hard drops it outright; otherwise it moves to
// the trash, from which RestoreTask can bring it back.
func (w *Workspace) DeleteTask(ctx context.Context, ref string, hard bool) (task.Task, error) {
	t, err := w.Tasks.Resolve(ctx, ref)
	if err != nil {
		return task.Task{}, err
	}
	if hard {
		err = w.Tasks.Delete(ctx, t.ID)
	} else {
		t, err = w.Tasks.Trash(ctx, t.ID, w.now())
	}
	if err != nil {
		return task.Task{}, err
	}
	if t.ListID != "" {
		if err := w.syncBoard(ctx, t.ListID); err != nil {
			return t, err
		}
	}
	return t, w.syncLists(ctx)
}

// RestoreTask brings a trashed task back to its list and board.
func (w *Workspace) RestoreTask(ctx context.Context, id string) (task.Task, error) {
	t, err := w.Tasks.Restore(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	if t.ListID != "" {
		if err := w.syncBoard(ctx, t.ListID); err != nil {
			return t, err
		}
	}
	return t, w.syncLists(ctx)
}

// Purge drops trashed tasks older than the retention window.
func (w *Workspace) Purge(ctx context.Context) (int, error) {
	return w.Tasks.PurgeExpired(ctx, w.now(), w.retention)
}

// Overview computes the dashboard summary.
func (w *Workspace) Overview(ctx context.Context, pomodoros int) board.Overview {
	return board.Summary(w.Tasks.LoadAll(ctx), w.Lists.Load(ctx), pomodoros, date.Of(w.now()))
}

// Today returns the workspace's current date.
func (w *Workspace) Today() date.Date {
	return date.Of(w.now())
}
