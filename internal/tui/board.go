// Package tui implements a terminal kanban for zenta lists.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/prefs"
	"github.com/twiced-technology-gmbh/zenta/internal/reconcile"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
	"github.com/twiced-technology-gmbh/zenta/internal/timer"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewConfirmDelete
	viewAddTask
)

// Layout constants.
const (
	boardChrome  = 2 // blank line + status bar below the column area
	errorChrome  = 1 // extra line when error toast is displayed
	sidebarWidth = 24
	eventBuffer  = 16
)

// Options wires the optional collaborators of a Board.
type Options struct {
	Prefs *prefs.Store
	Stats *timer.Stats
	Clock timer.Clock
	// Focus is the length of a focus session started with 'f'.
	Focus time.Duration
	// LogDir receives activity log entries; empty disables logging.
	LogDir string
}

// Board is the top-level bubbletea model.
type Board struct {
	ctx  context.Context
	ws   *reconcile.Workspace
	opts Options
	keys keyMap
	help help.Model

	lists     []list.List
	listID    string
	columns   []column
	activeCol int
	activeRow int
	collapsed bool

	view   view
	width  int
	height int
	err    error

	input       textinput.Model
	deleteID    string
	deleteTitle string

	focus     *timer.Countdown
	focusTask string
	focusLeft time.Duration
	events    chan tea.Msg
}

// column pairs a board column with its scroll position.
type column struct {
	board.Column
	scrollOff int // first visible row index
}

// NewBoard creates a Board showing the workspace's current list.
func NewBoard(ctx context.Context, ws *reconcile.Workspace, opts Options) *Board {
	if opts.Clock == nil {
		opts.Clock = timer.RealClock()
	}
	if opts.Focus <= 0 {
		opts.Focus = timer.DefaultDurations().Work
	}
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 200

	b := &Board{
		ctx:    ctx,
		ws:     ws,
		opts:   opts,
		keys:   defaultKeys(),
		help:   help.New(),
		input:  ti,
		focus:  timer.NewCountdown(opts.Clock),
		events: make(chan tea.Msg, eventBuffer),
	}
	if opts.Prefs != nil {
		b.collapsed = opts.Prefs.SidebarCollapsed(ctx)
	}
	b.listID = ws.CurrentList(ctx).ID
	b.load()
	return b
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return b.waitEvent()
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.help.Width = msg.Width
		return b, nil
	case ReloadMsg:
		if prefs.Relevant(msg.Keys) && b.opts.Prefs != nil {
			b.collapsed = b.opts.Prefs.SidebarCollapsed(b.ctx)
		}
		b.load()
		return b, nil
	case focusTickMsg:
		b.focusLeft = msg.remaining
		return b, b.waitEvent()
	case focusDoneMsg:
		b.finishFocus()
		return b, b.waitEvent()
	case errMsg:
		b.err = msg.err
		return b, nil
	}
	return b, nil
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		b.focus.Stop()
		return b, tea.Quit
	}

	switch b.view {
	case viewConfirmDelete:
		return b.handleDeleteKey(msg)
	case viewAddTask:
		return b.handleAddKey(msg)
	default:
		return b.handleBoardKey(msg)
	}
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		b.focus.Stop()
		return b, tea.Quit
	case key.Matches(msg, b.keys.Left):
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case key.Matches(msg, b.keys.Right):
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case key.Matches(msg, b.keys.Down):
		col := b.currentColumn()
		if col != nil && b.activeRow < len(col.Tasks)-1 {
			b.activeRow++
			b.ensureVisible()
		}
	case key.Matches(msg, b.keys.Up):
		if b.activeRow > 0 {
			b.activeRow--
			b.ensureVisible()
		}
	case key.Matches(msg, b.keys.MoveLeft):
		b.moveSelected(-1)
	case key.Matches(msg, b.keys.MoveRight):
		b.moveSelected(1)
	case key.Matches(msg, b.keys.Toggle):
		b.toggleSelected()
	case key.Matches(msg, b.keys.Add):
		b.view = viewAddTask
		b.input.SetValue("")
		return b, b.input.Focus()
	case key.Matches(msg, b.keys.Delete):
		if t := b.selectedTask(); t != nil {
			b.deleteID = t.ID
			b.deleteTitle = t.Title
			b.view = viewConfirmDelete
		}
	case key.Matches(msg, b.keys.PrevList):
		b.switchList(-1)
	case key.Matches(msg, b.keys.NextList):
		b.switchList(1)
	case key.Matches(msg, b.keys.Sidebar):
		b.toggleSidebar()
	case key.Matches(msg, b.keys.Focus):
		b.startFocus()
	}
	return b, nil
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		b.view = viewBoard
		if _, err := b.ws.DeleteTask(b.ctx, b.deleteID, false); err != nil {
			b.err = fmt.Errorf("deleting task: %w", err)
			return b, nil
		}
		board.LogMutation(b.opts.LogDir, "trash", b.deleteID, b.deleteTitle)
		b.load()
	case "n", "N", "esc", "q":
		b.view = viewBoard
	}
	return b, nil
}

func (b *Board) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := b.input.Value()
		b.input.Blur()
		b.view = viewBoard
		if title == "" {
			return b, nil
		}
		t, err := b.ws.AddTask(b.ctx, task.Task{Title: title, ListID: b.listID}, b.activeColumnID())
		if err != nil {
			b.err = fmt.Errorf("adding task: %w", err)
			return b, nil
		}
		board.LogMutation(b.opts.LogDir, "create", t.ID, t.Title)
		b.load()
		return b, nil
	case "esc":
		b.input.Blur()
		b.view = viewBoard
		return b, nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

// moveSelected shifts the selected task dir columns over, appending it there.
func (b *Board) moveSelected(dir int) {
	t := b.selectedTask()
	target := b.activeCol + dir
	if t == nil || target < 0 || target >= len(b.columns) {
		return
	}
	moved, err := b.ws.MoveTask(b.ctx, t.ID, b.columns[target].ID, -1)
	if err != nil {
		b.err = fmt.Errorf("moving task: %w", err)
		return
	}
	board.LogMutation(b.opts.LogDir, "move", moved.ID, b.columns[target].Title)
	b.load()
	b.activeCol = target
	b.activeRow = len(b.columns[target].Tasks) - 1
	b.clampRow()
}

func (b *Board) toggleSelected() {
	t := b.selectedTask()
	if t == nil {
		return
	}
	updated, err := b.ws.CompleteTask(b.ctx, t.ID, !t.Completed)
	if err != nil {
		b.err = fmt.Errorf("updating task: %w", err)
		return
	}
	action := "undone"
	if updated.Completed {
		action = "done"
	}
	board.LogMutation(b.opts.LogDir, action, updated.ID, updated.Title)
	b.load()
}

func (b *Board) switchList(dir int) {
	if len(b.lists) < 2 { //nolint:mnd // nothing to switch to
		return
	}
	idx := 0
	for i, l := range b.lists {
		if l.ID == b.listID {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(b.lists)) % len(b.lists)
	if err := b.ws.UseList(b.ctx, b.lists[idx].ID); err != nil {
		b.err = err
		return
	}
	b.listID = b.lists[idx].ID
	b.activeCol, b.activeRow = 0, 0
	b.load()
}

func (b *Board) toggleSidebar() {
	b.collapsed = !b.collapsed
	if b.opts.Prefs != nil && !b.opts.Prefs.SetSidebarCollapsed(b.ctx, b.collapsed) {
		b.err = errors.New("saving sidebar state")
	}
}

// load re-reads lists and the current board from the workspace.
func (b *Board) load() {
	b.lists = b.ws.AllLists(b.ctx)
	if _, ok := list.Find(b.lists, b.listID); !ok {
		b.listID = b.ws.CurrentList(b.ctx).ID
	}
	cols, err := b.ws.Board(b.ctx, b.listID)
	if err != nil {
		b.err = err
		return
	}
	b.err = nil

	prev := make(map[string]int, len(b.columns))
	for _, c := range b.columns {
		prev[c.ID] = c.scrollOff
	}
	b.columns = make([]column, len(cols))
	for i, c := range cols {
		b.columns[i] = column{Column: c, scrollOff: prev[c.ID]}
	}
	if b.activeCol >= len(b.columns) {
		b.activeCol = max(len(b.columns)-1, 0)
	}
	b.clampRow()
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) selectedTask() *task.Task {
	col := b.currentColumn()
	if col == nil || len(col.Tasks) == 0 {
		return nil
	}
	if b.activeRow >= 0 && b.activeRow < len(col.Tasks) {
		return &col.Tasks[b.activeRow]
	}
	return nil
}

// activeColumnID is the column new tasks land in; empty when the board has none.
func (b *Board) activeColumnID() string {
	if col := b.currentColumn(); col != nil {
		return col.ID
	}
	return ""
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.Tasks) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.Tasks) {
		b.activeRow = len(col.Tasks) - 1
	}
	if b.activeRow < 0 {
		b.activeRow = 0
	}
	b.ensureVisible()
}

// ListID returns the list the board shows.
func (b *Board) ListID() string { return b.listID }

// SidebarCollapsed reports whether the list sidebar is hidden.
func (b *Board) SidebarCollapsed() bool { return b.collapsed }

// --- Messages ---

// ReloadMsg is sent by the store watcher to trigger a board refresh.
type ReloadMsg struct {
	Keys []string
}

type errMsg struct{ err error }

type focusTickMsg struct{ remaining time.Duration }

type focusDoneMsg struct{}
