package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/timer"
)

// startFocus begins a focus countdown on the selected task. Pressing the key
// again while a countdown runs cancels it.
func (b *Board) startFocus() {
	if b.focus.Running() {
		b.focus.Stop()
		b.focusTask = ""
		b.focusLeft = 0
		return
	}
	t := b.selectedTask()
	if t == nil {
		return
	}
	err := b.focus.Start(b.ctx, b.opts.Focus,
		func(left time.Duration) { b.post(focusTickMsg{remaining: left}) },
		func() { b.post(focusDoneMsg{}) },
	)
	if err != nil && !errors.Is(err, timer.ErrRunning) {
		b.err = fmt.Errorf("starting focus: %w", err)
		return
	}
	b.focusTask = t.Title
	b.focusLeft = b.opts.Focus
	board.LogMutation(b.opts.LogDir, "focus", t.ID, b.opts.Focus.String())
}

// finishFocus records a completed focus session.
func (b *Board) finishFocus() {
	if b.opts.Stats != nil {
		if _, ok := b.opts.Stats.Increment(b.ctx); !ok {
			b.err = errors.New("saving pomodoro count")
		}
	}
	b.focusTask = ""
	b.focusLeft = 0
}

// post forwards a countdown event to the update loop without blocking the
// countdown goroutine. Ticks are dropped when the buffer is full.
func (b *Board) post(msg tea.Msg) {
	select {
	case b.events <- msg:
	default:
	}
}

func (b *Board) waitEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return msg
		case <-b.ctx.Done():
			return nil
		}
	}
}
