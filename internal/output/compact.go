package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/planner"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t task.Task) {
	line := formatTaskLine(t)
	if t.ListID != "" {
		line += " list:" + t.ListID
	}
	fmt.Fprintln(w, line)

	var ts []string
	if t.CreatedAt != nil {
		ts = append(ts, "created:"+t.CreatedAt.Format("2006-01-02"))
	}
	if t.UpdatedAt != nil {
		ts = append(ts, "updated:"+t.UpdatedAt.Format("2006-01-02"))
	}
	if t.DeletedAt != nil {
		ts = append(ts, "deleted:"+t.DeletedAt.Format("2006-01-02"))
	}
	if len(ts) > 0 {
		fmt.Fprintln(w, "  "+strings.Join(ts, " "))
	}

	if t.Description != "" {
		for _, bodyLine := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+bodyLine)
		}
	}
}

// ListCompact renders lists one per line.
func ListCompact(w io.Writer, lists []list.List, currentID string) {
	for _, l := range lists {
		marker := ""
		if l.ID == currentID {
			marker = " *"
		}
		fmt.Fprintf(w, "%s %s (%d tasks)%s\n", l.ID, l.Title, len(l.Tasks), marker)
	}
}

// BoardCompact renders a board as one line per column followed by its tasks.
func BoardCompact(w io.Writer, l list.List, columns []board.Column) {
	fmt.Fprintln(w, l.Title)
	for _, c := range columns {
		fmt.Fprintf(w, "  %s [%s] (%d)\n", c.Title, c.ID, len(c.Tasks))
		for _, t := range c.Tasks {
			fmt.Fprintln(w, "    "+formatTaskLine(t))
		}
	}
}

// OverviewCompact renders the dashboard summary in compact format.
func OverviewCompact(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "%d tasks, %d done (%.1f%%), %d pending, %d overdue, %d pomodoros\n",
		s.TotalTasks, s.Completed, s.CompletionRate, s.Pending, s.Overdue, s.Pomodoros)

	if len(s.Priorities) > 0 {
		parts := make([]string, 0, len(s.Priorities))
		for _, pc := range s.Priorities {
			parts = append(parts, string(pc.Priority)+"="+strconv.Itoa(pc.Count))
		}
		fmt.Fprintln(w, "Priority: "+strings.Join(parts, " "))
	}
	for _, lc := range s.Lists {
		fmt.Fprintf(w, "  %s: %d/%d\n", lc.Title, lc.Completed, lc.Total)
	}
}

// GroupedCompact renders a grouped view one group per line.
func GroupedCompact(w io.Writer, gs board.GroupedSummary) {
	for _, g := range gs.Groups {
		fmt.Fprintf(w, "%s: %d/%d est:%s\n", g.Label, g.Completed, g.Total, FormatMinutes(g.Minutes))
	}
}

// WeekCompact renders the planner one day per line.
func WeekCompact(w io.Writer, days []planner.Day) {
	for _, d := range days {
		titles := make([]string, len(d.Tasks))
		for i, t := range d.Tasks {
			titles[i] = t.Title
		}
		fmt.Fprintf(w, "%s %s: %s\n", d.Date, d.Weekday[:3], strings.Join(titles, "; "))
	}
}

// LogCompact renders activity entries one per line.
func LogCompact(w io.Writer, entries []board.LogEntry) {
	for _, e := range entries {
		id := e.TaskID
		if id == "" {
			id = e.ListID
		}
		fmt.Fprintf(w, "%s %s %s %s\n", e.Timestamp.Format("2006-01-02T15:04"), e.Action, ShortID(id), e.Detail)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t task.Task) string {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	line := ShortID(t.ID) + " " + mark + " [" + string(t.Priority) + "] " + t.Title
	if t.Category != task.CategoryNone {
		line += " (" + string(t.Category) + ")"
	}
	if t.DueDate != nil {
		line += " due:" + t.DueDate.String()
	}
	if t.EstimatedTime > 0 {
		line += " est:" + FormatMinutes(t.EstimatedTime)
	}
	return line
}
