package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/zenta/internal/board"
	"github.com/twiced-technology-gmbh/zenta/internal/date"
	"github.com/twiced-technology-gmbh/zenta/internal/list"
	"github.com/twiced-technology-gmbh/zenta/internal/planner"
	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

// ShortIDLen is how many characters of a task id tables show.
const ShortIDLen = 8

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	// Priority colors matching TUI priority palette.
	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	categoryStyles = map[string]lipgloss.Style{
		"p": lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		"b": lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		"g": lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	// plain disables markdown styling along with colors.
	plain bool
)

// DisableColor strips all styling from table output.
func DisableColor() {
	plain = true
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
	priorityStyles = map[string]lipgloss.Style{}
	categoryStyles = map[string]lipgloss.Style{}
	columnStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
}

// ShortID truncates an id for display.
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

// TaskTable renders a list of tasks as a formatted table. listTitles maps
// list ids to titles; unknown ids are shown as-is.
func TaskTable(w io.Writer, tasks []task.Task, listTitles map[string]string) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	titleW, listW := 5+pad, 4+pad
	for _, t := range tasks {
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
		listW = max(listW, min(len(listTitle(t.ListID, listTitles))+pad, 24)) //nolint:mnd // max list column width
	}
	const idW, doneW, prioW, catW, dueW = ShortIDLen + pad, 6, 10, 5, 12

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", doneW, "DONE", prioW, "PRIORITY", catW, "CAT",
		titleW, "TITLE", listW, "LIST", dueW, "DUE", "EST")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		row := fmt.Sprintf("%-*s %s %s %s %s %s %s %s",
			idW, ShortID(t.ID),
			padRight(doneMark(t.Completed), doneW),
			padRight(styledValue(string(t.Priority), priorityStyles), prioW),
			padRight(categoryDisplay(t.Category), catW),
			padRight(truncate(t.Title, titleW-pad), titleW),
			padRight(truncate(listTitle(t.ListID, listTitles), listW-pad), listW),
			padRight(dueDisplay(t), dueW),
			estimateDisplay(t.EstimatedTime))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TrashTable renders trashed tasks with their deletion time.
func TrashTable(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "Trash is empty.")
		return
	}
	const idW, deletedW = ShortIDLen + 2, 18
	header := fmt.Sprintf("%-*s %-*s %s", idW, "ID", deletedW, "DELETED", "TITLE")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, t := range tasks {
		deleted := dimStyle.Render("--")
		if t.DeletedAt != nil {
			deleted = t.DeletedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%-*s %s %s\n", idW, ShortID(t.ID), padRight(deleted, deletedW), t.Title)
	}
}

// TaskDetail renders a single task with full detail. The description is
// rendered as markdown.
func TaskDetail(w io.Writer, t task.Task, listName string) {
	titleLine := "Task " + ShortID(t.ID) + ": " + t.Title
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "ID", t.ID)
	printField(w, "Completed", doneMark(t.Completed))
	printField(w, "Priority", styledValue(string(t.Priority), priorityStyles))
	printField(w, "Category", categoryDisplay(t.Category))
	printField(w, "List", stringOrDash(listName))
	printField(w, "Due", dueDisplay(t))
	printField(w, "Estimate", estimateDisplay(t.EstimatedTime))
	if t.CreatedAt != nil {
		printField(w, "Created", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if t.UpdatedAt != nil {
		printField(w, "Updated", t.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	if t.DeletedAt != nil {
		printField(w, "Deleted", t.DeletedAt.Local().Format("2006-01-02 15:04"))
	}

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, Markdown(t.Description, 0))
	}
}

// ListTable renders the lists with their task counts. currentID is marked.
func ListTable(w io.Writer, lists []list.List, currentID string) {
	if len(lists) == 0 {
		fmt.Fprintln(os.Stderr, "No lists found.")
		return
	}
	idW := 4
	for _, l := range lists {
		idW = max(idW, len(l.ID)+2) //nolint:mnd // padding
	}
	header := fmt.Sprintf("  %-*s %6s %6s  %s", idW, "ID", "TASKS", "DONE", "TITLE")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, l := range lists {
		marker := "  "
		if l.ID == currentID {
			marker = "* "
		}
		done := 0
		for _, t := range l.Tasks {
			if t.Completed {
				done++
			}
		}
		fmt.Fprintf(w, "%s%-*s %6d %6d  %s\n", marker, idW, l.ID, len(l.Tasks), done, l.Title)
	}
}

// BoardTable renders a list's board with the columns side by side.
func BoardTable(w io.Writer, l list.List, columns []board.Column, doneTitle string) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(l.Title))
	fmt.Fprintln(w)

	const colWidth = 28
	rendered := make([]string, 0, len(columns))
	for _, c := range columns {
		var b strings.Builder
		title := c.Title + " (" + strconv.Itoa(len(c.Tasks)) + ")"
		if c.IsDone(doneTitle) {
			title = doneStyle.Render(title)
		} else {
			title = headerStyle.Render(title)
		}
		b.WriteString(title)
		for _, t := range c.Tasks {
			b.WriteString("\n")
			line := ShortID(t.ID) + " " + truncate(t.Title, colWidth-ShortIDLen-3) //nolint:mnd // borders
			b.WriteString(priorityMark(t.Priority) + line)
		}
		rendered = append(rendered, columnStyle.Width(colWidth).Render(b.String()))
	}
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

// OverviewTable renders the dashboard summary.
func OverviewTable(w io.Writer, s board.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render("Dashboard"))
	fmt.Fprintf(w, "Total: %d tasks, %d completed (%.1f%%), %d pending, %d overdue\n",
		s.TotalTasks, s.Completed, s.CompletionRate, s.Pending, s.Overdue)
	fmt.Fprintf(w, "Estimated: %s pending, %s completed\n",
		FormatMinutes(s.MinutesPending), FormatMinutes(s.MinutesCompleted))
	fmt.Fprintf(w, "Pomodoros completed: %d\n\n", s.Pomodoros)

	prioHeader := fmt.Sprintf("%-16s %6s", "PRIORITY", "OPEN")
	fmt.Fprintln(w, headerStyle.Render(prioHeader))
	for _, pc := range s.Priorities {
		const prioColW = 16
		fmt.Fprintf(w, "%s %6d\n",
			padRight(styledValue(string(pc.Priority), priorityStyles), prioColW), pc.Count)
	}

	if len(s.Categories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-16s %6s", "CATEGORY", "COUNT")))
		for _, cc := range s.Categories {
			fmt.Fprintf(w, "%s %6d\n", padRight(categoryDisplay(cc.Category), 16), cc.Count) //nolint:mnd // column width
		}
	}

	if len(s.Lists) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-24s %6s %6s", "LIST", "TOTAL", "DONE")))
		for _, lc := range s.Lists {
			fmt.Fprintf(w, "%-24s %6d %6d\n", truncate(lc.Title, 24), lc.Total, lc.Completed) //nolint:mnd // column width
		}
	}
}

// GroupedTable renders a grouped task view.
func GroupedTable(w io.Writer, gs board.GroupedSummary) {
	if len(gs.Groups) == 0 {
		fmt.Fprintln(os.Stderr, "No groups found.")
		return
	}
	const labelW = 24
	header := fmt.Sprintf("%-*s %6s %6s %10s", labelW, strings.ToUpper(gs.Field), "TOTAL", "DONE", "ESTIMATE")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, g := range gs.Groups {
		fmt.Fprintf(w, "%s %6d %6d %10s\n",
			padRight(truncate(g.Label, labelW), labelW), g.Total, g.Completed, FormatMinutes(g.Minutes))
	}
}

// WeekTable renders the weekly planner.
func WeekTable(w io.Writer, days []planner.Day, unscheduled []task.Task, today string) {
	for i, d := range days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := d.Weekday + " " + d.Date.String()
		if d.Minutes > 0 {
			title += " · " + FormatMinutes(d.Minutes)
		}
		if d.Date.String() == today {
			title += " (today)"
		}
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))
		if len(d.Tasks) == 0 {
			fmt.Fprintln(w, "  "+dimStyle.Render("--"))
			continue
		}
		for _, t := range d.Tasks {
			fmt.Fprintln(w, "  "+doneMark(t.Completed)+" "+ShortID(t.ID)+" "+
				styledValue(string(t.Priority), priorityStyles)+" "+t.Title)
		}
	}
	if len(unscheduled) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Unscheduled ("+strconv.Itoa(len(unscheduled))+")"))
		for _, t := range unscheduled {
			fmt.Fprintln(w, "  "+ShortID(t.ID)+" "+t.Title)
		}
	}
}

// LogTable renders activity log entries.
func LogTable(w io.Writer, entries []board.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	const tsW, actionW, idW = 18, 14, ShortIDLen + 2
	header := fmt.Sprintf("%-*s %-*s %-*s %s", tsW, "TIME", actionW, "ACTION", idW, "ID", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		id := e.TaskID
		if id == "" {
			id = e.ListID
		}
		fmt.Fprintf(w, "%-*s %-*s %-*s %s\n",
			tsW, e.Timestamp.Local().Format("2006-01-02 15:04"),
			actionW, e.Action, idW, ShortID(id), e.Detail)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// FormatMinutes renders minutes as "Xh Ym" or "Ym".
func FormatMinutes(m int) string {
	const minutesPerHour = 60
	if m < minutesPerHour {
		return strconv.Itoa(m) + "m"
	}
	h, rest := m/minutesPerHour, m%minutesPerHour
	if rest == 0 {
		return strconv.Itoa(h) + "h"
	}
	return strconv.Itoa(h) + "h " + strconv.Itoa(rest) + "m"
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n { //nolint:mnd // room for the ellipsis
		return s
	}
	return string(r[:n-3]) + "..."
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

func listTitle(id string, titles map[string]string) string {
	if id == "" {
		return ""
	}
	if t, ok := titles[id]; ok {
		return t
	}
	return id
}

func doneMark(done bool) string {
	if done {
		return doneStyle.Render("✓")
	}
	return dimStyle.Render("·")
}

func priorityMark(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return markStyle(p).Render("!") + " "
	case task.PriorityLow:
		return markStyle(p).Render("↓") + " "
	default:
		return "  "
	}
}

func markStyle(p task.Priority) lipgloss.Style {
	if st, ok := priorityStyles[string(p)]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

func categoryDisplay(c task.Category) string {
	if c == task.CategoryNone {
		return dimStyle.Render("--")
	}
	return styledValue(string(c), categoryStyles)
}

func dueDisplay(t task.Task) string {
	if t.DueDate == nil {
		return dimStyle.Render("--")
	}
	if t.Overdue(date.Today()) {
		return overdueStyle.Render(t.DueDate.String())
	}
	return t.DueDate.String()
}

func estimateDisplay(m int) string {
	if m <= 0 {
		return dimStyle.Render("--")
	}
	return FormatMinutes(m)
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
