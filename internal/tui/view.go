package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/zenta/internal/task"
)

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle  = cardStyle.BorderForeground(lipgloss.Color("226"))
	overdueCardStyle = cardStyle.BorderForeground(lipgloss.Color("196"))

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)

	priorityColors = map[task.Priority]lipgloss.Color{
		task.PriorityHigh:   "208",
		task.PriorityMedium: "226",
		task.PriorityLow:    "242",
	}

	categoryLabels = map[task.Category]string{
		task.CategoryP: "pessoal",
		task.CategoryB: "trabalho",
		task.CategoryG: "metas",
	}

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2) //nolint:mnd // dialog padding
)

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}
	switch b.view {
	case viewConfirmDelete:
		content := errorStyle.Render("Move task to trash?") + "\n\n" +
			"  " + b.deleteTitle + "\n\n" +
			dimStyle.Render("y:yes  n:no")
		return dialogStyle.Render(content)
	case viewAddTask:
		content := lipgloss.NewStyle().Bold(true).Render("New task in "+b.listTitle()) + "\n\n" +
			b.input.View() + "\n\n" +
			dimStyle.Render("enter:save  esc:cancel")
		return dialogStyle.Render(content)
	default:
		return b.viewBoard()
	}
}

func (b *Board) viewBoard() string {
	if len(b.columns) == 0 {
		return "No columns."
	}

	colWidth := b.columnWidth()
	rendered := make([]string, len(b.columns))
	for i := range b.columns {
		rendered[i] = b.renderColumn(i, &b.columns[i], colWidth)
	}
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if !b.collapsed {
		boardView = lipgloss.JoinHorizontal(lipgloss.Top, b.renderSidebar(), boardView)
	}

	// Clamp from the bottom, keeping headers at the top, and pad short boards.
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", b.renderStatusBar())
}

func (b *Board) renderSidebar() string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render("Listas")}
	inner := sidebarWidth - 3 //nolint:mnd // padding + border
	for _, l := range b.lists {
		open := 0
		for _, t := range l.Tasks {
			if !t.Completed {
				open++
			}
		}
		line := truncate(l.Title, inner-4) + " " + dimStyle.Render(strconv.Itoa(open)) //nolint:mnd // count width
		if l.ID == b.listID {
			line = activeColumnHeaderStyle.Render(truncate(l.Title, inner-4)) + " " + strconv.Itoa(open) //nolint:mnd // count width
		}
		lines = append(lines, line)
	}
	return sidebarStyle.Width(sidebarWidth - 1).Render(strings.Join(lines, "\n"))
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	avail := b.width
	if !b.collapsed {
		avail -= sidebarWidth
	}
	w := avail / len(b.columns)
	const minColWidth, maxColWidth = 12, 60
	return min(max(w, minColWidth), maxColWidth)
}

func (b *Board) renderColumn(colIdx int, col *column, width int) string {
	headerText := fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks))
	const headerPad = 2
	headerText = truncate(headerText, width-headerPad)

	header := columnHeaderStyle.Width(width).Render(headerText)
	if colIdx == b.activeCol {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	}

	maxVis := b.visibleCards(col, width)
	start := min(col.scrollOff, len(col.Tasks))
	end := min(start+maxVis, len(col.Tasks))

	parts := []string{header}
	if start > 0 {
		parts = append(parts, dimStyle.Width(width).Render(truncate(fmt.Sprintf("  ↑ %d more", start), width)))
	}
	if len(col.Tasks) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (vazio)"))
	}
	for rowIdx := start; rowIdx < end; rowIdx++ {
		active := colIdx == b.activeCol && rowIdx == b.activeRow
		parts = append(parts, b.renderCard(col.Tasks[rowIdx], active, width))
	}
	if end < len(col.Tasks) {
		indicator := fmt.Sprintf("  ↓ %d more", len(col.Tasks)-end)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(t task.Task, active bool, width int) string {
	style := cardStyle
	switch {
	case active:
		style = activeCardStyle
	case t.Overdue(b.ws.Today()):
		style = overdueCardStyle
	}
	return style.Width(width - 2).Render(strings.Join(b.cardLines(t, width), "\n")) //nolint:mnd // border width
}

func (b *Board) cardHeight(t task.Task, width int) int {
	return len(b.cardLines(t, width)) + 2 //nolint:mnd // top and bottom borders
}

func (b *Board) cardLines(t task.Task, width int) []string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := max(width-cardChrome, 1)

	mark := lipgloss.NewStyle().Foreground(priorityColors[t.Priority]).Render("●")
	titleStyle := lipgloss.NewStyle()
	if t.Completed {
		titleStyle = doneTitleStyle
	}
	lines := []string{}
	for i, l := range wrapTitle(t.Title, cardWidth-2, 2) { //nolint:mnd // mark + space, two lines max
		prefix := "  "
		if i == 0 {
			prefix = mark + " "
		}
		lines = append(lines, prefix+titleStyle.Render(l))
	}

	var meta []string
	if label, ok := categoryLabels[t.Category]; ok {
		meta = append(meta, label)
	}
	if t.EstimatedTime > 0 {
		meta = append(meta, strconv.Itoa(t.EstimatedTime)+"m")
	}
	if t.DueDate != nil {
		meta = append(meta, t.DueDate.Format("02/01"))
	}
	if len(meta) > 0 {
		lines = append(lines, dimStyle.Render(truncate(strings.Join(meta, " · "), cardWidth)))
	}
	return lines
}

// chromeHeight returns the number of lines consumed below the column area.
func (b *Board) chromeHeight() int {
	h := boardChrome
	if b.err != nil {
		h += errorChrome
	}
	return h
}

// visibleCards returns the number of cards that fit in the column, leaving
// room for the header and the scroll indicators.
func (b *Board) visibleCards(col *column, width int) int {
	budget := b.height - b.chromeHeight()
	if budget < 1 {
		return 1
	}
	avail := budget - 1
	if col.scrollOff > 0 {
		avail--
	}
	n := b.fitCards(col, avail, width)
	if col.scrollOff+n < len(col.Tasks) {
		n = max(b.fitCards(col, avail-1, width), 1)
	}
	return n
}

func (b *Board) fitCards(col *column, avail, width int) int {
	if len(col.Tasks) == 0 || avail < 1 {
		return 1
	}
	used, count := 0, 0
	for i := col.scrollOff; i < len(col.Tasks); i++ {
		h := b.cardHeight(col.Tasks[i], width)
		if count > 0 && used+h > avail {
			break
		}
		count++
		used += h
		if used >= avail {
			break
		}
	}
	return max(count, 1)
}

// ensureVisible adjusts the active column's scroll offset so the selected
// row is within the visible window.
func (b *Board) ensureVisible() {
	col := b.currentColumn()
	if col == nil || b.height == 0 {
		return
	}
	w := b.columnWidth()
	for range len(col.Tasks) + 1 {
		maxVis := b.visibleCards(col, w)
		switch {
		case b.activeRow >= col.scrollOff+maxVis:
			col.scrollOff = b.activeRow - maxVis + 1
		case b.activeRow < col.scrollOff:
			col.scrollOff = b.activeRow
		default:
			return
		}
	}
}

func (b *Board) renderStatusBar() string {
	open := 0
	for _, c := range b.columns {
		for _, t := range c.Tasks {
			if !t.Completed {
				open++
			}
		}
	}
	status := fmt.Sprintf(" %s | %d open", b.listTitle(), open)
	if b.focusTask != "" {
		status += " | " + focusStyle.Render(fmt.Sprintf("focus %s %s", clock(b.focusLeft.Seconds()), truncate(b.focusTask, 20))) //nolint:mnd // title width
	}
	status = truncate(status, b.width) + "  " + b.help.ShortHelpView(b.keys.ShortHelp())

	bar := statusBarStyle.Render(status)
	if b.err != nil {
		return errorStyle.Render(truncate("Error: "+b.err.Error(), b.width)) + "\n" + bar
	}
	return bar
}

func (b *Board) listTitle() string {
	for _, l := range b.lists {
		if l.ID == b.listID {
			return l.Title
		}
	}
	return b.listID
}

// clock renders seconds as MM:SS.
func clock(secs float64) string {
	s := int(secs + 0.5) //nolint:mnd // round to nearest second
	return fmt.Sprintf("%02d:%02d", s/60, s%60) //nolint:mnd // seconds per minute
}

// wrapTitle splits a title across maxLines lines, word-wrapping at word
// boundaries. Each line is at most maxWidth characters.
func wrapTitle(title string, maxWidth, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	if lipgloss.Width(title) <= maxWidth || maxLines == 1 {
		return []string{truncate(title, maxWidth)}
	}

	words := strings.Fields(title)
	lines := make([]string, 0, maxLines)
	var current strings.Builder
	for i, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if lipgloss.Width(current.String())+1+lipgloss.Width(word) <= maxWidth {
			current.WriteByte(' ')
			current.WriteString(word)
			continue
		}
		lines = append(lines, truncate(current.String(), maxWidth))
		current.Reset()
		current.WriteString(word)
		if len(lines) == maxLines-1 {
			// Last line: append all remaining words.
			for _, w := range words[i+1:] {
				current.WriteByte(' ')
				current.WriteString(w)
			}
			break
		}
	}
	if current.Len() > 0 {
		lines = append(lines, truncate(current.String(), maxWidth))
	}
	return lines
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
