package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWrap = 80

// Markdown renders a task description for the terminal. width <= 0 uses 80
// columns. Rendering failures fall back to the raw text.
func Markdown(src string, width int) string {
	if width <= 0 {
		width = defaultWrap
	}
	styleOpt := glamour.WithAutoStyle()
	if plain {
		styleOpt = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
