package common

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/tunes/style"
)

// Markdown renders md for the terminal, word-wrapped to width, and falls
// back to the plain text on error. The glamour style follows the theme;
// the terminal is never queried.
func Markdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" || width <= 0 {
		return ""
	}
	name := styles.DarkStyle
	if !style.IsDark() {
		name = styles.LightStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(name),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(strings.TrimRight(l, " "), width, "")
	}
	return strings.Join(lines, "\n")
}
