package window

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ItemContext is passed to a RenderFunc.
type ItemContext struct {
	// Width is the row width in cells. Grid tiles pick their own width
	// within it.
	Width int
	// Selected is true for the item under the cursor.
	Selected bool
}

// RenderFunc renders one item. Items in a list must render to a consistent
// height; the tallest item in the first measured row sets the row height.
type RenderFunc[T any] func(item T, index int, ctx ItemContext) string

// KeyFunc returns a stable identity for an item. An empty key falls back to
// the item's index.
type KeyFunc[T any] func(item T) string

// cachedRender stores a rendered item along with the inputs that produced it.
type cachedRender struct {
	content  string
	width    int
	selected bool
}

// renderCache memoises item renders by key.
type renderCache struct {
	entries map[string]cachedRender
}

func newRenderCache() renderCache {
	return renderCache{entries: make(map[string]cachedRender)}
}

func (c *renderCache) get(key string, width int, selected bool) (string, bool) {
	e, ok := c.entries[key]
	if !ok || e.width != width || e.selected != selected {
		return "", false
	}
	return e.content, true
}

func (c *renderCache) put(key string, width int, selected bool, content string) {
	c.entries[key] = cachedRender{content: content, width: width, selected: selected}
}

func (c *renderCache) reset() { clear(c.entries) }

// prune keeps only the keys for which keep returns true.
func (c *renderCache) prune(keep func(key string) bool) {
	for k := range c.entries {
		if !keep(k) {
			delete(c.entries, k)
		}
	}
}

func (c *renderCache) len() int { return len(c.entries) }

// ---------------------------------------------------------------------------
// Row composition
// ---------------------------------------------------------------------------

// composeRow joins the blocks of one row side by side and fits the result to
// exactly height lines, none wider than width.
func composeRow(blocks []string, height, gap, width int) []string {
	var row string
	switch len(blocks) {
	case 0:
	case 1:
		row = blocks[0]
	default:
		sep := strings.Repeat(" ", max(gap, 0))
		parts := make([]string, 0, 2*len(blocks)-1)
		for i, b := range blocks {
			if i > 0 && gap > 0 {
				parts = append(parts, sep)
			}
			parts = append(parts, b)
		}
		row = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	return fitLines(row, height, width)
}

// fitLines splits s into exactly height lines, truncating or padding as
// needed, and cuts lines to width cells.
func fitLines(s string, height, width int) []string {
	if height <= 0 {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		if width > 0 && ansi.StringWidth(l) > width {
			lines[i] = ansi.Truncate(l, width, "")
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// appendBlank appends n empty lines.
func appendBlank(lines []string, n int) []string {
	for range n {
		lines = append(lines, "")
	}
	return lines
}

// splitBlock splits a rendered block into lines, treating "" as no lines.
func splitBlock(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
