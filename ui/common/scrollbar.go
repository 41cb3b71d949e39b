package common

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "┃"
)

// thumb returns the first row and the size of the scrollbar thumb. The thumb
// is at least one row and touches the bottom exactly when scrollTop is at
// its maximum.
func thumb(height, total, scrollTop int) (start, size int) {
	size = max(height*height/total, 1)
	scrollable := total - height
	scrollTop = min(max(scrollTop, 0), scrollable)
	start = (scrollTop*(height-size) + scrollable/2) / scrollable
	return min(start, height-size), size
}

// Scrollbar renders a one-column track height rows tall for a surface
// showing height of total lines from scrollTop. Windowed lists pass their
// virtual height, so the thumb reflects the whole list. Empty when the
// content fits.
func Scrollbar(height, total, scrollTop int) string {
	if height <= 0 || total <= height {
		return ""
	}
	start, size := thumb(height, total, scrollTop)
	rows := make([]string, height)
	for i := range rows {
		if i >= start && i < start+size {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}

// WithScrollbar places a scrollbar to the right of a view height rows tall.
// When the content fits, a blank column keeps the layout width stable.
func WithScrollbar(view string, height, total, scrollTop int) string {
	bar := Scrollbar(height, total, scrollTop)
	if bar == "" {
		bar = strings.TrimSuffix(strings.Repeat(" \n", max(height, 1)), "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, view, bar)
}
