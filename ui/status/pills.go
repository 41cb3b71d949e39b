package status

import (
	"fmt"

	"github.com/miosa/tunes/style"
	"github.com/miosa/tunes/ui/common"
	"github.com/miosa/tunes/ui/window"
)

// WindowPill shows whether the active list renders a window, e.g.
// "win 120–184" or "win off".
func WindowPill(state window.State, r window.Range) string {
	label := style.StatusKey.Render("win ")
	switch state {
	case window.StateWindowed:
		return label + style.WindowOn.Render(fmt.Sprintf("%d–%d", r.Start, r.End))
	case window.StateDisabled:
		return label + style.WindowDisabled.Render("disabled")
	default:
		return label + style.WindowOff.Render("off")
	}
}

// PositionPill renders the cursor position, e.g. "312/1200".
func PositionPill(cursor, total int) string {
	if total <= 0 {
		return style.StatusKey.Render("empty")
	}
	return style.StatusValue.Render(fmt.Sprintf("%d", cursor+1)) +
		style.StatusKey.Render("/"+common.HumanCount(total))
}
