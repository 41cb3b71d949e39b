package app

const (
	headerHeight = 2 // header line + separator
	statusHeight = 1

	// minListHeight keeps a usable list on very short terminals.
	minListHeight = 3
)

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth  int
	TermHeight int
	ListWidth  int // width of the active list, scrollbar included
	ListHeight int
}

// ComputeLayout splits the terminal into header, list and status bar. The
// list gets every line the other two do not use.
func ComputeLayout(termW, termH int) Layout {
	return Layout{
		TermWidth:  termW,
		TermHeight: termH,
		ListWidth:  max(termW, 0),
		ListHeight: max(termH-headerHeight-statusHeight, minListHeight),
	}
}
