// Package window keeps a moving window of rendered items over a large,
// ordered list inside a scrolling surface.
//
// Only the rows that intersect the viewport, plus an overscan band on each
// side, are rendered. Blank spacers above and below the window stand in for
// the rows that are not rendered, so the surface keeps its full virtual
// height and the scrollbar stays proportional.
//
// The package is split along the same lines as the data flow:
//
//	Measurer    rendered sample      -> Metrics (row height, columns, offset)
//	ComputeRange scroll + Metrics     -> Range  (with overscan and hysteresis)
//	Padding     Range + Metrics      -> Spacers
//	Guard       range transitions    -> fail-safe that turns windowing off
//	Controller  surface events       -> single-flight frame -> recompute
//
// Everything runs on the bubbletea update loop. Nothing here is safe for
// concurrent use and nothing needs to be.
package window

import "time"

// ---------------------------------------------------------------------------
// Range
// ---------------------------------------------------------------------------

// Range is an inclusive index window [Start, End] into an item list.
// The empty range has End == Start-1.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// EmptyRange returns the range used for an empty list.
func EmptyRange() Range { return Range{Start: 0, End: -1} }

// FullRange returns the range covering every one of n items.
func FullRange(n int) Range {
	if n <= 0 {
		return EmptyRange()
	}
	return Range{Start: 0, End: n - 1}
}

// Empty reports whether the range holds no items.
func (r Range) Empty() bool { return r.End < r.Start }

// Len returns the number of items in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index i falls inside the range.
func (r Range) Contains(i int) bool {
	return !r.Empty() && i >= r.Start && i <= r.End
}

// valid reports whether r satisfies the index invariants for itemCount.
func (r Range) valid(itemCount int) bool {
	if itemCount <= 0 {
		return r.Empty()
	}
	return r.Start >= 0 && r.Start <= r.End && r.End < itemCount
}

// ---------------------------------------------------------------------------
// Scroll state and spacers
// ---------------------------------------------------------------------------

// ScrollState is the scroll position of the surface, sampled once per frame.
// Both values are in terminal lines.
type ScrollState struct {
	ScrollTop      int `json:"scroll_top"`
	ViewportHeight int `json:"viewport_height"`
}

// Spacers are the blank line counts rendered above and below the window.
type Spacers struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Config holds the per-list windowing constants. They are inputs supplied by
// each call site, never negotiated at runtime.
type Config struct {
	// Threshold is the item count at which windowing switches on.
	Threshold int
	// OverscanRows are rendered beyond the viewport on each side.
	OverscanRows int
	// RetentionRows is the buffer the visible band may move within before a
	// previous range is replaced. Clamped to OverscanRows.
	RetentionRows int
	// InitialWindow is the item count rendered right after a reset.
	InitialWindow int
	// MinWindow is the smallest item count an active window may hold.
	MinWindow int

	// DefaultRowHeight is used until a plausible measurement arrives.
	DefaultRowHeight int
	// MinRowHeight rejects measurements shorter than this many lines.
	MinRowHeight int

	// NearTopRows is how close to row zero a start row must be to count as a
	// reset to the top.
	NearTopRows int
	// ResetWindow and ResetThreshold drive the stability guard: this many
	// resets inside this window turn windowing off for the list instance.
	ResetWindow    time.Duration
	ResetThreshold int
}

// DefaultConfig returns the constants used when a call site does not tune
// its list.
func DefaultConfig() Config {
	return Config{
		Threshold:        120,
		OverscanRows:     4,
		RetentionRows:    2,
		InitialWindow:    40,
		MinWindow:        24,
		DefaultRowHeight: 1,
		MinRowHeight:     1,
		NearTopRows:      1,
		ResetWindow:      5 * time.Second,
		ResetThreshold:   3,
	}
}

// normalize clamps every field into its usable domain.
func (c Config) normalize() Config {
	if c.Threshold < 0 {
		c.Threshold = 0
	}
	if c.OverscanRows < 0 {
		c.OverscanRows = 0
	}
	if c.RetentionRows < 0 {
		c.RetentionRows = 0
	}
	if c.RetentionRows > c.OverscanRows {
		c.RetentionRows = c.OverscanRows
	}
	if c.InitialWindow < 1 {
		c.InitialWindow = 1
	}
	if c.MinWindow < 1 {
		c.MinWindow = 1
	}
	if c.MinRowHeight < 1 {
		c.MinRowHeight = 1
	}
	if c.DefaultRowHeight < c.MinRowHeight {
		c.DefaultRowHeight = c.MinRowHeight
	}
	if c.NearTopRows < 0 {
		c.NearTopRows = 0
	}
	if c.ResetWindow <= 0 {
		c.ResetWindow = 5 * time.Second
	}
	if c.ResetThreshold < 1 {
		c.ResetThreshold = 1
	}
	return c
}

// ---------------------------------------------------------------------------
// ComputeRange
// ---------------------------------------------------------------------------

// band is an inclusive interval of rows.
type band struct{ first, last int }

// ComputeRange returns the index range that should be rendered for the given
// scroll position and geometry.
//
// The visible rows are expanded by OverscanRows on each side and grown
// symmetrically up to MinWindow items. When prev still covers the visible
// band widened by RetentionRows it is returned unchanged, so small scroll
// deltas never produce a new range.
func ComputeRange(s ScrollState, m Metrics, itemCount int, cfg Config, prev Range) Range {
	if itemCount <= 0 {
		return EmptyRange()
	}
	cfg = cfg.normalize()
	m = m.withDefaults(cfg)
	cols := m.Columns
	totalRows := rowCount(itemCount, cols)
	vis := visibleBand(s, m, totalRows)
	need := min(itemCount, cfg.MinWindow)

	if prev.valid(itemCount) && prev.Start%cols == 0 && prev.Len() >= need {
		keep := band{
			first: max(0, vis.first-cfg.RetentionRows),
			last:  min(totalRows-1, vis.last+cfg.RetentionRows),
		}
		if prev.Start <= keep.first*cols && prev.End >= lastIndex(keep.last, cols, itemCount) {
			return prev
		}
	}

	rows := band{
		first: max(0, vis.first-cfg.OverscanRows),
		last:  min(totalRows-1, vis.last+cfg.OverscanRows),
	}
	rows = grow(rows, ceilDiv(need, cols), totalRows)

	r := Range{Start: rows.first * cols, End: lastIndex(rows.last, cols, itemCount)}
	// A partial last row can leave the window short of the minimum.
	for r.Len() < need && r.Start > 0 {
		r.Start = max(0, r.Start-cols)
	}
	return r
}

// VisibleRows returns the first and last row that intersect the viewport,
// clamped to the list.
func VisibleRows(s ScrollState, m Metrics, itemCount int) (first, last int) {
	if itemCount <= 0 {
		return 0, -1
	}
	m = m.withDefaults(DefaultConfig())
	b := visibleBand(s, m, rowCount(itemCount, m.Columns))
	return b.first, b.last
}

// visibleBand converts a scroll position into the rows that intersect the
// viewport. The scroll offset is taken relative to the list's offset inside
// the surface.
func visibleBand(s ScrollState, m Metrics, totalRows int) band {
	rh := m.RowHeight
	top := s.ScrollTop - m.ContainerOffset
	bottom := top + max(s.ViewportHeight, 1) // exclusive

	first := max(top, 0) / rh
	last := 0
	if bottom > 0 {
		last = ceilDiv(bottom, rh) - 1
	}

	first = clamp(first, 0, totalRows-1)
	last = clamp(last, 0, totalRows-1)
	if last < first {
		last = first
	}
	return band{first: first, last: last}
}

// grow widens rows symmetrically until it spans at least need rows, shifting
// the growth inward when it runs into either end of the list.
func grow(rows band, need, totalRows int) band {
	size := rows.last - rows.first + 1
	if size >= need {
		return rows
	}
	extra := need - size
	rows.first -= extra / 2
	rows.last += extra - extra/2
	if rows.first < 0 {
		rows.last -= rows.first
		rows.first = 0
	}
	if rows.last > totalRows-1 {
		rows.first -= rows.last - (totalRows - 1)
		rows.last = totalRows - 1
		if rows.first < 0 {
			rows.first = 0
		}
	}
	return rows
}

// ---------------------------------------------------------------------------
// Padding
// ---------------------------------------------------------------------------

// Padding returns the spacer heights that stand in for the rows before and
// after r, so that Top + renderedRows*RowHeight + Bottom equals the list's
// total height.
func Padding(r Range, m Metrics, itemCount int) Spacers {
	if r.Empty() || itemCount <= 0 {
		return Spacers{}
	}
	cols := max(m.Columns, 1)
	rh := max(m.RowHeight, 1)
	totalRows := rowCount(itemCount, cols)
	startRow := clamp(r.Start/cols, 0, totalRows-1)
	endRow := clamp(r.End/cols, startRow, totalRows-1)
	return Spacers{
		Top:    startRow * rh,
		Bottom: (totalRows - 1 - endRow) * rh,
	}
}

// TotalHeight returns the height in lines of the whole list, header excluded.
func TotalHeight(m Metrics, itemCount int) int {
	if itemCount <= 0 {
		return 0
	}
	return rowCount(itemCount, max(m.Columns, 1)) * max(m.RowHeight, 1)
}

// RescaleScrollTop keeps the same logical row under the viewport when the row
// height changes from prev to next. The part of the offset above the list is
// left alone.
func RescaleScrollTop(scrollTop int, prev, next Metrics) int {
	if prev.RowHeight <= 0 || next.RowHeight <= 0 || prev.RowHeight == next.RowHeight {
		return scrollTop
	}
	within := scrollTop - prev.ContainerOffset
	if within <= 0 {
		return scrollTop
	}
	return prev.ContainerOffset + within*next.RowHeight/prev.RowHeight
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func rowCount(itemCount, cols int) int { return ceilDiv(itemCount, cols) }

// lastIndex returns the last item index on row, clamped to the list.
func lastIndex(row, cols, itemCount int) int {
	return min(itemCount-1, (row+1)*cols-1)
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(hi, max(lo, v))
}
