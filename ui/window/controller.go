package window

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Layout selects how items are arranged into rows.
type Layout int

const (
	Flat Layout = iota
	Grid
)

func (l Layout) String() string {
	switch l {
	case Grid:
		return "grid"
	default:
		return "flat"
	}
}

const (
	wheelDelta = 3
	// sampleSize is how many items a grid hands the measurer; enough to fill
	// the first row at any sensible terminal width.
	sampleSize = 16
)

// Options configures a Controller.
type Options[T any] struct {
	Name   string
	Layout Layout
	// Gap is the number of blank cells between grid columns.
	Gap    int
	Config Config

	KeyOf  KeyFunc[T]
	Render RenderFunc[T]

	// Measurer defaults to a TextMeasurer matching Layout.
	Measurer Measurer
	Keys     KeyMap
	Now      func() time.Time
	Logger   *slog.Logger
}

// session is the state owned by an eligible list instance. It is created
// when the item count reaches the threshold and discarded, subscriptions
// included, when the list's identity changes or the count drops below it.
type session struct {
	rng     Range
	geom    Metrics // geometry rng was computed with
	guard   *Guard
	target  int // index forced into the window until it is visible, -1 for none
	cancels []func()
}

func (s *session) unsubscribe() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

// buildStamp records the inputs of the last content build.
type buildStamp struct {
	rng     Range
	geom    Metrics
	width   int
	items   int
	cursor  int
	header  int
	version int
}

// Controller renders a list of T into a Surface, keeping only a window of
// items rendered once the list is long enough.
type Controller[T any] struct {
	name    string
	layout  Layout
	gap     int
	cfg     Config
	keyOf   KeyFunc[T]
	render  RenderFunc[T]
	measure Measurer
	keys    KeyMap
	now     func() time.Time
	log     *slog.Logger

	surface  Surface
	items    []T
	identity string
	header   []string
	cursor   int

	metrics       Metrics
	measuredWidth int
	measureDirty  bool

	cache   renderCache
	built   buildStamp
	version int

	sched   Scheduler
	sess    *session
	pending int // scroll target waiting for its items to arrive, -1 for none
	quiet   bool
	cmd     tea.Cmd
}

// New returns a controller rendering into surface.
func New[T any](surface Surface, opts Options[T]) *Controller[T] {
	cfg := opts.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	cfg = cfg.normalize()

	c := &Controller[T]{
		name:         opts.Name,
		layout:       opts.Layout,
		gap:          max(opts.Gap, 0),
		cfg:          cfg,
		keyOf:        opts.KeyOf,
		render:       opts.Render,
		measure:      opts.Measurer,
		keys:         opts.Keys,
		now:          opts.Now,
		log:          opts.Logger,
		surface:      surface,
		metrics:      Metrics{RowHeight: cfg.DefaultRowHeight, Columns: 1},
		measureDirty: true,
		cache:        newRenderCache(),
		sched:        NewScheduler(),
		pending:      -1,
		built:        buildStamp{version: -1},
	}
	if c.measure == nil {
		c.measure = TextMeasurer{Grid: opts.Layout == Grid, MinRowHeight: cfg.MinRowHeight}
	}
	if len(c.keys.Up.Keys()) == 0 {
		c.keys = DefaultKeyMap()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.render == nil {
		c.render = func(item T, _ int, _ ItemContext) string { return "" }
	}
	return c
}

// ---------------------------------------------------------------------------
// Inputs
// ---------------------------------------------------------------------------

// SetItems replaces the list. A new identity resets the list to its initial
// window at the top; the same identity with more items (a page arriving)
// keeps the current window and scroll position.
func (c *Controller[T]) SetItems(items []T, identity string) tea.Cmd {
	reset := identity != c.identity
	c.items = items
	c.identity = identity
	if reset {
		c.endSession()
		c.cache.reset()
		c.version++
		c.cursor = 0
		c.quietly(func() { c.surface.SetScrollTop(0) })
	}
	c.cursor = clamp(c.cursor, 0, max(len(items)-1, 0))
	c.measureDirty = true

	c.syncSession()
	c.remeasure()
	c.refresh(false)

	if c.pending >= 0 && c.pending < len(c.items) {
		c.scrollTo(c.pending)
	}
	return c.takeCmd()
}

// SetHeader sets the block rendered above the list inside the surface. Its
// height becomes the list's container offset.
func (c *Controller[T]) SetHeader(block string) tea.Cmd {
	lines := splitBlock(block)
	if slices.Equal(lines, c.header) {
		return nil
	}
	c.header = lines
	c.version++
	c.measureDirty = true
	c.remeasure()
	c.refresh(false)
	return c.takeCmd()
}

// SetSize resizes the surface and re-measures at the new width.
func (c *Controller[T]) SetSize(width, height int) tea.Cmd {
	if width != c.surface.ClientWidth() {
		c.measureDirty = true
	}
	// A clamped offset is not the user scrolling; the resize listener
	// schedules the frame.
	c.quietly(func() { c.surface.SetSize(width, height) })
	c.remeasure()
	c.refresh(false)
	return c.takeCmd()
}

// Remeasure marks the geometry stale and schedules a frame to re-derive it,
// for when item renders changed shape without the list changing.
func (c *Controller[T]) Remeasure() tea.Cmd {
	c.measureDirty = true
	c.cache.reset()
	c.version++
	if c.Windowed() {
		c.requestFrame()
	} else {
		c.remeasure()
		c.refresh(false)
	}
	return c.takeCmd()
}

// Update handles frames, mouse wheel and cursor keys.
func (c *Controller[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FrameMsg:
		if c.sched.Accept(msg) {
			c.frame()
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			c.scrollBy(-wheelDelta)
		case tea.MouseWheelDown:
			c.scrollBy(wheelDelta)
		}
	case tea.KeyPressMsg:
		return c.handleKey(msg)
	}
	return c.takeCmd()
}

func (c *Controller[T]) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, c.keys.Up):
		return c.MoveRows(-1)
	case key.Matches(msg, c.keys.Down):
		return c.MoveRows(1)
	case c.layout == Grid && key.Matches(msg, c.keys.Left):
		return c.MoveCursor(-1)
	case c.layout == Grid && key.Matches(msg, c.keys.Right):
		return c.MoveCursor(1)
	case key.Matches(msg, c.keys.PageUp):
		return c.PageUp()
	case key.Matches(msg, c.keys.PageDown):
		return c.PageDown()
	case key.Matches(msg, c.keys.Home):
		return c.Home()
	case key.Matches(msg, c.keys.End):
		return c.End()
	}
	return c.takeCmd()
}

// ScrollBy moves the surface by delta lines.
func (c *Controller[T]) ScrollBy(delta int) tea.Cmd {
	c.scrollBy(delta)
	return c.takeCmd()
}

func (c *Controller[T]) scrollBy(delta int) {
	c.surface.SetScrollTop(c.surface.ScrollTop() + delta)
}

// MoveCursor moves the selection by delta items and scrolls it into view.
func (c *Controller[T]) MoveCursor(delta int) tea.Cmd {
	c.moveCursor(delta)
	return c.takeCmd()
}

// MoveRows moves the selection by delta rows.
func (c *Controller[T]) MoveRows(delta int) tea.Cmd {
	return c.MoveCursor(delta * c.metrics.Columns)
}

// PageDown and PageUp move the selection by one viewport of rows.
func (c *Controller[T]) PageDown() tea.Cmd { return c.MoveRows(c.pageRows()) }
func (c *Controller[T]) PageUp() tea.Cmd   { return c.MoveRows(-c.pageRows()) }

// Home and End select the first and last item.
func (c *Controller[T]) Home() tea.Cmd { return c.MoveCursor(-len(c.items)) }
func (c *Controller[T]) End() tea.Cmd  { return c.MoveCursor(len(c.items)) }

func (c *Controller[T]) moveCursor(delta int) {
	if len(c.items) == 0 {
		return
	}
	c.cursor = clamp(c.cursor+delta, 0, len(c.items)-1)
	c.reveal(c.cursor, false)
}

// ScrollToIndex selects item i and scrolls its row to the top of the
// viewport. The item is kept in the window until a frame sees it visible or
// the user scrolls elsewhere.
// If the list does not have that many items yet, the request is held and
// applied when they arrive.
func (c *Controller[T]) ScrollToIndex(i int) tea.Cmd {
	c.scrollTo(i)
	return c.takeCmd()
}

func (c *Controller[T]) scrollTo(i int) {
	if i < 0 {
		return
	}
	if i >= len(c.items) {
		c.pending = i
		return
	}
	c.pending = -1
	c.cursor = i
	c.reveal(i, true)
}

// PendingTarget returns a scroll request still waiting for items, or -1.
func (c *Controller[T]) PendingTarget() int { return c.pending }

// Close tears down the list's subscriptions and pending frame.
func (c *Controller[T]) Close() {
	c.endSession()
	c.cache.reset()
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// View renders the surface, when it knows how to render itself.
func (c *Controller[T]) View() string {
	if v, ok := c.surface.(interface{ View() string }); ok {
		return v.View()
	}
	return ""
}

// Items returns the current item slice.
func (c *Controller[T]) Items() []T { return c.items }

// Len returns the item count.
func (c *Controller[T]) Len() int { return len(c.items) }

// Identity returns the identity passed with the current items.
func (c *Controller[T]) Identity() string { return c.identity }

// Cursor returns the selected index.
func (c *Controller[T]) Cursor() int { return c.cursor }

// Selected returns the item under the cursor.
func (c *Controller[T]) Selected() (T, bool) {
	var zero T
	if c.cursor < 0 || c.cursor >= len(c.items) {
		return zero, false
	}
	return c.items[c.cursor], true
}

// Range returns the rendered index range. Lists that are not windowed render
// everything.
func (c *Controller[T]) Range() Range {
	if c.Windowed() {
		return c.sess.rng
	}
	return FullRange(len(c.items))
}

// Spacers returns the blank line counts around the rendered range.
func (c *Controller[T]) Spacers() Spacers {
	return Padding(c.Range(), c.metrics, len(c.items))
}

// Metrics returns the last trusted geometry.
func (c *Controller[T]) Metrics() Metrics { return c.metrics }

// Windowed reports whether only a window of items is rendered.
func (c *Controller[T]) Windowed() bool {
	return c.sess != nil && !c.sess.guard.Disabled()
}

// Disabled reports whether the stability guard turned windowing off for this
// list instance.
func (c *Controller[T]) Disabled() bool {
	return c.sess != nil && c.sess.guard.Disabled()
}

// Subscribed reports whether the controller is listening to its surface.
func (c *Controller[T]) Subscribed() bool {
	return c.sess != nil && len(c.sess.cancels) > 0
}

// FramePending reports whether a recompute is scheduled.
func (c *Controller[T]) FramePending() bool { return c.sched.Pending() }

// ---------------------------------------------------------------------------
// Frame
// ---------------------------------------------------------------------------

// Flush runs the pending frame now, if windowing is on. Any queued tick for
// it becomes stale.
func (c *Controller[T]) Flush() tea.Cmd {
	if c.Windowed() {
		c.sched.Cancel()
		c.frame()
	}
	return c.takeCmd()
}

// frame re-measures if the geometry is stale, then recomputes the range from
// the surface's current scroll position.
func (c *Controller[T]) frame() {
	if !c.Windowed() {
		return
	}
	c.remeasure()
	c.refresh(true)
}

// refresh recomputes the range and rebuilds content when anything it
// depends on changed. Transitions seen by a frame are reported to the guard.
func (c *Controller[T]) refresh(observe bool) {
	if !c.Windowed() {
		c.rebuild()
		return
	}

	n := len(c.items)
	m := c.metrics
	prev := c.sess.rng
	scroll := c.scrollState()
	next := ComputeRange(scroll, m, n, c.cfg, prev)

	if t := c.sess.target; t >= 0 {
		if t >= n {
			c.sess.target = -1
		} else {
			next = include(next, t, m.Columns, n)
			first, last := VisibleRows(scroll, m, n)
			if row := t / m.Columns; row >= first && row <= last {
				c.sess.target = -1
			}
		}
	}

	if observe && next != prev {
		t := Transition{Prev: prev, PrevGeom: c.sess.geom, Next: next, NextGeom: m, Scroll: scroll}
		if c.sess.guard.Observe(t, c.now()) {
			c.disable()
			c.rebuild()
			return
		}
	}

	c.sess.rng = next
	c.sess.geom = m
	c.rebuild()
}

// remeasure re-derives Metrics from rendered content when the width changed
// or the geometry was marked stale. A changed row height rescales the scroll
// offset so the same row stays under the viewport.
func (c *Controller[T]) remeasure() {
	width := c.surface.ClientWidth()
	if !c.measureDirty && width == c.measuredWidth {
		return
	}
	if width <= 0 || len(c.items) == 0 {
		return
	}
	c.measureDirty = false
	c.measuredWidth = width

	container := Container{Width: width, Gap: c.gap, Offset: len(c.header)}
	next, ok := c.measure.Measure(container, c.sample(width))
	if !ok {
		c.log.Debug("window: measurement ignored", "list", c.name, "width", width)
		next = c.metrics
		next.ContainerOffset = container.Offset
	}
	next = next.withDefaults(c.cfg)
	if c.layout == Flat {
		next.Columns = 1
	}
	if next == c.metrics {
		return
	}

	prev := c.metrics
	c.metrics = next
	if prev.RowHeight != next.RowHeight {
		top := RescaleScrollTop(c.surface.ScrollTop(), prev, next)
		// The content has to grow before the offset can move into it.
		c.rebuild()
		c.quietly(func() { c.surface.SetScrollTop(top) })
	}
}

// sample renders items from the start of the current window for measuring.
func (c *Controller[T]) sample(width int) []string {
	start := max(c.Range().Start, 0)
	size := 1
	if c.layout == Grid {
		size = sampleSize
	}
	end := min(len(c.items), start+size)
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, c.renderAt(i, width))
	}
	return out
}

// rebuild composes header, spacers and the rows of the current range into
// the surface.
func (c *Controller[T]) rebuild() {
	width := c.surface.ClientWidth()
	rng := c.Range()
	stamp := buildStamp{
		rng:     rng,
		geom:    c.metrics,
		width:   width,
		items:   len(c.items),
		cursor:  c.cursor,
		header:  len(c.header),
		version: c.version,
	}
	if stamp == c.built {
		return
	}
	c.built = stamp

	n := len(c.items)
	m := c.metrics.withDefaults(c.cfg)
	lines := make([]string, 0, len(c.header)+TotalHeight(m, n))
	lines = append(lines, fitLines(strings.Join(c.header, "\n"), len(c.header), width)...)

	if n > 0 && !rng.Empty() {
		sp := Padding(rng, m, n)
		lines = appendBlank(lines, sp.Top)
		blocks := make([]string, 0, m.Columns)
		for row := rng.Start / m.Columns; row <= rng.End/m.Columns; row++ {
			blocks = blocks[:0]
			for i := row * m.Columns; i < min(n, (row+1)*m.Columns); i++ {
				blocks = append(blocks, c.renderAt(i, width))
			}
			lines = append(lines, composeRow(blocks, m.RowHeight, c.gap, width)...)
		}
		lines = appendBlank(lines, sp.Bottom)
	}

	before := c.surface.ScrollTop()
	c.quietly(func() { c.surface.SetContent(lines) })
	if c.surface.ScrollTop() != before && c.Windowed() {
		// Content got shorter than the offset; recompute at the clamped one.
		c.requestFrame()
	}
	c.pruneCache(rng)
}

// reveal scrolls item i into view. With top set its row is aligned to the
// top of the viewport; otherwise the viewport moves only as far as needed.
func (c *Controller[T]) reveal(i int, top bool) {
	n := len(c.items)
	m := c.metrics.withDefaults(c.cfg)
	rowTop := m.ContainerOffset + (i/m.Columns)*m.RowHeight
	rowBottom := rowTop + m.RowHeight
	st, vh := c.surface.ScrollTop(), c.surface.ClientHeight()

	target := st
	switch {
	case top:
		target = rowTop
	case rowTop < st:
		target = rowTop
	case rowBottom > st+vh:
		target = rowBottom - vh
	}

	if c.Windowed() {
		s := ScrollState{ScrollTop: target, ViewportHeight: vh}
		rng := ComputeRange(s, m, n, c.cfg, c.sess.rng)
		if top {
			rng = include(rng, i, m.Columns, n)
			c.sess.target = i
		}
		c.sess.rng = rng
		c.sess.geom = m
	}
	c.rebuild()
	if target == st {
		return
	}
	c.quietly(func() { c.surface.SetScrollTop(target) })
	if c.Windowed() {
		c.requestFrame()
	}
}

// ---------------------------------------------------------------------------
// Session lifecycle
// ---------------------------------------------------------------------------

func (c *Controller[T]) syncSession() {
	eligible := len(c.items) > 0 && len(c.items) >= c.cfg.Threshold
	switch {
	case eligible && c.sess == nil:
		c.startSession()
	case !eligible && c.sess != nil:
		c.endSession()
	}
}

func (c *Controller[T]) startSession() {
	c.sess = &session{
		rng:    c.initialRange(),
		geom:   c.metrics,
		guard:  NewGuard(c.cfg),
		target: -1,
	}
	c.sess.cancels = []func(){
		c.surface.OnScroll(c.onScroll),
		c.surface.OnResize(c.onResize),
	}
	c.log.Debug("window: on", "list", c.name, "items", len(c.items))
}

func (c *Controller[T]) endSession() {
	if c.sess == nil {
		return
	}
	c.sess.unsubscribe()
	c.sched.Cancel()
	c.sess = nil
}

// disable stops windowing for the rest of this list instance. The session is
// kept so the tripped guard survives until the identity changes.
func (c *Controller[T]) disable() {
	c.sess.unsubscribe()
	c.sched.Cancel()
	c.log.Warn("window: disabled after repeated resets to top",
		"list", c.name,
		"items", len(c.items),
		"resets", c.sess.guard.Resets(),
	)
}

func (c *Controller[T]) initialRange() Range {
	n := len(c.items)
	cols := max(c.metrics.Columns, 1)
	size := min(n, ceilDiv(c.cfg.InitialWindow, cols)*cols)
	if size <= 0 {
		return EmptyRange()
	}
	return Range{Start: 0, End: size - 1}
}

func (c *Controller[T]) onScroll() {
	if c.quiet {
		return
	}
	// The user took over; a pending scroll target no longer applies.
	if c.sess != nil {
		c.sess.target = -1
	}
	c.requestFrame()
}

func (c *Controller[T]) onResize() {
	c.measureDirty = true
	c.requestFrame()
}

func (c *Controller[T]) requestFrame() {
	if cmd := c.sched.Request(); cmd != nil {
		c.cmd = tea.Batch(c.cmd, cmd)
	}
}

func (c *Controller[T]) takeCmd() tea.Cmd {
	cmd := c.cmd
	c.cmd = nil
	return cmd
}

// quietly runs fn with surface callbacks muted, for writes the controller
// makes itself.
func (c *Controller[T]) quietly(fn func()) {
	was := c.quiet
	c.quiet = true
	fn()
	c.quiet = was
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (c *Controller[T]) scrollState() ScrollState {
	return ScrollState{
		ScrollTop:      c.surface.ScrollTop(),
		ViewportHeight: c.surface.ClientHeight(),
	}
}

func (c *Controller[T]) pageRows() int {
	return max(1, c.surface.ClientHeight()/max(c.metrics.RowHeight, 1))
}

func (c *Controller[T]) keyAt(i int) string {
	if c.keyOf != nil {
		if k := c.keyOf(c.items[i]); k != "" {
			return k
		}
	}
	return "#" + strconv.Itoa(i)
}

func (c *Controller[T]) renderAt(i, width int) string {
	k := c.keyAt(i)
	selected := i == c.cursor
	if s, ok := c.cache.get(k, width, selected); ok {
		return s
	}
	s := c.render(c.items[i], i, ItemContext{Width: width, Selected: selected})
	c.cache.put(k, width, selected, s)
	return s
}

// pruneCache drops renders far outside the window once the cache has grown
// well past what the window needs.
func (c *Controller[T]) pruneCache(rng Range) {
	if rng.Empty() || c.cache.len() <= 4*rng.Len()+64 {
		return
	}
	keep := make(map[string]struct{}, rng.Len())
	for i := rng.Start; i <= rng.End && i < len(c.items); i++ {
		keep[c.keyAt(i)] = struct{}{}
	}
	c.cache.prune(func(k string) bool {
		_, ok := keep[k]
		return ok
	})
}

// include widens r to cover the row holding item i.
func include(r Range, i, cols, n int) Range {
	if r.Contains(i) {
		return r
	}
	cols = max(cols, 1)
	rowStart := (i / cols) * cols
	rowEnd := min(n-1, rowStart+cols-1)
	if r.Empty() {
		return Range{Start: rowStart, End: rowEnd}
	}
	return Range{Start: min(r.Start, rowStart), End: max(r.End, rowEnd)}
}
