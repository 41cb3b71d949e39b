package window

// State names the windowing mode of a list.
type State string

const (
	StateFull     State = "full"     // below threshold, everything rendered
	StateWindowed State = "windowed" // only the window is rendered
	StateDisabled State = "disabled" // guard tripped, everything rendered
)

// Snapshot is a point-in-time view of a controller for diagnostics.
type Snapshot struct {
	Name         string      `json:"name"`
	Layout       string      `json:"layout"`
	Identity     string      `json:"identity"`
	State        State       `json:"state"`
	Items        int         `json:"items"`
	Cursor       int         `json:"cursor"`
	Range        Range       `json:"range"`
	Rendered     int         `json:"rendered"`
	Metrics      Metrics     `json:"metrics"`
	Spacers      Spacers     `json:"spacers"`
	Scroll       ScrollState `json:"scroll"`
	TotalLines   int         `json:"total_lines"`
	Resets       int         `json:"resets"`
	FramePending bool        `json:"frame_pending"`
	CachedItems  int         `json:"cached_items"`
}

// Snapshot captures the controller's current state.
func (c *Controller[T]) Snapshot() Snapshot {
	s := Snapshot{
		Name:         c.name,
		Layout:       c.layout.String(),
		Identity:     c.identity,
		State:        StateFull,
		Items:        len(c.items),
		Cursor:       c.cursor,
		Range:        c.Range(),
		Rendered:     c.Range().Len(),
		Metrics:      c.metrics,
		Spacers:      c.Spacers(),
		Scroll:       c.scrollState(),
		TotalLines:   c.surface.TotalLines(),
		FramePending: c.sched.Pending(),
		CachedItems:  c.cache.len(),
	}
	if c.sess != nil {
		s.Resets = c.sess.guard.Resets()
		s.State = StateWindowed
		if c.sess.guard.Disabled() {
			s.State = StateDisabled
		}
	}
	return s
}
