package window

import "time"

// Transition is one observed change of range together with the geometry and
// scroll position it happened under.
type Transition struct {
	Prev     Range
	PrevGeom Metrics
	Next     Range
	NextGeom Metrics
	Scroll   ScrollState
}

// Guard watches range transitions for a list instance and trips when the
// window keeps snapping back to the top while the viewport stays far from it.
// A tripped guard stays tripped for the life of the instance.
type Guard struct {
	cfg      Config
	resets   []time.Time
	disabled bool
}

// NewGuard returns a guard using the reset constants of cfg.
func NewGuard(cfg Config) *Guard {
	return &Guard{cfg: cfg.normalize()}
}

// Observe records a transition at now. It returns true when this transition
// tripped the guard.
func (g *Guard) Observe(t Transition, now time.Time) bool {
	if g.disabled {
		return false
	}
	g.prune(now)
	if !g.isReset(t) {
		return false
	}
	g.resets = append(g.resets, now)
	if len(g.resets) >= g.cfg.ResetThreshold {
		g.disabled = true
		return true
	}
	return false
}

// isReset reports whether t moved the window from deep in the list back to
// its top while the viewport itself did not go there. The viewport position is
// judged with the geometry the previous range was computed with.
func (g *Guard) isReset(t Transition) bool {
	if t.Prev.Empty() || t.Next.Empty() {
		return false
	}
	prevGeom := t.PrevGeom.withDefaults(g.cfg)
	nextGeom := t.NextGeom.withDefaults(g.cfg)

	initialRows := ceilDiv(g.cfg.InitialWindow, prevGeom.Columns)
	if t.Prev.Start/prevGeom.Columns <= initialRows {
		return false
	}
	if t.Next.Start/nextGeom.Columns > g.cfg.NearTopRows {
		return false
	}
	listTop := t.Scroll.ScrollTop - prevGeom.ContainerOffset
	return listTop > initialRows*prevGeom.RowHeight
}

func (g *Guard) prune(now time.Time) {
	cutoff := now.Add(-g.cfg.ResetWindow)
	keep := g.resets[:0]
	for _, at := range g.resets {
		if at.After(cutoff) {
			keep = append(keep, at)
		}
	}
	g.resets = keep
}

// Disabled reports whether the guard has tripped.
func (g *Guard) Disabled() bool { return g.disabled }

// Resets returns the number of resets inside the current window.
func (g *Guard) Resets() int { return len(g.resets) }
