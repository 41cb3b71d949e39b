package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func resetTransition(scrollTop int) Transition {
	geom := Metrics{RowHeight: 1, Columns: 1}
	return Transition{
		Prev:     Range{Start: 296, End: 323},
		PrevGeom: geom,
		Next:     Range{Start: 0, End: 23},
		NextGeom: geom,
		Scroll:   ScrollState{ScrollTop: scrollTop, ViewportHeight: 20},
	}
}

func TestGuard_TripsAfterRepeatedResets(t *testing.T) {
	t.Parallel()

	g := NewGuard(DefaultConfig())
	t0 := time.Unix(1_700_000_000, 0)

	assert.False(t, g.Observe(resetTransition(300), t0))
	assert.False(t, g.Observe(resetTransition(300), t0.Add(time.Second)))
	assert.Equal(t, 2, g.Resets())
	assert.True(t, g.Observe(resetTransition(300), t0.Add(2*time.Second)))
	assert.True(t, g.Disabled())

	assert.False(t, g.Observe(resetTransition(300), t0.Add(3*time.Second)), "trips once")
	assert.True(t, g.Disabled())
}

func TestGuard_ResetsOutsideWindowExpire(t *testing.T) {
	t.Parallel()

	g := NewGuard(DefaultConfig())
	t0 := time.Unix(1_700_000_000, 0)
	for i := range 6 {
		g.Observe(resetTransition(300), t0.Add(time.Duration(i)*3*time.Second))
	}
	assert.False(t, g.Disabled())
	assert.LessOrEqual(t, g.Resets(), 2)
}

func TestGuard_IgnoresGenuineMoves(t *testing.T) {
	t.Parallel()

	t0 := time.Unix(1_700_000_000, 0)
	geom := Metrics{RowHeight: 1, Columns: 1}

	tests := []struct {
		name string
		tr   Transition
	}{
		{
			name: "viewport really at top",
			tr:   resetTransition(0),
		},
		{
			name: "previous range already near top",
			tr: Transition{
				Prev: Range{Start: 10, End: 40}, PrevGeom: geom,
				Next: Range{Start: 0, End: 30}, NextGeom: geom,
				Scroll: ScrollState{ScrollTop: 300, ViewportHeight: 20},
			},
		},
		{
			name: "next range not at top",
			tr: Transition{
				Prev: Range{Start: 296, End: 323}, PrevGeom: geom,
				Next: Range{Start: 200, End: 240}, NextGeom: geom,
				Scroll: ScrollState{ScrollTop: 300, ViewportHeight: 20},
			},
		},
		{
			name: "empty ranges",
			tr:   Transition{Prev: EmptyRange(), Next: Range{Start: 0, End: 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewGuard(DefaultConfig())
			for i := range 5 {
				g.Observe(tt.tr, t0.Add(time.Duration(i)*time.Millisecond))
			}
			assert.False(t, g.Disabled())
			assert.Zero(t, g.Resets())
		})
	}
}

func TestGuard_GridRows(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ResetThreshold = 1
	g := NewGuard(cfg)
	geom := Metrics{RowHeight: 5, Columns: 4}

	// Row 50 of a 4-column grid, viewport at row 52.
	tr := Transition{
		Prev: Range{Start: 200, End: 259}, PrevGeom: geom,
		Next: Range{Start: 4, End: 63}, NextGeom: geom,
		Scroll: ScrollState{ScrollTop: 260, ViewportHeight: 30},
	}
	assert.True(t, g.Observe(tr, time.Now()), "start row 1 counts as near the top")
}
