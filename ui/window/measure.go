package window

import "charm.land/lipgloss/v2"

// Metrics is the geometry derived from rendered content.
type Metrics struct {
	// RowHeight is the height in lines of one row of items.
	RowHeight int `json:"row_height"`
	// Columns is the number of items per row. Always 1 for flat lists.
	Columns int `json:"columns"`
	// ContainerOffset is the number of lines between the top of the scroll
	// surface and the first row of the list.
	ContainerOffset int `json:"container_offset"`
}

func (m Metrics) withDefaults(cfg Config) Metrics {
	if m.RowHeight < 1 {
		m.RowHeight = max(cfg.DefaultRowHeight, 1)
	}
	if m.Columns < 1 {
		m.Columns = 1
	}
	if m.ContainerOffset < 0 {
		m.ContainerOffset = 0
	}
	return m
}

// Container describes the region a list is laid out in.
type Container struct {
	// Width in cells available to one row.
	Width int
	// Gap in cells between grid columns.
	Gap int
	// Offset is the number of lines above the list inside the surface.
	Offset int
}

// Measurer derives Metrics from a sample of rendered items, in list order
// starting at a row boundary. It reports false when the sample cannot be
// trusted, in which case the caller keeps its previous geometry.
type Measurer interface {
	Measure(c Container, sample []string) (Metrics, bool)
}

// TextMeasurer measures lipgloss-rendered blocks.
type TextMeasurer struct {
	// Grid flows the sample left to right to count columns. Flat lists always
	// have one column.
	Grid bool
	// MinRowHeight rejects rows shorter than this. A zero value means 1.
	MinRowHeight int
}

// Measure implements Measurer.
func (t TextMeasurer) Measure(c Container, sample []string) (Metrics, bool) {
	if len(sample) == 0 || c.Width <= 0 {
		return Metrics{}, false
	}

	cols := 1
	if t.Grid {
		cols = flowColumns(c, sample)
	}

	rh := 0
	for _, s := range sample[:min(cols, len(sample))] {
		rh = max(rh, lipgloss.Height(s))
	}
	if rh < max(t.MinRowHeight, 1) {
		return Metrics{}, false
	}

	return Metrics{
		RowHeight:       rh,
		Columns:         cols,
		ContainerOffset: max(c.Offset, 0),
	}, true
}

// flowColumns lays blocks out left to right the way the grid renderer joins
// them and counts how many land on the first row.
func flowColumns(c Container, sample []string) int {
	x, n := 0, 0
	for _, s := range sample {
		w := lipgloss.Width(s)
		if n > 0 {
			w += c.Gap
		}
		if n > 0 && x+w > c.Width {
			break
		}
		x += w
		n++
	}
	return max(n, 1)
}
