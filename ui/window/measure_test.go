package window

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// block returns a w x h rectangle of the given rune.
func block(w, h int, r rune) string {
	line := strings.Repeat(string(r), w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func TestTextMeasurer_Flat(t *testing.T) {
	t.Parallel()

	m, ok := TextMeasurer{}.Measure(Container{Width: 80, Offset: 2}, []string{"a\nb\nc", "x"})
	assert.True(t, ok)
	assert.Equal(t, Metrics{RowHeight: 3, Columns: 1, ContainerOffset: 2}, m)
}

func TestTextMeasurer_GridColumns(t *testing.T) {
	t.Parallel()

	sample := make([]string, 8)
	for i := range sample {
		sample[i] = block(10, 4, 'x')
	}

	tests := []struct {
		name     string
		width    int
		gap      int
		expected int
	}{
		{"exact fit", 46, 2, 4},
		{"one short", 45, 2, 3},
		{"no gap", 40, 0, 4},
		{"narrower than a tile", 6, 2, 1},
		{"wider than sample", 500, 1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, ok := TextMeasurer{Grid: true}.Measure(Container{Width: tt.width, Gap: tt.gap}, sample)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, m.Columns)
			assert.Equal(t, 4, m.RowHeight)
		})
	}
}

func TestTextMeasurer_RowHeightIsTallestInFirstRow(t *testing.T) {
	t.Parallel()

	sample := []string{block(10, 2, 'a'), block(10, 5, 'b'), block(10, 9, 'c')}
	m, ok := TextMeasurer{Grid: true}.Measure(Container{Width: 21, Gap: 1}, sample)
	assert.True(t, ok)
	assert.Equal(t, 2, m.Columns)
	assert.Equal(t, 5, m.RowHeight, "third tile wraps to the next row and is ignored")
}

func TestTextMeasurer_Rejects(t *testing.T) {
	t.Parallel()

	_, ok := TextMeasurer{}.Measure(Container{Width: 80}, nil)
	assert.False(t, ok, "empty sample")

	_, ok = TextMeasurer{}.Measure(Container{Width: 0}, []string{"a"})
	assert.False(t, ok, "zero width")

	_, ok = TextMeasurer{MinRowHeight: 3}.Measure(Container{Width: 80}, []string{"a\nb"})
	assert.False(t, ok, "shorter than the minimum")
}
