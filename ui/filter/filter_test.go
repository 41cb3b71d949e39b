package filter

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(s string) string { return s }

func TestApply_EmptyQueryKeepsOrder(t *testing.T) {
	t.Parallel()

	items := []string{"b", "a", "c"}
	got := Apply(items, "  ", identity)
	assert.Equal(t, items, Items(got))
	assert.Equal(t, 1, got[1].Index)
}

func TestApply_AllTermsMustMatch(t *testing.T) {
	t.Parallel()

	items := []string{"Silent Harbor", "Golden Harbor", "Silent Rivers"}
	got := Apply(items, "silent harbor", identity)
	require.Len(t, got, 1)
	assert.Equal(t, "Silent Harbor", got[0].Item)
	assert.Equal(t, 0, got[0].Index)
}

func TestApply_Ranking(t *testing.T) {
	t.Parallel()

	items := []string{
		"The Paper Machines",
		"Paper",
		"Newspaper Ghosts",
	}
	got := Items(Apply(items, "paper", identity))
	assert.Equal(t, []string{"Paper", "The Paper Machines", "Newspaper Ghosts"}, got)
}

func TestApply_StableOnTies(t *testing.T) {
	t.Parallel()

	items := []string{"xa1", "xa2", "xa3"}
	got := Apply(items, "a", identity)
	assert.Equal(t, items, Items(got))
}

func TestApply_Positions(t *testing.T) {
	t.Parallel()

	got := Apply([]string{"Café Nights"}, "NIGHT é", identity)
	require.Len(t, got, 1)
	assert.Equal(t, []int{3, 5, 6, 7, 8, 9}, got[0].Runes)
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	hit := lipgloss.NewStyle().Bold(true)
	out := Highlight("Harbor", []int{0, 1}, hit, lipgloss.NewStyle())
	assert.Equal(t, "Harbor", ansi.Strip(out))
	assert.Equal(t, "Harbor", ansi.Strip(Highlight("Harbor", nil, hit, lipgloss.NewStyle())))
}

func TestWithin(t *testing.T) {
	// "abc def": term "c d" hits runes 2,3,4.
	pos := []int{2, 3, 4}
	assert.Equal(t, []int{2}, Within(pos, 0, 3))
	assert.Equal(t, []int{0}, Within(pos, 4, 3))
	assert.Nil(t, Within(pos, 7, 3))
}
