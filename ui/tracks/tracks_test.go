package tracks

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/tunes/library"
	"github.com/miosa/tunes/ui/window"
)

var boxSet = library.Album{
	ID:     "al0150",
	Title:  "Harbor Lights (Complete Sessions)",
	Artist: "The Tidewater Trio",
	Year:   1972,
	Notes:  "Every take from the **harbor** sessions.",
}

func makeTracks(albumID string, n int) []library.Track {
	out := make([]library.Track, n)
	for i := range out {
		title := fmt.Sprintf("Take %d", i+1)
		if (i+1)%50 == 0 {
			title = fmt.Sprintf("Harbor Reprise %d", i+1)
		}
		out[i] = library.Track{AlbumID: albumID, No: i + 1, Title: title, Artist: "Trio", Seconds: 30}
	}
	return out
}

func newList(t *testing.T) *Model {
	t.Helper()
	m := New(window.DefaultConfig())
	t.Cleanup(m.Close)
	m.SetSize(100, 30)
	return m
}

func TestRowWidth(t *testing.T) {
	t.Parallel()

	tr := library.Track{AlbumID: "a", No: 3, Disc: 2, Title: "A Very Long Title That Will Not Fit Anywhere", Artist: "Someone", Seconds: 185, Liked: true}
	for _, w := range []int{40, 80, 120} {
		for _, sel := range []bool{false, true} {
			row := renderRow(item{Item: tr}, 0, window.ItemContext{Width: w, Selected: sel})
			assert.Equal(t, w, lipgloss.Width(row), "width %d", w)
			assert.Equal(t, 1, lipgloss.Height(row))
		}
	}
	row := ansi.Strip(renderRow(item{Item: tr}, 0, window.ItemContext{Width: 80}))
	assert.Contains(t, row, "2.03")
	assert.Contains(t, row, "3:05")
	assert.Contains(t, row, heart)
}

func TestHeader(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Header(library.Album{}, nil, 80))

	h := ansi.Strip(Header(boxSet, makeTracks(boxSet.ID, 3), 80))
	assert.Contains(t, h, "Harbor Lights (Complete Sessions)")
	assert.Contains(t, h, "The Tidewater Trio · 1972 · 3 tracks · 1m 30s")
	assert.Contains(t, h, "harbor")
	for _, l := range strings.Split(h, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(l), 80)
	}
}

func TestHeaderIsContainerOffset(t *testing.T) {
	t.Parallel()

	m := newList(t)
	m.Open(boxSet, 0)
	assert.True(t, m.Loading())
	m.SetTracks(boxSet.ID, makeTracks(boxSet.ID, 600), nil)

	require.True(t, m.List().Windowed())
	want := lipgloss.Height(Header(m.Album(), m.tracks, 99))
	assert.Equal(t, want, m.List().Metrics().ContainerOffset)
	assert.Equal(t, want+600, m.Snapshot().TotalLines)
	assert.Equal(t, 600, m.Album().TrackCount)
}

func TestFocusTrackOnLoad(t *testing.T) {
	t.Parallel()

	m := newList(t)
	m.Open(boxSet, 250)
	m.SetTracks(boxSet.ID, makeTracks(boxSet.ID, 600), nil)

	assert.Equal(t, 249, m.List().Cursor())
	assert.True(t, m.List().Range().Contains(249))
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 250, sel.No)

	m.Focus(10)
	assert.Equal(t, 9, m.List().Cursor())
	assert.Nil(t, m.Focus(9999))
}

func TestStaleTracksDropped(t *testing.T) {
	t.Parallel()

	m := newList(t)
	m.Open(boxSet, 0)
	assert.Nil(t, m.SetTracks("al0001", makeTracks("al0001", 10), nil))
	assert.True(t, m.Loading())
	assert.Zero(t, m.List().Len())
}

func TestLoadError(t *testing.T) {
	t.Parallel()

	m := newList(t)
	m.Open(boxSet, 0)
	m.SetTracks(boxSet.ID, nil, errors.New("server went away"))
	assert.False(t, m.Loading())
	assert.Contains(t, m.View(), "server went away")
}

func TestMarkLikedKeepsPlace(t *testing.T) {
	t.Parallel()

	m := newList(t)
	m.Open(boxSet, 0)
	tracks := makeTracks(boxSet.ID, 300)
	m.SetTracks(boxSet.ID, tracks, nil)
	m.List().MoveCursor(140)
	id := m.List().Identity()

	m.MarkLiked(tracks[140], true)
	assert.Equal(t, id, m.List().Identity())
	assert.Equal(t, 140, m.List().Cursor())
	sel, _ := m.Selected()
	assert.True(t, sel.Liked)

	assert.Nil(t, m.MarkLiked(library.Track{AlbumID: "other", No: 1}, true))
}

func TestFilterChangesIdentity(t *testing.T) {
	t.Parallel()

	m := newList(t)
	m.Open(boxSet, 0)
	m.SetTracks(boxSet.ID, makeTracks(boxSet.ID, 600), nil)
	before := m.List().Identity()

	m.Update(tea.KeyPressMsg{Code: '/', Text: "/"})
	require.True(t, m.Filtering())
	for _, r := range "reprise" {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	assert.Equal(t, 12, m.List().Len())
	assert.NotEqual(t, before, m.List().Identity())
	assert.Contains(t, m.List().Identity(), boxSet.ID)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 600, m.List().Len())
	assert.Equal(t, before, m.List().Identity())
}

func TestSetAlbumAfterLink(t *testing.T) {
	t.Parallel()

	m := newList(t)
	m.Open(library.Album{ID: boxSet.ID}, 3)
	assert.Contains(t, ansi.Strip(Header(m.Album(), nil, 80)), boxSet.ID, "ID stands in for the title")

	m.SetTracks(boxSet.ID, makeTracks(boxSet.ID, 5), nil)
	assert.Equal(t, 2, m.List().Cursor())

	assert.Nil(t, m.SetAlbum(library.Album{ID: "other", Title: "Other"}))
	m.SetAlbum(boxSet)
	assert.Equal(t, boxSet.Title, m.Album().Title)
	assert.Equal(t, 5, m.Album().TrackCount)
}
