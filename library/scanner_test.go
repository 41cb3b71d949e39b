package library

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// id3v1 returns a fake mp3 body ending in an ID3v1.1 tag.
func id3v1(title, artist, album, year string, track byte) []byte {
	field := func(s string, n int) []byte {
		b := make([]byte, n)
		copy(b, s)
		return b
	}
	data := make([]byte, 32)
	data = append(data, "TAG"...)
	data = append(data, field(title, 30)...)
	data = append(data, field(artist, 30)...)
	data = append(data, field(album, 30)...)
	data = append(data, field(year, 4)...)
	comment := field("", 30)
	comment[29] = track
	data = append(data, comment...)
	return append(data, 255)
}

func testScanner(fsys fstest.MapFS) *Scanner {
	return NewScanner(fsys, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestScanner_TaggedFiles(t *testing.T) {
	t.Parallel()

	s := testScanner(fstest.MapFS{
		"rips/b.mp3":     {Data: id3v1("Second", "Kite Theory", "Paper Maps", "2011", 2)},
		"rips/a.mp3":     {Data: id3v1("First", "Kite Theory", "Paper Maps", "2011", 1)},
		"rips/notes.txt": {Data: []byte("ignored")},
	})
	ctx := context.Background()

	page, err := s.AlbumsPage(ctx, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	a := page.Items[0]
	assert.Equal(t, "Paper Maps", a.Title)
	assert.Equal(t, "Kite Theory", a.Artist)
	assert.Equal(t, 2011, a.Year)
	assert.Equal(t, 2, a.TrackCount)
	assert.False(t, page.Next)

	tracks, err := s.Tracks(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "First", tracks[0].Title)
	assert.Equal(t, 1, tracks[0].No)
	assert.Equal(t, "rips/a.mp3", tracks[0].Path)
	assert.Equal(t, "Second", tracks[1].Title)
}

func TestScanner_FallsBackToPaths(t *testing.T) {
	t.Parallel()

	s := testScanner(fstest.MapFS{
		"Pale Atlas - Tides/02 - Undertow.flac": {Data: []byte("x")},
		"Pale Atlas - Tides/01 Low Water.flac":  {Data: []byte("x")},
		"Pale Atlas - Tides/cover.jpg":          {Data: []byte("jpg")},
		"loose/bonus.ogg":                       {Data: []byte("x")},
	})
	ctx := context.Background()

	page, err := s.AlbumsPage(ctx, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	tides := page.Items[0]
	assert.Equal(t, "Pale Atlas", tides.Artist)
	assert.Equal(t, "Tides", tides.Title)
	assert.Equal(t, "file://Pale Atlas - Tides/cover.jpg", tides.CoverURL)

	tracks, err := s.Tracks(ctx, tides.ID)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "Low Water", tracks[0].Title)
	assert.Equal(t, "Undertow", tracks[1].Title)
	assert.Equal(t, 2, tracks[1].No)

	loose := page.Items[1]
	assert.Equal(t, "Unknown Artist", loose.Artist)
	assert.Equal(t, "loose", loose.Title)
	assert.Empty(t, loose.CoverURL)

	gallery, err := s.Gallery(ctx)
	require.NoError(t, err)
	require.Len(t, gallery, 1)
	assert.Equal(t, tides.ID, gallery[0].AlbumID)
}

func TestScanner_Liked(t *testing.T) {
	t.Parallel()

	id := albumID("Pale Atlas", "Tides")
	s := testScanner(fstest.MapFS{
		"Pale Atlas - Tides/01 Low Water.flac": {Data: []byte("x")},
		"Pale Atlas - Tides/02 Undertow.flac":  {Data: []byte("x")},
		"Oskar Lind - Wires/01 Hum.mp3":        {Data: []byte("x")},
		LikedFile: {Data: []byte("# liked\n" + ShareLink(Track{AlbumID: id, No: 2}) + "\nnot a link\n")},
	})

	liked, err := s.Liked(context.Background())
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, id, liked[0].Album.ID)
	require.Len(t, liked[0].Tracks, 2)
	assert.False(t, liked[0].Tracks[0].Liked)
	assert.True(t, liked[0].Tracks[1].Liked)
}

func TestScanner_UnknownAlbum(t *testing.T) {
	t.Parallel()

	_, err := testScanner(fstest.MapFS{}).Tracks(context.Background(), "lb00000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSplitFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		no    int
		title string
	}{
		{"01 - Intro.mp3", 1, "Intro"},
		{"7_Seven.ogg", 7, "Seven"},
		{"Untitled.flac", 0, "Untitled"},
		{"1999.mp3", 0, "1999"},
	}
	for _, tt := range tests {
		no, title := splitFileName(tt.in)
		assert.Equal(t, tt.no, no, tt.in)
		assert.Equal(t, tt.title, title, tt.in)
	}
}
