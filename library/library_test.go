package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_Key(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "al0001/7", Track{AlbumID: "al0001", No: 7}.Key())
	assert.Empty(t, Track{No: 7}.Key())
	assert.Empty(t, Track{AlbumID: "al0001"}.Key())
}

func TestTrack_Length(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3:05", Track{Seconds: 185}.Length())
	assert.Equal(t, "0:09", Track{Seconds: 9}.Length())
	assert.Equal(t, "--:--", Track{}.Length())
}

func TestShareLink_RoundTrip(t *testing.T) {
	t.Parallel()

	tr := Track{AlbumID: "al 0042/x", No: 311}
	link := ShareLink(tr)
	assert.Equal(t, "tunes://track/al%200042%2Fx/311", link)

	id, no, err := ParseLink(link)
	require.NoError(t, err)
	assert.Equal(t, tr.AlbumID, id)
	assert.Equal(t, 311, no)
}

func TestParseLink_Rejects(t *testing.T) {
	t.Parallel()

	for _, link := range []string{
		"https://track/al0001/1",
		"tunes://album/al0001/1",
		"tunes://track/al0001",
		"tunes://track//3",
		"tunes://track/al0001/zero",
		"tunes://track/al0001/0",
		"tunes://track/al0001/1/2",
	} {
		_, _, err := ParseLink(link)
		assert.Error(t, err, link)
	}
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	tracks := []Track{{No: 1}, {No: 2}, {No: 5}}
	assert.Equal(t, 2, IndexOf(tracks, 5))
	assert.Equal(t, -1, IndexOf(tracks, 3))
}
