// Package library defines the music catalogue the browser lists and the
// sources that supply it. It has no upstream imports so every other package
// can depend on it.
package library

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is returned when an album or track does not exist.
var ErrNotFound = errors.New("library: not found")

// Album is one release in the catalogue.
type Album struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Year       int    `json:"year,omitempty"`
	Genre      string `json:"genre,omitempty"`
	TrackCount int    `json:"track_count"`
	// Notes is a short markdown liner note.
	Notes    string `json:"notes,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
}

// Key identifies the album in lists.
func (a Album) Key() string { return a.ID }

// Track is one song on an album.
type Track struct {
	AlbumID string `json:"album_id"`
	No      int    `json:"no"`
	Disc    int    `json:"disc,omitempty"`
	Title   string `json:"title"`
	Artist  string `json:"artist,omitempty"`
	Seconds int    `json:"seconds,omitempty"`
	Liked   bool   `json:"liked,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Key identifies the track in lists. It is empty when the track has no
// album or number, in which case lists fall back to the track's index.
func (t Track) Key() string {
	if t.AlbumID == "" || t.No <= 0 {
		return ""
	}
	return t.AlbumID + "/" + strconv.Itoa(t.No)
}

// Length formats the track duration as m:ss.
func (t Track) Length() string {
	if t.Seconds <= 0 {
		return "--:--"
	}
	return fmt.Sprintf("%d:%02d", t.Seconds/60, t.Seconds%60)
}

// Image is a piece of album art.
type Image struct {
	URL     string `json:"url"`
	AlbumID string `json:"album_id,omitempty"`
	Title   string `json:"title,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// Key identifies the image in lists.
func (i Image) Key() string { return i.URL }

// LikedAlbum is an album the listener liked, with the tracks shown when it
// is expanded.
type LikedAlbum struct {
	Album  Album   `json:"album"`
	Tracks []Track `json:"tracks"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items []T  `json:"items"`
	Page  int  `json:"page"`
	Total int  `json:"total"`
	Next  bool `json:"next"`
}

// Source supplies the catalogue. Implementations must be safe to call from
// the goroutines bubbletea runs commands on.
type Source interface {
	Name() string
	AlbumsPage(ctx context.Context, page int) (Page[Album], error)
	Tracks(ctx context.Context, albumID string) ([]Track, error)
	Liked(ctx context.Context) ([]LikedAlbum, error)
	Gallery(ctx context.Context) ([]Image, error)
}

// Liker is implemented by sources that can record likes.
type Liker interface {
	SetLiked(ctx context.Context, t Track, liked bool) error
}
