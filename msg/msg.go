// Package msg defines the tea.Msg types loader commands send back to the
// app. It imports only library so every UI package can use it.
package msg

import "github.com/miosa/tunes/library"

// -- Lifecycle --

// HealthResult from the library server health check.
type HealthResult struct {
	Status  string
	Version string
	Albums  int
	Err     error
}

// -- Loads --

// AlbumsPageLoaded carries one page of the album listing. Generation ties the
// page to the reload that requested it; stale pages are dropped.
type AlbumsPageLoaded struct {
	Page       library.Page[library.Album]
	Generation int
	Err        error
}

// TracksLoaded carries an album's track list. FocusTrack is the track number
// to scroll to once shown, or 0.
type TracksLoaded struct {
	Album      library.Album
	Tracks     []library.Track
	FocusTrack int
	Err        error
}

// LikedLoaded carries the liked albums.
type LikedLoaded struct {
	Albums []library.LikedAlbum
	Err    error
}

// GalleryLoaded carries the album art listing.
type GalleryLoaded struct {
	Images []library.Image
	Err    error
}

// -- Actions --

// LinkCopied reports the outcome of copying a share link.
type LinkCopied struct {
	Link string
	Err  error
}

// OpenLink asks the app to open a share link.
type OpenLink struct {
	Link string
}
