package client

import "github.com/miosa/tunes/library"

// HealthResponse from GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Albums  int    `json:"albums"`
}

// AlbumsResponse from GET /api/albums.
type AlbumsResponse struct {
	Albums []library.Album `json:"albums"`
	Page   int             `json:"page"`
	Total  int             `json:"total"`
	Next   bool            `json:"next"`
}

// TracksResponse from GET /api/albums/{id}/tracks.
type TracksResponse struct {
	Tracks []library.Track `json:"tracks"`
}

// LikedResponse from GET /api/liked.
type LikedResponse struct {
	Albums []library.LikedAlbum `json:"albums"`
}

// GalleryResponse from GET /api/gallery.
type GalleryResponse struct {
	Images []library.Image `json:"images"`
}

// LikeRequest for PUT /api/albums/{id}/tracks/{no}/like.
type LikeRequest struct {
	Liked bool `json:"liked"`
}

// ErrorResponse for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
