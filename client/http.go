package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/miosa/tunes/library"
)

// Client talks to a library server. It implements library.Source.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.Token = token
}

func (c *Client) Name() string {
	if u, err := url.Parse(c.BaseURL); err == nil && u.Host != "" {
		return u.Host
	}
	return c.BaseURL
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.getJSON(ctx, "/health", &health); err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	return &health, nil
}

func (c *Client) AlbumsPage(ctx context.Context, page int) (library.Page[library.Album], error) {
	var result AlbumsResponse
	if err := c.getJSON(ctx, "/api/albums?page="+strconv.Itoa(page), &result); err != nil {
		return library.Page[library.Album]{}, fmt.Errorf("albums page %d: %w", page, err)
	}
	return library.Page[library.Album]{
		Items: result.Albums,
		Page:  result.Page,
		Total: result.Total,
		Next:  result.Next,
	}, nil
}

func (c *Client) Tracks(ctx context.Context, albumID string) ([]library.Track, error) {
	var result TracksResponse
	if err := c.getJSON(ctx, "/api/albums/"+url.PathEscape(albumID)+"/tracks", &result); err != nil {
		return nil, fmt.Errorf("tracks of %q: %w", albumID, err)
	}
	return result.Tracks, nil
}

func (c *Client) Liked(ctx context.Context) ([]library.LikedAlbum, error) {
	var result LikedResponse
	if err := c.getJSON(ctx, "/api/liked", &result); err != nil {
		return nil, fmt.Errorf("liked: %w", err)
	}
	return result.Albums, nil
}

func (c *Client) Gallery(ctx context.Context) ([]library.Image, error) {
	var result GalleryResponse
	if err := c.getJSON(ctx, "/api/gallery", &result); err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	return result.Images, nil
}

// SetLiked marks a track liked or not.
func (c *Client) SetLiked(ctx context.Context, t library.Track, liked bool) error {
	path := "/api/albums/" + url.PathEscape(t.AlbumID) + "/tracks/" + strconv.Itoa(t.No) + "/like"
	resp, err := c.putJSON(ctx, path, LikeRequest{Liked: liked})
	if err != nil {
		return fmt.Errorf("like %s: %w", t.Key(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("like %s: %w", t.Key(), c.parseError(resp))
	}
	return nil
}

// -- HTTP helpers -------------------------------------------------------------

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	return c.HTTPClient.Do(req)
}

func (c *Client) putJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

// parseError turns a non-2xx response into an error. A 404 wraps
// library.ErrNotFound.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := strings.TrimSpace(string(body))
	var apiErr ErrorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		msg = apiErr.Error
		if apiErr.Details != "" {
			msg += ": " + apiErr.Details
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("API %d: %s: %w", resp.StatusCode, msg, library.ErrNotFound)
	}
	return fmt.Errorf("API %d: %s", resp.StatusCode, msg)
}
