// Package deezer implements song search using the public Deezer API. The API
// does not send CORS headers, so requests are routed through a proxy that
// wraps the target URL as a query parameter. The proxy can be overridden for
// deployments running their own.
package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"Tune-Preview-Go/pkg/music"
)

const (
	apiURL       = "https://api.deezer.com/search"
	defaultProxy = "https://corsproxy.io/?"

	searchLimit = "30"
)

// Client talks to the Deezer search API. Proxy defaults to a public CORS
// proxy when empty. If HTTP is nil a client with a 5 second timeout is
// created on first use, so the zero value is ready for basic use.
type Client struct {
	Proxy string
	HTTP  *http.Client
}

// Ensure interface compliance at compile time.
var _ music.TrackSearcher = (*Client)(nil)

// SearchTracks queries Deezer and normalizes the results. Entries missing a
// title or artist are dropped, but a missing preview is tolerated: such
// tracks can still be displayed, just not played.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]music.Track, error) {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 5 * time.Second}
	}
	proxy := c.Proxy
	if proxy == "" {
		proxy = defaultProxy
	}
	params := url.Values{
		"q":     {query},
		"limit": {searchLimit},
	}
	target := apiURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, proxy+url.QueryEscape(target), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deezer: unexpected status %s", resp.Status)
	}
	var body struct {
		Data []struct {
			ID       int64  `json:"id"`
			Title    string `json:"title"`
			Duration int    `json:"duration"`
			Preview  string `json:"preview"`
			Link     string `json:"link"`
			Artist   struct {
				Name string `json:"name"`
			} `json:"artist"`
			Album struct {
				Title    string `json:"title"`
				CoverBig string `json:"cover_big"`
			} `json:"album"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("deezer: decode response: %w", err)
	}
	tracks := make([]music.Track, 0, len(body.Data))
	for _, item := range body.Data {
		if item.Title == "" || item.Artist.Name == "" {
			continue
		}
		t := music.Track{
			ID:              strconv.FormatInt(item.ID, 10),
			Title:           item.Title,
			Artist:          item.Artist.Name,
			Album:           item.Album.Title,
			DurationSeconds: item.Duration,
			CoverURL:        item.Album.CoverBig,
			PreviewURL:      item.Preview,
			ProviderURL:     item.Link,
		}
		if t.Album == "" {
			t.Album = music.UnknownAlbum
		}
		if t.CoverURL == "" {
			t.CoverURL = music.PlaceholderCover
		}
		if t.DurationSeconds < 0 {
			t.DurationSeconds = 0
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}
