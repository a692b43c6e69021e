// Package itunes implements song and album search using the public iTunes
// Search API. It requires no authentication. The zero value Client is ready
// for use; an http.Client with a reasonable timeout will be created when nil.
package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"Tune-Preview-Go/pkg/music"
)

const (
	searchURL = "https://itunes.apple.com/search"
	lookupURL = "https://itunes.apple.com/lookup"

	songLimit  = "20"
	albumLimit = "20"
)

// Client provides access to the iTunes Search API. HTTP may be nil in which
// case the first request allocates an http.Client with a 10 second timeout.
// The struct contains no other fields so the zero value is ready for use.
type Client struct {
	HTTP *http.Client
}

// Ensure interface compliance at compile time.
var _ music.TrackSearcher = (*Client)(nil)

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		// Lazily create the HTTP client with a sane timeout to avoid
		// leaking connections from default client usage.
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	return c.HTTP
}

// itunesItem mirrors the subset of the iTunes JSON result we care about. The
// same shape is returned by both the search and lookup endpoints.
type itunesItem struct {
	WrapperType    string `json:"wrapperType"`
	CollectionType string `json:"collectionType"`
	TrackID        int64  `json:"trackId"`
	CollectionID   int64  `json:"collectionId"`
	TrackName      string `json:"trackName"`
	ArtistName     string `json:"artistName"`
	CollectionName string `json:"collectionName"`
	TrackTimeMilli int64  `json:"trackTimeMillis"`
	TrackNumber    int    `json:"trackNumber"`
	ArtworkURL100  string `json:"artworkUrl100"`
	PreviewURL     string `json:"previewUrl"`
	TrackViewURL   string `json:"trackViewUrl"`
	CollectionView string `json:"collectionViewUrl"`
	ReleaseDate    string `json:"releaseDate"`
	TrackCount     int    `json:"trackCount"`
}

func (c *Client) get(ctx context.Context, rawURL string) ([]itunesItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("itunes: unexpected status %s", resp.Status)
	}
	var body struct {
		Results []itunesItem `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("itunes: decode response: %w", err)
	}
	return body.Results, nil
}

// SearchTracks queries the song search endpoint and normalizes the results.
// Entries missing a track name, artist name or preview URL are dropped: an
// iTunes result that cannot be played has no use in this application.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]music.Track, error) {
	params := url.Values{
		"term":   {query},
		"media":  {"music"},
		"entity": {"song"},
		"limit":  {songLimit},
	}
	items, err := c.get(ctx, searchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	tracks := make([]music.Track, 0, len(items))
	for _, item := range items {
		if item.TrackName == "" || item.ArtistName == "" || item.PreviewURL == "" {
			continue
		}
		tracks = append(tracks, normalizeTrack(item, 0))
	}
	return tracks, nil
}

// SearchAlbums queries the album search endpoint. Results are deduplicated by
// a case-insensitive (title, artist) key, keeping the first occurrence, and
// restricted to real albums (iTunes also returns compilations and EPs under
// other collection types).
func (c *Client) SearchAlbums(ctx context.Context, query string) ([]music.Album, error) {
	params := url.Values{
		"term":   {query},
		"media":  {"music"},
		"entity": {"album"},
		"limit":  {albumLimit},
	}
	items, err := c.get(ctx, searchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	albums := make([]music.Album, 0, len(items))
	for _, item := range items {
		if item.CollectionType != "Album" || item.CollectionName == "" {
			continue
		}
		key := strings.ToLower(item.CollectionName + "|" + item.ArtistName)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		albums = append(albums, music.Album{
			ID:          strconv.FormatInt(item.CollectionID, 10),
			Title:       item.CollectionName,
			Artist:      item.ArtistName,
			CoverURL:    music.UpgradeArtwork(item.ArtworkURL100),
			ReleaseYear: releaseYear(item.ReleaseDate),
			TrackCount:  item.TrackCount,
			ProviderURL: item.CollectionView,
		})
	}
	return albums, nil
}

// AlbumTracks looks up the songs belonging to a collection. The first element
// of the lookup response is the collection itself and is discarded. Tracks
// without a preview URL are dropped; track numbers default to the 1-based
// position when iTunes omits them.
func (c *Client) AlbumTracks(ctx context.Context, collectionID string) ([]music.Track, error) {
	params := url.Values{
		"id":     {collectionID},
		"entity": {"song"},
	}
	items, err := c.get(ctx, lookupURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	tracks := make([]music.Track, 0, len(items)-1)
	for i, item := range items[1:] {
		if item.PreviewURL == "" {
			continue
		}
		tracks = append(tracks, normalizeTrack(item, i+1))
	}
	return tracks, nil
}

// normalizeTrack maps an iTunes item into the canonical record. position is
// the 1-based fallback for the track number, or 0 for search results where a
// track number is meaningless.
func normalizeTrack(item itunesItem, position int) music.Track {
	t := music.Track{
		ID:              strconv.FormatInt(item.TrackID, 10),
		Title:           item.TrackName,
		Artist:          item.ArtistName,
		Album:           item.CollectionName,
		DurationSeconds: music.SecondsFromMillis(item.TrackTimeMilli),
		CoverURL:        music.UpgradeArtwork(item.ArtworkURL100),
		PreviewURL:      item.PreviewURL,
		ProviderURL:     item.TrackViewURL,
		TrackNumber:     item.TrackNumber,
	}
	if t.Title == "" {
		t.Title = music.UnknownTitle
	}
	if t.Artist == "" {
		t.Artist = music.UnknownArtist
	}
	if t.Album == "" {
		t.Album = music.UnknownAlbum
	}
	if t.TrackNumber == 0 {
		t.TrackNumber = position
	}
	return t
}

// releaseYear extracts the year from an RFC 3339 release date, or "N/A" when
// iTunes provides none.
func releaseYear(date string) string {
	if date == "" {
		return "N/A"
	}
	if i := strings.IndexByte(date, '-'); i > 0 {
		return date[:i]
	}
	return date
}
