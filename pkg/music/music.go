// Package music defines the canonical data structures shared by the rest of
// the application. Provider packages normalize their heterogeneous API
// responses into these records so the search, playback and persistence layers
// can remain agnostic about which catalog a track came from.
package music

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Placeholder display values substituted when a provider omits a field.
const (
	UnknownTitle  = "Unknown Song"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// PlaceholderCover is a small inline SVG shown when a provider supplies no
// artwork. Keeping it as a data URI avoids shipping a static asset.
const PlaceholderCover = "data:image/svg+xml,%3Csvg xmlns=%22http://www.w3.org/2000/svg%22 viewBox=%220 0 300 300%22%3E%3Crect fill=%22%23333%22 width=%22300%22 height=%22300%22/%3E%3C/svg%3E"

// Track is the canonical song record. IDs are provider-assigned and kept as
// strings so numeric Deezer IDs and iTunes track IDs share one type. A Track
// with an empty PreviewURL can be displayed but not played.
type Track struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Album           string `json:"album"`
	DurationSeconds int    `json:"duration"`
	CoverURL        string `json:"cover"`
	PreviewURL      string `json:"url,omitempty"`
	ProviderURL     string `json:"providerUrl,omitempty"`
	TrackNumber     int    `json:"trackNumber,omitempty"`
}

// Playable reports whether the track carries a preview clip.
func (t Track) Playable() bool { return t.PreviewURL != "" }

// Album is an album search result. ReleaseYear is a display string because
// iTunes sometimes omits the release date entirely.
type Album struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	CoverURL    string `json:"cover"`
	ReleaseYear string `json:"releaseYear"`
	TrackCount  int    `json:"totalTracks"`
	ProviderURL string `json:"providerUrl,omitempty"`
}

// AlbumDetails combines album metadata with its track listing.
type AlbumDetails struct {
	Album
	Tracks []Track `json:"tracks"`
}

// TrackSearcher is implemented by provider clients that can search for songs.
// Implementations return an error on any failure; absorbing that error into
// an empty result is the aggregator's job, not the client's.
type TrackSearcher interface {
	SearchTracks(ctx context.Context, query string) ([]Track, error)
}

// UpgradeArtwork rewrites the low-resolution thumbnail URL pattern used by
// iTunes to its larger variant. An empty URL maps to the placeholder image.
func UpgradeArtwork(url string) string {
	if url == "" {
		return PlaceholderCover
	}
	return strings.Replace(url, "100x100", "300x300", 1)
}

// SecondsFromMillis converts a millisecond duration to whole seconds,
// flooring and clamping negatives to zero.
func SecondsFromMillis(ms int64) int {
	if ms <= 0 {
		return 0
	}
	return int(ms / 1000)
}

// FormatTime renders a duration in seconds as M:SS. Minutes are unpadded,
// seconds are zero-padded. NaN and negative values render as "0:00" so an
// audio element with unloaded metadata displays sanely.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
