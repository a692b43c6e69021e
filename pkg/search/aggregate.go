// This file implements the aggregation service which consults the cache and
// falls back between providers. Deezer is queried first because it has denser
// catalog coverage for non-English-language content; iTunes only runs when
// Deezer yields nothing.
package search

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"Tune-Preview-Go/pkg/deezer"
	"Tune-Preview-Go/pkg/itunes"
	"Tune-Preview-Go/pkg/music"
)

// AlbumSearcher is the album-capable subset of the iTunes client, split out
// so tests can substitute a fake.
type AlbumSearcher interface {
	SearchAlbums(ctx context.Context, query string) ([]music.Album, error)
	AlbumTracks(ctx context.Context, collectionID string) ([]music.Track, error)
}

// Aggregator orchestrates provider fallback and cache consultation. Provider
// errors never escape: they are logged, counted and degraded to empty
// results, which the fallback logic deliberately cannot distinguish from
// "provider had nothing".
type Aggregator struct {
	Deezer music.TrackSearcher
	ITunes music.TrackSearcher
	Albums AlbumSearcher
	Cache  *Cache
	Log    *log.Logger
}

// New builds an Aggregator wired to the real providers.
func New(deezer, it music.TrackSearcher, albums AlbumSearcher, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Aggregator{Deezer: deezer, ITunes: it, Albums: albums, Cache: NewCache(), Log: logger}
}

// NewDefault wires the real provider clients. corsProxy overrides the
// default public proxy the Deezer client routes through; pass "" to keep it.
func NewDefault(corsProxy string, logger *log.Logger) *Aggregator {
	ic := &itunes.Client{}
	return New(&deezer.Client{Proxy: corsProxy}, ic, ic, logger)
}

// absorb converts a provider error into an empty result while keeping the
// degradation visible in logs and metrics.
func (a *Aggregator) absorb(provider, query string, tracks []music.Track, err error) []music.Track {
	providerRequests.WithLabelValues(provider).Inc()
	if err != nil {
		providerFailures.WithLabelValues(provider).Inc()
		a.Log.WithFields(log.Fields{"provider": provider, "query": query}).WithError(err).Warn("provider search failed")
		return nil
	}
	return tracks
}

// SearchTracks resolves a query to tracks. Blank queries return nothing
// without touching the cache or the network. Cache hits are returned
// verbatim. Otherwise Deezer is tried, then iTunes, and the winning result
// is cached, even when empty, so an unmatched query does not repeat the
// double provider round-trip for the whole TTL window.
func (a *Aggregator) SearchTracks(ctx context.Context, query string) []music.Track {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if cached, ok := a.Cache.Lookup(query); ok {
		cacheHits.Inc()
		return cached
	}
	cacheMisses.Inc()

	tracks, err := a.Deezer.SearchTracks(ctx, query)
	tracks = a.absorb("deezer", query, tracks, err)
	if len(tracks) > 0 {
		a.Cache.Store(query, tracks)
		return tracks
	}

	tracks, err = a.ITunes.SearchTracks(ctx, query)
	tracks = a.absorb("itunes", query, tracks, err)
	a.Cache.Store(query, tracks)
	return tracks
}

// SearchAlbums searches iTunes for albums. Album results are not cached; the
// burst pattern the cache exists for is song search-as-you-type.
func (a *Aggregator) SearchAlbums(ctx context.Context, query string) []music.Album {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	albums, err := a.Albums.SearchAlbums(ctx, query)
	providerRequests.WithLabelValues("itunes").Inc()
	if err != nil {
		providerFailures.WithLabelValues("itunes").Inc()
		a.Log.WithFields(log.Fields{"provider": "itunes", "query": query}).WithError(err).Warn("album search failed")
		return nil
	}
	return albums
}

// AlbumTracks returns the playable tracks of a collection.
func (a *Aggregator) AlbumTracks(ctx context.Context, collectionID string) []music.Track {
	if collectionID == "" {
		return nil
	}
	tracks, err := a.Albums.AlbumTracks(ctx, collectionID)
	providerRequests.WithLabelValues("itunes").Inc()
	if err != nil {
		providerFailures.WithLabelValues("itunes").Inc()
		a.Log.WithFields(log.Fields{"provider": "itunes", "collection": collectionID}).WithError(err).Warn("album lookup failed")
		return nil
	}
	return tracks
}

// AlbumDetails assembles album metadata together with its track listing. The
// cover falls back to the first track's artwork when the caller has none.
// Nil is returned when the album has no playable tracks.
func (a *Aggregator) AlbumDetails(ctx context.Context, collectionID, title, artist string) *music.AlbumDetails {
	tracks := a.AlbumTracks(ctx, collectionID)
	if len(tracks) == 0 {
		return nil
	}
	cover := tracks[0].CoverURL
	if cover == "" {
		cover = music.PlaceholderCover
	}
	return &music.AlbumDetails{
		Album: music.Album{
			ID:          collectionID,
			Title:       title,
			Artist:      artist,
			CoverURL:    cover,
			ReleaseYear: "N/A",
			TrackCount:  len(tracks),
		},
		Tracks: tracks,
	}
}
