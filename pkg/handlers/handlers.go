// Package handlers contains the HTTP handlers exposing the search and
// history layers as a JSON API. Handlers return plain data; rendering is the
// frontend's job.

package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"Tune-Preview-Go/pkg/db"
	"Tune-Preview-Go/pkg/search"
)

// Application bundles the dependencies used by the HTTP handlers.
type Application struct {
	Search *search.Aggregator
	DB     *db.DB
	Log    *log.Logger
}

// SearchJSON answers GET /api/search?q= with the aggregated track results.
// A blank query returns an empty list; provider failures have already been
// degraded to empty results by the aggregator, so this handler cannot fail
// except while encoding.
func (app *Application) SearchJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	tracks := app.Search.SearchTracks(r.Context(), q)
	respondJSON(w, app.Log, tracks)
}

// AlbumsJSON answers GET /api/albums?q= with deduplicated album results.
func (app *Application) AlbumsJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	albums := app.Search.SearchAlbums(r.Context(), q)
	respondJSON(w, app.Log, albums)
}

// AlbumTracksJSON answers GET /api/albums/tracks?id= with the playable
// tracks of a collection.
func (app *Application) AlbumTracksJSON(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondJSONError(w, http.StatusBadRequest, "id is required")
		return
	}
	respondJSON(w, app.Log, app.Search.AlbumTracks(r.Context(), id))
}

// AlbumDetailsJSON answers GET /api/albums/details?id=&title=&artist= with
// album metadata assembled from its track lookup. 404 when the album has no
// playable tracks.
func (app *Application) AlbumDetailsJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	if id == "" {
		respondJSONError(w, http.StatusBadRequest, "id is required")
		return
	}
	details := app.Search.AlbumDetails(r.Context(), id, q.Get("title"), q.Get("artist"))
	if details == nil {
		respondJSONError(w, http.StatusNotFound, "album not found")
		return
	}
	respondJSON(w, app.Log, details)
}
