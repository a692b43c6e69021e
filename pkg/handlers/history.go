// This file implements the recently-played history endpoints. The list
// semantics (most recent first, dedup by ID, cap of twenty) live in
// playback.RecentList; the handlers only apply them and persist the result.

package handlers

import (
	"net/http"

	"Tune-Preview-Go/pkg/music"
	"Tune-Preview-Go/pkg/playback"
)

// HistoryJSON returns the persisted recently-played snapshot.
func (app *Application) HistoryJSON(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	tracks, err := app.DB.LoadRecentlyPlayed(r.Context())
	if err != nil {
		app.Log.WithError(err).Error("load recently played")
		respondJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	respondJSON(w, app.Log, tracks)
}

// AddHistoryJSON records a played track. The body is a Track snapshot;
// title and artist must have been resolved (placeholders count) before the
// track ever reached playback, so only the ID is validated here.
func (app *Application) AddHistoryJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	var track music.Track
	if err := decodeJSON(r, &track); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if track.ID == "" {
		respondJSONError(w, http.StatusBadRequest, "id is required")
		return
	}
	stored, err := app.DB.LoadRecentlyPlayed(r.Context())
	if err != nil {
		app.Log.WithError(err).Error("load recently played")
		respondJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	var list playback.RecentList
	list.Replace(stored)
	list.Add(track)
	if err := app.DB.SaveRecentlyPlayed(r.Context(), list.List()); err != nil {
		app.Log.WithError(err).Error("save recently played")
		respondJSONError(w, http.StatusInternalServerError, "failed to save history")
		return
	}
	w.WriteHeader(http.StatusCreated)
}
