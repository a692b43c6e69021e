package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"

	"Tune-Preview-Go/pkg/db"
	"Tune-Preview-Go/pkg/handlers"
	"Tune-Preview-Go/pkg/music"
	"Tune-Preview-Go/pkg/search"
)

// fakeProvider stands in for the real provider clients so the endpoints can
// be exercised without network access.
type fakeProvider struct{ tracks []music.Track }

func (f fakeProvider) SearchTracks(context.Context, string) ([]music.Track, error) {
	return f.tracks, nil
}

type fakeAlbums struct{}

func (fakeAlbums) SearchAlbums(context.Context, string) ([]music.Album, error) {
	return []music.Album{{ID: "10", Title: "Greatest", Artist: "Artist"}}, nil
}

func (fakeAlbums) AlbumTracks(context.Context, string) ([]music.Track, error) {
	return nil, nil
}

// newServer creates an HTTP server with all routes registered using
// in-memory dependencies.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)
	dz := fakeProvider{tracks: []music.Track{{ID: "1", Title: "Song", Artist: "Artist", PreviewURL: "https://p/1"}}}
	database, err := db.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	app := &handlers.Application{
		Search: search.New(dz, fakeProvider{}, fakeAlbums{}, logger),
		DB:     database,
		Log:    logger,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", app.SearchJSON)
	mux.HandleFunc("/api/albums", app.AlbumsJSON)
	mux.HandleFunc("/api/history", app.HistoryJSON)
	srv := httptest.NewServer(handlers.SecurityHeaders(mux))
	t.Cleanup(srv.Close)
	return srv
}

func TestEnvDefault(t *testing.T) {
	os.Unsetenv("TUNEPREVIEW_TEST_KEY")
	if got := envDefault("TUNEPREVIEW_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback got %q", got)
	}
	t.Setenv("TUNEPREVIEW_TEST_KEY", "set")
	if got := envDefault("TUNEPREVIEW_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("expected set got %q", got)
	}
}

// TestSearchEndpoint exercises the search route end to end, including the
// security header middleware.
func TestSearchEndpoint(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/api/search?q=song")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Frame-Options") != "DENY" {
		t.Error("security headers not applied")
	}
	var tracks []music.Track
	if err := json.NewDecoder(resp.Body).Decode(&tracks); err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 || tracks[0].Title != "Song" {
		t.Fatalf("unexpected tracks %+v", tracks)
	}
}

func TestHistoryEndpointEmpty(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/api/history")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var tracks []music.Track
	if err := json.Unmarshal(body, &tracks); err != nil {
		t.Fatalf("bad body %s: %v", body, err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected empty history got %+v", tracks)
	}
}
