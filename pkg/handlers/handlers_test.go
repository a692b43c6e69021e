package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"Tune-Preview-Go/pkg/db"
	"Tune-Preview-Go/pkg/music"
	"Tune-Preview-Go/pkg/search"
)

// fakeProvider returns canned results for the aggregator.
type fakeProvider struct{ tracks []music.Track }

func (f fakeProvider) SearchTracks(context.Context, string) ([]music.Track, error) {
	return f.tracks, nil
}

type fakeAlbums struct {
	albums []music.Album
	tracks []music.Track
}

func (f fakeAlbums) SearchAlbums(context.Context, string) ([]music.Album, error) {
	return f.albums, nil
}

func (f fakeAlbums) AlbumTracks(context.Context, string) ([]music.Track, error) {
	return f.tracks, nil
}

func quietLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func newApp(t *testing.T) *Application {
	t.Helper()
	logger := quietLogger()
	dz := fakeProvider{tracks: []music.Track{{ID: "1", Title: "Song", Artist: "Artist", PreviewURL: "https://p/1"}}}
	fa := fakeAlbums{
		albums: []music.Album{{ID: "10", Title: "Greatest", Artist: "Artist", ReleaseYear: "1999", TrackCount: 12}},
		tracks: []music.Track{{ID: "100", Title: "One", Artist: "Artist", PreviewURL: "https://p/100", CoverURL: "https://c/1.jpg"}},
	}
	database, err := db.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	return &Application{
		Search: search.New(dz, fakeProvider{}, fa, logger),
		DB:     database,
		Log:    logger,
	}
}

func TestSearchJSON(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/search?q=song", nil)
	rr := httptest.NewRecorder()
	app.SearchJSON(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	var tracks []music.Track
	if err := json.Unmarshal(rr.Body.Bytes(), &tracks); err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 || tracks[0].Title != "Song" {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestSearchJSONBlankQuery(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/search?q=%20%20", nil)
	rr := httptest.NewRecorder()
	app.SearchJSON(rr, req)
	if body := strings.TrimSpace(rr.Body.String()); body != "null" && body != "[]" {
		t.Fatalf("expected empty result, got %s", body)
	}
}

func TestAlbumsJSON(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/albums?q=greatest", nil)
	rr := httptest.NewRecorder()
	app.AlbumsJSON(rr, req)
	var albums []music.Album
	if err := json.Unmarshal(rr.Body.Bytes(), &albums); err != nil {
		t.Fatal(err)
	}
	if len(albums) != 1 || albums[0].ID != "10" {
		t.Fatalf("unexpected albums %+v", albums)
	}
}

func TestAlbumTracksJSONRequiresID(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/albums/tracks", nil)
	rr := httptest.NewRecorder()
	app.AlbumTracksJSON(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestAlbumDetailsJSON(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/albums/details?id=10&title=Greatest&artist=Artist", nil)
	rr := httptest.NewRecorder()
	app.AlbumDetailsJSON(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
	}
	var details music.AlbumDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &details); err != nil {
		t.Fatal(err)
	}
	if details.Title != "Greatest" || len(details.Tracks) != 1 {
		t.Fatalf("unexpected details %+v", details)
	}
}

// TestHistoryRoundTrip posts played tracks and verifies dedup and ordering
// through the persisted snapshot.
func TestHistoryRoundTrip(t *testing.T) {
	app := newApp(t)
	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/history", strings.NewReader(body))
		rr := httptest.NewRecorder()
		app.AddHistoryJSON(rr, req)
		return rr
	}
	if rr := post(`{"id":"1","title":"A","artist":"X"}`); rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
	}
	post(`{"id":"2","title":"B","artist":"X"}`)
	// Re-adding moves to front without duplicating.
	post(`{"id":"1","title":"A","artist":"X"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rr := httptest.NewRecorder()
	app.HistoryJSON(rr, req)
	var tracks []music.Track
	if err := json.Unmarshal(rr.Body.Bytes(), &tracks); err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 2 || tracks[0].ID != "1" || tracks[1].ID != "2" {
		t.Fatalf("unexpected history %+v", tracks)
	}
}

func TestAddHistoryJSONValidation(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/history", strings.NewReader(`{"title":"no id"}`))
	rr := httptest.NewRecorder()
	app.AddHistoryJSON(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rr = httptest.NewRecorder()
	app.AddHistoryJSON(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing security headers")
	}
}
