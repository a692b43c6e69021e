package playback

import (
	"fmt"
	"testing"

	"Tune-Preview-Go/pkg/music"
)

// TestRecentCap verifies adding a 21st distinct track evicts the oldest
// entry and the length stays at the cap.
func TestRecentCap(t *testing.T) {
	var r RecentList
	for i := 1; i <= RecentLimit+1; i++ {
		r.Add(music.Track{ID: fmt.Sprintf("%d", i)})
	}
	if r.Len() != RecentLimit {
		t.Fatalf("expected %d entries got %d", RecentLimit, r.Len())
	}
	list := r.List()
	if list[0].ID != "21" {
		t.Fatalf("newest entry should be first, got %s", list[0].ID)
	}
	if _, ok := r.Find("1"); ok {
		t.Fatal("oldest entry should have been evicted")
	}
}

// TestRecentDedup verifies re-adding a known ID moves it to the front
// without growing the list.
func TestRecentDedup(t *testing.T) {
	var r RecentList
	r.Add(music.Track{ID: "a"})
	r.Add(music.Track{ID: "b"})
	r.Add(music.Track{ID: "a"})
	if r.Len() != 2 {
		t.Fatalf("expected 2 entries got %d", r.Len())
	}
	if list := r.List(); list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("unexpected order %v", list)
	}
}

func TestRecentReplaceAppliesCap(t *testing.T) {
	var r RecentList
	oversized := make([]music.Track, RecentLimit+5)
	for i := range oversized {
		oversized[i] = music.Track{ID: fmt.Sprintf("%d", i)}
	}
	r.Replace(oversized)
	if r.Len() != RecentLimit {
		t.Fatalf("expected cap applied, got %d", r.Len())
	}
}

func TestRecentListCopies(t *testing.T) {
	var r RecentList
	r.Add(music.Track{ID: "a", Title: "T"})
	list := r.List()
	list[0].Title = "mutated"
	if got := r.List()[0].Title; got != "T" {
		t.Fatalf("internal state leaked: %q", got)
	}
}
