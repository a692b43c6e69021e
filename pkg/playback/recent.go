// Package playback owns the player state machine and the recently-played
// history it feeds. The audio element, the rendering surface and the
// persistence layer are collaborators injected through small interfaces so
// the state transitions stay testable without a browser or a database.
package playback

import "Tune-Preview-Go/pkg/music"

// RecentLimit caps the recently-played history.
const RecentLimit = 20

// RecentList keeps the most recently played tracks, newest first,
// deduplicated by track ID. Re-adding a known ID moves it to the front
// instead of duplicating it. The zero value is ready for use.
type RecentList struct {
	tracks []music.Track
}

// Add records t as the most recently played track.
func (r *RecentList) Add(t music.Track) {
	for i, existing := range r.tracks {
		if existing.ID == t.ID {
			r.tracks = append(r.tracks[:i], r.tracks[i+1:]...)
			break
		}
	}
	r.tracks = append([]music.Track{t}, r.tracks...)
	if len(r.tracks) > RecentLimit {
		r.tracks = r.tracks[:RecentLimit]
	}
}

// List returns a copy of the history, most recent first.
func (r *RecentList) List() []music.Track {
	out := make([]music.Track, len(r.tracks))
	copy(out, r.tracks)
	return out
}

// Find returns the entry with the given ID, if present.
func (r *RecentList) Find(id string) (music.Track, bool) {
	for _, t := range r.tracks {
		if t.ID == id {
			return t, true
		}
	}
	return music.Track{}, false
}

// Replace loads a previously persisted snapshot, applying the cap in case
// the stored data predates it.
func (r *RecentList) Replace(tracks []music.Track) {
	if len(tracks) > RecentLimit {
		tracks = tracks[:RecentLimit]
	}
	r.tracks = make([]music.Track, len(tracks))
	copy(r.tracks, tracks)
}

// Len reports the number of stored entries.
func (r *RecentList) Len() int { return len(r.tracks) }
