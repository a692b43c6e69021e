package playback

import (
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"Tune-Preview-Go/pkg/music"
)

// Media is the opaque audio capability the player drives. The concrete
// implementation is an HTML audio element or equivalent; its notifications
// arrive as calls into the player's Handle* methods.
type Media interface {
	SetSource(url string)
	Play() error
	Pause()
	Duration() float64
	CurrentTime() float64
	SetCurrentTime(seconds float64)
}

// Display receives plain-data updates the UI collaborator renders. The
// player never touches the DOM; this is the whole view boundary.
type Display interface {
	ShowNowPlaying(track music.Track)
	ShowPlaylist(tracks []music.Track, active int)
	ShowPlaying(playing bool)
	ShowProgress(elapsed, total string)
	Advise(msg string)
}

// History records played tracks. *RecentList satisfies it; production wiring
// decorates it with persistence.
type History interface {
	Add(track music.Track)
	List() []music.Track
}

// Player tracks the current playlist, active index and play/pause state, and
// issues commands to the media capability. All state is owned here; there
// are no package-level globals.
type Player struct {
	mu       sync.Mutex
	media    Media
	display  Display
	history  History
	log      *log.Logger
	playlist []music.Track
	index    int
	playing  bool
	loaded   bool
}

// NewPlayer wires a player to its collaborators. history may be nil, in
// which case an in-memory RecentList is used.
func NewPlayer(media Media, display Display, history History, logger *log.Logger) *Player {
	if history == nil {
		history = &RecentList{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Player{media: media, display: display, history: history, log: logger}
}

// SetPlaylist replaces the playlist wholesale and resets the active index.
// It never auto-plays; an in-flight track keeps playing until the caller
// loads something new.
func (p *Player) SetPlaylist(tracks []music.Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playlist = tracks
	p.index = 0
	p.loaded = false
	p.display.ShowPlaylist(tracks, 0)
}

// Load makes the track at index the current one. The index wraps modulo the
// playlist length in both directions, which is what makes next/previous
// cyclic. The loaded track is appended to the recently-played history.
func (p *Player) Load(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.load(index)
}

func (p *Player) load(index int) {
	if len(p.playlist) == 0 {
		return
	}
	n := len(p.playlist)
	p.index = ((index % n) + n) % n
	track := p.playlist[p.index]
	p.loaded = true
	p.media.SetSource(track.PreviewURL)
	p.display.ShowNowPlaying(track)
	p.display.ShowPlaylist(p.playlist, p.index)
	p.history.Add(track)
	p.log.WithFields(log.Fields{"track": track.ID, "title": track.Title}).Debug("loaded track")
}

// Play starts playback of the current track. Playing an empty playlist or a
// track without a preview is reported as an advisory, never a crash.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.play()
}

func (p *Player) play() {
	if len(p.playlist) == 0 {
		p.display.Advise("Select a song to play")
		return
	}
	track := p.playlist[p.index]
	if !track.Playable() {
		p.display.Advise("No preview available for this song")
		return
	}
	if !p.loaded {
		p.load(p.index)
	}
	if err := p.media.Play(); err != nil {
		p.log.WithError(err).Warn("media playback failed")
		p.display.Advise("Playback failed")
		return
	}
	p.playing = true
	p.display.ShowPlaying(true)
}

// Pause stops playback. Pausing while already paused is a no-op.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return
	}
	p.media.Pause()
	p.playing = false
	p.display.ShowPlaying(false)
}

// Toggle alternates between play and pause. If nothing has been loaded yet
// the current index is loaded first.
func (p *Player) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.playlist) == 0 {
		p.display.Advise("Select a song to play")
		return
	}
	if p.playing {
		p.media.Pause()
		p.playing = false
		p.display.ShowPlaying(false)
		return
	}
	if !p.loaded {
		p.load(p.index)
	}
	p.play()
}

// Next advances to the following track, wrapping at the end, and plays it.
func (p *Player) Next() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.playlist) == 0 {
		return
	}
	p.load(p.index + 1)
	p.play()
}

// Previous steps back one track, wrapping to the last entry from the first.
func (p *Player) Previous() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.playlist) == 0 {
		return
	}
	p.load(p.index - 1)
	p.play()
}

// HandleEnded is called by the media capability when the current preview
// finishes; it advances to the next track.
func (p *Player) HandleEnded() { p.Next() }

// HandleTimeUpdate pushes formatted elapsed/total times to the display.
func (p *Player) HandleTimeUpdate() {
	p.display.ShowProgress(music.FormatTime(p.media.CurrentTime()), music.FormatTime(p.media.Duration()))
}

// HandleMetadataLoaded refreshes the total duration once the media element
// knows it.
func (p *Player) HandleMetadataLoaded() {
	p.display.ShowProgress(music.FormatTime(p.media.CurrentTime()), music.FormatTime(p.media.Duration()))
}

// Seek sets the playback position to fraction (in [0,1]) of the reported
// duration. It is a no-op while the duration is unknown, e.g. before
// metadata has loaded.
func (p *Player) Seek(fraction float64) {
	d := p.media.Duration()
	if math.IsNaN(d) || d <= 0 {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	p.media.SetCurrentTime(fraction * d)
}

// PlayFromHistory replaces the playlist with a single recently-played track
// and starts it. It reports whether the ID was found.
func (p *Player) PlayFromHistory(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	var found music.Track
	ok := false
	for _, t := range p.history.List() {
		if t.ID == id {
			found, ok = t, true
			break
		}
	}
	if !ok {
		return false
	}
	p.playlist = []music.Track{found}
	p.index = 0
	p.loaded = false
	p.display.ShowPlaylist(p.playlist, 0)
	p.load(0)
	p.play()
	return true
}

// Current returns the active track, if any playlist is loaded.
func (p *Player) Current() (music.Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.playlist) == 0 {
		return music.Track{}, false
	}
	return p.playlist[p.index], true
}

// IsPlaying reports the play/pause state.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Index returns the active playlist position.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Recent exposes the recently-played history, most recent first.
func (p *Player) Recent() []music.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.history.List()
}
