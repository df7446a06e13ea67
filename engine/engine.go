// Package engine defines the media element the player drives and the backends that implement it.
// The primary backend targets 'mpv' via its JSON-IPC interface; Memory is an in-process simulation.
package engine

import (
	"fmt"
	"sync"
)

// Kind enumerates the notifications a media element emits.
type Kind int

const (
	PositionUpdated Kind = iota
	MetadataLoaded
	PlayStarted
	Paused
	Ended
	BufferingStarted
	BufferingResolved
	Playing
	SeekStarted
	SeekEnded
)

var kindNames = map[Kind]string{
	PositionUpdated:   "position-updated",
	MetadataLoaded:    "metadata-loaded",
	PlayStarted:       "play-started",
	Paused:            "paused",
	Ended:             "ended",
	BufferingStarted:  "buffering-started",
	BufferingResolved: "buffering-resolved",
	Playing:           "playing",
	SeekStarted:       "seek-started",
	SeekEnded:         "seek-ended",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a single notification. Position and Duration carry the element's values at emission time.
type Event struct {
	Kind     Kind
	Position float64
	Duration float64
}

// Element is one media element: a source that can be loaded, played, paused, sought and observed.
// Implementations must be safe for concurrent use; reads return the last observed values and never block.
type Element interface {
	// Load replaces the current source. Duration reports NaN until MetadataLoaded fires.
	Load(source string) error

	Play() error
	Pause() error

	// Position reports the current playback position in seconds.
	Position() float64

	// SetPosition seeks to an absolute position in seconds.
	SetPosition(seconds float64) error

	// Duration reports the total length in seconds, or NaN while unknown.
	Duration() float64

	// Volume reports the output level in [0,1].
	Volume() float64
	SetVolume(v float64) error

	SetPlaybackRate(rate float64) error

	// Subscribe registers a callback for every event. The returned function removes it.
	Subscribe(fn func(Event)) (unsubscribe func())

	// Close releases the element and all associated system resources.
	Close() error
}

// Fullscreener is implemented by elements whose presentation can toggle fullscreen.
type Fullscreener interface {
	ToggleFullscreen() error
}

// Visibility is implemented by elements that own a window which can be shown or hidden.
type Visibility interface {
	SetVisible(visible bool) error
}

// emitter fans events out to subscribers. Callbacks run outside the lock.
type emitter struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

func (e *emitter) subscribe(fn func(Event)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.subs == nil {
		e.subs = make(map[int]func(Event))
	}
	id := e.next
	e.next++
	e.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
		})
	}
}

func (e *emitter) emit(ev Event) {
	e.mu.Lock()
	fns := make([]func(Event), 0, len(e.subs))
	for id := 0; id < e.next; id++ {
		if fn, ok := e.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (e *emitter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs)
}
