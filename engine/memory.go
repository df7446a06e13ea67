package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/preroll-cli/preroll/util"
)

// ErrClosed is returned by every command issued to a closed element.
var ErrClosed = errors.New("element closed")

// Memory is an in-process element that simulates playback without decoding anything.
// Time only moves through Advance, or through Run which drives Advance from a wall-clock ticker.
//
// A source may pin its length with a duration query parameter, e.g. "memory://ad?duration=15".
type Memory struct {
	emitter

	mu              sync.Mutex
	defaultDuration float64
	source          string
	duration        float64
	position        float64
	volume          float64
	rate            float64
	paused          bool
	ended           bool
	visible         bool
	fullscreen      bool
	closed          bool
}

// NewMemory creates a paused, empty element. Sources without an explicit duration last defaultDuration seconds.
func NewMemory(defaultDuration float64) *Memory {
	return &Memory{
		defaultDuration: defaultDuration,
		duration:        math.NaN(),
		volume:          1,
		rate:            1,
		paused:          true,
		visible:         true,
	}
}

func (m *Memory) Load(source string) error {
	if source == "" {
		return errors.New("empty source")
	}

	duration := m.defaultDuration
	if u, err := url.Parse(source); err == nil {
		if raw := u.Query().Get("duration"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", raw, err)
			}
			duration = parsed
		}
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.source = source
	m.duration = duration
	m.position = 0
	m.paused = true
	m.ended = false
	ev := m.eventLocked(MetadataLoaded)
	m.mu.Unlock()

	m.emit(ev)
	return nil
}

func (m *Memory) Play() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.source == "" {
		m.mu.Unlock()
		return errors.New("no source loaded")
	}
	if !m.paused {
		m.mu.Unlock()
		return nil
	}
	if m.ended {
		m.position = 0
		m.ended = false
	}
	m.paused = false
	started, playing := m.eventLocked(PlayStarted), m.eventLocked(Playing)
	m.mu.Unlock()

	m.emit(started)
	m.emit(playing)
	return nil
}

func (m *Memory) Pause() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.paused {
		m.mu.Unlock()
		return nil
	}
	m.paused = true
	ev := m.eventLocked(Paused)
	m.mu.Unlock()

	m.emit(ev)
	return nil
}

func (m *Memory) Position() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Memory) SetPosition(seconds float64) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if math.IsNaN(seconds) {
		m.mu.Unlock()
		return errors.New("position is NaN")
	}
	seconds = math.Max(seconds, 0)
	if util.Known(m.duration) {
		seconds = math.Min(seconds, m.duration)
	}
	m.position = seconds
	if util.Known(m.duration) && seconds < m.duration {
		m.ended = false
	}
	events := []Event{m.eventLocked(SeekStarted), m.eventLocked(PositionUpdated), m.eventLocked(SeekEnded)}
	m.mu.Unlock()

	for _, ev := range events {
		m.emit(ev)
	}
	return nil
}

func (m *Memory) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Memory) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// SetVolume rejects levels outside [0,1] the way a native media element does.
func (m *Memory) SetVolume(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("volume %v out of range [0,1]", v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.volume = v
	return nil
}

func (m *Memory) SetPlaybackRate(rate float64) error {
	if !util.Known(rate) {
		return fmt.Errorf("invalid playback rate %v", rate)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.rate = rate
	return nil
}

// PlaybackRate reports the current rate multiplier.
func (m *Memory) PlaybackRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

// Paused reports whether playback is suspended.
func (m *Memory) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Source reports the loaded source, or "" before the first Load.
func (m *Memory) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *Memory) Subscribe(fn func(Event)) func() {
	return m.subscribe(fn)
}

// Subscribers reports how many callbacks are registered.
func (m *Memory) Subscribers() int {
	return m.count()
}

func (m *Memory) ToggleFullscreen() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fullscreen = !m.fullscreen
	return nil
}

// Fullscreen reports the fullscreen toggle state.
func (m *Memory) Fullscreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fullscreen
}

func (m *Memory) SetVisible(visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = visible
	return nil
}

// Visible reports whether the element's presentation is shown.
func (m *Memory) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Advance moves a playing element forward by d scaled by the playback rate.
// Reaching the end emits Paused followed by Ended.
func (m *Memory) Advance(d time.Duration) {
	m.mu.Lock()
	if m.closed || m.paused || m.source == "" {
		m.mu.Unlock()
		return
	}

	m.position += d.Seconds() * m.rate
	events := make([]Event, 0, 3)
	if util.Known(m.duration) && m.position >= m.duration {
		m.position = m.duration
		m.paused = true
		m.ended = true
		events = append(events, m.eventLocked(PositionUpdated), m.eventLocked(Paused), m.eventLocked(Ended))
	} else {
		events = append(events, m.eventLocked(PositionUpdated))
	}
	m.mu.Unlock()

	for _, ev := range events {
		m.emit(ev)
	}
}

// Stall simulates the network starving the element; Resume reports it can play again.
func (m *Memory) Stall() {
	m.mu.Lock()
	ev := m.eventLocked(BufferingStarted)
	m.mu.Unlock()
	m.emit(ev)
}

func (m *Memory) Resume() {
	m.mu.Lock()
	ev := m.eventLocked(BufferingResolved)
	m.mu.Unlock()
	m.emit(ev)
}

// Run advances the element every interval until ctx is done or the element is closed.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.Lock()
			closed := m.closed
			m.mu.Unlock()
			if closed {
				return
			}
			m.Advance(interval)
		}
	}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.paused = true
	return nil
}

func (m *Memory) eventLocked(kind Kind) Event {
	return Event{Kind: kind, Position: m.position, Duration: m.duration}
}
