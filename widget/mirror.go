package widget

import (
	"github.com/preroll-cli/preroll/engine"
)

// mirror is the displayed state of the main element.
type mirror struct {
	progress   float64
	elapsed    string
	total      string
	paused     bool
	loading    bool
	volume     float64
	fullscreen bool
}

func newMirror(volume float64) *mirror {
	return &mirror{
		elapsed: FormatTime(0),
		total:   FormatTime(0),
		paused:  true,
		volume:  ClampVolume(volume),
	}
}

// position updates progress and elapsed time. Updates are dropped while the duration is unknown.
func (m *mirror) position(position, duration float64) {
	percent, ok := ProgressPercent(position, duration)
	if !ok {
		return
	}
	m.progress = percent
	m.elapsed = FormatTime(position)
}

func (m *mirror) metadata(duration float64) {
	m.total = FormatTime(duration)
}

// onMain applies a main element notification. It reports whether playback started or stopped,
// so the caller can drive the visibility controller.
func (m *mirror) onMain(ev engine.Event) (playing, changed bool) {
	switch ev.Kind {
	case engine.PositionUpdated:
		m.position(ev.Position, ev.Duration)
	case engine.MetadataLoaded:
		m.metadata(ev.Duration)
		m.position(ev.Position, ev.Duration)
	case engine.PlayStarted:
		m.paused = false
		return true, true
	case engine.Paused, engine.Ended:
		m.paused = true
		return false, true
	case engine.BufferingStarted, engine.SeekStarted:
		m.loading = true
	case engine.BufferingResolved, engine.Playing, engine.SeekEnded:
		m.loading = false
	}
	return false, false
}
