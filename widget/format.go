package widget

import (
	"fmt"
	"math"
	"strconv"

	"github.com/preroll-cli/preroll/util"
)

// Speeds are the selectable playback rates.
var Speeds = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

// Qualities are the selectable quality labels. Selecting one never re-sources the engine.
var Qualities = []string{"Auto", "1080p", "720p", "480p", "360p"}

// FormatTime renders seconds as M:SS with unbounded minutes. Negative or non-finite input renders 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}

	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// SpeedLabel renders a rate the way the speed menu shows it, e.g. 1.25x or 1x.
func SpeedLabel(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "x"
}

// ProgressPercent returns clamp(pos/dur, 0, 1) * 100. It reports false while the duration is unknown.
// A NaN position counts as the start.
func ProgressPercent(position, duration float64) (float64, bool) {
	if !util.Known(duration) {
		return 0, false
	}
	if math.IsNaN(position) {
		return 0, true
	}
	return util.Clamp(position/duration, 0, 1) * 100, true
}

// SeekOffset moves position by delta inside [0, duration]. An unknown duration only bounds from below.
func SeekOffset(position, duration, delta float64) float64 {
	target := math.Max(position+delta, 0)
	if util.Known(duration) {
		target = math.Min(target, duration)
	}
	return target
}

// ClampVolume confines a level to [0,1]; NaN is treated as silence.
func ClampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return util.Clamp(v, 0, 1)
}

// StepVolume adds delta to a level, clamps it and rounds to two decimals.
func StepVolume(v, delta float64) float64 {
	return math.Round(ClampVolume(v+delta)*100) / 100
}

// ToggleMute silences an audible level and restores full volume from silence.
func ToggleMute(v float64) float64 {
	if v > 0 {
		return 0
	}
	return 1
}
