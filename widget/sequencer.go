package widget

import (
	"fmt"
	"math"

	"github.com/preroll-cli/preroll/util"
)

// Stage is the active presentation. Stages only move forward.
type Stage int

const (
	StageThumbnail Stage = iota
	StageAd
	StageMain
)

var stageNames = []string{"thumbnail", "ad", "main"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	for i, name := range stageNames {
		if name == string(text) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stage: %q", text)
}

// AdProgress is derived from the ad element's position on every update.
type AdProgress struct {
	Elapsed      float64 `json:"elapsed"`
	Remaining    float64 `json:"remaining"`
	SkipEligible bool    `json:"skip_eligible"`
}

// sequencer owns the stage and the skip policy of the ad slot.
type sequencer struct {
	stage     Stage
	skipAfter float64
	progress  AdProgress
}

func newSequencer(skipAfter float64) *sequencer {
	return &sequencer{skipAfter: skipAfter}
}

// start leaves the thumbnail, entering the ad when there is one and the main content otherwise.
// It reports false outside the thumbnail stage.
func (s *sequencer) start(hasAd bool) (Stage, bool) {
	if s.stage != StageThumbnail {
		return s.stage, false
	}

	if !hasAd {
		s.stage = StageMain
		return s.stage, true
	}

	s.stage = StageAd
	s.progress = AdProgress{SkipEligible: s.skipAfter <= 0}
	return s.stage, true
}

// advance moves from the ad to the main content. It is idempotent.
func (s *sequencer) advance() bool {
	if s.stage != StageAd {
		return false
	}
	s.stage = StageMain
	return true
}

// observe recomputes the ad progress. Eligibility latches: a backward seek never revokes it.
func (s *sequencer) observe(position, duration float64) AdProgress {
	if s.stage != StageAd {
		return s.progress
	}

	elapsed := math.Max(position, 0)
	if math.IsNaN(elapsed) {
		elapsed = 0
	}

	remaining := 0.0
	if util.Known(duration) {
		remaining = math.Max(duration-elapsed, 0)
	}

	s.progress = AdProgress{
		Elapsed:      elapsed,
		Remaining:    remaining,
		SkipEligible: s.progress.SkipEligible || elapsed >= s.skipAfter,
	}
	return s.progress
}

// countdown is the whole seconds left until the skip control appears.
func (s *sequencer) countdown() int {
	if s.progress.SkipEligible {
		return 0
	}
	return int(math.Max(math.Ceil(s.skipAfter-s.progress.Elapsed), 0))
}
