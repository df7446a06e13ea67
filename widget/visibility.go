package widget

import (
	"sync"
	"time"
)

// visibility decides whether the controls are shown.
// The hide timer is armed only while canAutoHide holds, and every arm cancels the previous one.
type visibility struct {
	clock Clock
	delay time.Duration
	post  func(func()) bool

	mu           sync.Mutex
	visible      bool
	playing      bool
	interacting  bool
	settingsOpen bool
	timer        Timer
	generation   uint64
	stopped      bool
}

func newVisibility(clock Clock, delay time.Duration, post func(func()) bool) *visibility {
	return &visibility{
		clock:   clock,
		delay:   delay,
		post:    post,
		visible: true,
	}
}

func (v *visibility) canAutoHide() bool {
	return v.playing && !v.interacting && !v.settingsOpen
}

// Visible reports the current state.
func (v *visibility) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// Pending reports whether a hide timer is armed.
func (v *visibility) Pending() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.timer != nil
}

func (v *visibility) pointerOverPlayer() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.interacting = false
	v.showLocked()
}

func (v *visibility) pointerOverControls() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.interacting = true
	v.showLocked()
}

// pointerLeft hides at once while playing with the menu closed.
func (v *visibility) pointerLeft() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.interacting = false
	if v.playing && !v.settingsOpen {
		v.cancelLocked()
		v.visible = false
	}
}

func (v *visibility) setPlaying(playing bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = playing
	if playing {
		v.rearmLocked()
	} else {
		v.showLocked()
	}
}

func (v *visibility) setSettingsOpen(open bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.settingsOpen = open
	if open {
		v.showLocked()
	} else {
		v.rearmLocked()
	}
}

// stop cancels any pending timer and refuses to arm again.
func (v *visibility) stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cancelLocked()
	v.stopped = true
}

func (v *visibility) showLocked() {
	v.visible = true
	v.rearmLocked()
}

func (v *visibility) rearmLocked() {
	v.cancelLocked()
	if v.stopped || !v.canAutoHide() {
		return
	}

	generation := v.generation
	v.timer = v.clock.AfterFunc(v.delay, func() {
		v.post(func() { v.expire(generation) })
	})
}

func (v *visibility) cancelLocked() {
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	v.generation++
}

// expire runs on the queue. An expiry from a cancelled arm carries an old generation and is dropped.
func (v *visibility) expire(generation uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if generation != v.generation {
		return
	}
	v.timer = nil
	if v.canAutoHide() {
		v.visible = false
	}
}
