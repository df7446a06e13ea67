package widget

import (
	"sync"
	"time"
)

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs every timer that came due, including ones armed along the way.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due *manualTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= c.now {
				due = t
				break
			}
		}
		if due == nil {
			c.mu.Unlock()
			return
		}
		due.fired = true
		c.mu.Unlock()

		due.fn()
	}
}

// Pending counts timers that have neither fired nor been stopped.
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// listeners is a minimal fan-out used by the fake host and surface.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Input)
}

func (l *listeners) Listen(fn func(Input)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(Input))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

func (l *listeners) send(in Input) {
	l.mu.Lock()
	fns := make([]func(Input), 0, len(l.fns))
	for id := 0; id < l.next; id++ {
		if fn, ok := l.fns[id]; ok {
			fns = append(fns, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(in)
	}
}

func (l *listeners) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

type fakeSurface struct {
	listeners
	renderMu sync.Mutex
	views    []View
}

func (s *fakeSurface) Render(v View) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	s.views = append(s.views, v)
}

func (s *fakeSurface) renders() int {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	return len(s.views)
}

type fakeHost struct {
	listeners
	surfaces map[string]*fakeSurface
}

func newFakeHost(mounts ...string) *fakeHost {
	h := &fakeHost{surfaces: make(map[string]*fakeSurface)}
	for _, m := range mounts {
		h.surfaces[m] = &fakeSurface{}
	}
	return h
}

func (h *fakeHost) Resolve(mount string) (Surface, bool) {
	s, ok := h.surfaces[mount]
	if !ok {
		return nil, false
	}
	return s, true
}
