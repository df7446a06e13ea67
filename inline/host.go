package inline

import (
	"sync"

	"github.com/preroll-cli/preroll/widget"
)

// listeners fans input out in registration order.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(widget.Input)
}

func (l *listeners) Listen(fn func(widget.Input)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[int]func(widget.Input))
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

func (l *listeners) send(in widget.Input) {
	l.mu.Lock()
	fns := make([]func(widget.Input), 0, len(l.fns))
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

type surface struct {
	listeners
	render func(widget.View)
}

func (s *surface) Render(v widget.View) {
	s.render(v)
}

// Host exposes a single surface under one mount and routes parsed input to it.
type Host struct {
	mount    string
	surface  *surface
	document listeners
}

// NewHost registers a surface under mount. Every view the player publishes is passed to render.
func NewHost(mount string, render func(widget.View)) *Host {
	return &Host{
		mount:   mount,
		surface: &surface{render: render},
	}
}

func (h *Host) Resolve(mount string) (widget.Surface, bool) {
	if mount != h.mount {
		return nil, false
	}
	return h.surface, true
}

func (h *Host) Listen(fn func(widget.Input)) func() {
	return h.document.Listen(fn)
}

// Dispatch delivers in the way a page would: keys and clicks at document level, everything else to the surface.
func (h *Host) Dispatch(in widget.Input) {
	switch in := in.(type) {
	case widget.KeyInput:
		h.document.send(in)
	case widget.PointerInput:
		if in.Kind == widget.PointerClick {
			h.document.send(in)
			return
		}
		h.surface.send(in)
	default:
		h.surface.send(in)
	}
}

// Listeners reports how many document and surface listeners are registered.
func (h *Host) Listeners() int {
	return h.document.count() + h.surface.count()
}
