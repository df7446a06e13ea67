package tui

import (
	"sync"

	"github.com/preroll-cli/preroll/widget"
)

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

// surface hands every rendered view to the bubble. Only the latest undelivered view is kept.
type surface struct {
	listeners
	views chan widget.View
}

func (s *surface) Render(v widget.View) {
	for {
		select {
		case s.views <- v:
			return
		default:
		}

		select {
		case <-s.views:
		default:
		}
	}
}

// host is the terminal: a single surface under one mount.
type host struct {
	mount    string
	surface  *surface
	document listeners
	done     chan struct{}
	once     sync.Once
}

func newHost(mount string) *host {
	return &host{
		mount:   mount,
		surface: &surface{views: make(chan widget.View, 1)},
		done:    make(chan struct{}),
	}
}

func (h *host) Resolve(mount string) (widget.Surface, bool) {
	if mount != h.mount {
		return nil, false
	}
	return h.surface, true
}

func (h *host) Listen(fn func(widget.Input)) func() {
	return h.document.Listen(fn)
}

// dispatch routes keys and clicks to the document, everything else to the surface.
func (h *host) dispatch(in widget.Input) {
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

func (h *host) close() {
	h.once.Do(func() { close(h.done) })
}
