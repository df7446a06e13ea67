package widget

import "sync"

// Subscriptions collects cancel functions owned by one player and runs them all on Release.
type Subscriptions struct {
	mu       sync.Mutex
	cancels  []func()
	released bool
}

// Add takes ownership of cancel. After Release it runs cancel immediately.
func (s *Subscriptions) Add(cancel func()) {
	if cancel == nil {
		return
	}

	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()
}

// Release cancels in reverse order of registration. Calling it again does nothing.
func (s *Subscriptions) Release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()

	for i := len(cancels) - 1; i >= 0; i-- {
		cancels[i]()
	}
}

func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cancels)
}
