package widget

import "sync"

// Queue runs posted functions one at a time, in posting order.
// Post reports false once the queue is stopped. Len counts tasks waiting to run.
type Queue interface {
	Post(fn func()) bool
	Len() int
	Stop()
}

// Loop drains its queue on a dedicated goroutine. Post never blocks, even from inside a running task.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	stopped bool
	wake    chan struct{}
	quit    chan struct{}
	done    chan struct{}
}

// NewLoop starts the draining goroutine.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Stop discards pending tasks. The task currently running, if any, completes.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.pending = nil
	close(l.quit)
}

// Done is closed once the goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) run() {
	defer close(l.done)

	for {
		select {
		case <-l.quit:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if l.stopped || len(l.pending) == 0 {
				l.mu.Unlock()
				break
			}
			fn := l.pending[0]
			l.pending[0] = nil
			l.pending = l.pending[1:]
			l.mu.Unlock()

			fn()
		}
	}
}

// InlineQueue runs tasks on the posting goroutine. A task posted while another runs is queued
// and drained before the outer Post returns, so handlers never interleave.
type InlineQueue struct {
	mu      sync.Mutex
	pending []func()
	running bool
	stopped bool
}

func NewInlineQueue() *InlineQueue {
	return &InlineQueue{}
}

func (q *InlineQueue) Post(fn func()) bool {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return false
	}
	q.pending = append(q.pending, fn)
	if q.running {
		q.mu.Unlock()
		return true
	}
	q.running = true

	for len(q.pending) > 0 && !q.stopped {
		next := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		next()

		q.mu.Lock()
	}

	q.running = false
	q.mu.Unlock()
	return true
}

func (q *InlineQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *InlineQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
	q.pending = nil
}
