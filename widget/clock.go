package widget

import "time"

// Timer is a pending single-shot action.
type Timer interface {
	// Stop cancels the action and reports whether it was still pending.
	Stop() bool
}

// Clock schedules deferred actions. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// SystemClock schedules on the runtime timer.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
