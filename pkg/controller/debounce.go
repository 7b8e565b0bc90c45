package controller

import "time"

// DefaultDelay is the quiet period after the last edit before the working
// draft is persisted.
const DefaultDelay = 500 * time.Millisecond

// Timer is a scheduled call that can be cancelled.
type Timer interface {
	// Stop prevents the call from running. It returns false if the call
	// already ran or was stopped.
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// pendingFlush is one scheduled autosave. The target id is fixed when the
// flush is scheduled.
type pendingFlush struct {
	id    string
	timer Timer
}
