// Package scheduler runs one-shot timers on a clockz clock and hands their
// callbacks back to the host event loop.
package scheduler

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// Dispatch queues fn to run on the host event goroutine.
type Dispatch func(fn func())

// Scheduler implements pull.Scheduler on top of a clockz.Clock.
type Scheduler struct {
	clock    clockz.Clock
	dispatch Dispatch
}

// New creates a scheduler. A nil clock means clockz.RealClock.
func New(clock clockz.Clock, dispatch Dispatch) *Scheduler {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &Scheduler{clock: clock, dispatch: dispatch}
}

// AfterFunc waits d on the clock, then dispatches fn. The returned stop
// function must be called from the event goroutine; once it has returned fn
// will not run, even if its dispatch is already queued.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) func() {
	timer := s.clock.NewTimer(d)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			timer.Stop()
		})
	}

	go func() {
		select {
		case <-timer.C():
			s.dispatch(func() {
				select {
				case <-done:
					return
				default:
				}
				fn()
			})
		case <-done:
		}
	}()

	return stop
}
