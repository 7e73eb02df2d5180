// Package clock provides the timer service that drives mole spawns and
// timeouts.
package clock

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// Timer is a pending one-shot callback
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback has already fired or been stopped.
	Stop() bool
}

// Scheduler runs recurring and one-shot callbacks. Callbacks may be invoked
// from any goroutine; callers serialise their own state.
type Scheduler interface {
	// Every calls fn once per period until ctx is cancelled. The first call
	// happens one period after Every is invoked.
	Every(ctx context.Context, period time.Duration, fn func())
	// After calls fn once after delay
	After(delay time.Duration, fn func()) Timer
	// Now returns the scheduler's current time
	Now() time.Time
}

// Quartz adapts a quartz.Clock to the Scheduler interface
type Quartz struct {
	clock quartz.Clock
}

var _ Scheduler = (*Quartz)(nil)

// New wraps clock. Pass quartz.NewMock(t) in tests.
func New(clock quartz.Clock) *Quartz {
	return &Quartz{clock: clock}
}

// NewReal returns a scheduler backed by the wall clock
func NewReal() *Quartz {
	return New(quartz.NewReal())
}

// Every implements Scheduler
func (q *Quartz) Every(ctx context.Context, period time.Duration, fn func()) {
	q.clock.TickerFunc(ctx, period, func() error {
		fn()
		return nil
	})
}

// After implements Scheduler
func (q *Quartz) After(delay time.Duration, fn func()) Timer {
	return quartzTimer{timer: q.clock.AfterFunc(delay, fn)}
}

// quartzTimer narrows quartz's Stop(tags ...string) to Timer
type quartzTimer struct {
	timer *quartz.Timer
}

func (t quartzTimer) Stop() bool {
	return t.timer.Stop()
}

// Now implements Scheduler
func (q *Quartz) Now() time.Time {
	return q.clock.Now()
}
