// Package convergence provides a bounded fixed-interval poller for waiting on
// external resources to reach a target state
package convergence

import (
	"context"
	"time"

	perr "sftpcycle/internal/platform/errors"
	"sftpcycle/internal/platform/logger"
)

// Spec describes one wait: how to observe the resource, when the wait is
// satisfied, and when the observed state makes waiting pointless
type Spec struct {
	// Name identifies the resource in errors and logs
	Name string

	// Fetch reads the current state; errors propagate to the caller as-is
	Fetch func(ctx context.Context) (string, error)

	// Ready reports whether the observed state satisfies the wait
	Ready func(state string) bool

	// Fatal reports whether the observed state can never become ready.
	// Optional; nil means no state is fatal
	Fatal func(state string) bool

	// Interval is the fixed pause between polls. The upstream APIs change
	// state tens of seconds apart, so there is no backoff
	Interval time.Duration

	// MaxWait bounds the whole wait from the first fetch, wall-clock
	MaxWait time.Duration
}

// Waiter runs Specs to completion. The zero value is not usable; call New
type Waiter struct {
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// New returns a Waiter with the real clock
func New() *Waiter {
	return &Waiter{
		log:   *logger.Named("convergence"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// WithClock overrides the clock, for tests
func (w *Waiter) WithClock(now func() time.Time, sleep func(time.Duration)) *Waiter {
	w.now = now
	w.sleep = sleep
	return w
}

// Wait polls s.Fetch until Ready, Fatal, ctx cancellation, or MaxWait elapses.
// Ready returns nil and performs no further fetches. Fatal returns a
// FatalState error carrying the offending state. Exhausting MaxWait returns a
// Timeout error naming the resource and the bound
func (w *Waiter) Wait(ctx context.Context, s Spec) error {
	start := w.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		state, err := s.Fetch(ctx)
		if err != nil {
			return err
		}
		if s.Fatal != nil && s.Fatal(state) {
			return perr.FatalStatef("%s reached fatal state %s", s.Name, state)
		}
		if s.Ready(state) {
			return nil
		}

		elapsed := w.now().Sub(start)
		if elapsed >= s.MaxWait {
			return perr.Timeoutf("%s did not converge within %s", s.Name, s.MaxWait)
		}
		w.log.Debug().
			Str("name", s.Name).
			Str("state", state).
			Dur("elapsed", elapsed).
			Msg("still waiting")
		w.sleep(s.Interval)
	}
}
