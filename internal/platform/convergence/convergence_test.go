package convergence

import (
	"context"
	"testing"
	"time"

	perr "sftpcycle/internal/platform/errors"
)

// fakeClock advances only when the waiter sleeps
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time        { return c.t }
func (c *fakeClock) Sleep(d time.Duration) { c.t = c.t.Add(d) }

func newTestWaiter() (*Waiter, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1700000000, 0)}
	return New().WithClock(clk.Now, clk.Sleep), clk
}

// script returns a Fetch that replays states in order, counting calls
func script(states []string, calls *int) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		i := *calls
		*calls++
		if i >= len(states) {
			i = len(states) - 1
		}
		return states[i], nil
	}
}

func TestWaitReadyStopsFetching(t *testing.T) {
	w, _ := newTestWaiter()
	calls := 0
	err := w.Wait(context.Background(), Spec{
		Name:     "srv",
		Fetch:    script([]string{"STARTING", "STARTING", "ONLINE"}, &calls),
		Ready:    func(s string) bool { return s == "ONLINE" },
		Fatal:    func(s string) bool { return s == "START_FAILED" },
		Interval: 10 * time.Second,
		MaxWait:  5 * time.Minute,
	})
	if err != nil {
		t.Fatalf("Wait = %v, want nil", err)
	}
	if calls != 3 {
		t.Fatalf("fetch calls = %d, want 3 (no fetches past ready)", calls)
	}
}

func TestWaitFatalFailsImmediately(t *testing.T) {
	w, clk := newTestWaiter()
	start := clk.Now()
	calls := 0
	err := w.Wait(context.Background(), Spec{
		Name:     "srv",
		Fetch:    script([]string{"STARTING", "START_FAILED", "ONLINE"}, &calls),
		Ready:    func(s string) bool { return s == "ONLINE" },
		Fatal:    func(s string) bool { return s == "START_FAILED" },
		Interval: 10 * time.Second,
		MaxWait:  5 * time.Minute,
	})
	if !perr.IsCode(err, perr.ErrorCodeFatalState) {
		t.Fatalf("Wait = %v, want fatal state error", err)
	}
	if got := err.Error(); got != "srv reached fatal state START_FAILED" {
		t.Fatalf("error = %q", got)
	}
	// one interval elapsed, not the remaining deadline
	if waited := clk.Now().Sub(start); waited != 10*time.Second {
		t.Fatalf("waited %v before fatal, want 10s", waited)
	}
}

func TestWaitTimesOut(t *testing.T) {
	w, _ := newTestWaiter()
	calls := 0
	err := w.Wait(context.Background(), Spec{
		Name:     "srv",
		Fetch:    script([]string{"STARTING"}, &calls),
		Ready:    func(s string) bool { return s == "ONLINE" },
		Interval: 10 * time.Second,
		MaxWait:  30 * time.Second,
	})
	if !perr.IsCode(err, perr.ErrorCodeTimeout) {
		t.Fatalf("Wait = %v, want timeout error", err)
	}
	if got := err.Error(); got != "srv did not converge within 30s" {
		t.Fatalf("error = %q", got)
	}
	// fetches at t=0, 10, 20, 30; the 30s check fires after the 4th fetch
	if calls != 4 {
		t.Fatalf("fetch calls = %d, want 4", calls)
	}
}

func TestWaitFetchErrorPropagates(t *testing.T) {
	w, _ := newTestWaiter()
	boom := perr.Providerf("describe failed")
	err := w.Wait(context.Background(), Spec{
		Name:     "srv",
		Fetch:    func(context.Context) (string, error) { return "", boom },
		Ready:    func(string) bool { return false },
		Interval: time.Second,
		MaxWait:  time.Minute,
	})
	if err == nil || !perr.IsCode(err, perr.ErrorCodeProvider) {
		t.Fatalf("Wait = %v, want provider error", err)
	}
}

func TestWaitObservesCancellation(t *testing.T) {
	w, _ := newTestWaiter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := w.Wait(ctx, Spec{
		Name:     "srv",
		Fetch:    func(context.Context) (string, error) { return "STARTING", nil },
		Ready:    func(string) bool { return false },
		Interval: time.Second,
		MaxWait:  time.Minute,
	})
	if err != context.Canceled {
		t.Fatalf("Wait = %v, want context.Canceled", err)
	}
}
