// Package leaktest catches goroutines left running by long-lived components
// such as the stream hub, the worker pool and the round scheduler.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settlePoll    = 10 * time.Millisecond
	settleTimeout = time.Second
)

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test if more than tolerance goroutines outlive the
// baseline once things have had a chance to wind down
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := settle(g.before + tolerance)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckStopped runs start, then stop, and fails if goroutines started by
// start are still running afterwards
func CheckStopped(t testing.TB, start, stop func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	start()
	stop()
	checker.Check(0)
}

// settle polls until the goroutine count drops to target or the timeout
// passes, returning the last count seen
func settle(target int) int {
	deadline := time.Now().Add(settleTimeout)
	n := runtime.NumGoroutine()
	for n > target && time.Now().Before(deadline) {
		runtime.Gosched()
		time.Sleep(settlePoll)
		n = runtime.NumGoroutine()
	}
	return n
}
