// Package leaktest spots goroutines left running by background components under test.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const settleDelay = 20 * time.Millisecond

// GoroutineChecker compares the goroutine count before and after a piece of work
type GoroutineChecker struct {
	t        testing.TB
	baseline int
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{t: t, baseline: settledCount()}
}

// Check fails the test when more than tolerance goroutines outlived the work.
// It polls for up to timeout so that goroutines shutting down asynchronously are not reported.
func (g *GoroutineChecker) Check(tolerance int, timeout time.Duration) {
	g.t.Helper()

	deadline := time.Now().Add(timeout)
	current := settledCount()
	for current-g.baseline > tolerance && time.Now().Before(deadline) {
		time.Sleep(settleDelay)
		current = settledCount()
	}

	if leaked := current - g.baseline; leaked > tolerance {
		g.t.Errorf("goroutine leak: baseline=%d current=%d leaked=%d tolerance=%d",
			g.baseline, current, leaked, tolerance)
	}
}

// Run executes fn and checks that it leaves no goroutine behind
func Run(t testing.TB, timeout time.Duration, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0, timeout)
}

func settledCount() int {
	runtime.Gosched()
	time.Sleep(settleDelay)
	return runtime.NumGoroutine()
}
