package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultTimeout is how long Check waits for goroutines to wind down
const DefaultTimeout = 2 * time.Second

// GoroutineChecker helps detect goroutine leaks
type GoroutineChecker struct {
	before  int
	t       testing.TB
	timeout time.Duration
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()

	return &GoroutineChecker{
		before:  runtime.NumGoroutine(),
		t:       t,
		timeout: DefaultTimeout,
	}
}

// Check polls until the goroutine count is back within tolerance of the
// recorded baseline, and fails the test if that does not happen in time.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(g.timeout)
	after := runtime.NumGoroutine()
	for after-g.before > tolerance && time.Now().Before(deadline) {
		runtime.Gosched()
		time.Sleep(10 * time.Millisecond)
		after = runtime.NumGoroutine()
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// Check records the baseline now and verifies it when the test finishes.
// Call it first so it runs after every other cleanup.
func Check(t testing.TB) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	t.Cleanup(func() { checker.Check(0) })
}

// CheckNoGoroutineLeak runs fn and verifies it left no goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
