package resilience

import (
	"testing"
	"time"
)

func TestRateLimiter_WindowExhaustion(t *testing.T) {
	l := NewRateLimiter(2, time.Minute, 0)

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if l.IsLimited() {
		t.Fatal("fresh limiter must not be limited")
	}
	l.RecordAttempt()
	l.RecordAttempt()

	if !l.IsLimited() {
		t.Fatal("limiter must block after max attempts inside one window")
	}

	// The blocked check must not reset or decrement the window.
	if snap := l.Snapshot(); snap.WindowCount != 2 {
		t.Fatalf("skip decision mutated the window count: %d", snap.WindowCount)
	}
}

func TestRateLimiter_WindowRollover(t *testing.T) {
	l := NewRateLimiter(1, time.Minute, 0)

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.RecordAttempt()
	if !l.IsLimited() {
		t.Fatal("expected limited window")
	}

	now = now.Add(time.Minute)
	if l.IsLimited() {
		t.Fatal("limiter must reset once the window rolls over")
	}
	if snap := l.Snapshot(); snap.WindowCount != 0 {
		t.Fatalf("rollover must zero the window count, got %d", snap.WindowCount)
	}
}

func TestRateLimiter_DailyCap(t *testing.T) {
	l := NewRateLimiter(100, time.Minute, 3)

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		l.RecordAttempt()
		now = now.Add(time.Minute) // each attempt in its own window
	}

	if !l.IsLimited() {
		t.Fatal("daily cap must limit even with free window budget")
	}

	now = now.Add(24 * time.Hour)
	if l.IsLimited() {
		t.Fatal("daily bucket must reset after a day")
	}
}

func TestRateLimiter_SkipDoesNotConsume(t *testing.T) {
	l := NewRateLimiter(1, time.Minute, 5)

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		l.IsLimited()
	}
	snap := l.Snapshot()
	if snap.WindowCount != 0 || snap.DailyCount != 0 {
		t.Fatalf("limit checks must not consume budget: %+v", snap)
	}
}
