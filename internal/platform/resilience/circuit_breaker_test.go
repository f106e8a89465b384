package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewCircuitBreaker(3, 60*time.Second)

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	b.RecordFailure()
	if b.IsOpen() {
		t.Fatal("breaker must stay closed below the failure threshold")
	}

	b.RecordFailure()
	if !b.IsOpen() {
		t.Fatal("breaker must open after 3 consecutive failures")
	}
}

func TestCircuitBreaker_CooldownClearsBeforeTrial(t *testing.T) {
	b := NewCircuitBreaker(3, 60*time.Second)

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}

	now = now.Add(59 * time.Second)
	if !b.IsOpen() {
		t.Fatal("breaker must stay open inside the cooldown window")
	}

	now = now.Add(1 * time.Second)
	if b.IsOpen() {
		t.Fatal("breaker must clear once the cooldown elapses")
	}

	// The failure count resets together with the open flag, so a failing
	// trial call does not immediately re-open the breaker.
	snap := b.Snapshot()
	if snap.Failures != 0 || snap.Open {
		t.Fatalf("expected cleared breaker, got %+v", snap)
	}

	b.RecordFailure()
	if b.IsOpen() {
		t.Fatal("one failed trial call must not re-open a cleared breaker")
	}
}

func TestCircuitBreaker_SuccessResets(t *testing.T) {
	b := NewCircuitBreaker(3, 60*time.Second)

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()

	snap := b.Snapshot()
	if snap.Failures != 0 {
		t.Fatalf("success must zero the failure count, got %d", snap.Failures)
	}
	if snap.LastSuccess.IsZero() {
		t.Fatal("success must stamp the last-success time")
	}

	// A success clears the open flag regardless of prior failure count.
	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}
	b.RecordSuccess()
	if b.IsOpen() {
		t.Fatal("success must clear an open breaker")
	}
}

func TestCircuitBreaker_ResetOverride(t *testing.T) {
	b := NewCircuitBreaker(3, 60*time.Second)

	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}
	if !b.IsOpen() {
		t.Fatal("expected open breaker")
	}

	b.Reset()
	if b.IsOpen() {
		t.Fatal("reset must force-clear the breaker inside the cooldown")
	}
	if snap := b.Snapshot(); snap.Failures != 0 {
		t.Fatalf("reset must zero failures, got %d", snap.Failures)
	}
}
