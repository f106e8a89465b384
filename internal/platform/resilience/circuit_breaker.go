package resilience

import (
	"sync"
	"time"
)

const (
	DefaultFailureThreshold = 3
	DefaultCooldown         = 60 * time.Second
)

// CircuitBreaker tracks consecutive failures for one upstream provider.
//
// The state machine is deliberately simple: closed or open, with the
// half-open trial expressed as "re-enter closed once the cooldown elapses".
// The failure count is zeroed as soon as the cooldown passes, before the
// trial call's outcome is known, so a permanently broken provider is probed
// exactly once per cooldown interval rather than escalating its backoff.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	cooldown         time.Duration

	failures    int
	open        bool
	lastFailure time.Time
	lastSuccess time.Time
	now         func() time.Time
}

// Snapshot is a point-in-time projection of breaker state for health reporting.
type Snapshot struct {
	Open        bool
	Failures    int
	LastFailure time.Time
	LastSuccess time.Time
}

func NewCircuitBreaker(failureThreshold int, cooldown time.Duration) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = DefaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		now:              time.Now,
	}
}

// IsOpen reports whether calls are currently blocked. When the breaker is
// open and the cooldown measured from the tripping failure has elapsed, the
// breaker clears to closed and the failure count resets, permitting one
// fresh trial call.
func (b *CircuitBreaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false
	}
	if b.now().Sub(b.lastFailure) >= b.cooldown {
		b.open = false
		b.failures = 0
		return false
	}
	return true
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = b.now()
	if b.failures >= b.failureThreshold {
		b.open = true
	}
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.lastSuccess = b.now()
	b.open = false
}

// Reset force-clears the breaker outside the cooldown rule. Operational
// escape hatch, not part of the automatic policy.
func (b *CircuitBreaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.open = false
}

func (b *CircuitBreaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Snapshot{
		Open:        b.open,
		Failures:    b.failures,
		LastFailure: b.lastFailure,
		LastSuccess: b.lastSuccess,
	}
}
