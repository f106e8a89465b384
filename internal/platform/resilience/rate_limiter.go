package resilience

import (
	"sync"
	"time"
)

// RateLimiter caps outbound request volume for one upstream provider with a
// rolling window plus an independent daily bucket. Counters only advance when
// a call is actually dispatched; a skip decision never consumes budget.
type RateLimiter struct {
	mu sync.Mutex

	maxRequests int
	window      time.Duration
	dailyLimit  int

	windowCount int
	windowReset time.Time
	dailyCount  int
	dailyReset  time.Time
	now         func() time.Time
}

// LimiterSnapshot is a point-in-time projection of limiter state for health
// reporting.
type LimiterSnapshot struct {
	WindowCount int
	WindowReset time.Time
	DailyCount  int
	DailyReset  time.Time
	DailyLimit  int
}

// NewRateLimiter builds a limiter allowing maxRequests per window. dailyLimit
// of zero disables the daily cap.
func NewRateLimiter(maxRequests int, window time.Duration, dailyLimit int) *RateLimiter {
	if maxRequests < 1 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if dailyLimit < 0 {
		dailyLimit = 0
	}

	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		dailyLimit:  dailyLimit,
		now:         time.Now,
	}
}

// IsLimited reports whether the provider's budget is exhausted. Expired
// buckets reset lazily here before the check, so a call arriving after the
// window rolled over sees a fresh count.
func (l *RateLimiter) IsLimited() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.rollover(now)

	if l.windowCount >= l.maxRequests {
		return true
	}
	if l.dailyLimit > 0 && l.dailyCount >= l.dailyLimit {
		return true
	}
	return false
}

// RecordAttempt consumes budget for one dispatched call.
func (l *RateLimiter) RecordAttempt() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.rollover(now)
	l.windowCount++
	l.dailyCount++
}

func (l *RateLimiter) Snapshot() LimiterSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return LimiterSnapshot{
		WindowCount: l.windowCount,
		WindowReset: l.windowReset,
		DailyCount:  l.dailyCount,
		DailyReset:  l.dailyReset,
		DailyLimit:  l.dailyLimit,
	}
}

func (l *RateLimiter) rollover(now time.Time) {
	if l.windowReset.IsZero() || !now.Before(l.windowReset) {
		l.windowCount = 0
		l.windowReset = now.Add(l.window)
	}
	if l.dailyReset.IsZero() || !now.Before(l.dailyReset) {
		l.dailyCount = 0
		l.dailyReset = now.Add(24 * time.Hour)
	}
}
