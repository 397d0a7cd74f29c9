package session

import "time"

const (
	// RateLimit is the number of requests admitted per window.
	RateLimit = 15
	// RateLimitWindow is the trailing admission window.
	RateLimitWindow = 60 * time.Second
)

// RateLimiter is a sliding-window admission counter over the timestamps of
// issued requests. It is not safe for concurrent use on its own; callers
// hold the owning session's lock.
type RateLimiter struct {
	timestamps []time.Time
	limit      int
	window     time.Duration
}

// NewRateLimiter creates a limiter admitting limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{limit: limit, window: window}
}

// Admit reports whether a request at now would be admitted. It purges
// expired entries but records nothing, so the check is idempotent: a
// message can be test-admitted before confirmation gating without
// consuming quota. Call Record once a request is actually issued.
func (r *RateLimiter) Admit(now time.Time) bool {
	r.purge(now)
	return len(r.timestamps) < r.limit
}

// Record counts an issued request against the window.
func (r *RateLimiter) Record(now time.Time) {
	r.timestamps = append(r.timestamps, now)
}

// purge drops entries whose age is at least the window. Timestamps are
// appended in non-decreasing order, so expired entries form a prefix.
func (r *RateLimiter) purge(now time.Time) {
	i := 0
	for i < len(r.timestamps) && now.Sub(r.timestamps[i]) >= r.window {
		i++
	}
	if i > 0 {
		r.timestamps = append(r.timestamps[:0], r.timestamps[i:]...)
	}
}
