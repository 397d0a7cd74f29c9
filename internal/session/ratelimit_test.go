package session

import (
	"testing"
	"time"
)

func TestRateLimiterAdmitIsPure(t *testing.T) {
	r := NewRateLimiter(RateLimit, RateLimitWindow)
	now := time.Now()

	for i := 0; i < 100; i++ {
		if !r.Admit(now) {
			t.Fatalf("Admit consumed quota on check %d", i)
		}
	}
}

func TestRateLimiterRejectsAtLimit(t *testing.T) {
	r := NewRateLimiter(RateLimit, RateLimitWindow)
	t0 := time.Now()

	for i := 0; i < RateLimit; i++ {
		if !r.Admit(t0) {
			t.Fatalf("request %d unexpectedly rejected", i)
		}
		r.Record(t0)
	}

	if r.Admit(t0) {
		t.Fatal("request 16 admitted within the window")
	}
	if r.Admit(t0.Add(RateLimitWindow - time.Second)) {
		t.Fatal("request admitted before the window expired")
	}
	// age == window counts as expired
	if !r.Admit(t0.Add(RateLimitWindow)) {
		t.Fatal("request rejected after the window expired")
	}
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	r := NewRateLimiter(RateLimit, RateLimitWindow)
	t0 := time.Now()

	for i := 0; i < 10; i++ {
		r.Record(t0)
	}
	half := t0.Add(30 * time.Second)
	for i := 0; i < 5; i++ {
		r.Record(half)
	}

	if r.Admit(half) {
		t.Fatal("expected rejection with 15 requests in the window")
	}
	// The first batch expires at t0+60s; only 5 remain.
	if !r.Admit(t0.Add(RateLimitWindow)) {
		t.Fatal("expected admission after the first batch expired")
	}
}
