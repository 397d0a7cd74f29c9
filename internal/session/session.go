// Package session holds the per-user conversation state: language
// preference, rate-limit window, rolling history, and any pending
// language-switch confirmation.
package session

import (
	"sync"

	"github.com/iprilbot/ipril/domain"
)

// Session is the state for one user. All field access happens under the
// session lock; the transport may handle updates concurrently, but
// overlapping messages from the same user are serialized here.
type Session struct {
	mu sync.Mutex

	UserID   int64
	Language string
	Limiter  *RateLimiter
	History  *History

	// Pending is non-nil exactly while a language-switch confirmation is
	// outstanding; nil means the normal correction flow applies.
	Pending *domain.PendingConfirmation
}

func newSession(userID int64) *Session {
	return &Session{
		UserID:   userID,
		Language: domain.DefaultLanguage,
		Limiter:  NewRateLimiter(RateLimit, RateLimitWindow),
		History:  &History{},
	}
}

// Lock serializes handling for this session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session for the next message.
func (s *Session) Unlock() { s.mu.Unlock() }
