// Package session manages the signed-in identity: an immutable Session
// value with a fixed expiry window, and a Manager owning the process-wide
// single session slot with durable persistence.
package session

import (
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// Session is a time-bounded proof of a successful authentication. It is
// immutable: extending a session means creating a new value with a fresh
// issue timestamp, never mutating an existing one.
type Session struct {
	UserID    int64
	Username  string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// New builds a Session for an authenticated user, issued at now and
// expiring after ttl.
func New(user *models.User, now time.Time, ttl time.Duration) *Session {
	return &Session{
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// Renew rebuilds the session directly from its identity fields with a fresh
// issue timestamp. No credential record is involved.
func (s *Session) Renew(now time.Time, ttl time.Duration) *Session {
	return &Session{
		UserID:    s.UserID,
		Username:  s.Username,
		IsAdmin:   s.IsAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// ValidAt reports whether the session has not yet expired at t.
func (s *Session) ValidAt(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}

// ExpiredAt reports whether the session has expired at t.
func (s *Session) ExpiredAt(t time.Time) bool {
	return !s.ValidAt(t)
}

// RemainingAt returns how long the session is still valid at t, or 0 once
// expired.
func (s *Session) RemainingAt(t time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(t); d > 0 {
		return d
	}
	return 0
}
