package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

func TestNew_ExpiryWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	user := &models.User{ID: 7, Username: "admin", IsAdmin: true}

	s := New(user, now, 24*time.Hour)

	require.Equal(t, int64(7), s.UserID)
	require.Equal(t, "admin", s.Username)
	require.True(t, s.IsAdmin)
	require.Equal(t, now, s.IssuedAt)
	require.Equal(t, now.Add(24*time.Hour), s.ExpiresAt)
}

func TestSession_ValidityBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(&models.User{ID: 1, Username: "u"}, now, time.Hour)

	assert.True(t, s.ValidAt(now))
	assert.True(t, s.ValidAt(now.Add(59*time.Minute)))
	// Valid strictly before expires-at.
	assert.False(t, s.ValidAt(now.Add(time.Hour)))
	assert.True(t, s.ExpiredAt(now.Add(2*time.Hour)))
}

func TestSession_RemainingAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(&models.User{ID: 1, Username: "u"}, now, time.Hour)

	assert.Equal(t, time.Hour, s.RemainingAt(now))
	assert.Equal(t, 15*time.Minute, s.RemainingAt(now.Add(45*time.Minute)))
	assert.Equal(t, time.Duration(0), s.RemainingAt(now.Add(2*time.Hour)))
}

func TestSession_RenewKeepsIdentity(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(&models.User{ID: 3, Username: "bob", IsAdmin: true}, issued, time.Hour)

	later := issued.Add(50 * time.Minute)
	renewed := s.Renew(later, time.Hour)

	require.NotSame(t, s, renewed)
	assert.Equal(t, s.UserID, renewed.UserID)
	assert.Equal(t, s.Username, renewed.Username)
	assert.Equal(t, s.IsAdmin, renewed.IsAdmin)
	assert.Equal(t, later, renewed.IssuedAt)
	assert.Equal(t, later.Add(time.Hour), renewed.ExpiresAt)

	// The original value is untouched.
	assert.Equal(t, issued, s.IssuedAt)
}
