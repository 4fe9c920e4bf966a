package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/sessionstate"
)

// DefaultValidityDuration is the session expiry window used when the
// configuration does not override it.
const DefaultValidityDuration = 24 * time.Hour

// Durable record keys. The layout is a flat key-value set with no schema
// version; any unreadable record is cleared wholesale.
const (
	keyIsLoggedIn   = "is_logged_in"
	keyUserID       = "user_id"
	keyUsername     = "username"
	keyIsAdmin      = "is_admin"
	keyLoginTS      = "login_ts"
	keyExpirationTS = "expiration_ts"
)

// Manager owns the single session slot: at most one session is active per
// installation, and the Manager is its sole mutator. Reads and writes are
// cheap and synchronous; the mutex makes them safe to call both from the
// interactive loop and from the goroutine completing an authentication.
type Manager struct {
	repo   sessionstate.Repository
	logger logging.Logger
	ttl    time.Duration

	// now is replaceable in tests to control expiry.
	now func() time.Time

	mu       sync.Mutex
	current  *Session
	restored bool
}

// NewManager constructs a Manager persisting through repo. A non-positive
// ttl falls back to DefaultValidityDuration.
func NewManager(repo sessionstate.Repository, logger logging.Logger, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultValidityDuration
	}
	return &Manager{
		repo:   repo,
		logger: logger.With("component", "session"),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create starts a session for an authenticated user, replacing any prior
// session in the slot, and persists it durably.
func (m *Manager) Create(ctx context.Context, user *models.User) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := New(user, m.now(), m.ttl)
	if err := m.persist(ctx, s); err != nil {
		return nil, err
	}
	m.current = s
	m.restored = true

	m.logger.Info(ctx, "session created",
		"username", s.Username, "expires_at", s.ExpiresAt)
	return s, nil
}

// Current returns the active session, or nil if there is none. A session
// found expired is destroyed as a side effect. On the first call after
// process start the slot is restored from durable storage.
func (m *Manager) Current(ctx context.Context) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked(ctx)
}

func (m *Manager) currentLocked(ctx context.Context) *Session {
	if m.current == nil && !m.restored {
		m.restore(ctx)
	}
	if m.current == nil {
		return nil
	}
	if m.current.ExpiredAt(m.now()) {
		m.logger.Info(ctx, "session expired", "username", m.current.Username)
		m.destroyLocked(ctx)
		return nil
	}
	return m.current
}

// Destroy clears the slot in memory and in durable storage. It is
// idempotent: destroying with no active session is a no-op.
func (m *Manager) Destroy(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyLocked(ctx)
}

func (m *Manager) destroyLocked(ctx context.Context) error {
	if m.current != nil {
		m.logger.Info(ctx, "session destroyed", "username", m.current.Username)
	}
	m.current = nil
	m.restored = true
	return m.repo.Clear(ctx)
}

// IsLoggedIn reports whether a valid session exists.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	return m.Current(ctx) != nil
}

// CurrentUserID returns the signed-in user's id, or -1 with no valid session.
func (m *Manager) CurrentUserID(ctx context.Context) int64 {
	if s := m.Current(ctx); s != nil {
		return s.UserID
	}
	return -1
}

// CurrentUsername returns the signed-in username, or "" with no valid session.
func (m *Manager) CurrentUsername(ctx context.Context) string {
	if s := m.Current(ctx); s != nil {
		return s.Username
	}
	return ""
}

// IsCurrentUserAdmin reports whether the signed-in user is an administrator.
func (m *Manager) IsCurrentUserAdmin(ctx context.Context) bool {
	s := m.Current(ctx)
	return s != nil && s.IsAdmin
}

// TimeRemaining returns how long the session stays valid, or 0 with no
// valid session.
func (m *Manager) TimeRemaining(ctx context.Context) time.Duration {
	if s := m.Current(ctx); s != nil {
		return s.RemainingAt(m.now())
	}
	return 0
}

// Extend replaces the current session with a renewed one issued now.
// It reports false when there is no valid session to extend.
func (m *Manager) Extend(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.currentLocked(ctx)
	if s == nil {
		return false
	}
	renewed := s.Renew(m.now(), m.ttl)
	if err := m.persist(ctx, renewed); err != nil {
		m.logger.Error(ctx, "failed to persist renewed session", "error", err)
		return false
	}
	m.current = renewed
	m.logger.Info(ctx, "session extended",
		"username", renewed.Username, "expires_at", renewed.ExpiresAt)
	return true
}

// ValidateIntegrity checks that the slot holds a structurally sound session
// (positive user id, non-empty username). A corrupted session is destroyed
// and false is returned. An empty slot is a valid state.
func (m *Manager) ValidateIntegrity(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.currentLocked(ctx)
	if s == nil {
		return true
	}
	if s.UserID <= 0 || s.Username == "" {
		m.logger.Warn(ctx, "session integrity check failed, clearing slot")
		_ = m.destroyLocked(ctx)
		return false
	}
	return true
}

// persist writes all session fields as one durable record. Timestamps are
// stored as epoch milliseconds.
func (m *Manager) persist(ctx context.Context, s *Session) error {
	return m.repo.Replace(ctx, map[string]string{
		keyIsLoggedIn:   strconv.FormatBool(true),
		keyUserID:       strconv.FormatInt(s.UserID, 10),
		keyUsername:     s.Username,
		keyIsAdmin:      strconv.FormatBool(s.IsAdmin),
		keyLoginTS:      strconv.FormatInt(s.IssuedAt.UnixMilli(), 10),
		keyExpirationTS: strconv.FormatInt(s.ExpiresAt.UnixMilli(), 10),
	})
}

// restore loads the slot from durable storage. A record that is missing
// fields or fails to parse is treated as corrupt and cleared; there is no
// format versioning to migrate through.
func (m *Manager) restore(ctx context.Context) {
	m.restored = true

	loggedIn, ok, err := m.repo.Get(ctx, keyIsLoggedIn)
	if err != nil {
		m.logger.Error(ctx, "failed to read stored session", "error", err)
		return
	}
	if !ok || loggedIn != "true" {
		return
	}

	read := func(key string) (string, bool) {
		v, present, getErr := m.repo.Get(ctx, key)
		if getErr != nil || !present {
			return "", false
		}
		return v, true
	}

	rawID, ok1 := read(keyUserID)
	username, ok2 := read(keyUsername)
	rawAdmin, ok3 := read(keyIsAdmin)
	rawLogin, ok4 := read(keyLoginTS)
	rawExpiration, ok5 := read(keyExpirationTS)
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		m.logger.Warn(ctx, "stored session record incomplete, clearing")
		_ = m.repo.Clear(ctx)
		return
	}

	userID, errID := strconv.ParseInt(rawID, 10, 64)
	isAdmin, errAdmin := strconv.ParseBool(rawAdmin)
	loginMillis, errLogin := strconv.ParseInt(rawLogin, 10, 64)
	expirationMillis, errExpiration := strconv.ParseInt(rawExpiration, 10, 64)
	if errID != nil || errAdmin != nil || errLogin != nil || errExpiration != nil {
		m.logger.Warn(ctx, "stored session record unreadable, clearing")
		_ = m.repo.Clear(ctx)
		return
	}

	m.current = &Session{
		UserID:    userID,
		Username:  username,
		IsAdmin:   isAdmin,
		IssuedAt:  time.UnixMilli(loginMillis),
		ExpiresAt: time.UnixMilli(expirationMillis),
	}
	m.logger.Info(ctx, "session restored", "username", username)
}
