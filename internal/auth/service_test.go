package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/cryptox"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// memoryRepo is an in-memory users.Repository with call counting, so tests
// can assert that no lookup happens for invalid input.
type memoryRepo struct {
	users     map[string]*models.User
	nextID    int64
	findCalls int
	failWith  error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*models.User), nextID: 1}
}

func (m *memoryRepo) add(user *models.User) *models.User {
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return user
}

func (m *memoryRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	m.findCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (m *memoryRepo) Insert(_ context.Context, user *models.User) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, ok := m.users[user.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	return m.add(user), nil
}

func (m *memoryRepo) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memoryRepo) DeleteByID(_ context.Context, id int64) error {
	for name, u := range m.users {
		if u.ID == id {
			delete(m.users, name)
			return nil
		}
	}
	return common.ErrorNotFound
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedAdmin(t *testing.T, repo *memoryRepo) *models.User {
	t.Helper()
	hash, salt := cryptox.NewCredential("admin123")
	return repo.add(&models.User{
		Username:     "admin",
		PasswordHash: hash,
		Salt:         salt,
		Title:        "Administrator",
		IsAdmin:      true,
	})
}

func TestAuthenticate_Success(t *testing.T) {
	repo := newMemoryRepo()
	seedAdmin(t, repo)
	s := NewService(repo, testLogger())

	res := <-s.Authenticate(context.Background(), "admin", "admin123")

	require.True(t, res.Succeeded())
	require.True(t, res.IsAdmin())
	require.Equal(t, "admin", res.User().Username)
	require.Equal(t, "", res.Message())
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := newMemoryRepo()
	seedAdmin(t, repo)
	s := NewService(repo, testLogger())

	res := <-s.Authenticate(context.Background(), "admin", "wrongpass")

	require.False(t, res.Succeeded())
	assert.Equal(t, FailureInvalidCredentials, res.Kind())
	assert.Equal(t, "Invalid username or password", res.Message())
	assert.Nil(t, res.User())
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	repo := newMemoryRepo()
	seedAdmin(t, repo)
	s := NewService(repo, testLogger())

	res := <-s.Authenticate(context.Background(), "ghost", "anything")

	require.False(t, res.Succeeded())
	assert.Equal(t, FailureUserNotFound, res.Kind())
	// Same user-facing message as a wrong password.
	assert.Equal(t, "Invalid username or password", res.Message())
}

func TestAuthenticate_InvalidInputSkipsLookup(t *testing.T) {
	repo := newMemoryRepo()
	s := NewService(repo, testLogger())

	res := <-s.Authenticate(context.Background(), "", "")

	require.False(t, res.Succeeded())
	assert.Equal(t, FailureInvalidInput, res.Kind())
	assert.NotEmpty(t, res.Message())
	assert.Zero(t, repo.findCalls, "validation failure must not reach the store")
}

func TestAuthenticate_LegacyPlaintextRecord(t *testing.T) {
	repo := newMemoryRepo()
	repo.add(&models.User{
		Username:     "olduser",
		PasswordHash: "legacy-password",
		Salt:         "",
	})
	s := NewService(repo, testLogger())

	res := <-s.Authenticate(context.Background(), "olduser", "legacy-password")
	require.True(t, res.Succeeded())

	res = <-s.Authenticate(context.Background(), "olduser", "not-the-password")
	require.False(t, res.Succeeded())
	assert.Equal(t, FailureInvalidCredentials, res.Kind())
}

func TestAuthenticate_LookupErrorBecomesUnknown(t *testing.T) {
	repo := newMemoryRepo()
	repo.failWith = errors.New("disk on fire")
	s := NewService(repo, testLogger())

	res := <-s.Authenticate(context.Background(), "admin", "admin123")

	require.False(t, res.Succeeded())
	assert.Equal(t, FailureUnknown, res.Kind())
}

func TestCreateAccount_Success(t *testing.T) {
	repo := newMemoryRepo()
	s := NewService(repo, testLogger())

	res := <-s.CreateAccount(context.Background(), "newuser", "secret1", "Developer", false)

	require.True(t, res.Succeeded())
	created := res.User()
	require.Positive(t, created.ID)
	require.False(t, created.IsAdmin)
	require.NotEmpty(t, created.Salt)
	require.NotEqual(t, "secret1", created.PasswordHash)
	require.Equal(t, models.SchemeSaltedHash, created.Scheme())
	assert.True(t, cryptox.VerifyPassword("secret1", created.PasswordHash, created.Salt))

	// The freshly created account can log in.
	login := <-s.Authenticate(context.Background(), "newuser", "secret1")
	require.True(t, login.Succeeded())
}

func TestCreateAccount_TrimsUsername(t *testing.T) {
	repo := newMemoryRepo()
	s := NewService(repo, testLogger())

	res := <-s.CreateAccount(context.Background(), "  bob  ", "secret1", "", false)

	require.True(t, res.Succeeded())
	assert.Equal(t, "bob", res.User().Username)

	// The canonical name logs in; the padded form never reaches storage.
	login := <-s.Authenticate(context.Background(), "bob", "secret1")
	require.True(t, login.Succeeded())
	_, stored := repo.users["bob"]
	_, padded := repo.users["  bob  "]
	assert.True(t, stored)
	assert.False(t, padded)
}

func TestCreateAccount_DuplicateUsername(t *testing.T) {
	repo := newMemoryRepo()
	seedAdmin(t, repo)
	s := NewService(repo, testLogger())

	res := <-s.CreateAccount(context.Background(), "admin", "secret1", "", false)

	require.False(t, res.Succeeded())
	assert.Equal(t, FailureInvalidInput, res.Kind())
	assert.Equal(t, "Username already exists", res.Message())
}

func TestCreateAccount_InvalidInput(t *testing.T) {
	repo := newMemoryRepo()
	s := NewService(repo, testLogger())

	res := <-s.CreateAccount(context.Background(), "x", "secret1", "", false)
	require.False(t, res.Succeeded())
	assert.Equal(t, FailureInvalidInput, res.Kind())

	res = <-s.CreateAccount(context.Background(), "validname", "short", "", false)
	require.False(t, res.Succeeded())
	assert.Equal(t, FailureInvalidInput, res.Kind())
	assert.Zero(t, repo.findCalls)
}

func TestResultConstructors(t *testing.T) {
	require.Panics(t, func() { Success(nil) })

	f := Failure(FailureAccountLocked, "locked")
	require.False(t, f.Succeeded())
	require.Equal(t, "account-locked", f.Kind().String())
	require.False(t, f.IsAdmin())
}
