package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/cryptox"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/users"
	"github.com/dmitrijs2005/tasktracker/internal/validation"
)

// genericCredentialsMessage is returned for both unknown usernames and wrong
// passwords so a caller cannot probe which usernames exist.
const genericCredentialsMessage = "Invalid username or password"

const systemErrorMessage = "Authentication failed due to system error"

// Service orchestrates validation, user lookup and hash verification.
// It is constructed once by the application wiring and injected into
// callers; it keeps no global state.
//
// Hashing is deliberately slow, so Authenticate and CreateAccount run on
// their own goroutine and deliver the Result through a buffered channel.
// The caller may abandon the channel; the result is dropped, not blocked on.
type Service struct {
	repo   users.Repository
	logger logging.Logger
}

// NewService constructs a Service reading credential records from repo.
func NewService(repo users.Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger.With("component", "auth")}
}

// Authenticate verifies a username/password pair asynchronously.
// The sequence within one attempt is strict: validation, then lookup, then
// verification; no lookup happens for syntactically invalid input.
func (s *Service) Authenticate(ctx context.Context, username, password string) <-chan Result {
	return s.dispatch(ctx, func(ctx context.Context) Result {
		return s.authenticate(ctx, username, password)
	})
}

// CreateAccount registers a new user with a freshly salted hash
// asynchronously. Unlike login failures, creation failures name the exact
// problem; there is no enumeration risk in self-service signup.
func (s *Service) CreateAccount(ctx context.Context, username, password, title string, isAdmin bool) <-chan Result {
	return s.dispatch(ctx, func(ctx context.Context) Result {
		return s.createAccount(ctx, username, password, title, isAdmin)
	})
}

// dispatch runs fn on a worker goroutine and returns the channel carrying
// its single Result. A panic inside fn is converted to an unknown-error
// failure instead of crossing the service boundary.
func (s *Service) dispatch(ctx context.Context, fn func(context.Context) Result) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(ctx, "recovered panic in auth worker", "panic", p)
				out <- Failure(FailureUnknown, systemErrorMessage)
			}
		}()
		out <- fn(ctx)
	}()
	return out
}

func (s *Service) authenticate(ctx context.Context, username, password string) Result {
	if v := validation.ValidateLoginRequest(username, password); !v.IsValid() {
		s.logger.Warn(ctx, "rejected malformed login request", "username", username)
		return Failure(FailureInvalidInput, v.FirstError())
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login attempt for unknown user", "username", username)
			return Failure(FailureUserNotFound, genericCredentialsMessage)
		}
		s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return Failure(FailureUnknown, systemErrorMessage)
	}

	if !s.verifyPassword(ctx, user, password) {
		s.logger.Warn(ctx, "password verification failed", "username", username)
		return Failure(FailureInvalidCredentials, genericCredentialsMessage)
	}

	s.logger.Info(ctx, "user authenticated", "username", user.Username, "admin", user.IsAdmin)
	return Success(user)
}

// verifyPassword dispatches on the record's credential scheme. Legacy
// records predate salted hashing and hold the plaintext password itself;
// they are verified by direct (constant-time) equality. No rehash-on-login
// upgrade is performed for them.
func (s *Service) verifyPassword(ctx context.Context, user *models.User, password string) bool {
	switch user.Scheme() {
	case models.SchemeLegacyPlaintext:
		s.logger.Warn(ctx, "verifying legacy unsalted record", "username", user.Username)
		return cryptox.ConstantTimeEquals(user.PasswordHash, password)
	default:
		return cryptox.VerifyPassword(password, user.PasswordHash, user.Salt)
	}
}

func (s *Service) createAccount(ctx context.Context, username, password, title string, isAdmin bool) Result {
	// Validation judges the trimmed form, so the stored record must use it
	// too; otherwise " bob " would pass and persist with whitespace.
	username = strings.TrimSpace(username)

	if v := validation.ValidateUsername(username); !v.IsValid() {
		return Failure(FailureInvalidInput, v.FirstError())
	}
	if v := validation.ValidatePassword(password); !v.IsValid() {
		return Failure(FailureInvalidInput, v.FirstError())
	}

	// Pre-check for an existing username. This read-then-write is not
	// atomic; the UNIQUE index on users.username catches the race below.
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return Failure(FailureInvalidInput, "Username already exists")
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return Failure(FailureUnknown, systemErrorMessage)
	}

	hash, salt := cryptox.NewCredential(password)
	user, err := s.repo.Insert(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		Title:        title,
		IsAdmin:      isAdmin,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return Failure(FailureInvalidInput, "Username already exists")
		}
		s.logger.Error(ctx, "user insert failed", "username", username, "error", err)
		return Failure(FailureUnknown, systemErrorMessage)
	}

	s.logger.Info(ctx, "user created", "username", user.Username, "admin", user.IsAdmin)
	return Success(user)
}
