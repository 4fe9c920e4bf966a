// Package auth implements credential verification and account creation.
// All outcomes cross the service boundary as a Result value; the service
// never returns an error or lets a panic escape.
package auth

import "github.com/dmitrijs2005/tasktracker/internal/models"

// FailureKind classifies a failed authentication attempt. The user-facing
// message deliberately does not distinguish user-not-found from
// invalid-credentials; the kind keeps the distinction for logs and tests.
type FailureKind int

const (
	FailureInvalidInput FailureKind = iota + 1
	FailureUserNotFound
	FailureInvalidCredentials
	// FailureAccountLocked is reserved for a lockout policy that is not
	// implemented yet; no code path produces it.
	FailureAccountLocked
	FailureUnknown
)

// String implements fmt.Stringer.
func (k FailureKind) String() string {
	switch k {
	case FailureInvalidInput:
		return "invalid-input"
	case FailureUserNotFound:
		return "user-not-found"
	case FailureInvalidCredentials:
		return "invalid-credentials"
	case FailureAccountLocked:
		return "account-locked"
	case FailureUnknown:
		return "unknown-error"
	default:
		return "unspecified"
	}
}

// Result is the outcome of an authentication or account-creation attempt:
// either a success carrying the credential record, or a failure carrying a
// kind and a human-readable message. The fields are private so that only the
// two constructors can populate it, which makes a both-variants value
// unrepresentable.
type Result struct {
	user    *models.User
	kind    FailureKind
	message string
}

// Success wraps an authenticated credential record. user must not be nil.
func Success(user *models.User) Result {
	if user == nil {
		panic("auth: Success called with nil user")
	}
	return Result{user: user}
}

// Failure wraps a typed error and its user-facing message.
func Failure(kind FailureKind, message string) Result {
	return Result{kind: kind, message: message}
}

// Succeeded reports whether the attempt authenticated an identity.
func (r Result) Succeeded() bool {
	return r.user != nil
}

// User returns the authenticated credential record, or nil on failure.
func (r Result) User() *models.User {
	return r.user
}

// Kind returns the failure classification; zero value on success.
func (r Result) Kind() FailureKind {
	return r.kind
}

// Message returns the user-facing failure message; empty on success.
func (r Result) Message() string {
	return r.message
}

// IsAdmin reports whether the attempt succeeded for an administrator.
func (r Result) IsAdmin() bool {
	return r.user != nil && r.user.IsAdmin
}
