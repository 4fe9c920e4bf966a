// Package validation enforces syntactic rules on authentication input.
// All functions are pure; they run before any lookup or hashing happens.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

// usernamePattern restricts usernames to ASCII letters, digits and underscore.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Result carries a validity flag and the ordered list of human-readable
// violations. All violated rules are collected, not just the first one.
type Result struct {
	errors []string
}

// IsValid reports whether no rule was violated.
func (r Result) IsValid() bool {
	return len(r.errors) == 0
}

// Errors returns a copy of the collected violation messages.
func (r Result) Errors() []string {
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// FirstError returns the first violation message, or "" if the input was valid.
func (r Result) FirstError() string {
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[0]
}

// ValidateUsername checks the trimmed username against the application rules:
// non-empty, length 3–50, charset [a-zA-Z0-9_].
func ValidateUsername(username string) Result {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return Result{errors: []string{"Username cannot be empty"}}
	}

	var r Result
	if len(trimmed) < MinUsernameLength {
		r.errors = append(r.errors, fmt.Sprintf("Username must be at least %d characters long", MinUsernameLength))
	}
	if len(trimmed) > MaxUsernameLength {
		r.errors = append(r.errors, fmt.Sprintf("Username cannot exceed %d characters", MaxUsernameLength))
	}
	if !usernamePattern.MatchString(trimmed) {
		r.errors = append(r.errors, "Username can only contain letters, numbers, and underscores")
	}
	return r
}

// ValidatePassword checks the password length bounds. No character-class
// complexity rules are enforced; that is a requirement, not an oversight.
func ValidatePassword(password string) Result {
	if password == "" {
		return Result{errors: []string{"Password cannot be empty"}}
	}

	var r Result
	if len(password) < MinPasswordLength {
		r.errors = append(r.errors, fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		r.errors = append(r.errors, fmt.Sprintf("Password cannot exceed %d characters", MaxPasswordLength))
	}
	return r
}

// ValidateLoginRequest validates both credential fields and concatenates
// their violations, username errors first.
func ValidateLoginRequest(username, password string) Result {
	var r Result
	r.errors = append(r.errors, ValidateUsername(username).errors...)
	r.errors = append(r.errors, ValidatePassword(password).errors...)
	return r
}
