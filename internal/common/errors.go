// Package common defines shared constants and sentinel errors used across
// the task tracker layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrorUnauthorized marks an operation attempted without a session, or
	// outside the signed-in user's rights.
	ErrorUnauthorized = errors.New("unauthorized")
)
