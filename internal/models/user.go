// Package models defines the data model shared by repositories and services.
package models

import "time"

// CredentialScheme tags how a user's stored password material must be
// verified. Records created before salted hashing was introduced carry no
// salt and fall back to plaintext equality; the branch is kept explicit so
// it can be removed once all legacy records are migrated.
type CredentialScheme int

const (
	// SchemeLegacyPlaintext marks a record whose password column holds the
	// plaintext password itself (pre-salt records).
	SchemeLegacyPlaintext CredentialScheme = iota
	// SchemeSaltedHash marks a record holding an iterated salted hash.
	SchemeSaltedHash
)

// User is a credential record. The record is owned by the user store;
// authentication only reads it (account creation performs a single insert).
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	// Salt is empty for legacy records, see CredentialScheme.
	Salt      string
	Title     string
	IsAdmin   bool
	CreatedAt time.Time
}

// Scheme reports which verification branch applies to this record.
func (u *User) Scheme() CredentialScheme {
	if u.Salt == "" {
		return SchemeLegacyPlaintext
	}
	return SchemeSaltedHash
}
