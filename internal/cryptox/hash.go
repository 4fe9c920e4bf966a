// Package cryptox implements the password hashing scheme used for stored
// credentials: a per-user random salt mixed into an iterated SHA-256 digest.
// The iteration count is deliberately high so that verification is slow;
// callers must not run it on a latency-sensitive goroutine.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

const (
	// SaltLength is the number of random salt bytes (256 bits).
	SaltLength = 32
	// HashIterations is the number of digest rounds applied when hashing.
	// Changing it invalidates every stored hash.
	HashIterations = 10000
)

// GenerateSalt produces a cryptographically secure random salt,
// base64-encoded for storage alongside the hash.
func GenerateSalt() string {
	return base64.StdEncoding.EncodeToString(common.GenerateRandByteArray(SaltLength))
}

// HashPassword derives a verifiable hash from (password, salt). The salted
// password is digested HashIterations times, each round re-digesting the
// previous output. The same inputs always produce the same hash.
func HashPassword(password, salt string) string {
	buf := []byte(password + salt)
	for i := 0; i < HashIterations; i++ {
		sum := sha256.Sum256(buf)
		buf = sum[:]
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// NewCredential generates a fresh salt and hashes password with it,
// returning (hash, salt) ready for insertion into a credential record.
func NewCredential(password string) (hash, salt string) {
	salt = GenerateSalt()
	return HashPassword(password, salt), salt
}

// VerifyPassword recomputes the hash of (password, salt) and compares it to
// storedHash in constant time, so the comparison does not leak where the
// two values first differ. Empty inputs always fail verification.
func VerifyPassword(password, storedHash, salt string) bool {
	if password == "" || storedHash == "" || salt == "" {
		return false
	}
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHash)) == 1
}

// ConstantTimeEquals compares two strings without short-circuiting on the
// first differing byte. Used for the legacy plaintext verification branch.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
