// Package sessionstate persists the single session slot as a flat key-value
// record, so a session survives process restarts until it expires or is
// destroyed.
package sessionstate

import "context"

// Repository is a small durable key-value store holding the session record.
// Get returns ("", false, nil) when the key is absent. Replace atomically
// swaps the whole record: the slot holds at most one session, so writing a
// new one discards whatever was stored before.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Replace(ctx context.Context, fields map[string]string) error
	Clear(ctx context.Context) error
}
