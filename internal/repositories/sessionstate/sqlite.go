package sessionstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
)

// SQLiteRepository implements Repository on top of *sql.DB. Replace needs to
// begin its own transaction, so unlike the other repositories it takes the
// full handle rather than a DBTX.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a SQLiteRepository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get reads a single session field. The second return value reports whether
// the key was present.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session_state[%s]: %w", key, err)
	}
	return value, true, nil
}

// Replace swaps the stored record for fields in a single transaction, so a
// crash mid-write can never leave a half-written session behind.
func (r *SQLiteRepository) Replace(ctx context.Context, fields map[string]string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_state`); err != nil {
			return fmt.Errorf("failed to clear session_state: %w", err)
		}
		for key, value := range fields {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO session_state (key, value) VALUES (?, ?)`, key, value); err != nil {
				return fmt.Errorf("failed to set session_state[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// Clear removes every stored field. Clearing an empty store is a no-op.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_state`); err != nil {
		return fmt.Errorf("failed to clear session_state: %w", err)
	}
	return nil
}
