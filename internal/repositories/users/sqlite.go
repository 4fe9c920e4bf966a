package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// SQLiteRepository implements Repository using a DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// FindByUsername looks up a credential record by its unique username.
// The lookup is case-sensitive.
func (r *SQLiteRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, salt, title, is_admin, created_at
		FROM users WHERE username = ?`

	var u models.User
	var salt sql.NullString
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &salt, &u.Title, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	// NULL salt marks a legacy record.
	u.Salt = salt.String
	return &u, nil
}

// Insert stores a new credential record and returns it with the assigned id.
// The users.username UNIQUE index makes duplicate creation fail here even if
// the caller's pre-check raced with a concurrent insert.
func (r *SQLiteRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, password_hash, salt, title, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	var salt any
	if user.Salt != "" {
		salt = user.Salt
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, query,
		user.Username, user.PasswordHash, salt, user.Title, user.IsAdmin, user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted user id: %w", err)
	}
	user.ID = id
	return user, nil
}

// List returns all users ordered by id.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, username, password_hash, salt, title, is_admin, created_at
		FROM users ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		var salt sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &salt, &u.Title, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Salt = salt.String
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID removes a user record. It expects exactly one row to be affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
