package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/models"
)

const selectColumns = `id, title, description, status, assigned_user_id, created_at, updated_at`

// SQLiteRepository implements Repository using a DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new task.
func (r *SQLiteRepository) Create(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	query := `INSERT INTO tasks (id, title, description, status, assigned_user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.AssignedUserID,
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of an existing task.
func (r *SQLiteRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()

	query := `UPDATE tasks SET title = ?, description = ?, status = ?,
		assigned_user_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.AssignedUserID,
		task.UpdatedAt, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
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

// DeleteByID removes a task. It expects exactly one row to be affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
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

// GetByID returns a single task by id.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + selectColumns + ` FROM tasks WHERE id = ?`

	var task models.Task
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status,
		&task.AssignedUserID, &task.CreatedAt, &task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select task: %w", err)
	}
	return &task, nil
}

// GetAll lists every task, oldest first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Task, error) {
	return r.queryTasks(ctx, `SELECT `+selectColumns+` FROM tasks ORDER BY created_at ASC, id ASC`)
}

// GetByAssignee lists the tasks assigned to one user, oldest first.
func (r *SQLiteRepository) GetByAssignee(ctx context.Context, userID int64) ([]models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+selectColumns+` FROM tasks WHERE assigned_user_id = ? ORDER BY created_at ASC, id ASC`,
		userID)
}

// GetByStatus lists tasks in the given status, oldest first.
func (r *SQLiteRepository) GetByStatus(ctx context.Context, status string) ([]models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+selectColumns+` FROM tasks WHERE status = ? ORDER BY created_at ASC, id ASC`,
		status)
}

// Search matches the query against task titles and descriptions.
func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]models.Task, error) {
	like := "%" + query + "%"
	return r.queryTasks(ctx,
		`SELECT `+selectColumns+` FROM tasks WHERE title LIKE ? OR description LIKE ? ORDER BY created_at ASC, id ASC`,
		like, like)
}

func (r *SQLiteRepository) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Status,
			&task.AssignedUserID, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
