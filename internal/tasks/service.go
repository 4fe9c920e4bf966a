// Package tasks contains the application service for task management.
// Every operation is gated on an active session: administrators operate on
// all tasks, members only on tasks assigned to them.
package tasks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/comments"
	taskrepo "github.com/dmitrijs2005/tasktracker/internal/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/session"
)

// Service implements task operations on top of the local database.
type Service struct {
	db       *sql.DB
	sessions *session.Manager
	logger   logging.Logger
}

// NewService constructs a Service bound to the given database and session
// manager.
func NewService(db *sql.DB, sessions *session.Manager, logger logging.Logger) *Service {
	return &Service{db: db, sessions: sessions, logger: logger.With("component", "tasks")}
}

func (s *Service) taskRepo(db dbx.DBTX) taskrepo.Repository {
	return taskrepo.NewSQLiteRepository(db)
}

func (s *Service) commentRepo(db dbx.DBTX) comments.Repository {
	return comments.NewSQLiteRepository(db)
}

// List returns the tasks visible to the signed-in user: all of them for an
// administrator, otherwise only the user's own.
func (s *Service) List(ctx context.Context) ([]models.Task, error) {
	current := s.sessions.Current(ctx)
	if current == nil {
		return nil, common.ErrorUnauthorized
	}
	if current.IsAdmin {
		return s.taskRepo(s.db).GetAll(ctx)
	}
	return s.taskRepo(s.db).GetByAssignee(ctx, current.UserID)
}

// ListByStatus returns visible tasks in the given status. Administrators
// read straight from the status index; members filter their own tasks.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]models.Task, error) {
	current := s.sessions.Current(ctx)
	if current == nil {
		return nil, common.ErrorUnauthorized
	}
	if current.IsAdmin {
		return s.taskRepo(s.db).GetByStatus(ctx, status)
	}
	mine, err := s.taskRepo(s.db).GetByAssignee(ctx, current.UserID)
	if err != nil {
		return nil, err
	}
	var out []models.Task
	for _, task := range mine {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out, nil
}

// Search matches query against titles and descriptions of visible tasks.
func (s *Service) Search(ctx context.Context, query string) ([]models.Task, error) {
	current := s.sessions.Current(ctx)
	if current == nil {
		return nil, common.ErrorUnauthorized
	}
	found, err := s.taskRepo(s.db).Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if current.IsAdmin {
		return found, nil
	}
	var out []models.Task
	for _, task := range found {
		if task.AssignedUserID == current.UserID {
			out = append(out, task)
		}
	}
	return out, nil
}

// Create adds a new open task. A member may only assign tasks to themselves;
// assigneeID 0 means "assign to me".
func (s *Service) Create(ctx context.Context, title, description string, assigneeID int64) (*models.Task, error) {
	current := s.sessions.Current(ctx)
	if current == nil {
		return nil, common.ErrorUnauthorized
	}
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	if assigneeID == 0 {
		assigneeID = current.UserID
	}
	if !current.IsAdmin && assigneeID != current.UserID {
		return nil, common.ErrorUnauthorized
	}

	task := &models.Task{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    description,
		Status:         models.TaskStatusOpen,
		AssignedUserID: assigneeID,
	}
	if err := s.taskRepo(s.db).Create(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "task created", "task_id", task.ID, "assignee", assigneeID)
	return task, nil
}

// Get returns a single task, provided the signed-in user may see it.
func (s *Service) Get(ctx context.Context, taskID string) (*models.Task, error) {
	return s.getVisible(ctx, taskID)
}

// UpdateStatus moves a visible task to the given status.
func (s *Service) UpdateStatus(ctx context.Context, taskID, status string) (*models.Task, error) {
	switch status {
	case models.TaskStatusOpen, models.TaskStatusInProgress, models.TaskStatusDone:
	default:
		return nil, fmt.Errorf("unknown task status %q", status)
	}

	task, err := s.getVisible(ctx, taskID)
	if err != nil {
		return nil, err
	}
	task.Status = status
	if err := s.taskRepo(s.db).Update(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "task status updated", "task_id", task.ID, "status", status)
	return task, nil
}

// Edit updates a visible task's title and description. An empty title or
// description keeps the current value, so either field can be changed alone.
func (s *Service) Edit(ctx context.Context, taskID, title, description string) (*models.Task, error) {
	if title == "" && description == "" {
		return nil, fmt.Errorf("nothing to change")
	}

	task, err := s.getVisible(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if title != "" {
		task.Title = title
	}
	if description != "" {
		task.Description = description
	}
	if err := s.taskRepo(s.db).Update(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "task edited", "task_id", task.ID)
	return task, nil
}

// Delete removes a visible task together with its comments, in one
// transaction.
func (s *Service) Delete(ctx context.Context, taskID string) error {
	task, err := s.getVisible(ctx, taskID)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.commentRepo(tx).DeleteByTask(ctx, task.ID); err != nil {
			return err
		}
		return s.taskRepo(tx).DeleteByID(ctx, task.ID)
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "task deleted", "task_id", task.ID)
	return nil
}

// AddComment attaches a comment to a visible task, authored by the
// signed-in user.
func (s *Service) AddComment(ctx context.Context, taskID, text string) (*models.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}
	task, err := s.getVisible(ctx, taskID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:       uuid.NewString(),
		TaskID:   task.ID,
		AuthorID: s.sessions.CurrentUserID(ctx),
		Text:     text,
	}
	if err := s.commentRepo(s.db).Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Comments lists a visible task's comments, oldest first.
func (s *Service) Comments(ctx context.Context, taskID string) ([]models.Comment, error) {
	task, err := s.getVisible(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.commentRepo(s.db).GetByTask(ctx, task.ID)
}

// getVisible loads a task and checks the signed-in user may operate on it.
func (s *Service) getVisible(ctx context.Context, taskID string) (*models.Task, error) {
	current := s.sessions.Current(ctx)
	if current == nil {
		return nil, common.ErrorUnauthorized
	}
	task, err := s.taskRepo(s.db).GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !current.IsAdmin && task.AssignedUserID != current.UserID {
		return nil, common.ErrorUnauthorized
	}
	return task, nil
}
