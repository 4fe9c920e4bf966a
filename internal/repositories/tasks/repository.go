// Package tasks persists task records.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// Repository is the task store. GetByID returns common.ErrorNotFound when no
// task matches.
type Repository interface {
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	DeleteByID(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	GetAll(ctx context.Context) ([]models.Task, error)
	GetByAssignee(ctx context.Context, userID int64) ([]models.Task, error)
	GetByStatus(ctx context.Context, status string) ([]models.Task, error)
	Search(ctx context.Context, query string) ([]models.Task, error)
}
