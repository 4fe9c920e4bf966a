// Package comments persists task comments.
package comments

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// Repository is the comment store.
type Repository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByTask(ctx context.Context, taskID string) ([]models.Comment, error)
	DeleteByTask(ctx context.Context, taskID string) error
}
