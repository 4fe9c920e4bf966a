// Package users persists credential records. Authentication reads records
// through this interface; account creation performs the single insert.
package users

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// Repository is the user-record store consumed by the authentication core.
// FindByUsername returns common.ErrorNotFound when no record matches, and
// Insert returns common.ErrorAlreadyExists on a username collision.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	DeleteByID(ctx context.Context, id int64) error
}
