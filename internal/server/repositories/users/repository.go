// Package users declares the server-side repository contract for user
// identity records.
package users

import (
	"context"

	"github.com/akorchagin/authgate/internal/server/models"
)

// Repository defines persistence operations for user records.
type Repository interface {
	// Create inserts a new user and returns it with the generated id and
	// timestamps filled in. Inserting a duplicate email returns
	// common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
