// Package users declares the repository contract for persisting user accounts.
package users

import (
	"context"

	"github.com/dsmirnov87/taskvault/internal/server/models"
)

// Repository defines the persistence operations on users. Lookups return
// common.ErrorNotFound when no row matches; absence is not a failure.
type Repository interface {
	// Create inserts a new user and returns it with the assigned id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername looks up a user by exact username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByEmail looks up a user by exact email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks up a user by id.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// UpdateEmail replaces the email of the user with the given username.
	UpdateEmail(ctx context.Context, username string, email string) error
}
