// Package tasks declares the repository contract for persisting tasks.
package tasks

import (
	"context"

	"github.com/dsmirnov87/taskvault/internal/server/models"
)

// Repository defines the CRUD operations on tasks.
type Repository interface {
	// Create inserts a new task and returns it with the assigned id.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// GetByID looks up a task by id, returning common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id int64) (*models.Task, error)

	// ListByUser returns all tasks owned by userID, in no guaranteed order.
	ListByUser(ctx context.Context, userID int64) ([]*models.Task, error)

	// Update replaces the mutable fields of the task with the given id.
	Update(ctx context.Context, task *models.Task) error

	// Delete removes the task with the given id, returning
	// common.ErrorNotFound when no such task exists.
	Delete(ctx context.Context, id int64) error
}
