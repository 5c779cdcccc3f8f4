package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dsmirnov87/taskvault/internal/dbx"
	"github.com/dsmirnov87/taskvault/internal/server/models"
	"github.com/dsmirnov87/taskvault/internal/server/repositories/repomanager"
)

// TaskUpdate describes a partial update: nil fields keep their prior value.
type TaskUpdate struct {
	Heading     *string
	Description *string
	IsCompleted *bool
}

// TaskService provides owner-scoped CRUD over tasks.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService using repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create inserts a task owned by userID with the completion flag off.
func (s *TaskService) Create(ctx context.Context, userID int64, heading, description string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	task, err := repo.Create(ctx, &models.Task{
		UserID:      userID,
		Heading:     heading,
		Description: description,
		IsCompleted: false,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return task, nil
}

// GetByID fetches a task by id. No ownership filter is applied here: any
// authenticated user can read any task by id, matching the reference
// behavior. Listing is the owner-scoped path.
func (s *TaskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).GetByID(ctx, id)
}

// ListForOwner returns every task owned by userID; empty slice if none.
func (s *TaskService) ListForOwner(ctx context.Context, userID int64) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
}

// Update applies a partial update in a transaction: the current row is read,
// supplied fields replace prior values, and the merged task is written back.
func (s *TaskService) Update(ctx context.Context, id int64, upd TaskUpdate) (*models.Task, error) {
	var task *models.Task
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if upd.Heading != nil {
			current.Heading = *upd.Heading
		}
		if upd.Description != nil {
			current.Description = *upd.Description
		}
		if upd.IsCompleted != nil {
			current.IsCompleted = *upd.IsCompleted
		}
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		task = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task with the given id.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Tasks(s.db).Delete(ctx, id)
}
