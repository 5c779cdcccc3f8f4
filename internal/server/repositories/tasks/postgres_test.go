package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dsmirnov87/taskvault/internal/common"
	"github.com/dsmirnov87/taskvault/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(1))
	mock.ExpectQuery(`INSERT\s+INTO\s+tasks\s*\(user_id,\s*heading,\s*description,\s*is_completed\)`).
		WithArgs(int64(5), "Task1", "Task1 Description", false).
		WillReturnRows(rows)

	task := &models.Task{UserID: 5, Heading: "Task1", Description: "Task1 Description"}
	got, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected id: %d", got.ID)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user_id,\s*heading,\s*description,\s*is_completed\s+FROM\s+tasks\s+WHERE\s+id`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestListByUser_ReturnsOwnedTasks(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "heading", "description", "is_completed"}).
		AddRow(int64(1), int64(5), "Task1", "Task1 Description", false).
		AddRow(int64(2), int64(5), "Task2", "Task2 Description", true)
	mock.ExpectQuery(`SELECT\s+id,\s*user_id,\s*heading,\s*description,\s*is_completed\s+FROM\s+tasks\s+WHERE\s+user_id`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].Heading != "Task1" || !got[1].IsCompleted {
		t.Fatalf("unexpected tasks: %+v", got)
	}
}

func TestListByUser_EmptyIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user_id,\s*heading,\s*description,\s*is_completed\s+FROM\s+tasks\s+WHERE\s+user_id`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "heading", "description", "is_completed"}))

	got, err := repo.ListByUser(context.Background(), 9)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %+v", got)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+tasks\s+SET\s+heading\s*=\s*\$1,\s*description\s*=\s*\$2,\s*is_completed\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$4`).
		WithArgs("Task1", "Task1 Description", true, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &models.Task{ID: 1, Heading: "Task1", Description: "Task1 Description", IsCompleted: true}
	if err := repo.Update(context.Background(), task); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+tasks\s+SET`).
		WithArgs("x", "y", false, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Task{ID: 42, Heading: "x", Description: "y"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+tasks\s+WHERE\s+id`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+tasks\s+WHERE\s+id`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 42); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
