package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dsmirnov87/taskvault/internal/common"
	"github.com/dsmirnov87/taskvault/internal/dbx"
	"github.com/dsmirnov87/taskvault/internal/server/auth"
	"github.com/dsmirnov87/taskvault/internal/server/models"
	revokedtokensrepo "github.com/dsmirnov87/taskvault/internal/server/repositories/revokedtokens"
	tasksrepo "github.com/dsmirnov87/taskvault/internal/server/repositories/tasks"
	usersrepo "github.com/dsmirnov87/taskvault/internal/server/repositories/users"
)

// --- shared test helpers and fakes ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager([]byte("k"), time.Hour, 2*time.Hour)
}

type fakeUsersRepo struct {
	byUsername map[string]*models.User
	byEmail    map[string]*models.User

	createOut *models.User
	createErr error
	getErr    error
	updateErr error

	updatedEmail string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) UpdateEmail(ctx context.Context, username string, email string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedEmail = email
	return nil
}

type fakeTasksRepo struct {
	tasks map[int64]*models.Task

	createErr error
	listErr   error

	updated *models.Task
	deleted []int64
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	task.ID = int64(len(f.tasks) + 1)
	if f.tasks == nil {
		f.tasks = map[int64]*models.Task{}
	}
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	if task, ok := f.tasks[id]; ok {
		copied := *task
		return &copied, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeTasksRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := []*models.Task{}
	for _, task := range f.tasks {
		if task.UserID == userID {
			result = append(result, task)
		}
	}
	return result, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return common.ErrorNotFound
	}
	f.tasks[task.ID] = task
	f.updated = task
	return nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.tasks, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRevokedRepo struct {
	revoked map[string]bool

	revokeErr error
	lookupErr error
}

func (f *fakeRevokedRepo) Revoke(ctx context.Context, jti string) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[jti] = true
	return nil
}

func (f *fakeRevokedRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.revoked[jti], nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	tk *fakeTasksRepo
	rv *fakeRevokedRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository      { return m.tk }
func (m *fakeRepoManager) RevokedTokens(db dbx.DBTX) revokedtokensrepo.Repository {
	return m.rv
}
