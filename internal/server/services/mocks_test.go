package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cadastr/internal/common"
	"github.com/dmitrijs2005/cadastr/internal/dbx"
	"github.com/dmitrijs2005/cadastr/internal/server/external"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
	"github.com/dmitrijs2005/cadastr/internal/server/repositories/querylogs"
	"github.com/dmitrijs2005/cadastr/internal/server/repositories/users"
)

// fakeUsersRepo is an in-memory users.Repository keyed by email.
type fakeUsersRepo struct {
	byEmail   map[string]*models.User
	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (r *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, common.ErrEmailExists
	}
	u.IsActive = true
	r.byEmail[u.Email] = u
	return u, nil
}

func (r *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

// fakeLogsRepo records created logs and serves canned lists.
type fakeLogsRepo struct {
	created   []*models.QueryLog
	list      []models.QueryLog
	createErr error
	listErr   error
}

func (r *fakeLogsRepo) Create(ctx context.Context, l *models.QueryLog) (*models.QueryLog, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, l)
	return l, nil
}

func (r *fakeLogsRepo) List(ctx context.Context, cadastralNumber string) ([]models.QueryLog, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if cadastralNumber == "" {
		return r.list, nil
	}
	out := []models.QueryLog{}
	for _, l := range r.list {
		if l.CadastralNumber == cadastralNumber {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeManager hands out the fakes regardless of the db handle.
type fakeManager struct {
	users *fakeUsersRepo
	logs  *fakeLogsRepo
}

func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeManager) Users(db dbx.DBTX) users.Repository { return m.users }

func (m *fakeManager) QueryLogs(db dbx.DBTX) querylogs.Repository { return m.logs }

// fakeLookup returns a canned provider outcome.
type fakeLookup struct {
	result *external.Result
	err    error
	calls  int
}

func (c *fakeLookup) Lookup(ctx context.Context, cadastralNumber string, latitude, longitude float64) (*external.Result, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}
