package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/dbx"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/dmitrijs2005/ufind/internal/server/repositories/items"
	"github.com/dmitrijs2005/ufind/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func fixedNow() time.Time {
	return time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
}

type fakeUsersRepo struct {
	byEmail map[string]*models.User

	getErr    error
	existsErr error
	createErr error

	getCalls    int
	existsCalls int
	createCalls int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeItemsRepo struct {
	byID map[string]*models.Item

	createErr error
	updateErr error

	created      []*models.Item
	statusWrites int
	imageWrites  map[string]string
	lastPage     models.PageRequest
	lastQuery    string
	lastStatus   *models.ItemStatus
}

func newFakeItemsRepo(seed ...*models.Item) *fakeItemsRepo {
	f := &fakeItemsRepo{byID: map[string]*models.Item{}, imageWrites: map[string]string{}}
	for _, it := range seed {
		f.byID[it.ID] = it
	}
	return f
}

func (f *fakeItemsRepo) Create(_ context.Context, it *models.Item) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, it)
	f.byID[it.ID] = it
	return nil
}

func (f *fakeItemsRepo) GetByID(_ context.Context, id string) (*models.Item, error) {
	it, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemsRepo) List(_ context.Context, page models.PageRequest) (*models.Page, error) {
	f.lastPage = page
	return &models.Page{Items: []*models.Item{}, Number: page.Number, Size: page.Size}, nil
}

func (f *fakeItemsRepo) Search(_ context.Context, query string, status *models.ItemStatus, page models.PageRequest) (*models.Page, error) {
	f.lastQuery, f.lastStatus, f.lastPage = query, status, page
	return &models.Page{Items: []*models.Item{}, Number: page.Number, Size: page.Size}, nil
}

func (f *fakeItemsRepo) UpdateStatus(_ context.Context, id string, status models.ItemStatus, updatedAt time.Time) error {
	f.statusWrites++
	if f.updateErr != nil {
		return f.updateErr
	}
	it, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	it.Status = status
	it.UpdatedAt = updatedAt
	return nil
}

func (f *fakeItemsRepo) SetImage(_ context.Context, id string, url string, updatedAt time.Time) error {
	it, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	it.ImageURL = &url
	it.UpdatedAt = updatedAt
	f.imageWrites[id] = url
	return nil
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	items *fakeItemsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Items(dbx.DBTX) items.Repository              { return m.items }
