package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/logging"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemService(t *testing.T, repo *fakeItemsRepo) *ItemService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	s := NewItemService(db, &fakeRepoManager{items: repo}, logging.Nop())
	s.now = fixedNow
	return s
}

func storedItem(id string, status models.ItemStatus) *models.Item {
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return &models.Item{ID: id, Title: "Keys", Status: status, CreatedAt: created, UpdatedAt: created}
}

func TestRegisterItem_Defaults(t *testing.T) {
	repo := newFakeItemsRepo()
	s := newItemService(t, repo)

	it, err := s.Register(context.Background(), models.NewItem{
		Title:         "Wallet",
		Description:   "Brown leather",
		DateFound:     time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC),
		LocationFound: "Cafeteria",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, models.ItemStatusAvailable, it.Status)
	assert.Equal(t, fixedNow(), it.CreatedAt)
	assert.Equal(t, it.CreatedAt, it.UpdatedAt)
	require.Len(t, repo.created, 1)
	assert.Same(t, it, repo.created[0])
}

func TestRegisterItem_ExplicitStatus(t *testing.T) {
	repo := newFakeItemsRepo()
	s := newItemService(t, repo)

	it, err := s.Register(context.Background(), models.NewItem{Title: "Hat", Status: models.ItemStatusClaimed})
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusClaimed, it.Status)

	_, err = s.Register(context.Background(), models.NewItem{Title: "Hat", Status: "LOST"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegisterItem_StoreError(t *testing.T) {
	repo := newFakeItemsRepo()
	boom := errors.New("boom")
	repo.createErr = boom
	s := newItemService(t, repo)

	_, err := s.Register(context.Background(), models.NewItem{Title: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestGetItem_NotFoundMessage(t *testing.T) {
	s := newItemService(t, newFakeItemsRepo())

	_, err := s.Get(context.Background(), "abc")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "item not found with id: abc", err.Error())
}

func TestClaim_TransitionsOnce(t *testing.T) {
	repo := newFakeItemsRepo(storedItem("i1", models.ItemStatusAvailable))
	s := newItemService(t, repo)

	first, err := s.Claim(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusClaimed, first.Status)
	assert.Equal(t, fixedNow(), first.UpdatedAt)
	assert.Equal(t, 1, repo.statusWrites)

	second, err := s.Claim(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusClaimed, second.Status)
	assert.Equal(t, 1, repo.statusWrites, "claiming a claimed item must not write")
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
}

func TestClaim_Missing(t *testing.T) {
	repo := newFakeItemsRepo()
	s := newItemService(t, repo)

	_, err := s.Claim(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "not found")
	assert.Zero(t, repo.statusWrites)
}

func TestClaim_UpdateError(t *testing.T) {
	repo := newFakeItemsRepo(storedItem("i2", models.ItemStatusAvailable))
	boom := errors.New("boom")
	repo.updateErr = boom
	s := newItemService(t, repo)

	_, err := s.Claim(context.Background(), "i2")
	assert.ErrorIs(t, err, boom)
}

func TestListAndSearch_PassThrough(t *testing.T) {
	repo := newFakeItemsRepo()
	s := newItemService(t, repo)
	page := models.PageRequest{Number: 2, Size: 5, Sort: "title"}

	got, err := s.List(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, page, repo.lastPage)
	assert.Equal(t, 2, got.Number)

	status := models.ItemStatusClaimed
	_, err = s.Search(context.Background(), "umbrella", &status, page)
	require.NoError(t, err)
	assert.Equal(t, "umbrella", repo.lastQuery)
	require.NotNil(t, repo.lastStatus)
	assert.Equal(t, status, *repo.lastStatus)
}
