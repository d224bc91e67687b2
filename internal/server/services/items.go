package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/logging"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/dmitrijs2005/ufind/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ItemService {
	return &ItemService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "items"),
		now:         time.Now,
	}
}

// itemNotFound wraps common.ErrorNotFound as "item not found with id: <id>".
func itemNotFound(id string) error {
	return fmt.Errorf("item %w with id: %s", common.ErrorNotFound, id)
}

func (s *ItemService) List(ctx context.Context, page models.PageRequest) (*models.Page, error) {
	return s.repomanager.Items(s.db).List(ctx, page)
}

func (s *ItemService) Search(ctx context.Context, query string, status *models.ItemStatus, page models.PageRequest) (*models.Page, error) {
	return s.repomanager.Items(s.db).Search(ctx, query, status, page)
}

func (s *ItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.repomanager.Items(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, itemNotFound(id)
		}
		return nil, err
	}
	return item, nil
}

// Register stores a new item with a fresh id, AVAILABLE unless a status is
// given, and both timestamps set to now.
func (s *ItemService) Register(ctx context.Context, in models.NewItem) (*models.Item, error) {
	status := in.Status
	if status == "" {
		status = models.ItemStatusAvailable
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}

	now := s.now().UTC()
	item := &models.Item{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Description:   in.Description,
		DateFound:     in.DateFound,
		LocationFound: in.LocationFound,
		Status:        status,
		ImageURL:      in.ImageURL,
		ContactInfo:   in.ContactInfo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repomanager.Items(s.db).Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "item registered", "item_id", item.ID)
	return item, nil
}

// Claim marks the item CLAIMED. Claiming an item that is already CLAIMED
// succeeds without writing. Concurrent claims are last-write-wins.
func (s *ItemService) Claim(ctx context.Context, id string) (*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, itemNotFound(id)
		}
		return nil, err
	}

	if item.Status == models.ItemStatusClaimed {
		return item, nil
	}

	now := s.now().UTC()
	if err := repo.UpdateStatus(ctx, id, models.ItemStatusClaimed, now); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, itemNotFound(id)
		}
		return nil, err
	}

	item.Status = models.ItemStatusClaimed
	item.UpdatedAt = now

	s.logger.Info(ctx, "item claimed", "item_id", id)
	return item, nil
}
