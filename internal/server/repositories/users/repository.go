package users

import (
	"context"

	"github.com/dmitrijs2005/ufind/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	// Create inserts a user. A taken email yields common.ErrDuplicateUser.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail yields common.ErrorNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
