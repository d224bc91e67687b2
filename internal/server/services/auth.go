// Package services contains the server-side business logic. AuthService
// handles login and admin-gated registration, ItemService the item catalogue
// and ImageService presigned uploads of item pictures.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/dbx"
	"github.com/dmitrijs2005/ufind/internal/logging"
	"github.com/dmitrijs2005/ufind/internal/server/auth"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/dmitrijs2005/ufind/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	logger      logging.Logger
	now         func() time.Time
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		logger:      logger.With("module", "auth"),
		now:         time.Now,
	}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies the credentials and returns a signed token for the stored
// role. Unknown emails and wrong passwords both yield
// common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unusable", "user_id", user.ID, "error", err)
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID, "role", string(user.Role))
	return token, nil
}

// Register creates a user. The role and account fields are checked before
// any store access and the existence check and insert share one
// transaction. No token is issued.
func (s *AuthService) Register(ctx context.Context, username, email, password, roleName string) (*models.User, error) {
	role, ok := models.ParseRole(roleName)
	if !ok {
		return nil, common.ErrInvalidRole
	}
	if err := models.ValidateRegistration(username, email, password); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	email = NormalizeEmail(email)

	var created *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrDuplicateUser
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}

		created, err = repo.Create(ctx, &models.User{
			ID:           uuid.NewString(),
			UserName:     strings.TrimSpace(username),
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			CreatedAt:    s.now().UTC(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID, "role", string(created.Role))
	return created, nil
}

// Authenticate validates a token and resolves its subject to a stored user.
// It yields the token errors of auth.TokenService or common.ErrUnknownSubject.
// Any other error comes from the store.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownSubject
		}
		return nil, fmt.Errorf("error resolving token subject: %w", err)
	}

	return &models.Identity{Email: user.Email, Role: user.Role}, nil
}

// TokenTTL is the lifetime of issued tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}
