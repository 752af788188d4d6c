package services

import (
	"context"
	"time"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
)

// UserSvcFacade exposes user account operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error)

	// AuthenticateUser verifies username/password and returns the user.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)

	// ChangePassword verifies the current password, stores the new hash and
	// appends a PASSWORD_CHANGE audit entry.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest, actor domain.Actor) error

	// FindOrCreateOAuthUser resolves a Google profile to a local account,
	// creating a REQUESTER account on first login.
	FindOrCreateOAuthUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)

	// UpdateRefreshTokenHash stores the hashed refresh token on the user row.
	UpdateRefreshTokenHash(ctx context.Context, userID string, hash string, expiryTime time.Time) error
}
