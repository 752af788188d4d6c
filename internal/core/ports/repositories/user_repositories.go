package repositories

import (
	"context"
	"time"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindActiveUsersByRoles retrieves all active users holding any of the
	// given roles; used for notification recipient resolution.
	FindActiveUsersByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error)

	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateUserPassword sets a new password hash.
	UpdateUserPassword(ctx context.Context, userID string, passwordHash string, updatedBy string, updatedAt time.Time) error

	// UpdateRefreshToken stores the hashed refresh token and its expiry.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
