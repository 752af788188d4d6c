package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lgufms/voucher_tracking_app/internal/apperrors"
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
	"github.com/lgufms/voucher_tracking_app/internal/middleware"
	"github.com/lgufms/voucher_tracking_app/internal/utils"
)

var ErrUnknownRole = errors.New("unknown role")

// userService provides user account operations.
type userService struct {
	userRepo  portsrepo.UserRepositoryFacade
	auditRepo portsrepo.AuditRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, auditRepo portsrepo.AuditRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, auditRepo: auditRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnknownRole.Error())
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Role:         req.Role,
		Department:   req.Department,
		PasswordHash: passwordHash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to create user", slog.String("error", err.Error()))
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, limit, offset)
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnknownRole.Error())
		}
		user.Role = *req.Role
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Uniform failure keeps usernames unguessable.
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest, actor domain.Actor) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrUnauthorized
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateUserPassword(ctx, userID, newHash, actor.UserID, now); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update password", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	entry := domain.AuditEntry{
		EntryID:    uuid.NewString(),
		Action:     domain.ActionPasswordChange,
		EntityType: "user",
		EntityID:   userID,
		UserID:     actor.UserID,
		UserRole:   actor.Role,
		CreatedAt:  now,
	}
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record password change audit entry", slog.String("user_id", userID), slog.String("error", err.Error()))
	}
	return nil
}

func (s *userService) FindOrCreateOAuthUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, info.Email)
	if err == nil {
		if !user.IsActive {
			return nil, apperrors.ErrUnauthorized
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// First login: provision a requester account. The password is random
	// and unrecoverable; OAuth is the only way in for these accounts.
	randomSecret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, err
	}
	passwordHash, err := utils.HashPassword(randomSecret)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:       uuid.NewString(),
		Username:     info.Email,
		Name:         info.Name,
		Role:         domain.RoleRequester,
		PasswordHash: passwordHash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "oauth",
			LastUpdatedAt: now,
			LastUpdatedBy: "oauth",
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("OAuth user provisioned", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

func (s *userService) UpdateRefreshTokenHash(ctx context.Context, userID string, hash string, expiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, hash, expiryTime)
}
