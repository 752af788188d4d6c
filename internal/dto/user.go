package dto

import (
	"time"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// CreateUserRequest defines the payload for creating a user.
type CreateUserRequest struct {
	Username   string      `json:"username" binding:"required"`
	Name       string      `json:"name" binding:"required"`
	Password   string      `json:"password" binding:"required,min=8"`
	Role       domain.Role `json:"role" binding:"required"`
	Department string      `json:"department"`
}

// UpdateUserRequest defines the payload for updating a user.
type UpdateUserRequest struct {
	Name       *string      `json:"name,omitempty"`
	Role       *domain.Role `json:"role,omitempty"`
	Department *string      `json:"department,omitempty"`
	IsActive   *bool        `json:"isActive,omitempty"`
}

// ChangePasswordRequest defines the payload for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID     string      `json:"userID"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	Office     string      `json:"office"`
	Department string      `json:"department"`
	IsActive   bool        `json:"isActive"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ToUserResponse converts a domain user to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       u.Role,
		Office:     domain.OfficeName(u.Role),
		Department: u.Department,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}
