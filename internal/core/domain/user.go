package domain

import "time"

// User represents a system user account tied to an organizational role.
type User struct {
	UserID       string `json:"userID"` // Primary Key (e.g., UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Department   string `json:"department"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	// Refresh token state for session renewal
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
}

// Actor is the authenticated identity acting on a request, supplied by the
// auth layer and trusted as already verified.
type Actor struct {
	UserID     string `json:"userID"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

// GoogleUserInfo holds the profile fields returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
