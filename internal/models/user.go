package models

import "time"

// User is a persisted user row.
type User struct {
	UserID                 string     `json:"userID"` // Primary Key
	Username               string     `json:"username"`
	Name                   string     `json:"name"`
	Role                   string     `json:"role"`
	Department             string     `json:"department"`
	PasswordHash           string     `json:"-"`
	IsActive               bool       `json:"isActive"`
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
}
