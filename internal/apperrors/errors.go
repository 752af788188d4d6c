package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no valid actor context accompanied the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the actor lacks the role or relationship required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrSequencing indicates an action was attempted out of workflow order.
var ErrSequencing = errors.New("workflow sequencing error")

// ErrConflict indicates the resource is in a state that conflicts with the requested action.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure whose details must not leak to clients.
var ErrInternal = errors.New("internal error")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// AppError wraps a lower-level error with a code and a message safe to log.
// Repositories use it so store failures surface as a single generic
// internal error at the API boundary.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInternal
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
