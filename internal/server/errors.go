// Package server provides the HTTP REST API for CofounderConnect.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrNoProfile indicates the caller has not selected a role yet
type ErrNoProfile struct{}

func (e *ErrNoProfile) Error() string {
	return "no profile: role has not been selected"
}

// ErrRoleMismatch indicates the caller's role does not allow the operation
type ErrRoleMismatch struct {
	Role string
}

func (e *ErrRoleMismatch) Error() string {
	return fmt.Sprintf("operation not allowed for role %q", e.Role)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrNoProfile:
		return http.StatusPreconditionFailed
	case *ErrRoleMismatch:
		return http.StatusForbidden
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
