package service

import (
	"errors"

	"github.com/owakeel/golf-music-backend/internal/model"
)

// Sentinel errors returned by the services. Their messages are the exact
// client-facing texts; the HTTP layer maps them to status codes.
var (
	ErrCastNotFound  = errors.New("Podcast not found")
	ErrMerchNotFound = errors.New("Merch item not found")
	ErrWaveNotFound  = errors.New("Wave not found")
	ErrUserNotFound  = errors.New("User not found or account deleted.")

	ErrUnauthenticated = errors.New("Unauthorized access. Please log in.")

	ErrEmailDelivery = errors.New("Failed to send verification email. Please try again.")
)

// ValidationError reports request-level validation failures. Fields lists one
// entry per failing field, in the order the fields were checked.
type ValidationError struct {
	Message string
	Fields  []model.FieldError
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError reports a duplicate-detection failure. Fields names the
// conflicting dimensions when the endpoint reports them.
type ConflictError struct {
	Message string
	Fields  []model.FieldError
}

func (e *ConflictError) Error() string {
	return e.Message
}

// CredentialsError reports a failed login. The outward message is always the
// same; Field and FieldMessage carry the precise reason for the errors list.
type CredentialsError struct {
	Field        string
	FieldMessage string
}

func (e *CredentialsError) Error() string {
	return "Invalid email or password"
}
