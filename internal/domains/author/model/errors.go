package model

import "errors"

var (
	// Business Rule Errors
	ErrAuthorNotFound     = errors.New("author not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrOAuthIDTaken       = errors.New("oauth account already linked")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Validation Errors
	ErrInvalidBirthDate    = errors.New("birthDate must be a valid YYYY-MM-DD date")
	ErrInvalidOAuthProfile = errors.New("oauth profile is missing id or email")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrOAuthIDTaken):
		return "EMAIL_ALREADY_EXISTS"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrInvalidBirthDate), errors.Is(err, ErrInvalidOAuthProfile):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrOAuthIDTaken):
		return 409
	case errors.Is(err, ErrInvalidCredentials):
		return 401
	case errors.Is(err, ErrInvalidBirthDate), errors.Is(err, ErrInvalidOAuthProfile):
		return 400
	default:
		return 500
	}
}
