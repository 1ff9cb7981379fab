package auth

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidState = errors.New("invalid or expired oauth state")
	ErrMissingCode  = errors.New("authorization code is missing")
)

// ProviderError - Google trả lỗi hoặc không gọi được, ErrorHandler map ra 502
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return "oauth provider error during " + e.Op
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) HTTPStatus() int { return http.StatusBadGateway }
