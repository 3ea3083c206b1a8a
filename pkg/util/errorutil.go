package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewMissingParameters() error {
	return NewDomainError("MISSING_PARAMETERS", "missing parameters", http.StatusBadRequest, nil)
}

func NewNotFound(resource string) error {
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

// NewActionNotAllowed signals that no acceptable privilege covers the request.
func NewActionNotAllowed() error {
	return NewDomainError("ACTION_NOT_ALLOWED", "action not allowed", http.StatusForbidden, nil)
}

// NewTokenExpired signals that the presented session token has expired and the
// caller must re-authenticate or call refresh.
func NewTokenExpired() error {
	return NewDomainError("TOKEN_EXPIRED", "session token has expired", http.StatusUnauthorized, nil)
}

// NewAlreadyLoggedIn signals a valid token presented to a logged-out-only route.
func NewAlreadyLoggedIn() error {
	return NewDomainError("ALREADY_LOGGED_IN", "user is logged in", http.StatusConflict, nil)
}

// NewReloginRequired signals that the token cannot be refreshed; it is terminal
// for that token.
func NewReloginRequired() error {
	return NewDomainError("RELOGIN_REQUIRED", "re-login required", http.StatusUnauthorized, nil)
}

// NewTokenStillValid signals a refresh attempt with an unexpired token.
func NewTokenStillValid() error {
	return NewDomainError("TOKEN_STILL_VALID", "session token is still valid", http.StatusBadRequest, nil)
}

// NewServiceOffline short-circuits every route while offline mode is set.
func NewServiceOffline() error {
	return NewDomainError("SERVICE_OFFLINE", "service is offline", http.StatusServiceUnavailable, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsCode reports whether err carries the given domain error code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
