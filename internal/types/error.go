package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types carried in CustomError.Type
const (
	ErrTypeValidation = "validation"
	ErrTypeAuth       = "auth"
	ErrTypeForbidden  = "forbidden"
	ErrTypeNotFound   = "not_found"
	ErrTypeConflict   = "conflict"
	ErrTypeStorage    = "storage"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Err     error  `json:"-"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// ValidationError is returned for missing or malformed input (400).
func ValidationError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), Type: ErrTypeValidation}
}

// AuthError is returned for a missing or invalid session (401).
func AuthError(message string, err error) *CustomError {
	return &CustomError{Code: http.StatusUnauthorized, Message: message, Type: ErrTypeAuth, Err: err}
}

// ForbiddenError is returned when the session may not touch the record (403).
func ForbiddenError(message string) *CustomError {
	return &CustomError{Code: http.StatusForbidden, Message: message, Type: ErrTypeForbidden}
}

// NotFoundError is returned when a record does not exist (404).
func NotFoundError(format string, args ...any) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...), Type: ErrTypeNotFound}
}

// ConflictError is returned when a write-once field was already written (409).
func ConflictError(message string) *CustomError {
	return &CustomError{Code: http.StatusConflict, Message: message, Type: ErrTypeConflict}
}

// StorageError wraps a record or object store failure (500). The store's message
// is passed through unchanged.
func StorageError(err error) *CustomError {
	return &CustomError{Code: http.StatusInternalServerError, Message: err.Error(), Type: ErrTypeStorage, Err: err}
}

// AsCustomError returns err as a *CustomError, wrapping unknown errors as storage errors.
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return StorageError(err)
}

// AsAuthError keeps a typed error and reports anything else as an authentication failure.
func AsAuthError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return AuthError("invalid token", err)
}
