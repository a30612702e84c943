package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every AppError carries exactly one of these so callers can
// branch with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrInternal     = errors.New("internal server error")
)

// AppError is an error with a kind and a client-facing message.
// Err, when set, is the underlying cause and is never sent to clients.
type AppError struct {
	Kind    error
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
	return e.Err
}

// Is matches the error kind, so errors.Is(err, ErrNotFound) works on any
// AppError of that kind.
func (e *AppError) Is(target error) bool {
	return e.Kind == target
}

// New creates a new AppError.
func New(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func Validation(format string, args ...any) *AppError {
	return New(ErrValidation, fmt.Sprintf(format, args...), nil)
}

func Unauthorized(message string) *AppError {
	return New(ErrUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(ErrForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(ErrNotFound, message, nil)
}

func Conflict(message string, err error) *AppError {
	return New(ErrConflict, message, err)
}

// Internal wraps an unexpected failure. The message shown to clients is
// always the generic one.
func Internal(err error) *AppError {
	return New(ErrInternal, ErrInternal.Error(), err)
}

// StatusCode maps an error to its HTTP status. Unknown errors are 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err. Anything that is not a
// non-internal AppError gets the generic internal message.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != ErrInternal {
		return appErr.Message
	}
	return ErrInternal.Error()
}
