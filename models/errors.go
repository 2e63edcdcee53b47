package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies operation failures so callers can decide
// retry-vs-abort programmatically instead of parsing message strings.
type ErrorKind string

const (
	KindUnauthenticated  ErrorKind = "unauthenticated"
	KindPermissionDenied ErrorKind = "permission_denied"
	KindNotFound         ErrorKind = "not_found"
	KindInvalidArgument  ErrorKind = "invalid_argument"
	KindAlreadyExists    ErrorKind = "already_exists"
	KindInternal         ErrorKind = "internal"
)

// AppError carries an error kind alongside the message. Retryable is set
// only for Internal failures of idempotent operations; Match and
// SendMessage failures are never retryable without a dedupe key.
type AppError struct {
	Kind      ErrorKind
	Message   string
	Retryable bool
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// ErrUnauthenticated builds an unauthenticated error.
func ErrUnauthenticated(msg string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: msg}
}

// ErrPermissionDenied builds a permission-denied error.
func ErrPermissionDenied(msg string) *AppError {
	return &AppError{Kind: KindPermissionDenied, Message: msg}
}

// ErrNotFound builds a not-found error.
func ErrNotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

// ErrInvalidArgument builds an invalid-argument error.
func ErrInvalidArgument(msg string) *AppError {
	return &AppError{Kind: KindInvalidArgument, Message: msg}
}

// ErrAlreadyExists builds an already-exists error.
func ErrAlreadyExists(msg string) *AppError {
	return &AppError{Kind: KindAlreadyExists, Message: msg}
}

// ErrInternal wraps a store failure. retryable marks whether a caller may
// safely retry the operation.
func ErrInternal(msg string, err error, retryable bool) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Retryable: retryable, Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal for plain
// errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsRetryable reports whether the caller may retry the failed operation.
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable
	}
	return false
}
