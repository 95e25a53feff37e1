package domain

import (
	"errors"
	"fmt"
)

var (
	ErrComplaintNotFound    = errors.New("complaint not found")
	ErrBackendUnavailable   = errors.New("complaints backend unavailable")
	ErrRejected             = errors.New("request rejected by backend")
	ErrForbidden            = errors.New("access forbidden")
	ErrUnknownRole          = errors.New("unknown role")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrInvalidStatus        = errors.New("invalid complaint status")
	ErrInvalidFilter        = errors.New("invalid filter value")
	ErrValidation           = errors.New("validation failed")
	ErrNothingToSubmit      = errors.New("no status change in progress")
	ErrNoSelection          = errors.New("no complaint selected")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicateComplaint   = errors.New("complaint already exists")
)

// ErrorKind classifies a failure of the complaints backend so callers can
// make an explicit policy decision instead of treating every error alike.
type ErrorKind string

const (
	KindNone        ErrorKind = ""
	KindUnavailable ErrorKind = "unavailable"
	KindNotFound    ErrorKind = "not_found"
	KindRejected    ErrorKind = "rejected"
	KindUnknown     ErrorKind = "unknown"
)

// KindOf maps err onto an ErrorKind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrBackendUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrComplaintNotFound):
		return KindNotFound
	case errors.Is(err, ErrRejected):
		return KindRejected
	default:
		return KindUnknown
	}
}

// APIError is a non-2xx answer from the complaints backend.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

// NewAPIError wraps a backend response. kind must be one of the sentinel
// errors above so errors.Is keeps working.
func NewAPIError(statusCode int, message string, kind error) *APIError {
	return &APIError{StatusCode: statusCode, Message: message, kind: kind}
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }
