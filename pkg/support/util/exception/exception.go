// Package exception provides the typed error used across tidecast.
// Errors are categorized by Kind so that HTTP handlers, retry policies and
// collection orchestrators can apply uniform handling policies.
package exception

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Kind classifies an AppError for policy decisions (HTTP status mapping,
// retryability, collection-run status aggregation).
type Kind string

const (
	// KindValidation indicates missing or malformed request parameters.
	KindValidation Kind = "validation"
	// KindAuth indicates missing or invalid credentials.
	KindAuth Kind = "auth"
	// KindNotFound indicates no matching row for the request.
	KindNotFound Kind = "not_found"
	// KindRateLimit indicates a rejected request due to throttling.
	KindRateLimit Kind = "rate_limit"
	// KindUpstreamFetch indicates an external API non-2xx response or malformed payload.
	KindUpstreamFetch Kind = "upstream_fetch"
	// KindUpstreamTimeout indicates an external call exceeded its deadline.
	KindUpstreamTimeout Kind = "upstream_timeout"
	// KindPersistence indicates a rejected datastore write.
	KindPersistence Kind = "persistence"
	// KindUnhandled covers everything else.
	KindUnhandled Kind = "unhandled"
)

// AppError is the error type used across the service. It holds the module
// where the error occurred, its Kind, a message, the wrapped original error,
// and a flag indicating whether it is retryable.
type AppError struct {
	// Module indicates the component where the error occurred (e.g. "provider.kma", "collect", "api").
	Module string
	// Kind classifies the error.
	Kind Kind
	// Message is a concise description of the error.
	Message string
	// OriginalErr is the wrapped original error.
	OriginalErr error
	// isRetryable indicates whether this error is retryable.
	isRetryable bool
	// StackTrace is the stack trace at the time of the error (for debugging).
	StackTrace string
}

// NewAppError creates a new AppError instance.
func NewAppError(module string, kind Kind, message string, originalErr error, isRetryable bool) *AppError {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)

	return &AppError{
		Module:      module,
		Kind:        kind,
		Message:     message,
		OriginalErr: originalErr,
		isRetryable: isRetryable,
		StackTrace:  string(buf[:n]),
	}
}

// NewAppErrorf creates a new AppError with a formatted message.
// The error is not retryable and carries no cause; use NewAppError when
// either is needed.
func NewAppErrorf(module string, kind Kind, format string, a ...interface{}) *AppError {
	return NewAppError(module, kind, fmt.Sprintf(format, a...), nil, false)
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Module, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s", e.Module, e.Message)
}

// Unwrap returns the original error for errors.Unwrap.
func (e *AppError) Unwrap() error {
	return e.OriginalErr
}

// IsRetryable returns whether this error is retryable.
func (e *AppError) IsRetryable() bool {
	return e.isRetryable
}

// KindOf returns the Kind of an error. Non-AppError values, including nil
// wrapped chains without an AppError, report KindUnhandled.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnhandled
}

// IsAppError determines if the given error chain contains an AppError.
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// IsTemporary determines if an error is temporary (network error, timeout,
// transient DB connection issue). Retry logic uses this as a fallback when
// the error carries no explicit retryable flag.
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.IsRetryable()
	}
	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "EOF")
}

// ExtractErrorMessage extracts the message string from an error.
// For AppError it returns the cleaner Message field.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
