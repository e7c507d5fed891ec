// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrEmptyBatch = errors.New("no phone numbers to analyze")

	// Analysis service errors.
	ErrTransport = errors.New("analysis service unreachable")
	ErrAPI       = errors.New("analysis service error")

	// Database errors.
	ErrNotFound = errors.New("not found")

	// Export errors.
	ErrNoData = errors.New("no data to export")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// TransportError reports that a request never produced an HTTP response.
type TransportError struct {
	Err error
	Op  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// APIError reports a non-success response from the analysis service.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}

// Describe turns an analysis failure into the message shown to the user.
func Describe(err error) string {
	var apiErr *APIError
	switch {
	case errors.Is(err, ErrEmptyBatch):
		return "Vui lòng nhập ít nhất một số điện thoại"
	case errors.Is(err, ErrTransport):
		return "Không thể kết nối đến API. Kiểm tra: (1) API có đang chạy không? (2) URL API có đúng không? (3) Kết nối mạng?"
	case errors.As(err, &apiErr):
		return "Lỗi: " + apiErr.Message
	case err != nil:
		return "Lỗi: " + err.Error()
	}
	return ""
}
