package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrState        ErrorCode = "STATE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Snippet file errors (local to one file, never fatal to a search)
	ErrSnippetParse ErrorCode = "SNIPPET_PARSE"

	// Plugin errors (broken filters/globals resource, fatal to the render)
	ErrPluginLoad ErrorCode = "PLUGIN_LOAD"

	// Render errors
	ErrRender              ErrorCode = "RENDER"
	ErrVarUndefined        ErrorCode = "VAR_UNDEFINED"
	ErrFilter              ErrorCode = "FILTER"
	ErrMarkdownUnavailable ErrorCode = "MARKDOWN_UNAVAILABLE"
	ErrFileExists          ErrorCode = "FILE_EXISTS"

	// Delivery errors (OS boundary: clipboard, notifications, file writes)
	ErrDelivery  ErrorCode = "DELIVERY"
	ErrClipboard ErrorCode = "CLIPBOARD"
	ErrFileWrite ErrorCode = "FILE_WRITE"
)

// SnipError represents a structured error with code and details
type SnipError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SnipError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SnipError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SnipError) Is(target error) bool {
	var targetErr *SnipError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SnipError with the given code and message
func New(code ErrorCode, message string) *SnipError {
	return &SnipError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SnipError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SnipError {
	return &SnipError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SnipError
func Wrap(err error, code ErrorCode, message string) *SnipError {
	if err == nil {
		return nil
	}
	return &SnipError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SnipError {
	if err == nil {
		return nil
	}
	return &SnipError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SnipError) WithDetail(key string, value interface{}) *SnipError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var snipErr *SnipError
	if errors.As(err, &snipErr) {
		return snipErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SnipError
func GetErrorCode(err error) ErrorCode {
	var snipErr *SnipError
	if errors.As(err, &snipErr) {
		return snipErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SnipError
func GetErrorDetails(err error) map[string]interface{} {
	var snipErr *SnipError
	if errors.As(err, &snipErr) {
		return snipErr.Details
	}
	return nil
}
