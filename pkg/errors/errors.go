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

	// Dispatch errors
	ErrPathNotFound ErrorCode = "PATH_NOT_FOUND"
	ErrNoHandler    ErrorCode = "NO_HANDLER"

	// External tool errors
	ErrToolUnavailable ErrorCode = "TOOL_UNAVAILABLE"
	ErrToolFailed      ErrorCode = "TOOL_FAILED"
	ErrToolTimeout     ErrorCode = "TOOL_TIMEOUT"

	// Content errors
	ErrContentInvalid ErrorCode = "CONTENT_INVALID"
	ErrSizeExceeded   ErrorCode = "SIZE_EXCEEDED"
	ErrFileAccess     ErrorCode = "FILE_ACCESS"

	// Configuration errors
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// LvError represents a structured error with code and details
type LvError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LvError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LvError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LvError) Is(target error) bool {
	var targetErr *LvError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LvError with the given code and message
func New(code ErrorCode, message string) *LvError {
	return &LvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LvError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LvError {
	return &LvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an LvError
func Wrap(err error, code ErrorCode, message string) *LvError {
	if err == nil {
		return nil
	}
	return &LvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LvError {
	if err == nil {
		return nil
	}
	return &LvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LvError) WithDetail(key string, value interface{}) *LvError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lvErr *LvError
	if errors.As(err, &lvErr) {
		return lvErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an LvError
func GetErrorCode(err error) ErrorCode {
	var lvErr *LvError
	if errors.As(err, &lvErr) {
		return lvErr.Code
	}
	return ErrUnknown
}

// IsRecoverable reports whether an error should be absorbed into a fallback
// rendering path rather than fail the invocation. Only a missing target path
// (or an unreadable target) is fatal.
func IsRecoverable(err error) bool {
	switch GetErrorCode(err) {
	case ErrToolUnavailable, ErrToolFailed, ErrToolTimeout,
		ErrContentInvalid, ErrSizeExceeded, ErrConfigParse, ErrConfigValid:
		return true
	}
	return false
}
