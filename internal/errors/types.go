// Package errors defines the structured error type returned by the script
// pipeline. Every failure carries an ErrorType and a stable code so callers
// can branch with errors.Is / errors.As instead of matching messages.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeResourceNotFound = "ERR_RESOURCE_NOT_FOUND"
	ErrCodeInvalidArgument  = "ERR_INVALID_ARGUMENT"
	ErrCodeDuplicate        = "ERR_DUPLICATE"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeWriteFailed      = "ERR_WRITE_FAILED"
	ErrCodeWatchFailed      = "ERR_WATCH_FAILED"
	ErrCodeInternalError    = "ERR_INTERNAL"
)

// ScriptError is a structured error type with context.
type ScriptError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
	Path    string
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	parts = append(parts, e.Message)

	if e.Path != "" {
		parts = append(parts, "("+e.Path+")")
	}

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ScriptError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison on type and code.
func (e *ScriptError) Is(target error) bool {
	var t *ScriptError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ScriptError) WithContext(key string, value interface{}) *ScriptError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPath records the file path the error refers to.
func (e *ScriptError) WithPath(path string) *ScriptError {
	e.Path = path

	return e
}

// Sentinels usable with errors.Is.
var (
	ResourceNotFound = &ScriptError{Type: ErrorTypeNotFound, Code: ErrCodeResourceNotFound}
	InvalidArgument  = &ScriptError{Type: ErrorTypeValidation, Code: ErrCodeInvalidArgument}
)

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ScriptError {
	return &ScriptError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *ScriptError {
	return &ScriptError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ScriptError {
	return &ScriptError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ScriptError {
	return &ScriptError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrResourceNotFound reports a script file that is missing, is not a
// regular file, or could not be read.
func ErrResourceNotFound(path string, cause error) *ScriptError {
	return &ScriptError{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodeResourceNotFound,
		Message: "script file not found",
		Cause:   cause,
		Path:    path,
	}
}

// ErrInvalidArgument reports a rejected caller-supplied value.
func ErrInvalidArgument(message string) *ScriptError {
	return NewValidationError(ErrCodeInvalidArgument, message)
}

// ErrDuplicate reports a name that is already registered.
func ErrDuplicate(kind, name string) *ScriptError {
	return NewValidationError(ErrCodeDuplicate, fmt.Sprintf("%s %q already registered", kind, name))
}

// IsResourceNotFound checks if an error reports a missing script resource.
func IsResourceNotFound(err error) bool {
	return errors.Is(err, ResourceNotFound)
}

// IsInvalidArgument checks if an error reports a rejected argument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, InvalidArgument)
}

// IsValidationError checks if an error is a validation error of any code.
func IsValidationError(err error) bool {
	var se *ScriptError
	if errors.As(err, &se) {
		return se.Type == ErrorTypeValidation
	}

	return false
}

// ErrorHandler provides centralized error reporting for the CLI.
type ErrorHandler struct {
	logger Logger
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs an error at a level that depends on its type.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var se *ScriptError
	if !errors.As(err, &se) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	switch se.Type {
	case ErrorTypeValidation:
		h.logger.Warn(ctx, err, "Invalid argument",
			"type", se.Type,
			"code", se.Code)
	case ErrorTypeNotFound:
		h.logger.Error(ctx, err, "Script resource missing",
			"type", se.Type,
			"code", se.Code,
			"path", se.Path)
	default:
		h.logger.Error(ctx, err, "Error occurred",
			"type", se.Type,
			"code", se.Code)
	}
}
