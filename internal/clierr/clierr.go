// Package clierr defines structured error types for zenta commands.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for scripted consumers.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error code constants: uppercase, underscore-separated, stable across minor versions.
const (
	TaskNotFound    = "TASK_NOT_FOUND"
	ListNotFound    = "LIST_NOT_FOUND"
	ColumnNotFound  = "COLUMN_NOT_FOUND"
	ColumnNotEmpty  = "COLUMN_NOT_EMPTY"
	InvalidInput    = "INVALID_INPUT"
	InvalidPriority = "INVALID_PRIORITY"
	InvalidCategory = "INVALID_CATEGORY"
	InvalidEstimate = "INVALID_ESTIMATE"
	InvalidDate     = "INVALID_DATE"
	InvalidTaskID   = "INVALID_TASK_ID"
	StorageError    = "STORAGE_ERROR"
	ConfirmationReq = "CONFIRMATION_REQUIRED"
	NoChanges       = "NO_CHANGES"
	AlreadyExists   = "ALREADY_EXISTS"
	InvalidGroupBy  = "INVALID_GROUP_BY"
	InternalError   = "INTERNAL_ERROR"
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// HasCode reports whether err is (or wraps) an *Error with the given code.
func HasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// Storage reports a failed persist of the named key. Stores swallow write
// errors and return false; commands turn that into this error.
func Storage(key string) *Error {
	return Newf(StorageError, "could not persist %q (see log for details)", key).
		WithDetails(map[string]any{"key": key})
}

// SilentError signals an exit code without additional output.
// Used by batch operations where results are already written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
