package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrConfig indicates an invalid parameter definition.
	ErrConfig = errors.New("configuration error")

	// ErrInvalidInput indicates a collaborator rejected an input value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrPreparation indicates one or more parameters failed preparation.
	ErrPreparation = errors.New("preparation failed")

	// ErrNotFound indicates a named value is absent from a values collection.
	ErrNotFound = errors.New("value not found")

	// ErrNotPrepared indicates a prepared value was requested before it was set.
	ErrNotPrepared = errors.New("value not yet prepared")
)

// ConfigError represents an invalid parameter definition.
// This includes conflicting options, options applied to the wrong shape,
// invalid patterns and circular schema references.
type ConfigError struct {
	// Parameter is the name of the parameter being configured (may be empty)
	Parameter string
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Parameter != "" {
		msg += fmt.Sprintf(" in parameter %q", e.Parameter)
	}
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// InvalidInputError is the signal a collaborator raises for a value it cannot
// accept. The message is user-facing: it becomes the title of the resulting
// parameter error.
type InvalidInputError struct {
	// Message describes why the value was rejected
	Message string
	// Detail carries optional additional context
	Detail string
	// Cause is the underlying error, if any
	Cause error
}

// NewInvalidInput creates an InvalidInputError with a formatted message.
func NewInvalidInput(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// Error returns a human-readable error message.
func (e *InvalidInputError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "invalid input"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded, e.g. "nesting_depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}
