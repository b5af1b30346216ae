package param

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/erraggy/paramprep/internal/pathutil"
	"github.com/erraggy/paramprep/oaserrors"
)

// DefaultErrorCode is the application code of a parameter error unless overridden.
const DefaultErrorCode = "422"

// Error is one addressable preparation failure.
// Errors are immutable; the With* methods return modified copies.
type Error struct {
	// Title is the human-readable failure message.
	Title string `json:"title"`
	// Pointer is the RFC 6901 location of the failing field, e.g. "/test/person/firstName".
	Pointer string `json:"pointer,omitempty"`
	// Detail carries optional additional context.
	Detail string `json:"detail,omitempty"`
	// Code is the application error code.
	Code string `json:"code"`
	// Extra holds optional structured metadata.
	Extra map[string]any `json:"extra,omitempty"`
}

// NewError creates an Error with a normalized pointer and the default code.
func NewError(title, pointer string) Error {
	return Error{Title: title, Pointer: pathutil.Normalize(pointer), Code: DefaultErrorCode}
}

// WithPointer returns a copy addressed to pointer (normalized).
func (e Error) WithPointer(pointer string) Error {
	e.Pointer = pathutil.Normalize(pointer)
	return e
}

// WithDetail returns a copy with detail set.
func (e Error) WithDetail(detail string) Error {
	e.Detail = detail
	return e
}

// WithCode returns a copy with code set.
func (e Error) WithCode(code string) Error {
	e.Code = code
	return e
}

// WithExtra returns a copy with key set in the metadata.
func (e Error) WithExtra(key string, value any) Error {
	extra := make(map[string]any, len(e.Extra)+1)
	maps.Copy(extra, e.Extra)
	extra[key] = value
	e.Extra = extra
	return e
}

// String formats the error as "pointer: title".
func (e Error) String() string {
	if e.Pointer == "" {
		return e.Title
	}
	return e.Pointer + ": " + e.Title
}

// PreparationError is the failure returned by Prepare. It carries every
// collected parameter error.
type PreparationError struct {
	Errors []Error
	// cause is an underlying typed error such as a resource limit.
	cause error
}

func newPreparationError(errs ...Error) *PreparationError {
	return &PreparationError{Errors: errs}
}

// Error summarizes the first few errors.
func (e *PreparationError) Error() string {
	if len(e.Errors) == 0 {
		return "preparation failed"
	}
	var b strings.Builder
	b.WriteString("preparation failed: ")
	limit := min(len(e.Errors), 3)
	for i := range limit {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Errors[i].String())
	}
	if len(e.Errors) > limit {
		fmt.Fprintf(&b, " (and %d more)", len(e.Errors)-limit)
	}
	return b.String()
}

// Is reports whether target matches this error type.
func (e *PreparationError) Is(target error) bool {
	return target == oaserrors.ErrPreparation
}

// Unwrap returns the underlying cause, if any.
func (e *PreparationError) Unwrap() error {
	return e.cause
}

// ErrorsOf extracts the parameter errors from err.
// It returns nil when err carries no PreparationError.
func ErrorsOf(err error) []Error {
	var pe *PreparationError
	if errors.As(err, &pe) {
		return pe.Errors
	}
	return nil
}

// collector aggregates child failures during array, object and batch sweeps.
type collector struct {
	errs  []Error
	cause error
}

func (c *collector) add(err error) {
	var pe *PreparationError
	if errors.As(err, &pe) {
		c.errs = append(c.errs, pe.Errors...)
		if c.cause == nil {
			c.cause = pe.cause
		}
		return
	}
	c.errs = append(c.errs, NewError(err.Error(), ""))
}

func (c *collector) addError(e Error) {
	c.errs = append(c.errs, e)
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &PreparationError{Errors: c.errs, cause: c.cause}
}

// translate converts a step failure into a PreparationError addressed to pointer.
func translate(err error, pointer string) *PreparationError {
	var pe *PreparationError
	if errors.As(err, &pe) {
		return pe
	}
	var ie *oaserrors.InvalidInputError
	if errors.As(err, &ie) {
		title := ie.Message
		if title == "" {
			title = ie.Error()
		}
		e := NewError(title, pointer)
		if ie.Detail != "" {
			e = e.WithDetail(ie.Detail)
		}
		return newPreparationError(e)
	}
	return newPreparationError(NewError(err.Error(), pointer))
}

// Reroot returns err with every error pointer nested under prefix. Errors
// that carry no PreparationError are returned unchanged.
func Reroot(err error, prefix string) error {
	var pe *PreparationError
	if !errors.As(err, &pe) {
		return err
	}
	out := &PreparationError{Errors: make([]Error, len(pe.Errors)), cause: pe.cause}
	for i, e := range pe.Errors {
		out.Errors[i] = e.WithPointer(pathutil.Prefix(prefix, e.Pointer))
	}
	return out
}

// JoinErrors aggregates several failures into one PreparationError.
// Nil errors are skipped; it returns nil when every error is nil.
func JoinErrors(errs ...error) error {
	var c collector
	for _, err := range errs {
		if err != nil {
			c.add(err)
		}
	}
	return c.err()
}
