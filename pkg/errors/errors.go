// Package errors provides structured error types for graphdesk.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - STORAGE_*: Persistence backend failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid vertex id: %s", raw)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Translate graph sentinel errors for the CLI or API
//	err = errors.Classify(coord.RemoveEdge(u, v))
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/matzehuels/graphdesk/pkg/cache"
	"github.com/matzehuels/graphdesk/pkg/coordinator"
	"github.com/matzehuels/graphdesk/pkg/graph"
	graphio "github.com/matzehuels/graphdesk/pkg/io"
	"github.com/matzehuels/graphdesk/pkg/render"
	"github.com/matzehuels/graphdesk/pkg/storage/mongo"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidEdge   Code = "INVALID_EDGE"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeVertexNotFound Code = "VERTEX_NOT_FOUND"
	ErrCodeEdgeNotFound   Code = "EDGE_NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"

	// Storage errors
	ErrCodeStorage Code = "STORAGE_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Classify returns err as an *Error, mapping the sentinel errors of the graph,
// adapter and storage packages to their codes. Errors already carrying a code are returned as-is;
// anything unrecognised becomes ErrCodeInternal. Classify(nil) is nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	code := ErrCodeInternal
	switch {
	case errors.Is(err, graph.ErrVertexNotFound):
		code = ErrCodeVertexNotFound
	case errors.Is(err, graph.ErrEdgeNotFound):
		code = ErrCodeEdgeNotFound
	case errors.Is(err, graph.ErrSelfLoop), errors.Is(err, graph.ErrNegativeWeight):
		code = ErrCodeInvalidEdge
	case errors.Is(err, coordinator.ErrInvalidArgument), errors.Is(err, graphio.ErrEmptyGraph):
		code = ErrCodeInvalidInput
	case errors.Is(err, graphio.ErrUnknownFormat), errors.As(err, new(*graphio.ParseError)):
		code = ErrCodeInvalidFormat
	case errors.Is(err, fs.ErrNotExist):
		code = ErrCodeFileNotFound
	case errors.Is(err, mongo.ErrSnapshotNotFound):
		code = ErrCodeNotFound
	case errors.Is(err, cache.ErrUnavailable):
		code = ErrCodeStorage
	case errors.Is(err, render.ErrConverterMissing):
		code = ErrCodeUnsupported
	case errors.Is(err, context.DeadlineExceeded):
		code = ErrCodeTimeout
	}
	return &Error{Code: code, Message: err.Error(), Cause: err}
}

// HTTPStatus returns the HTTP status code that best matches code.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeInvalidEdge:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeVertexNotFound, ErrCodeEdgeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
