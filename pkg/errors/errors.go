// Package errors provides structured error handling for Datascope
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeFile represents file operation errors
	ErrorTypeFile ErrorType = "file"
	// ErrorTypeUnsupportedType represents analysis of a column whose declared
	// value type is not textual
	ErrorTypeUnsupportedType ErrorType = "unsupported_type"
	// ErrorTypeSchemaMismatch represents a batch whose shape disagrees with
	// the schema established by the first batch
	ErrorTypeSchemaMismatch ErrorType = "schema_mismatch"
	// ErrorTypeReader represents failures propagated from the dataset reader
	ErrorTypeReader ErrorType = "reader"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// NewUnsupportedColumnType creates the fast-fail error raised when a dataset
// declares a non-textual column. The analysis only operates on string columns.
func NewUnsupportedColumnType(column string, declared string) *Error {
	return &Error{
		Type:    ErrorTypeUnsupportedType,
		Message: fmt.Sprintf("column %q has type %s; dataset analysis only works with string columns", column, declared),
		Stack:   captureStack(2),
	}
}

// NewSchemaMismatch creates the error raised when a later batch presents a
// different column count than the first batch of the run.
func NewSchemaMismatch(want, got int) *Error {
	return &Error{
		Type:    ErrorTypeSchemaMismatch,
		Message: fmt.Sprintf("batch has %d columns, schema established %d", got, want),
		Stack:   captureStack(2),
	}
}

// WrapReader wraps a failure surfaced by the dataset reader mid-stream.
func WrapReader(err error) *Error {
	return Wrap(err, ErrorTypeReader, "dataset reader failed")
}

// IsUnsupportedColumnType reports whether err is an unsupported column type error
func IsUnsupportedColumnType(err error) bool {
	return IsType(err, ErrorTypeUnsupportedType)
}

// IsSchemaMismatch reports whether err is a schema mismatch error
func IsSchemaMismatch(err error) bool {
	return IsType(err, ErrorTypeSchemaMismatch)
}

// IsReaderFailure reports whether err is a propagated reader failure
func IsReaderFailure(err error) bool {
	return IsType(err, ErrorTypeReader)
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
