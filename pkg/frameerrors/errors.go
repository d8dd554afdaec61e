// Package frameerrors provides the structured error kinds surfaced by the
// frame engine. Every failing selection or mutation returns an *Error whose
// Type tells the caller which precondition was violated.
//
// # Overview
//
// The engine never retries and never partially succeeds. A call either
// completes or returns one of these kinds:
//   - ErrorTypeColumnNotFound: a name or slot lookup missed
//   - ErrorTypeBadRange: inverted or out-of-bounds index, position or row count
//   - ErrorTypeInconsistentData: a column or result longer than the index
//   - ErrorTypeDataFrame: reserved name, rename collision, stale view, API misuse
//   - ErrorTypeNotImplemented: unsupported format or element type at a boundary
//   - ErrorTypeNotFeasible: a generation request that cannot be satisfied
//   - ErrorTypeTypeMismatch: typed access with the wrong element type
//
// # Basic Usage
//
//	err := frameerrors.New(frameerrors.ErrorTypeColumnNotFound, "column not found").
//	    WithDetail("column", name)
//
//	if frameerrors.IsType(err, frameerrors.ErrorTypeBadRange) {
//	    // fix the request and try again
//	}
//
// Errors also match with errors.Is against the exported sentinels:
//
//	if errors.Is(err, frameerrors.ErrColumnNotFound) { ... }
//
// # Thread Safety
//
// Error instances are not safe for concurrent modification. Finish adding
// details before sharing an error across goroutines.
package frameerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType is the category of an engine failure.
type ErrorType string

const (
	// ErrorTypeColumnNotFound represents a column name or slot lookup miss
	ErrorTypeColumnNotFound ErrorType = "column_not_found"
	// ErrorTypeBadRange represents an inverted or out-of-bounds request
	ErrorTypeBadRange ErrorType = "bad_range"
	// ErrorTypeInconsistentData represents a shape violation against the index
	ErrorTypeInconsistentData ErrorType = "inconsistent_data"
	// ErrorTypeDataFrame represents reserved name violations and API misuse
	ErrorTypeDataFrame ErrorType = "dataframe"
	// ErrorTypeNotImplemented represents an unsupported format or type combination
	ErrorTypeNotImplemented ErrorType = "not_implemented"
	// ErrorTypeNotFeasible represents a generation request that cannot be satisfied
	ErrorTypeNotFeasible ErrorType = "not_feasible"
	// ErrorTypeTypeMismatch represents typed access with the wrong element type
	ErrorTypeTypeMismatch ErrorType = "type_mismatch"
)

// Sentinels for use with errors.Is. They carry no stack or details.
var (
	ErrColumnNotFound   = &Error{Type: ErrorTypeColumnNotFound, Message: "column not found"}
	ErrBadRange         = &Error{Type: ErrorTypeBadRange, Message: "bad range"}
	ErrInconsistentData = &Error{Type: ErrorTypeInconsistentData, Message: "inconsistent data"}
	ErrDataFrame        = &Error{Type: ErrorTypeDataFrame, Message: "dataframe error"}
	ErrNotImplemented   = &Error{Type: ErrorTypeNotImplemented, Message: "not implemented"}
	ErrNotFeasible      = &Error{Type: ErrorTypeNotFeasible, Message: "not feasible"}
	ErrTypeMismatch     = &Error{Type: ErrorTypeTypeMismatch, Message: "column type mismatch"}
)

// Error represents a structured engine error.
//
// Fields:
//   - Type: the failure category
//   - Message: human-readable description including the offending name or range
//   - Cause: the underlying error, if any
//   - Details: key-value context (column, begin, end, length...)
//   - Stack: call stack at the point of creation
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack.
type StackFrame struct {
	Function string // Fully qualified function name
	File     string // Source file path
	Line     int    // Line number in source file
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Type. This lets the
// package sentinels match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// WithDetail adds a key-value detail to the error. Calls can be chained.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, capturing the
// call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf is New with a format string.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error, preserving it as the cause. If the error is
// already an *Error its stack is kept. Returns nil for a nil error.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

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

// IsType checks whether err, or any error it wraps, is an *Error of errType.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// TypeOf returns the ErrorType of err, or "" when err is not an *Error.
func TypeOf(err error) ErrorType {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Type
}

// ColumnNotFound builds the error returned for a missing column name.
func ColumnNotFound(name string) *Error {
	return &Error{
		Type:    ErrorTypeColumnNotFound,
		Message: fmt.Sprintf("column %q not found", name),
		Details: map[string]interface{}{"column": name},
		Stack:   captureStack(2),
	}
}

// BadRange builds the error returned for an inverted or out-of-bounds request.
func BadRange(op string, begin, end, length int) *Error {
	return &Error{
		Type:    ErrorTypeBadRange,
		Message: fmt.Sprintf("%s: range [%d, %d] invalid for length %d", op, begin, end, length),
		Details: map[string]interface{}{"begin": begin, "end": end, "length": length},
		Stack:   captureStack(2),
	}
}

// captureStack captures up to maxFrames of the current call stack, skipping
// the given number of frames.
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
