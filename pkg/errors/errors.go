// Package errors provides structured error types for roadcost.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Accumulation of several validation failures into one error
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NO_* / *_NOT_FOUND: Missing data or resources
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRoadWidth, "road width must be greater than 0")
//	if errors.Is(err, errors.ErrCodeInvalidRoadWidth) {
//	    // Handle validation error
//	}
//
//	// Collect every validation failure before reporting
//	var list errors.List
//	list.Add(errors.ErrCodeInvalidChainageRange, "chainage start must be less than chainage end")
//	list.Add(errors.ErrCodeInvalidPatchCost, "patch repair cost must be greater than 0")
//	return list.Err()
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidChainageRange Code = "INVALID_CHAINAGE_RANGE"
	ErrCodeInvalidRoadWidth     Code = "INVALID_ROAD_WIDTH"
	ErrCodeInvalidPatchCost     Code = "INVALID_PATCH_COST"
	ErrCodeInvalidAltMethodCost Code = "INVALID_ALT_METHOD_COST"
	ErrCodeInvalidPatchLayers   Code = "INVALID_PATCH_LAYERS"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidSheet         Code = "INVALID_SHEET"
	ErrCodeValidation           Code = "VALIDATION_FAILED"

	// Missing data errors
	ErrCodeNoPatches    Code = "NO_PATCHES_IN_RANGE"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// A List matches if any of its entries carries the code.
func Is(err error, code Code) bool {
	var l List
	if errors.As(err, &l) {
		for _, e := range l {
			if e.Code == code {
				return true
			}
		}
		return code == ErrCodeValidation
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error or List.
func GetCode(err error) Code {
	var l List
	if errors.As(err, &l) {
		if len(l) == 1 {
			return l[0].Code
		}
		return ErrCodeValidation
	}
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
	var l List
	if errors.As(err, &l) {
		return strings.Join(l.Messages(), "\n")
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// List accumulates validation failures so that every problem is reported
// at once instead of stopping at the first.
type List []*Error

// Add appends a new coded failure.
func (l *List) Add(code Code, format string, args ...any) {
	*l = append(*l, New(code, format, args...))
}

// Messages returns the user-facing message of every entry, in order.
func (l List) Messages() []string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Message
	}
	return msgs
}

// Codes returns the code of every entry, in order.
func (l List) Codes() []Code {
	codes := make([]Code, len(l))
	for i, e := range l {
		codes[i] = e.Code
	}
	return codes
}

// Error implements the error interface.
func (l List) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeValidation, strings.Join(l.Messages(), "; "))
}

// Err returns nil for an empty list and the list itself otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
