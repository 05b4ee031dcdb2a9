package apperrors

import (
	"errors"
	"fmt"
)

// Code classifies a business-rule failure. Handlers map codes to HTTP
// statuses; services never retry any of them.
type Code string

const (
	CodeValidation    Code = "validation"
	CodeConflict      Code = "conflict"
	CodeInvalidState  Code = "invalid_state"
	CodeAuthorization Code = "authorization"
	CodeNotFound      Code = "not_found"
)

// Error carries a code, a caller-facing message, and optional
// field-level detail for validation failures.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is makes two coded errors match on code alone, so callers can use
// errors.Is against the package sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Sentinels for errors.Is checks.
var (
	ErrValidation    = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrConflict      = &Error{Code: CodeConflict, Message: "conflict"}
	ErrInvalidState  = &Error{Code: CodeInvalidState, Message: "invalid state"}
	ErrAuthorization = &Error{Code: CodeAuthorization, Message: "not permitted"}
	ErrNotFound      = &Error{Code: CodeNotFound, Message: "not found"}
)

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause while keeping the code visible to errors.Is.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// ValidationFields builds a validation error with per-field messages,
// as produced by utils.ValidateStruct.
func ValidationFields(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func InvalidState(message string) *Error {
	return New(CodeInvalidState, message)
}

func Authorization(message string) *Error {
	return New(CodeAuthorization, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// CodeOf extracts the code from err, or empty string for
// infrastructure errors that carry no code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
