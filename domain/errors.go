package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeInvalidArgumentType      ErrorCode = "INVALID_ARGUMENT_TYPE"
	ErrCodeCodeOutOfBounds          ErrorCode = "CODE_OUT_OF_BOUNDS"
	ErrCodeUnknownCode              ErrorCode = "UNKNOWN_CODE"
	ErrCodeDuplicateCode            ErrorCode = "DUPLICATE_CODE"
	ErrCodeInvalidConfigurationType ErrorCode = "INVALID_CONFIGURATION_TYPE"

	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf builds a domain error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrMissingSubject  = NewError(ErrCodeInvalidArgumentType, "api code or message must be provided")
	ErrInvalidPayload  = NewError(ErrCodeInvalid, "invalid payload")
	ErrCatalogNotFound = NewError(ErrCodeNotFound, "api code catalog not found")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
