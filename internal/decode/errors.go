package decode

import (
	"errors"
	"fmt"
)

// ErrorType represents the kind of decode failure
type ErrorType int

const (
	// ErrorTypeMissingKey indicates a required key is absent
	ErrorTypeMissingKey ErrorType = iota
	// ErrorTypeUnexpectedType indicates a value has the wrong JSON type
	ErrorTypeUnexpectedType
	// ErrorTypeCannotParseURL indicates a string value is not a valid URL
	ErrorTypeCannotParseURL
	// ErrorTypeCannotParseDate indicates a string value does not match the date layout
	ErrorTypeCannotParseDate
)

// String returns the string representation of the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeMissingKey:
		return "MissingKey"
	case ErrorTypeUnexpectedType:
		return "UnexpectedType"
	case ErrorTypeCannotParseURL:
		return "CannotParseURL"
	case ErrorTypeCannotParseDate:
		return "CannotParseDate"
	default:
		return "Unknown"
	}
}

// Error represents a structured decode failure. It carries the offending
// key and, depending on the type, either the expected/actual JSON types or
// the raw value that failed to parse.
type Error struct {
	Type     ErrorType
	Key      string
	Expected string
	Actual   string
	Value    string
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Type {
	case ErrorTypeMissingKey:
		return fmt.Sprintf("decode error [MissingKey]: required key %q is absent", e.Key)
	case ErrorTypeUnexpectedType:
		return fmt.Sprintf("decode error [UnexpectedType]: key %q has type %s, want %s", e.Key, e.Actual, e.Expected)
	case ErrorTypeCannotParseURL:
		return fmt.Sprintf("decode error [CannotParseURL]: key %q value %q is not a valid URL", e.Key, e.Value)
	case ErrorTypeCannotParseDate:
		return fmt.Sprintf("decode error [CannotParseDate]: key %q value %q does not match %s", e.Key, e.Value, TimeLayout)
	default:
		return fmt.Sprintf("decode error [Unknown]: key %q", e.Key)
	}
}

func newMissingKey(key string) *Error {
	return &Error{Type: ErrorTypeMissingKey, Key: key}
}

func newUnexpectedType(key, expected, actual string) *Error {
	return &Error{Type: ErrorTypeUnexpectedType, Key: key, Expected: expected, Actual: actual}
}

// IsMissingKey checks if the error is a missing-key decode error
func IsMissingKey(err error) bool {
	return isType(err, ErrorTypeMissingKey)
}

// IsUnexpectedType checks if the error is a type-mismatch decode error
func IsUnexpectedType(err error) bool {
	return isType(err, ErrorTypeUnexpectedType)
}

// IsCannotParseURL checks if the error is a URL parse decode error
func IsCannotParseURL(err error) bool {
	return isType(err, ErrorTypeCannotParseURL)
}

// IsCannotParseDate checks if the error is a date parse decode error
func IsCannotParseDate(err error) bool {
	return isType(err, ErrorTypeCannotParseDate)
}

func isType(err error, t ErrorType) bool {
	var decErr *Error
	if errors.As(err, &decErr) {
		return decErr.Type == t
	}
	return false
}
