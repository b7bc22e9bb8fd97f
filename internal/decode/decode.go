// Package decode converts loosely typed JSON objects into typed values with
// structured, per-field error reporting. All extractors are pure reads over
// the input object: the first invalid field produces an error and nothing
// else is touched.
package decode

import (
	"net/url"
	"time"
)

// Object is the untyped wire representation of a JSON object, as produced
// by encoding/json when unmarshaling into a map.
type Object map[string]any

// TimeLayout is the only accepted timestamp format. The trailing Z is a
// literal, so offset forms like +09:00 and fractional seconds are rejected.
const TimeLayout = "2006-01-02T15:04:05Z"

// Value extracts the value under key and casts it to T. It fails with a
// MissingKey error if the key is absent and an UnexpectedType error if the
// value has a different dynamic type. This is the single
// check-and-cast primitive every other extractor builds on.
func Value[T any](obj Object, key string) (T, error) {
	var zero T
	raw, ok := obj[key]
	if !ok {
		return zero, newMissingKey(key)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, newUnexpectedType(key, TypeName(zero), TypeName(raw))
	}
	return v, nil
}

// Optional extracts the value under key, treating an absent key and a JSON
// null identically as "no value" (nil). A present non-null value with the
// wrong type is still an UnexpectedType error, never a silent nil.
func Optional[T any](obj Object, key string) (*T, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, nil
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return nil, newUnexpectedType(key, TypeName(zero), TypeName(raw))
	}
	return &v, nil
}

// String extracts a required string value.
func String(obj Object, key string) (string, error) {
	return Value[string](obj, key)
}

// OptionalString extracts an optional string value.
func OptionalString(obj Object, key string) (*string, error) {
	return Optional[string](obj, key)
}

// Bool extracts a required boolean value.
func Bool(obj Object, key string) (bool, error) {
	return Value[bool](obj, key)
}

// Float extracts a required numeric value.
func Float(obj Object, key string) (float64, error) {
	return Value[float64](obj, key)
}

// Int extracts a required numeric value and truncates it to an int.
// JSON numbers arrive as float64, so the type check is against "number".
func Int(obj Object, key string) (int, error) {
	f, err := Value[float64](obj, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// URL extracts a required string value and parses it as a URL, failing
// with a CannotParseURL error on an empty or syntactically invalid string.
func URL(obj Object, key string) (*url.URL, error) {
	s, err := Value[string](obj, key)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(s)
	if err != nil || s == "" {
		return nil, &Error{Type: ErrorTypeCannotParseURL, Key: key, Value: s}
	}
	return u, nil
}

// Time extracts a required string value and parses it with TimeLayout.
// The layout carries no zone designator, so the result is UTC.
func Time(obj Object, key string) (time.Time, error) {
	s, err := Value[string](obj, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, &Error{Type: ErrorTypeCannotParseDate, Key: key, Value: s}
	}
	return t, nil
}

// TypeName maps a decoded JSON value to its wire type name for error
// reporting. Go types produced by encoding/json map back to the JSON
// terms a caller would recognize.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case Object:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}
