package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIErrorType represents the type of GitHub API error
type APIErrorType int

const (
	// ErrorTypeUnexpectedResponse indicates a 2xx body that is not a JSON object
	ErrorTypeUnexpectedResponse APIErrorType = iota
	// ErrorTypeRateLimit indicates rate limit exceeded
	ErrorTypeRateLimit
	// ErrorTypeAuthentication indicates authentication failure
	ErrorTypeAuthentication
	// ErrorTypeNotFound indicates resource not found
	ErrorTypeNotFound
	// ErrorTypeServerError indicates server error (5xx)
	ErrorTypeServerError
	// ErrorTypeNetwork indicates the request never produced a response
	ErrorTypeNetwork
	// ErrorTypeUnknown indicates unknown error type
	ErrorTypeUnknown
)

// String returns the string representation of the error type
func (t APIErrorType) String() string {
	switch t {
	case ErrorTypeUnexpectedResponse:
		return "UnexpectedResponse"
	case ErrorTypeRateLimit:
		return "RateLimit"
	case ErrorTypeAuthentication:
		return "Authentication"
	case ErrorTypeNotFound:
		return "NotFound"
	case ErrorTypeServerError:
		return "ServerError"
	case ErrorTypeNetwork:
		return "Network"
	default:
		return "Unknown"
	}
}

// APIError represents a structured GitHub API error
type APIError struct {
	Type        APIErrorType
	StatusCode  int
	Message     string
	OriginalErr error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("GitHub API error [%s]: %s (original: %v)", e.Type, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("GitHub API error [%s]: %s", e.Type, e.Message)
}

// Unwrap returns the original error
func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

// errorResponse is the error body the GitHub API returns alongside a
// non-2xx status.
type errorResponse struct {
	Message string `json:"message"`
}

// newHTTPError builds an APIError from a non-2xx response, classifying it
// by status code and enriching the message with the body's "message" field
// when one can be extracted.
func newHTTPError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Type:       classifyStatus(statusCode, body),
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
	}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		apiErr.Message = fmt.Sprintf("HTTP %d: %s", statusCode, errResp.Message)
	}

	return apiErr
}

// classifyStatus maps a status code to an error type. 403 is ambiguous on
// the GitHub API: it is the status used for both permission failures and
// exhausted rate limits, so the body is consulted.
func classifyStatus(statusCode int, body []byte) APIErrorType {
	switch {
	case statusCode == 401:
		return ErrorTypeAuthentication
	case statusCode == 403:
		if strings.Contains(strings.ToLower(string(body)), "rate limit") {
			return ErrorTypeRateLimit
		}
		return ErrorTypeAuthentication
	case statusCode == 404:
		return ErrorTypeNotFound
	case statusCode == 429:
		return ErrorTypeRateLimit
	case statusCode >= 500 && statusCode < 600:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

// IsRateLimitError checks if the error is a rate limit error
func IsRateLimitError(err error) bool {
	return isType(err, ErrorTypeRateLimit)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsUnexpectedResponseError checks if the error is an unexpected response error
func IsUnexpectedResponseError(err error) bool {
	return isType(err, ErrorTypeUnexpectedResponse)
}

// IsNetworkError checks if the error is a transport-level error
func IsNetworkError(err error) bool {
	return isType(err, ErrorTypeNetwork)
}

func isType(err error, t APIErrorType) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type == t
	}
	return false
}
