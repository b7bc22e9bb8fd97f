package api

import (
	"net/url"

	"github.com/douhashi/kensaku/internal/decode"
)

// DecodeFunc constructs a value of type T from a raw JSON object, or fails
// with a decode error. Implementations must be all-or-nothing: a returned
// value is fully valid, and a returned error means no value exists.
type DecodeFunc[T any] func(decode.Object) (T, error)

// Endpoint describes one HTTP operation: its path relative to the API base
// URL, its method, its query parameters, and how to decode its response
// body. An Endpoint is a stateless configuration value and may be reused
// across requests.
type Endpoint[T any] struct {
	Path   string
	Method string
	Params url.Values
	Decode DecodeFunc[T]
}
