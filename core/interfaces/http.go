// ABOUTME: HTTP client abstraction used by the aggregators and the email relay
// ABOUTME: Every call takes a context so per-attempt timeouts can abandon slow requests

package interfaces

import (
	"context"
	"io"
)

// HTTPClient fetches profile APIs, relayed badge queries and the local
// challenge document, and posts to the email relay. Callers bound each
// fallback attempt with the context they pass in.
type HTTPClient interface {
	// Get fetches url. Server errors may be retried by the implementation.
	Get(ctx context.Context, url string) (Response, error)

	// Post sends a JSON body to url. Posts are never retried.
	Post(ctx context.Context, url string, body io.Reader) (Response, error)
}

// Response is what the relay helpers read status and body from.
// The caller closes Body.
type Response interface {
	StatusCode() int
	Body() io.ReadCloser

	// Header returns a response header, empty when absent
	Header(key string) string
}
