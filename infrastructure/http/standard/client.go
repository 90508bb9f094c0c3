// ABOUTME: Standard HTTP client with retry on server errors and context-bound requests
// ABOUTME: Used by the aggregators for profile APIs and relays, and by the email relay

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mishurahman616/portfolio/core/interfaces"
)

const (
	defaultMaxAttempts = 2
	userAgent          = "PortfolioServer/1.0"
)

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client      *http.Client
	maxAttempts int
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// Callers usually bound each request more tightly through its context.
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		maxAttempts: defaultMaxAttempts,
	}
}

// WithMaxAttempts sets how many times a GET is tried on 5xx or transport errors
func (c *StandardHTTPClient) WithMaxAttempts(n int) *StandardHTTPClient {
	if n < 1 {
		n = 1
	}
	c.maxAttempts = n
	return c
}

// WithTransport replaces the round tripper, e.g. to log outgoing requests
func (c *StandardHTTPClient) WithTransport(rt http.RoundTripper) *StandardHTTPClient {
	c.client.Transport = rt
	return c
}

// Get performs an HTTP GET request, retrying server errors with exponential backoff.
// The last 5xx response is returned as is once attempts run out.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 || attempt == c.maxAttempts-1 {
			return wrap(resp), nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	return nil, lastErr
}

// Post performs an HTTP POST request with a JSON body. Posts are not retried.
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return wrap(resp), nil
}

func wrap(resp *http.Response) *httpResponse {
	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
