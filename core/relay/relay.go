// ABOUTME: Helpers for talking to third-party APIs directly or through public request relays
// ABOUTME: Reads bounded response bodies and unwraps the allorigins JSON envelope

package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	coreerrors "github.com/mishurahman616/portfolio/core/errors"
	"github.com/mishurahman616/portfolio/core/interfaces"
)

// MaxBodySize caps how much of a response is read
const MaxBodySize = 2 << 20

// AllOriginsGet is the public allorigins wrapper endpoint
const AllOriginsGet = "https://api.allorigins.win/get?url="

// envelope wraps a relayed body as a JSON string
type envelope struct {
	Contents *string `json:"contents"`
	Status   *struct {
		HTTPCode int `json:"http_code"`
	} `json:"status"`
}

// Via builds the relay URL for target by appending it query-escaped to proxy
func Via(proxy, target string) string {
	return proxy + url.QueryEscape(target)
}

// Body returns the body of a 2xx response, closing it. The api name labels
// the ExternalAPIError returned for other status codes.
func Body(api string, resp interfaces.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("empty response")
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &coreerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "non-success response",
			API:        api,
		}
	}

	return io.ReadAll(io.LimitReader(body, MaxBodySize))
}

// Unwrap extracts the relayed body from an allorigins envelope
func Unwrap(data []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding relay envelope: %w", err)
	}
	if env.Status != nil && env.Status.HTTPCode != 0 && (env.Status.HTTPCode < 200 || env.Status.HTTPCode > 299) {
		return nil, fmt.Errorf("relayed request returned %d", env.Status.HTTPCode)
	}
	if env.Contents == nil || *env.Contents == "" {
		return nil, errors.New("relay envelope has no contents")
	}
	return []byte(*env.Contents), nil
}
