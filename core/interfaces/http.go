package interfaces

import (
	"context"
	"fmt"
	"io"
)

// HTTPClient defines the interface for making HTTP requests.
// Implementations handle retries and user agents so services only deal with
// status codes and bodies.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)

	// Post performs an HTTP POST request to the specified URL with the given body.
	Post(ctx context.Context, url string, body io.Reader) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header (case-insensitive).
	Header(key string) string
}

// ReadBody reads at most limit bytes from the response and closes it.
// Bodies larger than limit are rejected rather than truncated.
func ReadBody(resp Response, limit int64) ([]byte, error) {
	body := resp.Body()
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return data, nil
}
