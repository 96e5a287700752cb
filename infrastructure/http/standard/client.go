// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Retries server errors and rate limiting with exponential backoff

package standard

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"newsnex-api/core/interfaces"
)

const (
	maxRetries = 3

	// DefaultUserAgent mimics a desktop browser; many news sites block bare clients
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 NewsNex/1.0"
)

// RetryBaseDelay is the first backoff interval; tests shorten it
var RetryBaseDelay = 100 * time.Millisecond

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: DefaultUserAgent,
	}
}

// WithTransport replaces the underlying round tripper, e.g. to add logging
func (c *StandardHTTPClient) WithTransport(rt http.RoundTripper) *StandardHTTPClient {
	c.client.Transport = rt
	return c
}

// WithUserAgent overrides the User-Agent header sent with every request
func (c *StandardHTTPClient) WithUserAgent(ua string) *StandardHTTPClient {
	if ua != "" {
		c.userAgent = ua
	}
	return c
}

// Transport returns the current round tripper
func (c *StandardHTTPClient) Transport() http.RoundTripper {
	if c.client.Transport == nil {
		return http.DefaultTransport
	}
	return c.client.Transport
}

// Get performs an HTTP GET request, retrying 5xx and 429 responses
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: base, 2*base, 4*base
			backoff := RetryBaseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err = c.client.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			lastErr = err
			resp = nil
			continue
		}

		if !retryable(resp.StatusCode) || attempt == maxRetries-1 {
			break
		}

		// Drain and close body before retrying
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp = nil
	}

	if resp == nil {
		return nil, lastErr
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

// Post performs an HTTP POST request
func (c *StandardHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}

func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
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
