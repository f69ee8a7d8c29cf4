// Package transport is the thin HTTP capability described in spec.md §4.7:
// issue a request with an optional body, return the raw response body, and
// map anything other than a clean 2xx into the Transport error.
package transport

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eklavyac/gogit/pkg/object"
)

const (
	userAgent      = "git/gogit-1.0"
	defaultTimeout = 60 * time.Second
)

// Client wraps an *http.Client. A Client follows redirects (the http.Client
// default) and fails with object.ErrTransport on network, TLS, or non-2xx
// failure.
type Client struct {
	http *http.Client
}

// NewClient builds a Client with a sane default timeout; timeouts surface
// as object.ErrTransport like any other network failure (spec.md §5).
func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: defaultTimeout}}
}

// Request describes one HTTP round trip.
type Request struct {
	Method      string
	URL         string
	Body        []byte
	ContentType string
	Headers     map[string]string
}

// Do issues req and returns the complete response body.
func (c *Client) Do(req Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = strings.NewReader(string(req.Body))
	}

	httpReq, err := http.NewRequest(method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request %s %s: %v", object.ErrTransport, method, req.URL, err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", object.ErrTransport, method, req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body for %s %s: %v", object.ErrTransport, method, req.URL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s %s: status %d", object.ErrTransport, method, req.URL, resp.StatusCode)
	}

	return body, nil
}

// Get issues a GET with no body.
func (c *Client) Get(url string) ([]byte, error) {
	return c.Do(Request{Method: http.MethodGet, URL: url})
}

// Post issues a POST with the given body and content type.
func (c *Client) Post(url string, body []byte, contentType string) ([]byte, error) {
	return c.Do(Request{Method: http.MethodPost, URL: url, Body: body, ContentType: contentType})
}
