// Package transport wraps the outbound HTTP client used to reach the
// staff directory.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/agentstation/unitmap/pkg/constants"
	"github.com/agentstation/unitmap/pkg/errors"
)

// Client performs HTTP requests with a fixed timeout and default headers.
type Client struct {
	http      *http.Client
	userAgent string
	accept    string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithAccept sets the Accept header sent with every request.
func WithAccept(accept string) Option {
	return func(c *Client) {
		c.accept = accept
	}
}

// WithHTTPClient replaces the underlying *http.Client. The client's own
// timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a transport client.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		userAgent: constants.DirectoryUserAgent,
		accept:    "text/html,application/xhtml+xml",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the request timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// Do sends req after applying the default headers. Headers already set on
// req are left alone.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if req.Header.Get("Accept") == "" && c.accept != "" {
		req.Header.Set("Accept", c.accept)
	}
	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(req)
}
