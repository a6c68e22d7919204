package directory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap/internal/transport"
	"github.com/agentstation/unitmap/pkg/constants"
	"github.com/agentstation/unitmap/pkg/errors"
)

// Client queries the staff directory. It does not retry.
type Client struct {
	baseURL   string
	transport *transport.Client
	logger    *zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// WithBaseURL sets the directory search endpoint.
func WithBaseURL(u string) ClientOption {
	return func(o *clientOptions) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(o *clientOptions) {
		o.userAgent = ua
	}
}

// WithHTTPClient sets the underlying HTTP client. Its own timeout applies
// and WithTimeout is ignored.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a directory client.
func NewClient(opts ...ClientOption) *Client {
	o := &clientOptions{
		baseURL:   constants.DirectoryURL,
		timeout:   constants.DefaultHTTPTimeout,
		userAgent: constants.DirectoryUserAgent,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		nop := zerolog.Nop()
		o.logger = &nop
	}

	topts := []transport.Option{transport.WithUserAgent(o.userAgent)}
	if o.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(o.httpClient))
	} else {
		topts = append(topts, transport.WithTimeout(o.timeout))
	}

	return &Client{
		baseURL:   o.baseURL,
		transport: transport.New(topts...),
		logger:    o.logger,
	}
}

// BaseURL returns the directory search endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the full search URL for p.
func (c *Client) URL(p Params) string {
	return c.baseURL + "?" + p.Encode()
}

// Search runs a directory search and parses the result page.
func (c *Client) Search(ctx context.Context, p Params) (*SearchResult, error) {
	endpoint := c.URL(p)
	start := time.Now()

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, c.requestError(ctx, endpoint, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn().Err(cerr).Msg("Failed to close directory response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.APIError{
			Service:    constants.DirectoryService,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Endpoint:   endpoint,
		}
	}

	result, err := ParseStaff(io.LimitReader(resp.Body, constants.MaxDirectoryResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing directory response: %w", err)
	}

	c.logger.Debug().
		Str("division", p.Division).
		Str("department", p.Department).
		Int("staff", len(result.Staff)).
		Int("skipped", result.Skipped).
		Dur("elapsed", time.Since(start)).
		Msg("Directory search complete")
	return result, nil
}

func (c *Client) requestError(ctx context.Context, endpoint string, err error) error {
	switch {
	case ctx.Err() == context.Canceled:
		return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	case ctx.Err() == context.DeadlineExceeded:
		return fmt.Errorf("%w: %w", errors.ErrTimeout, err)
	}
	return &errors.APIError{
		Service:  constants.DirectoryService,
		Message:  err.Error(),
		Endpoint: endpoint,
		Err:      err,
	}
}
