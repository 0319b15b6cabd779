// Package baserow is a client library for the Baserow REST API. It loads
// table schemas, translates raw JSON cells into typed, validated row
// values and back, composes filtered queries, streams rows across pages,
// and batches row mutations.
package baserow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// DefaultBatchSize is the number of rows per chunk in batch mutations.
const DefaultBatchSize = 10

// Client talks to one Baserow server with one database token. It mints
// Tables and owns the shared executor, logger, and batch size.
//
// A Client is safe for concurrent use.
type Client struct {
	baseURL   string
	token     string
	batchSize int
	logger    *slog.Logger
	executor  Executor
	timeout   time.Duration
}

// ClientOption adjusts Client construction.
type ClientOption func(*Client)

// WithBatchSize sets the chunk size for batch row mutations.
func WithBatchSize(n int) ClientOption {
	return func(c *Client) { c.batchSize = n }
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithExecutor substitutes the request executor. Used by tests.
func WithExecutor(executor Executor) ClientOption {
	return func(c *Client) { c.executor = executor }
}

// NewClient builds a client for the server at baseURL authenticating with
// a database token.
func NewClient(baseURL, token string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url must not be empty")
	}
	if token == "" {
		return nil, fmt.Errorf("token must not be empty")
	}
	c := &Client{
		baseURL:   baseURL,
		token:     token,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", c.batchSize)
	}
	if c.executor == nil {
		executor, err := NewHTTPExecutor(baseURL, token, c.logger, c.timeout)
		if err != nil {
			return nil, err
		}
		c.executor = executor
	}
	return c, nil
}

// NewClientFromConfig builds a client from a loaded Config.
func NewClientFromConfig(cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg.BatchSize > 0 {
		opts = append([]ClientOption{WithBatchSize(cfg.BatchSize)}, opts...)
	}
	return NewClient(cfg.URL, cfg.Token, opts...)
}

// BatchSize returns the chunk size used by batch row mutations.
func (c *Client) BatchSize() int { return c.batchSize }

// Table returns a handle for one table. The schema loads lazily on first
// field access.
func (c *Client) Table(id int) *Table {
	return newTable(c, id)
}

// MakeAPIRequest performs one raw API call. Most callers want the typed
// Table and Row methods instead; this is the escape hatch for endpoints
// the library does not model.
func (c *Client) MakeAPIRequest(ctx context.Context, method, endpoint string, body any, headers map[string]string, timeout time.Duration) (any, error) {
	return c.executor.Do(ctx, &Request{
		Method:  method,
		URL:     endpoint,
		Body:    body,
		Headers: headers,
		Timeout: timeout,
	})
}

// streamer is the optional executor capability behind file downloads.
type streamer interface {
	stream(ctx context.Context, rawURL string) (io.ReadCloser, error)
}
