package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2KU77B0N3S/hllrcon/protocol/common"
	"github.com/2KU77B0N3S/hllrcon/protocol/pool"
)

// Client executes commands against one game server through a connection
// pool. It is safe for concurrent use.
type Client struct {
	cfg  common.ClientConfig
	pool *pool.Pool
}

// New creates a client for the given config. No connections are opened
// until Connect or the first command.
func New(cfg common.ClientConfig) (*Client, error) {
	cfg = cfg.WithDefaults()
	p, err := pool.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, pool: p}, nil
}

// Connect eagerly brings up the pool.
func (c *Client) Connect(ctx context.Context) error {
	return c.pool.Connect(ctx)
}

// Close drains the pool and releases all connections.
func (c *Client) Close() error {
	return c.pool.Close()
}

// Reset recovers faulted pool slots so they reconnect on the next command.
func (c *Client) Reset() {
	c.pool.Reset()
}

// IsConnected reports whether at least one pooled connection is ready.
func (c *Client) IsConnected() bool {
	return c.pool.IsConnected()
}

// Notifications returns the merged stream of server-initiated frames.
func (c *Client) Notifications() <-chan *common.Response {
	return c.pool.Notifications()
}

// Version returns the configured protocol generation.
func (c *Client) Version() int {
	return c.cfg.Version
}

// Execute runs a raw command and returns the response content on success.
// body may be nil, a string sent verbatim, or any value that is JSON
// encoded. A non-OK status code is returned as a *common.CommandError.
func (c *Client) Execute(ctx context.Context, name string, version int, body any) (string, error) {
	encoded, err := encodeBody(body)
	if err != nil {
		return "", fmt.Errorf("encode %s body: %w", name, err)
	}

	resp, err := c.pool.Execute(ctx, name, version, encoded)
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}
	return resp.ContentBody, nil
}

func encodeBody(body any) (string, error) {
	switch v := body.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}

// With runs fn against a temporary client and closes it afterwards, even if
// fn panics. Connection setup failures are returned before fn runs.
func With(ctx context.Context, cfg common.ClientConfig, fn func(c *Client) error) error {
	c, err := New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Connect(ctx); err != nil {
		return err
	}
	return fn(c)
}
