// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"io"
	"strings"

	"trigger/cli/internal/progress"

	"go.uber.org/zap"
)

// Client implements API against the TRIGGER REST endpoints.
type Client struct {
	// baseURL is the service root, e.g. "https://trigger-io.difa.unibo.it/api"
	baseURL string
	t       Transport
	log     *zap.Logger
	// spinner output; nil disables it
	out      io.Writer
	progress progress.Options
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the debug logger. Secrets are masked before logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithProgress shows a spinner on w while a retrieval is in flight.
func WithProgress(w io.Writer, opts progress.Options) Option {
	return func(c *Client) {
		c.out = w
		c.progress = opts
	}
}

// NewClient builds a client for baseURL over t.
func NewClient(baseURL string, t Transport, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		t:       t,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

var _ API = (*Client)(nil)
