// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides interfaces and implementations for communicating with the TRIGGER service.
// It defines the transport contract (one synchronous GET or POST, no retries) and the
// API the session manager depends on: authentication, logout and per-table retrieval.
package backend

import (
	"context"
	"net/url"

	"trigger/cli/internal/query"
)

// Transport performs a single HTTP exchange and returns the status and the full body.
// An error means no status was received.
type Transport interface {
	Get(ctx context.Context, rawURL, rawQuery string, headers map[string]string) (status int, body []byte, err error)
	Post(ctx context.Context, rawURL string, form url.Values) (status int, body []byte, err error)
}

// API defines backend operations the CLI depends on.
// Implementations may call the real service or provide fakes for tests.
type API interface {
	// Authenticate exchanges an account and secret for an opaque session token.
	Authenticate(ctx context.Context, account, secret string) (token string, err error)
	// Logout invalidates the session token on the service.
	Logout(ctx context.Context, token string) error
	// Retrieve fetches rows of table with the assembled parameters, authorised by token.
	Retrieve(ctx context.Context, token, table string, params query.Params) (query.Result, error)
}
