// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	terrors "trigger/cli/internal/errors"
	"trigger/cli/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticate posts the account and secret to /auth.
// A 200 response body is the session token as plain text; anything else is authentication_failed.
func (c *Client) Authenticate(ctx context.Context, account, secret string) (string, error) {
	form := url.Values{"email": {account}, "password": {secret}}
	log := c.log.With(zap.String("request_id", uuid.NewString()), zap.String("endpoint", "auth"))
	log.Debug("authenticate", zap.String("email", account), zap.String("form", logging.Mask(form.Encode())))

	status, body, err := c.t.Post(ctx, c.baseURL+"/auth", form)
	if err != nil {
		log.Debug("transport error", zap.Error(err))
		return "", terrors.Wrap(terrors.TransportFailed, "cannot reach authentication endpoint", err)
	}
	log.Debug("response", zap.Int("status", status))
	if status != http.StatusOK {
		return "", terrors.Wrap(terrors.AuthenticationFailed, "login rejected",
			&terrors.RequestError{StatusCode: status, Body: strings.TrimSpace(string(body))})
	}

	token := strings.TrimSpace(string(body))
	if token == "" {
		return "", terrors.New(terrors.AuthenticationFailed, "login succeeded but no token was returned")
	}
	return token, nil
}

// Logout posts the token to /logout. Only a 200 counts as success.
func (c *Client) Logout(ctx context.Context, token string) error {
	log := c.log.With(zap.String("request_id", uuid.NewString()), zap.String("endpoint", "logout"))
	log.Debug("logout")

	status, body, err := c.t.Post(ctx, c.baseURL+"/logout", url.Values{"token": {token}})
	if err != nil {
		log.Debug("transport error", zap.Error(err))
		return terrors.Wrap(terrors.TransportFailed, "cannot reach logout endpoint", err)
	}
	log.Debug("response", zap.Int("status", status))
	if status != http.StatusOK {
		return terrors.Wrap(terrors.RequestFailed, "logout rejected",
			&terrors.RequestError{StatusCode: status, Body: strings.TrimSpace(string(body))})
	}
	return nil
}
