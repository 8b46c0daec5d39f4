// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"os"

	"trigger/cli/internal/backend"
	"trigger/cli/internal/config"
	"trigger/cli/internal/credentials"
	terrors "trigger/cli/internal/errors"
	"trigger/cli/internal/httperrors"
	"trigger/cli/internal/logging"
	"trigger/cli/internal/session"
)

// exit is swapped in tests.
var exit = os.Exit

// withSession loads config and credentials, opens a session, runs fn and logs out
// on every exit path, including SIGINT/SIGTERM.
func withSession(ctx context.Context, fn func(*session.Manager) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
	}
	log := logging.NewLogger(cfg.Verbose)
	defer log.Sync()

	store, err := credentials.DefaultStore()
	if err != nil {
		return err
	}
	api := backend.New(cfg, log)

	err = session.With(ctx, store, api, func(m *session.Manager) error {
		stop := session.CloseOnSignal(m, exit)
		defer stop()
		return fn(m)
	}, session.WithLogger(log))

	if terrors.IsKind(err, terrors.TransportFailed) {
		host := httperrors.ExtractHostFromURL(cfg.APIURL)
		return httperrors.FormatNetworkError(err, "contacting "+host, host)
	}
	return err
}
