// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"os"
	"time"

	"trigger/cli/internal/config"
	"trigger/cli/internal/progress"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// New creates the real backend client from configuration.
// The spinner goes to stderr, and only when stderr is a terminal.
func New(cfg config.Config, log *zap.Logger) *Client {
	return NewClient(cfg.APIURL, NewHTTP(time.Duration(cfg.Timeout)),
		WithLogger(log),
		WithProgress(os.Stderr, progress.Options{
			Interval: time.Duration(cfg.ProgressInterval),
			Disabled: !term.IsTerminal(int(os.Stderr.Fd())),
		}),
	)
}
