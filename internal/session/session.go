// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session owns the lifetime of an authenticated TRIGGER session.
//
// A Manager moves UNAUTHENTICATED -> AUTHENTICATED -> CLOSED. Construction either
// yields an authenticated manager or an error with nothing held open. Every query
// routed through the manager carries its token. Close sends at most one logout
// and never fails; use With or a deferred Close so it runs on every exit path.
package session

import (
	"context"
	"sync"
	"sync/atomic"

	"trigger/cli/internal/backend"
	"trigger/cli/internal/credentials"
	terrors "trigger/cli/internal/errors"
	"trigger/cli/internal/logging"
	"trigger/cli/internal/query"
	"trigger/cli/internal/schema"

	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// State is the session lifecycle position.
type State int

const (
	Unauthenticated State = iota
	Authenticated
	Closed
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Closed:
		return "closed"
	default:
		return "unauthenticated"
	}
}

// CredentialSource supplies the login; *credentials.Store satisfies it.
type CredentialSource interface {
	LoadOrPrompt(ctx context.Context) (credentials.Credentials, error)
}

// Manager is a single authenticated session. Calls on one Manager must be
// serialized by the caller; only Close is safe to race.
type Manager struct {
	api     backend.API
	account string
	token   string
	engine  *query.Engine
	reg     *schema.Registry
	log     *zap.Logger

	closed    atomic.Bool
	closeOnce sync.Once
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithRegistry validates queries against reg instead of schema.Default.
func WithRegistry(reg *schema.Registry) Option {
	return func(m *Manager) {
		if reg != nil {
			m.reg = reg
		}
	}
}

// New loads credentials from src and authenticates with api.
// Any authentication failure is reported as authentication_failed and leaves no
// session behind, so there is nothing to close.
func New(ctx context.Context, src CredentialSource, api backend.API, opts ...Option) (*Manager, error) {
	m := &Manager{api: api, reg: schema.Default, log: zap.NewNop()}
	for _, o := range opts {
		o(m)
	}

	creds, err := src.LoadOrPrompt(ctx)
	if err != nil {
		return nil, err
	}

	token, err := api.Authenticate(ctx, creds.Account, creds.Secret)
	if err != nil {
		m.log.Debug("authentication failed", zap.String("account", creds.Account), zap.Error(err))
		if !terrors.IsKind(err, terrors.AuthenticationFailed) {
			err = terrors.Wrap(terrors.AuthenticationFailed, "login failed", err)
		}
		return nil, err
	}

	m.account = creds.Account
	m.token = token
	m.engine = query.NewEngine(m.reg, query.DispatcherFunc(m.dispatch))
	m.log.Debug("session opened", zap.String("account", creds.Account))
	return m, nil
}

// dispatch attaches the session token; it refuses once the session is closed.
func (m *Manager) dispatch(ctx context.Context, table string, params query.Params) (query.Result, error) {
	if m.closed.Load() {
		return nil, terrors.New(terrors.SessionClosed, "session is closed")
	}
	return m.api.Retrieve(ctx, m.token, table, params)
}

// State reports where the session is in its lifecycle.
func (m *Manager) State() State {
	if m.closed.Load() {
		return Closed
	}
	return Authenticated
}

// Account returns the account the session was opened for.
func (m *Manager) Account() string { return m.account }

// Close logs out once. Later calls return immediately. A failed logout is only
// a warning: the session is closed either way and the token expires server-side.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		if err := m.api.Logout(context.Background(), m.token); err != nil {
			m.log.Debug("logout failed", zap.Error(err))
			pterm.Warning.Println(logging.PresentError("Logout failed", err))
			return
		}
		pterm.Info.Println("Logged out.")
	})
	return nil
}

// Engine exposes the token-attaching query engine.
func (m *Manager) Engine() *query.Engine { return m.engine }

// Retrieve validates spec and fetches it through this session.
func (m *Manager) Retrieve(ctx context.Context, spec query.Spec) (query.Result, error) {
	return m.engine.Retrieve(ctx, spec)
}

// From starts a fluent query against table.
func (m *Manager) From(table string) *query.Builder { return m.engine.From(table) }

// ListTables returns every known table.
func (m *Manager) ListTables() []string { return m.engine.ListTables() }

// ListColumns returns the columns of table.
func (m *Manager) ListColumns(table string) ([]string, error) { return m.engine.ListColumns(table) }

// ListAccounts retrieves every registered account email.
func (m *Manager) ListAccounts(ctx context.Context) (query.Result, error) {
	return m.engine.ListAccounts(ctx)
}

// Count returns the number of records in table.
func (m *Manager) Count(ctx context.Context, table string) (int, error) {
	return m.engine.Count(ctx, table)
}
