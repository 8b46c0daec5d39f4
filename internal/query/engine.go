// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	terrors "trigger/cli/internal/errors"
	"trigger/cli/internal/schema"
)

// Result is a decoded response body: a JSON array of records, left as the
// generic tree encoding/json produces.
type Result = any

// Dispatcher sends one validated retrieval for table and returns the decoded body.
// Implementations attach whatever credentials the service requires.
type Dispatcher interface {
	Dispatch(ctx context.Context, table string, params Params) (Result, error)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, table string, params Params) (Result, error)

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, table string, params Params) (Result, error) {
	return f(ctx, table, params)
}

const (
	accountsTable = "accounts"
	accountsLimit = 100000
	countColumn   = "email"
)

// Engine validates retrievals against a registry and dispatches them.
type Engine struct {
	reg *schema.Registry
	d   Dispatcher
}

// NewEngine returns an engine over reg sending requests through d.
func NewEngine(reg *schema.Registry, d Dispatcher) *Engine {
	return &Engine{reg: reg, d: d}
}

// Registry returns the registry the engine validates against.
func (e *Engine) Registry() *schema.Registry { return e.reg }

// Retrieve validates spec and, only if it is valid, dispatches exactly one request.
func (e *Engine) Retrieve(ctx context.Context, spec Spec) (Result, error) {
	spec = spec.Clone()
	params, err := Build(e.reg, spec)
	if err != nil {
		return nil, err
	}
	return e.d.Dispatch(ctx, spec.Table, params)
}

// ListTables returns every table name in registry order.
func (e *Engine) ListTables() []string {
	return e.reg.Tables()
}

// ListColumns returns the columns of table in registry order.
func (e *Engine) ListColumns(table string) ([]string, error) {
	return e.reg.Columns(table)
}

// ListAccounts retrieves the email of every registered account.
func (e *Engine) ListAccounts(ctx context.Context) (Result, error) {
	return e.Retrieve(ctx, Spec{
		Table:   accountsTable,
		Columns: []string{countColumn},
		Limit:   accountsLimit,
	})
}

// Count returns the number of records in table.
func (e *Engine) Count(ctx context.Context, table string) (int, error) {
	key := "COUNT(" + countColumn + ")"
	res, err := e.Retrieve(ctx, Spec{Table: table, Columns: []string{key}})
	if err != nil {
		return 0, err
	}
	return firstInt(res, key)
}

// firstInt reduces a response to the integer stored under key in its first record.
func firstInt(res Result, key string) (int, error) {
	rows, ok := res.([]any)
	if !ok || len(rows) == 0 {
		return 0, terrors.Newf(terrors.UnexpectedResponse, "expected a non-empty array of records, got %T", res)
	}
	rec, ok := rows[0].(map[string]any)
	if !ok {
		return 0, terrors.Newf(terrors.UnexpectedResponse, "expected a record, got %T", rows[0])
	}
	v, ok := rec[key]
	if !ok {
		return 0, terrors.Newf(terrors.UnexpectedResponse, "record has no '%s' field", key)
	}

	switch n := v.(type) {
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, terrors.Wrap(terrors.UnexpectedResponse, fmt.Sprintf("'%s' is not an integer", key), err)
		}
		return i, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, terrors.Wrap(terrors.UnexpectedResponse, fmt.Sprintf("'%s' is not an integer", key), err)
		}
		return int(i), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, terrors.Newf(terrors.UnexpectedResponse, "'%s' is not an integer: %v", key, n)
		}
		return int(n), nil
	default:
		return 0, terrors.Newf(terrors.UnexpectedResponse, "'%s' has unexpected type %T", key, v)
	}
}
