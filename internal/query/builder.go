// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"context"
	"slices"
)

// Builder stages a Spec one call at a time.
//
// Each step validates its own input immediately. The first failure is kept and
// reported by Err; every later step is a no-op, and Params and Fetch return that
// failure without dispatching anything.
//
//	res, err := engine.From("myair").
//		Select("year", "month").
//		Where("year", "=2025").
//		OrderBy("month").
//		Desc().
//		Fetch(ctx)
type Builder struct {
	engine *Engine
	spec   Spec
	err    error
}

// From starts a builder for table. An unknown table is reported right away.
func (e *Engine) From(table string) *Builder {
	return &Builder{
		engine: e,
		spec:   Spec{Table: table, Order: Asc, Limit: DefaultLimit},
		err:    e.reg.CheckTable(table),
	}
}

// Select narrows the selected columns. With no arguments, or a lone "*", every
// column is selected.
func (b *Builder) Select(columns ...string) *Builder {
	if b.err != nil {
		return b
	}
	if isWildcard(columns) {
		b.spec.Columns = nil
		return b
	}
	for _, c := range columns {
		if err := b.engine.reg.CheckReference(b.spec.Table, c); err != nil {
			b.err = err
			return b
		}
	}
	b.spec.Columns = slices.Clone(columns)
	return b
}

// Where adds a condition on column, replacing any earlier condition on it.
func (b *Builder) Where(column, expr string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.engine.reg.CheckReference(b.spec.Table, column); err != nil {
		b.err = err
		return b
	}
	for i := range b.spec.Filters {
		if b.spec.Filters[i].Column == column {
			b.spec.Filters[i].Expr = expr
			return b
		}
	}
	b.spec.Filters = append(b.spec.Filters, Filter{Column: column, Expr: expr})
	return b
}

// OrderBy sets the ordering column(s), comma-separated.
func (b *Builder) OrderBy(columns string) *Builder {
	if b.err != nil {
		return b
	}
	if err := checkOrderBy(b.engine.reg, b.spec.Table, columns); err != nil {
		b.err = err
		return b
	}
	b.spec.OrderBy = columns
	return b
}

// Asc orders results ascending.
func (b *Builder) Asc() *Builder { return b.Order(Asc) }

// Desc orders results descending.
func (b *Builder) Desc() *Builder { return b.Order(Desc) }

// Order sets the direction; dir must be ASC or DESC in any case.
func (b *Builder) Order(dir string) *Builder {
	if b.err != nil {
		return b
	}
	d, err := normalizeOrder(dir)
	if err != nil {
		b.err = err
		return b
	}
	b.spec.Order = d
	return b
}

// Limit caps the number of records. Zero or negative restores DefaultLimit.
func (b *Builder) Limit(n int) *Builder {
	if b.err != nil {
		return b
	}
	b.spec.Limit = effectiveLimit(n)
	return b
}

// Err returns the first validation failure, if any.
func (b *Builder) Err() error { return b.err }

// Spec returns a copy of the accumulated query.
func (b *Builder) Spec() Spec { return b.spec.Clone() }

// Params assembles the parameters Fetch would send.
func (b *Builder) Params() (Params, error) {
	if b.err != nil {
		return nil, b.err
	}
	return Build(b.engine.reg, b.spec.Clone())
}

// Fetch executes the accumulated query.
func (b *Builder) Fetch(ctx context.Context) (Result, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.engine.Retrieve(ctx, b.spec)
}
