// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package query validates retrieval requests against the schema registry and
// assembles the flat parameter set the data service expects.
//
// Two front-ends share one build-and-validate path: Engine.Retrieve takes a
// complete Spec, and Builder stages the same Spec step by step. Both end in Build,
// so equivalent inputs always produce identical parameters.
package query

import (
	"slices"
	"strconv"
	"strings"

	terrors "trigger/cli/internal/errors"
	"trigger/cli/internal/schema"
)

const (
	// DefaultLimit is used when a Spec leaves Limit unset.
	DefaultLimit = 100
	// Wildcard selects every column of the table in registry order.
	Wildcard = "*"
	// Asc and Desc are the accepted order directions.
	Asc  = "ASC"
	Desc = "DESC"
)

// Filter is a condition on one column. Expr is an operator followed by a value,
// e.g. "=2025" or ">=0", and is passed to the service verbatim.
type Filter struct {
	Column string
	Expr   string
}

// Spec describes one retrieval.
type Spec struct {
	Table string
	// Columns selects explicit columns or aggregates; nil, empty or ["*"]
	// selects every column.
	Columns []string
	Filters []Filter
	// OrderBy is a comma-separated column list; empty means no ordering.
	OrderBy string
	// Order is ASC or DESC in any case; empty means ASC.
	Order string
	// Limit caps the number of records; zero or negative means DefaultLimit.
	Limit int
}

// Clone returns a deep copy of s.
func (s Spec) Clone() Spec {
	s.Columns = slices.Clone(s.Columns)
	s.Filters = slices.Clone(s.Filters)
	return s
}

// Build validates spec against reg and assembles its parameters. Validation is
// fail-fast in the order table, columns, order-by, order direction, filters.
func Build(reg *schema.Registry, spec Spec) (Params, error) {
	if err := reg.CheckTable(spec.Table); err != nil {
		return nil, err
	}

	selected, err := resolveColumns(reg, spec.Table, spec.Columns)
	if err != nil {
		return nil, err
	}

	if spec.OrderBy != "" {
		if err := checkOrderBy(reg, spec.Table, spec.OrderBy); err != nil {
			return nil, err
		}
	}

	order, err := normalizeOrder(spec.Order)
	if err != nil {
		return nil, err
	}

	conds := make([]string, 0, len(spec.Filters))
	for _, f := range spec.Filters {
		if err := reg.CheckReference(spec.Table, f.Column); err != nil {
			return nil, err
		}
		conds = append(conds, f.Column+f.Expr)
	}

	params := Params{{Key: ParamSelect, Value: strings.Join(selected, ",")}}
	if len(conds) > 0 {
		params = append(params, Param{Key: ParamWhere, Value: strings.Join(conds, ",")})
	}
	if spec.OrderBy != "" {
		params = append(params,
			Param{Key: ParamOrderBy, Value: spec.OrderBy},
			Param{Key: ParamOrder, Value: order},
		)
	}
	params = append(params, Param{Key: ParamLimit, Value: strconv.Itoa(effectiveLimit(spec.Limit))})
	return params, nil
}

func isWildcard(cols []string) bool {
	return len(cols) == 0 || (len(cols) == 1 && strings.TrimSpace(cols[0]) == Wildcard)
}

// resolveColumns expands the wildcard or validates each column in turn,
// failing on the first invalid one.
func resolveColumns(reg *schema.Registry, table string, cols []string) ([]string, error) {
	if isWildcard(cols) {
		return reg.Columns(table)
	}
	for _, c := range cols {
		if err := reg.CheckReference(table, c); err != nil {
			return nil, err
		}
	}
	return slices.Clone(cols), nil
}

func checkOrderBy(reg *schema.Registry, table, orderBy string) error {
	for _, c := range strings.Split(orderBy, ",") {
		if err := reg.CheckReference(table, c); err != nil {
			return err
		}
	}
	return nil
}

func normalizeOrder(dir string) (string, error) {
	switch d := strings.ToUpper(strings.TrimSpace(dir)); d {
	case "":
		return Asc, nil
	case Asc, Desc:
		return d, nil
	default:
		return "", terrors.Newf(terrors.InvalidOrder, "invalid ordering '%s': use ASC or DESC", dir)
	}
}

func effectiveLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	return n
}
