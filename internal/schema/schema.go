// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package schema holds the fixed table layout of the TRIGGER data service.
// The schema is never introspected: tables and their column order are compiled in,
// and every column reference a query makes is checked against them before any
// request leaves the process.
package schema

import (
	"regexp"
	"slices"
	"strings"

	terrors "trigger/cli/internal/errors"
)

// CountAll is the one aggregate accepted without a named inner column.
const CountAll = "COUNT(*)"

// aggregateRe matches NAME(inner) with no inner whitespace.
var aggregateRe = regexp.MustCompile(`^([A-Za-z]+)\((\w+)\)$`)

// Registry maps table names to their ordered columns.
type Registry struct {
	order     []string
	columns   map[string][]string
	functions map[string]struct{}
}

// Table pairs a table name with its columns in registry order.
type Table struct {
	Name    string
	Columns []string
}

// timeColumns prefix every sensor table.
var timeColumns = []string{"email", "userId", "year", "month", "day", "hour", "minute", "second"}

func withTime(extra ...string) []string {
	out := make([]string, 0, len(timeColumns)+len(extra))
	out = append(out, timeColumns...)
	return append(out, extra...)
}

// Tables is the service's schema in registry order.
var Tables = []Table{
	{Name: "myair", Columns: withTime("pm1", "pm25", "pm10", "pc03", "pc05", "pc1", "pc25", "pc5", "pc10", "temperature", "humidity", "pressure", "sound", "uvb", "light")},
	{Name: "ecg", Columns: withTime("microsecond", "ecg")},
	{Name: "ppg", Columns: withTime("microsecond", "ppg")},
	{Name: "gsp", Columns: withTime("longitude", "latitude", "accuracy")},
	{Name: "sleep", Columns: withTime("sleepduration", "awake", "insomnia", "remsleep", "lightsleep", "deepsleep", "sleepquality")},
	{Name: "smartwatchlow", Columns: withTime("step", "cal", "bphigh", "bplow", "bodytemp")},
	{Name: "smartwatchhigh", Columns: withTime("heartrate", "sleeprate", "oxygens")},
	{Name: "accounts", Columns: []string{"id", "email", "created_at", "last_login"}},
}

// Functions are the aggregate names accepted as NAME(column).
var Functions = []string{"AVG", "SUM", "COUNT", "MIN", "MAX"}

// Default is the registry built from Tables and Functions.
var Default = New(Tables, Functions)

// New builds a registry. Later duplicates of a table name are ignored.
func New(tables []Table, functions []string) *Registry {
	r := &Registry{
		columns:   make(map[string][]string, len(tables)),
		functions: make(map[string]struct{}, len(functions)),
	}
	for _, t := range tables {
		if _, dup := r.columns[t.Name]; dup {
			continue
		}
		r.order = append(r.order, t.Name)
		r.columns[t.Name] = append([]string(nil), t.Columns...)
	}
	for _, f := range functions {
		r.functions[strings.ToUpper(f)] = struct{}{}
	}
	return r
}

// Tables returns the table names in registry order.
func (r *Registry) Tables() []string {
	return append([]string(nil), r.order...)
}

// HasTable reports whether table is part of the schema.
func (r *Registry) HasTable(table string) bool {
	_, ok := r.columns[table]
	return ok
}

// CheckTable returns an UnknownTable error when table is not part of the schema.
func (r *Registry) CheckTable(table string) error {
	if r.HasTable(table) {
		return nil
	}
	return terrors.Newf(terrors.UnknownTable,
		"table '%s' not found in the database. Available tables are: %s",
		table, strings.Join(r.order, ", "))
}

// Columns returns the columns of table in registry order.
func (r *Registry) Columns(table string) ([]string, error) {
	if err := r.CheckTable(table); err != nil {
		return nil, err
	}
	return append([]string(nil), r.columns[table]...), nil
}

// IsValidReference reports whether ref names a column of table, a recognized
// aggregate wrapped around one (function name case-insensitive), or COUNT(*).
// Only leading and trailing whitespace of the whole expression is tolerated.
func (r *Registry) IsValidReference(table, ref string) bool {
	cols, ok := r.columns[table]
	if !ok {
		return false
	}
	ref = strings.TrimSpace(ref)

	if strings.EqualFold(ref, CountAll) {
		return true
	}

	if m := aggregateRe.FindStringSubmatch(ref); m != nil {
		if _, ok := r.functions[strings.ToUpper(m[1])]; !ok {
			return false
		}
		return slices.Contains(cols, m[2])
	}

	return slices.Contains(cols, ref)
}

// CheckReference returns an InvalidColumn error naming ref when it is not valid for table.
func (r *Registry) CheckReference(table, ref string) error {
	if err := r.CheckTable(table); err != nil {
		return err
	}
	if r.IsValidReference(table, ref) {
		return nil
	}
	return terrors.Newf(terrors.InvalidColumn,
		"column '%s' not found in the table '%s'. Available columns are: %s",
		ref, table, strings.Join(r.columns[table], ", "))
}
