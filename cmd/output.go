// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"io"
	"regexp"

	"trigger/cli/internal/query"

	"github.com/pterm/pterm"
)

// whereRe splits "year>=2025" into the column and the operator expression.
var whereRe = regexp.MustCompile(`^([a-zA-Z_]\w*)(.*)$`)

// parseWhere turns -w arguments into filters in the order given.
// Arguments that do not start with an identifier are skipped with a warning.
func parseWhere(conds []string) []query.Filter {
	var out []query.Filter
	for _, c := range conds {
		m := whereRe.FindStringSubmatch(c)
		if m == nil {
			pterm.Warning.Printfln("Ignoring condition %q: it must start with a column name", c)
			continue
		}
		out = append(out, query.Filter{Column: m[1], Expr: m[2]})
	}
	return out
}

// printJSON writes v indented by two spaces. Map keys are sorted by encoding/json.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
