// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the trigger CLI.
// The root command runs one validated query against a TRIGGER table and prints the
// records as indented, key-sorted JSON. Subcommands cover the derived operations
// (tables, columns, accounts, count) and credential reset.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	terrors "trigger/cli/internal/errors"
	"trigger/cli/internal/logging"
	"trigger/cli/internal/query"
	"trigger/cli/internal/schema"
	"trigger/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	verbose     bool

	queryTable   string
	querySelect  []string
	queryWhere   []string
	queryOrderBy string
	queryOrder   string
	queryLimit   int
)

// rootCmd runs a query when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Query the TRIGGER EU project data service",
	Long: `trigger retrieves records from the TRIGGER data service.

Tables and columns are validated locally before any request is sent. Conditions
are written as column followed by an operator expression, e.g. -w "year=2025".
On first use you are asked for your email and password; they are stored
encrypted in the trigger config directory (see "trigger reset").`,
	Example: `  trigger -t myair -s year month pm25 -w "year=2025" -b month -o DESC -l 50
  trigger -t ecg -s "COUNT(*)"`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Advisory output goes to stderr so stdout stays valid JSON.
		pterm.SetDefaultOutput(cmd.ErrOrStderr())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.ErrOrStderr(), pterm.NewStyle(pterm.FgMagenta).Sprint(banner))
		start := time.Now()

		if showVersion {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
			return nil
		}
		if queryTable == "" {
			return errors.New(`required flag "table" not set`)
		}

		// Extra positional words continue --select, as in "-s year month".
		columns := append(append([]string(nil), querySelect...), args...)
		filters := parseWhere(queryWhere)

		// Validate against the local schema before prompting or logging in.
		if _, err := query.Build(schema.Default, query.Spec{
			Table: queryTable, Columns: columns, Filters: filters,
			OrderBy: queryOrderBy, Order: queryOrder, Limit: queryLimit,
		}); err != nil {
			return err
		}

		err := withSession(cmd.Context(), func(m *session.Manager) error {
			b := m.From(queryTable).Select(columns...).Order(queryOrder).Limit(queryLimit)
			for _, f := range filters {
				b = b.Where(f.Column, f.Expr)
			}
			if queryOrderBy != "" {
				b = b.OrderBy(queryOrderBy)
			}
			res, err := b.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		})
		if err != nil {
			return err
		}

		pterm.Info.Printfln("Elapsed time: %.2f sec", time.Since(start).Seconds())
		return nil
	},
}

// Execute runs the CLI application.
// Errors are printed masked, and the process exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(logging.PresentError(errorContext(err), err))
		os.Exit(1)
	}
}

// errorContext names the failing stage for the one-line error report.
func errorContext(err error) string {
	switch terrors.KindOf(err) {
	case terrors.UnknownTable, terrors.InvalidColumn, terrors.InvalidOrder:
		return "invalid query"
	case terrors.CredentialFailed:
		return "credentials"
	case terrors.AuthenticationFailed:
		return "authentication"
	case terrors.RequestFailed, terrors.UnexpectedResponse:
		return "request"
	case terrors.TransportFailed:
		return "network"
	default:
		return "error"
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log requests and responses (secrets masked) to stderr")

	f := rootCmd.Flags()
	f.BoolVarP(&showVersion, "version", "v", false, "Get the current version installed")
	f.StringVarP(&queryTable, "table", "t", "", "Name of the table to use for the query")
	f.StringSliceVarP(&querySelect, "select", "s", nil, "Column names or aggregates to select (default all columns)")
	f.StringArrayVarP(&queryWhere, "where", "w", nil, `Condition to apply, e.g. "year=2025" (repeatable)`)
	f.StringVarP(&queryOrderBy, "orderby", "b", "", "Column(s) to order the results by")
	f.StringVarP(&queryOrder, "order", "o", query.Asc, "Order of the result: ASC or DESC")
	f.IntVarP(&queryLimit, "limit", "l", query.DefaultLimit, "Maximum number of records to retrieve")
}
