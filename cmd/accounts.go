// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"trigger/cli/internal/schema"
	"trigger/cli/internal/session"

	"github.com/spf13/cobra"
)

// accountsCmd prints the email of every registered account.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List registered account emails",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(m *session.Manager) error {
			res, err := m.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		})
	},
}

// countCmd prints the number of records in a table.
var countCmd = &cobra.Command{
	Use:   "count <table>",
	Short: "Count the records of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := schema.Default.CheckTable(args[0]); err != nil {
			return err
		}
		return withSession(cmd.Context(), func(m *session.Manager) error {
			n, err := m.Count(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), n)
		})
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd, countCmd)
}
