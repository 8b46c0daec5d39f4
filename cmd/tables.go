// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"trigger/cli/internal/schema"

	"github.com/spf13/cobra"
)

// tablesCmd lists the known tables. It needs no login.
var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables that can be queried",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), schema.Default.Tables())
	},
}

// columnsCmd lists the columns of one table. It needs no login.
var columnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "List the columns of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cols, err := schema.Default.Columns(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), cols)
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd, columnsCmd)
}
