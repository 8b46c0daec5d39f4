// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"trigger/cli/internal/credentials"

	"github.com/spf13/cobra"
)

// resetCmd removes the stored credentials and the key that encrypts them.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the saved email, password and encryption key",
	Long: `The reset command deletes the encrypted credential record and its key from the
trigger config directory. The next query asks for your email and password again.
Running it when nothing is stored is not an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.DefaultStore()
		if err != nil {
			return err
		}
		return store.Reset()
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
