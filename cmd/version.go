// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

// banner is printed before every query, in the style of the original tool.
const banner = `
  _        _
 | |_ _ __(_) __ _  __ _  ___ _ __
 | __| '__| |/ _` + "`" + ` |/ _` + "`" + ` |/ _ \ '__|
 | |_| |  | | (_| | (_| |  __/ |
  \__|_|  |_|\__, |\__, |\___|_|
             |___/ |___/
`
