// Package main is the entry point for the trigger CLI.
// It queries the TRIGGER EU project data service from the command line.
package main

import (
	"trigger/cli/cmd"
)

// main initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
