// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package credentials

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"trigger/cli/internal/terminal"

	"golang.org/x/term"
)

// Prompter asks the user for the account identifier and secret.
type Prompter interface {
	Prompt(label string) (string, error)
	// PromptSecret must not echo the input and returns it verbatim.
	PromptSecret(label string) (string, error)
}

// TerminalPrompter reads answers from In and writes prompts to Out.
type TerminalPrompter struct {
	In     *os.File
	Out    io.Writer
	reader *bufio.Reader
}

// NewTerminalPrompter reads from stdin and prompts on stderr, leaving stdout to
// command output.
func NewTerminalPrompter() *TerminalPrompter {
	return newTerminalPrompter(os.Stdin, os.Stderr)
}

func newTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{In: in, Out: out, reader: bufio.NewReader(in)}
}

// Prompt returns the answer with surrounding whitespace removed.
func (p *TerminalPrompter) Prompt(label string) (string, error) {
	line, err := p.readLine(label)
	return strings.TrimSpace(line), err
}

func (p *TerminalPrompter) PromptSecret(label string) (string, error) {
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		// Piped input cannot be masked; read it as a plain line.
		return p.readLine(label)
	}
	fmt.Fprint(p.Out, label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", err
	}
	// Only the label was printed, never the secret.
	terminal.ClearPreviousLines(p.Out, len(label))
	return string(b), nil
}

// readLine prints label and returns the next line without its line ending.
func (p *TerminalPrompter) readLine(label string) (string, error) {
	fmt.Fprint(p.Out, label)
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
