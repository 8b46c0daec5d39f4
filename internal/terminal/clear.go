// Package terminal provides utilities for terminal operations such as clearing prompts.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the terminal size cannot be determined.
const DefaultWidth = 80

// Width returns the column count of the terminal on fd, or DefaultWidth.
func Width(fd int) int {
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// LinesFor returns how many rows textLength characters occupy at the given width,
// plus the empty row the cursor lands on after Enter.
func LinesFor(textLength, width int) int {
	if width <= 0 {
		width = DefaultWidth
	}
	lines := (textLength + width - 1) / width
	if lines < 1 {
		lines = 1
	}
	return lines + 1
}

// ClearPreviousLines erases a prompt and the user's answer from w.
// textLength is len(prompt)+len(answer); wrapping uses the width of w when it is
// a terminal.
func ClearPreviousLines(w io.Writer, textLength int) {
	width := DefaultWidth
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width = Width(int(f.Fd()))
	}
	n := LinesFor(textLength, width)
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
