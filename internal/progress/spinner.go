// Package progress renders a cosmetic inline spinner while a blocking call runs.
//
// The spinner runs in its own goroutine. Stopping it waits for that goroutine to
// clear the line and exit, so no rendering outlives the call that started it.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

// DefaultInterval is the frame interval when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Frames is the default animation.
var Frames = []string{"|", "/", "-", "\\"}

// Options tune a spinner. The zero value is usable.
type Options struct {
	Interval time.Duration
	Frames   []string
	// Disabled suppresses all output; Start still returns a valid stop func.
	Disabled bool
}

// Start draws frames followed by text on w until the returned func is called.
// The stop func is safe to call more than once.
func Start(w io.Writer, text string, opts Options) func() {
	if opts.Disabled || w == nil {
		return func() {}
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	frames := opts.Frames
	if len(frames) == 0 {
		frames = Frames
	}
	// The cursor is toggled on the spinner's own stream; the package-level
	// cursor helpers always target stdout, which may be carrying data.
	var c *cursor.Cursor
	if cw, ok := w.(cursor.Writer); ok {
		c = cursor.NewCursor().WithWriter(cw)
	}
	frameStyle := pterm.NewStyle(pterm.FgLightCyan)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if c != nil {
			c.Hide()
			defer c.Show()
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		width := 0
		for i := 0; ; i++ {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			if len(line) > width {
				width = len(line)
			}
			fmt.Fprintf(w, "\r%s %s", frameStyle.Sprint(frames[i%len(frames)]), text)
			select {
			case <-stop:
				fmt.Fprintf(w, "\r%*s\r", width, "")
				return
			case <-ticker.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
		})
	}
}

// Run calls fn with a spinner showing and returns once both have finished.
func Run[T any](w io.Writer, text string, opts Options, fn func() (T, error)) (T, error) {
	stop := Start(w, text, opts)
	defer stop()
	return fn()
}
