package progress

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRendersAndClears(t *testing.T) {
	var buf bytes.Buffer
	stop := Start(&buf, "requesting ecg", Options{Interval: time.Millisecond})
	time.Sleep(20 * time.Millisecond)
	stop()

	out := buf.String()
	assert.Contains(t, out, "requesting ecg")
	assert.True(t, strings.HasSuffix(out, "\r"), "line must be cleared on stop")

	// The goroutine has been joined: nothing is written after stop returns.
	n := buf.Len()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, buf.Len())

	stop()
}

func TestStartDisabled(t *testing.T) {
	var buf bytes.Buffer
	stop := Start(&buf, "quiet", Options{Disabled: true})
	stop()
	assert.Zero(t, buf.Len())
}

func TestRunReturnsResult(t *testing.T) {
	var buf bytes.Buffer
	got, err := Run(&buf, "working", Options{Interval: time.Millisecond}, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	boom := errors.New("boom")
	_, err = Run(&buf, "working", Options{}, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}

func TestCursorCodesStayOnSpinnerStream(t *testing.T) {
	dir := t.TempDir()
	stream, err := os.Create(filepath.Join(dir, "stream"))
	require.NoError(t, err)
	defer stream.Close()
	stdout, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	defer stdout.Close()

	orig := os.Stdout
	os.Stdout = stdout
	stop := Start(stream, "Fetching myair", Options{Interval: time.Millisecond})
	time.Sleep(5 * time.Millisecond)
	stop()
	os.Stdout = orig

	got, err := os.ReadFile(stream.Name())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "\x1b[?25l"), "cursor hidden on the stream: %q", got)
	assert.True(t, strings.HasSuffix(string(got), "\x1b[?25h"), "cursor shown on the stream: %q", got)
	assert.Contains(t, string(got), "Fetching myair")

	leaked, err := os.ReadFile(stdout.Name())
	require.NoError(t, err)
	assert.Empty(t, leaked)
}

func TestPlainWriterGetsNoCursorCodes(t *testing.T) {
	var buf bytes.Buffer
	stop := Start(&buf, "Fetching ecg", Options{Interval: time.Millisecond})
	stop()
	assert.NotContains(t, buf.String(), "\x1b[?25")
}
