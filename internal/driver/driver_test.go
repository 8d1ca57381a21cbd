package driver

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvInt(t *testing.T) {
	t.Setenv("MODCTL_TEST_DIM", "")
	assert.Equal(t, 80, envInt("MODCTL_TEST_DIM", 80))

	t.Setenv("MODCTL_TEST_DIM", "132")
	assert.Equal(t, 132, envInt("MODCTL_TEST_DIM", 80))

	for _, bad := range []string{"nope", "-3", "0"} {
		t.Setenv("MODCTL_TEST_DIM", bad)
		assert.Equal(t, 24, envInt("MODCTL_TEST_DIM", 24), "value %q", bad)
	}
}

func TestTerminalSizeEnvFallback(t *testing.T) {
	// A pipe has no winsize, so with the test binary's stderr also not a
	// terminal the env fallback decides.
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "50")
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	width, height := terminalSize(r.Fd())
	assert.Equal(t, 132, width)
	assert.Equal(t, 50, height)
}

func TestTerminalSizeDefault(t *testing.T) {
	t.Setenv("COLUMNS", "")
	t.Setenv("LINES", "")
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	width, height := terminalSize(r.Fd())
	assert.Equal(t, 80, width)
	assert.Equal(t, 24, height)
}

func TestDriverEmitsProtocolLines(t *testing.T) {
	ttyR, ttyW, err := os.Pipe()
	require.NoError(t, err)
	defer ttyR.Close()

	pr, pw := io.Pipe()
	d := New(Options{TTY: ttyR, Output: pw})

	done := make(chan error, 1)
	go func() {
		done <- d.Run(context.Background())
		pw.Close()
	}()
	scanner := bufio.NewScanner(pr)

	require.True(t, scanner.Scan())
	assert.True(t, strings.HasPrefix(scanner.Text(), "S:"), "first line announces the size, got %q", scanner.Text())

	_, err = ttyW.Write([]byte("ab"))
	require.NoError(t, err)
	require.True(t, scanner.Scan())
	assert.Equal(t, "K:ab", scanner.Text())

	_, err = ttyW.Write([]byte{0x1b, '[', 'A'})
	require.NoError(t, err)
	require.True(t, scanner.Scan())
	assert.Equal(t, `K:\x1b[A`, scanner.Text())

	// EOF on the tty ends the session with an explicit quit line.
	require.NoError(t, ttyW.Close())
	require.True(t, scanner.Scan())
	assert.Equal(t, "Q:", scanner.Text())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop after tty EOF")
	}
}

func TestReadControlForwardsNonEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "control")
	require.NoError(t, os.WriteFile(path, []byte("CC 1 64\n\nsome chatter\n"), 0o644))

	d := New(Options{ControlDevice: path, PollInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan string, 16)
	done := make(chan struct{})
	go func() {
		d.readControl(ctx, ch)
		close(done)
	}()

	// Blank lines are dropped, everything else passes through untouched;
	// the consumer decides what is a CC message.
	for _, want := range []string{"CC 1 64", "some chatter"} {
		select {
		case got := <-ch:
			assert.Equal(t, want, got)
		case <-time.After(5 * time.Second):
			t.Fatalf("line %q never arrived", want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("readControl did not stop on cancel")
	}
}

func TestReadControlSurvivesMissingDevice(t *testing.T) {
	d := New(Options{
		ControlDevice: filepath.Join(t.TempDir(), "absent"),
		PollInterval:  time.Millisecond,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		d.readControl(ctx, make(chan string, 1))
		close(done)
	}()

	// Give it a few reopen cycles, then stop it.
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("readControl did not stop on cancel")
	}
}
