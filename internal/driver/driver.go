// Package driver owns raw terminal state and turns terminal activity into
// the line protocol consumed by the event loop.
//
// The driver is the only component that touches terminal modes: it
// disables canonical input and echo, hides the cursor, switches to the
// alternate screen, and restores all of it unconditionally on every exit
// path, signal-driven ones included. It communicates exclusively by
// writing self-contained event lines to its output writer, so it can run
// either as a goroutine inside the TUI process or as a standalone
// `modctl driver` child process with no change on the consuming side.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"modctl/internal/event"
	"modctl/pkg/logging"
)

const subsystem = "driver"

// DefaultPollInterval bounds how long a read on the control stream is
// retried after EOF or error before giving up on the device.
const DefaultPollInterval = 50 * time.Millisecond

// Options configures a Driver.
type Options struct {
	// TTY is the terminal to own. Defaults to os.Stdin.
	TTY *os.File
	// Output receives protocol lines. Defaults to os.Stdout.
	Output io.Writer
	// ControlDevice is an optional path to a readable device or FIFO
	// carrying `CC <channel> <value>` lines. Empty disables it.
	ControlDevice string
	// PollInterval is the control-stream retry interval.
	PollInterval time.Duration
	// AltScreen switches to the alternate screen while the driver runs.
	AltScreen bool
}

// Driver owns the terminal and emits protocol lines.
type Driver struct {
	tty   *os.File
	out   io.Writer
	outMu sync.Mutex
	opts  Options
	termo *termenv.Output
}

// New returns a Driver for the given options.
func New(opts Options) *Driver {
	if opts.TTY == nil {
		opts.TTY = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	return &Driver{
		tty:   opts.TTY,
		out:   opts.Output,
		opts:  opts,
		termo: termenv.NewOutput(os.Stderr),
	}
}

// Run takes ownership of the terminal and emits events until ctx is
// cancelled, the tty reaches EOF, or a termination signal arrives. The
// terminal is restored before Run returns, on every path.
func (d *Driver) Run(ctx context.Context) error {
	fd := int(d.tty.Fd())
	var restoreState *term.State
	if term.IsTerminal(fd) {
		st, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		restoreState = st
		d.termo.HideCursor()
		if d.opts.AltScreen {
			d.termo.AltScreen()
		}
	}
	defer func() {
		if restoreState == nil {
			return
		}
		if d.opts.AltScreen {
			d.termo.ExitAltScreen()
		}
		d.termo.ShowCursor()
		_ = term.Restore(fd, restoreState)
	}()

	sigCh := make(chan os.Signal, 4)
	signal.Notify(sigCh, unix.SIGWINCH, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(sigCh)

	// Dedicated reader so the select below is never starved by a
	// blocking terminal read.
	keyCh := make(chan []byte, 16)
	readErr := make(chan error, 1)
	go d.readKeys(keyCh, readErr)

	var controlCh chan string
	if d.opts.ControlDevice != "" {
		controlCh = make(chan string, 16)
		go d.readControl(ctx, controlCh)
	}

	// Initial size so the consumer can lay out its first frame.
	w, h := terminalSize(d.tty.Fd())
	d.emit(event.FormatResize(w, h))

	for {
		select {
		case <-ctx.Done():
			d.emit(event.FormatQuit())
			return nil
		case sig := <-sigCh:
			switch sig {
			case unix.SIGWINCH:
				w, h := terminalSize(d.tty.Fd())
				d.emit(event.FormatResize(w, h))
			default:
				d.emit(event.FormatQuit())
				return nil
			}
		case raw := <-keyCh:
			d.emit(event.FormatKey(raw))
		case line := <-controlCh:
			d.emit(event.FormatControl(line))
		case err := <-readErr:
			// EOF or read failure: the session is over either way.
			if err != nil && err != io.EOF {
				logging.Warn(subsystem, "terminal read failed: %v", err)
			}
			d.emit(event.FormatQuit())
			return nil
		}
	}
}

// readKeys reads raw byte groups from the tty. One read may carry a whole
// escape sequence or several pasted characters; the decoder on the other
// side splits them back into chords.
func (d *Driver) readKeys(keyCh chan<- []byte, readErr chan<- error) {
	buf := make([]byte, 64)
	for {
		n, err := d.tty.Read(buf)
		if n > 0 {
			raw := make([]byte, n)
			copy(raw, buf[:n])
			keyCh <- raw
		}
		if err != nil {
			readErr <- err
			return
		}
	}
}

// readControl tails the configured control device, forwarding any line
// that mentions a CC message. The device is reopened after EOF or error
// so unplugging and replugging a controller does not kill the stream.
func (d *Driver) readControl(ctx context.Context, controlCh chan<- string) {
	for ctx.Err() == nil {
		f, err := os.Open(d.opts.ControlDevice)
		if err != nil {
			logging.Debug(subsystem, "control device %s unavailable: %v", d.opts.ControlDevice, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(d.opts.PollInterval * 20):
			}
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			select {
			case controlCh <- line:
			case <-ctx.Done():
				f.Close()
				return
			}
		}
		f.Close()
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.opts.PollInterval):
		}
	}
}

func (d *Driver) emit(line string) {
	d.outMu.Lock()
	defer d.outMu.Unlock()
	fmt.Fprintln(d.out, line)
}
