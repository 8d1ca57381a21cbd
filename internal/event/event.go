// Package event defines the driver→loop wire protocol and the decoding of
// raw key bytes into logical chords.
//
// The terminal driver emits one line per occurrence, `TYPE:payload`, with
// the tag and payload separated by the first colon:
//
//	S:<width>x<height>   terminal resized or size queried
//	K:<escaped-bytes>    a keypress, non-printable bytes escaped
//	M:<text>             a control-change line from the external stream
//	Q:                   driver-initiated shutdown
//
// Whether the driver runs in-process or as a child process, the consumer
// sees the same lines; EOF on the stream is equivalent to Q:.
package event

import (
	"fmt"
	"strings"
)

// Event is one occurrence reported by the terminal driver. It is consumed
// exactly once by the event loop and not retained.
type Event interface {
	isEvent()
}

// Resize reports the terminal dimensions after a resize or initial query.
type Resize struct {
	Width  int
	Height int
}

// Key carries the raw bytes of one keypress, already unescaped.
type Key struct {
	Raw []byte
}

// Control is a control-change message from the optional external stream
// (a MIDI-style `CC <channel> <value>` line).
type Control struct {
	Channel int
	Value   int
}

// Quit signals driver-initiated shutdown.
type Quit struct{}

func (Resize) isEvent()  {}
func (Key) isEvent()     {}
func (Control) isEvent() {}
func (Quit) isEvent()    {}

// ParseLine parses one protocol line into an Event. Malformed lines return
// an error; the loop logs and skips them rather than terminating.
func ParseLine(line string) (Event, error) {
	tag, payload, found := strings.Cut(line, ":")
	if !found {
		return nil, fmt.Errorf("protocol line without tag separator: %q", line)
	}
	switch tag {
	case "S":
		var w, h int
		if _, err := fmt.Sscanf(payload, "%dx%d", &w, &h); err != nil {
			return nil, fmt.Errorf("malformed resize payload %q: %w", payload, err)
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("non-positive terminal size %dx%d", w, h)
		}
		return Resize{Width: w, Height: h}, nil
	case "K":
		raw, err := Unescape(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed key payload %q: %w", payload, err)
		}
		return Key{Raw: raw}, nil
	case "M":
		ch, val, err := parseControlChange(payload)
		if err != nil {
			return nil, err
		}
		return Control{Channel: ch, Value: val}, nil
	case "Q":
		return Quit{}, nil
	default:
		return nil, fmt.Errorf("unknown event tag %q", tag)
	}
}

// FormatResize renders a resize event as a protocol line (without newline).
func FormatResize(width, height int) string {
	return fmt.Sprintf("S:%dx%d", width, height)
}

// FormatKey renders a keypress as a protocol line.
func FormatKey(raw []byte) string {
	return "K:" + Escape(raw)
}

// FormatControl renders a control-stream line as a protocol line.
func FormatControl(text string) string {
	return "M:" + text
}

// FormatQuit renders the shutdown line.
func FormatQuit() string {
	return "Q:"
}

// parseControlChange extracts channel and value from a control-stream line
// of the form `... CC <channel> <value>`. Anything before the CC token is
// device chatter and ignored.
func parseControlChange(text string) (channel, value int, err error) {
	fields := strings.Fields(text)
	for i, f := range fields {
		if f != "CC" || i+2 >= len(fields) {
			continue
		}
		if _, err := fmt.Sscanf(fields[i+1], "%d", &channel); err != nil {
			return 0, 0, fmt.Errorf("malformed CC channel %q", fields[i+1])
		}
		if _, err := fmt.Sscanf(fields[i+2], "%d", &value); err != nil {
			return 0, 0, fmt.Errorf("malformed CC value %q", fields[i+2])
		}
		return channel, value, nil
	}
	return 0, 0, fmt.Errorf("control line without CC token: %q", text)
}
