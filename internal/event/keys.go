package event

import (
	"time"
	"unicode/utf8"
)

// SpecialKey identifies a named non-printable key.
type SpecialKey int

const (
	KeyNone SpecialKey = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
)

// String makes SpecialKey satisfy fmt.Stringer, mainly for logging.
func (k SpecialKey) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	default:
		return "none"
	}
}

// ChordKind discriminates the Chord variants.
type ChordKind int

const (
	// ChordRune is a plain printable character.
	ChordRune ChordKind = iota
	// ChordCtrl is a control combination (ctrl+a .. ctrl+z).
	ChordCtrl
	// ChordSpecial is a named key: arrows, enter, escape, backspace, tab.
	ChordSpecial
	// ChordLiteral is an unrecognized multi-byte sequence passed through
	// verbatim; handlers treat it as a no-op or insert it as-is.
	ChordLiteral
)

// Chord is a decoded logical keypress.
type Chord struct {
	Kind    ChordKind
	Rune    rune       // valid for ChordRune and ChordCtrl
	Special SpecialKey // valid for ChordSpecial
	Literal []byte     // valid for ChordLiteral
}

// DefaultEscapeGrace is how long a lone ESC byte is held back waiting for
// the rest of an arrow-key sequence before it fires as Escape.
const DefaultEscapeGrace = 40 * time.Millisecond

// Decoder turns raw key bytes into Chords. Its only persistent state is a
// small pending buffer holding an ESC prefix whose continuation may still
// be in flight; the owner resolves the ambiguity by selecting on Timeout.
type Decoder struct {
	pending []byte
	grace   time.Duration
	timer   *time.Timer
}

// NewDecoder returns a Decoder with the given escape grace window; zero
// means DefaultEscapeGrace.
func NewDecoder(grace time.Duration) *Decoder {
	if grace <= 0 {
		grace = DefaultEscapeGrace
	}
	return &Decoder{grace: grace}
}

// Feed consumes the raw bytes of one Key event and returns the chords that
// are unambiguously complete. An ESC prefix that may still grow is held in
// the pending buffer and the grace timer is armed.
func (d *Decoder) Feed(raw []byte) []Chord {
	if len(raw) == 0 {
		// The driver reports Enter as an empty payload. Whatever is
		// pending cannot be continued by it, so resolve that first.
		return append(d.Flush(), Chord{Kind: ChordSpecial, Special: KeyEnter})
	}
	d.stopTimer()
	d.pending = append(d.pending, raw...)
	chords := d.drain(false)
	if len(d.pending) > 0 {
		d.armTimer()
	}
	return chords
}

// Timeout returns the channel that fires when the escape grace window for
// a pending ESC has elapsed. It is nil when nothing is pending, which
// blocks forever in a select.
func (d *Decoder) Timeout() <-chan time.Time {
	if d.timer == nil {
		return nil
	}
	return d.timer.C
}

// Flush resolves whatever is pending: a lone ESC fires as Escape, any
// other unfinished sequence passes through as a literal chord.
func (d *Decoder) Flush() []Chord {
	d.stopTimer()
	return d.drain(true)
}

func (d *Decoder) armTimer() {
	d.timer = time.NewTimer(d.grace)
}

func (d *Decoder) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// drain decodes as many chords as possible from the pending buffer. When
// force is set, ambiguous prefixes are resolved instead of retained.
func (d *Decoder) drain(force bool) []Chord {
	var chords []Chord
	for len(d.pending) > 0 {
		c, n := d.decodeOne(force)
		if n == 0 {
			break
		}
		chords = append(chords, c)
		d.pending = d.pending[n:]
	}
	return chords
}

// decodeOne decodes a single chord from the front of the pending buffer,
// returning the chord and how many bytes it consumed. n == 0 means the
// buffer holds an incomplete sequence and decoding should stop.
func (d *Decoder) decodeOne(force bool) (Chord, int) {
	p := d.pending
	if p[0] == 0x1b {
		if len(p) == 1 {
			if force {
				return Chord{Kind: ChordSpecial, Special: KeyEscape}, 1
			}
			return Chord{}, 0
		}
		if p[1] == '[' {
			if len(p) == 2 {
				if force {
					return Chord{Kind: ChordLiteral, Literal: append([]byte(nil), p...)}, 2
				}
				return Chord{}, 0
			}
			switch p[2] {
			case 'A':
				return Chord{Kind: ChordSpecial, Special: KeyUp}, 3
			case 'B':
				return Chord{Kind: ChordSpecial, Special: KeyDown}, 3
			case 'C':
				return Chord{Kind: ChordSpecial, Special: KeyRight}, 3
			case 'D':
				return Chord{Kind: ChordSpecial, Special: KeyLeft}, 3
			}
			// Some other CSI sequence: consume through its final byte
			// (0x40..0x7e) and pass it along untouched.
			for i := 2; i < len(p); i++ {
				if p[i] >= 0x40 && p[i] <= 0x7e {
					return Chord{Kind: ChordLiteral, Literal: append([]byte(nil), p[:i+1]...)}, i + 1
				}
			}
			if force {
				return Chord{Kind: ChordLiteral, Literal: append([]byte(nil), p...)}, len(p)
			}
			return Chord{}, 0
		}
		// ESC followed by a non-CSI byte: the ESC stands alone and the
		// rest is decoded separately.
		return Chord{Kind: ChordSpecial, Special: KeyEscape}, 1
	}

	switch p[0] {
	case '\r', '\n':
		return Chord{Kind: ChordSpecial, Special: KeyEnter}, 1
	case 0x7f, 0x08:
		return Chord{Kind: ChordSpecial, Special: KeyBackspace}, 1
	case '\t':
		return Chord{Kind: ChordSpecial, Special: KeyTab}, 1
	}
	if p[0] < 0x20 {
		return Chord{Kind: ChordCtrl, Rune: rune('a' + p[0] - 1)}, 1
	}

	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size == 1 {
		if !force && !utf8.FullRune(p) {
			return Chord{}, 0
		}
		return Chord{Kind: ChordLiteral, Literal: append([]byte(nil), p[0])}, 1
	}
	return Chord{Kind: ChordRune, Rune: r}, size
}
