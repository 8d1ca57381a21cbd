package event

import (
	"fmt"
	"strings"
)

// Escape renders raw key bytes as the single-line payload form used by the
// K: protocol line: printable ASCII passes through, newline, carriage
// return and backslash get two-character escapes, everything else becomes
// \xHH.
func Escape(raw []byte) string {
	var b strings.Builder
	for _, c := range raw {
		switch {
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\\':
			b.WriteString(`\\`)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, `\x%02x`, c)
		}
	}
	return b.String()
}

// Unescape is the inverse of Escape.
func Unescape(payload string) ([]byte, error) {
	out := make([]byte, 0, len(payload))
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(payload) {
			return nil, fmt.Errorf("dangling escape at end of payload")
		}
		i++
		switch payload[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case '\\':
			out = append(out, '\\')
		case 'x':
			if i+2 >= len(payload) {
				return nil, fmt.Errorf("truncated \\x escape")
			}
			var v byte
			if _, err := fmt.Sscanf(payload[i+1:i+3], "%02x", &v); err != nil {
				return nil, fmt.Errorf("invalid \\x escape %q: %w", payload[i+1:i+3], err)
			}
			out = append(out, v)
			i += 2
		default:
			return nil, fmt.Errorf("unknown escape \\%c", payload[i])
		}
	}
	return out, nil
}
