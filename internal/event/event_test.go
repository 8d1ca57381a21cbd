package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineResize(t *testing.T) {
	ev, err := ParseLine("S:80x24")
	require.NoError(t, err)
	assert.Equal(t, Resize{Width: 80, Height: 24}, ev)
}

func TestParseLineQuit(t *testing.T) {
	ev, err := ParseLine("Q:")
	require.NoError(t, err)
	assert.Equal(t, Quit{}, ev)
}

func TestParseLineControl(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		channel int
		value   int
		wantErr bool
	}{
		{"plain", "M:CC 1 64", 1, 64, false},
		{"device chatter prefix", "M:ch=0 src=knob CC 2 127", 2, 127, false},
		{"zero value", "M:CC 0 0", 0, 0, false},
		{"missing CC token", "M:NOTE 60 100", 0, 0, true},
		{"truncated", "M:CC 1", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Control{Channel: tt.channel, Value: tt.value}, ev)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{"", "garbage", "X:payload", "S:ax24", "S:0x0", "K:\\q"} {
		_, err := ParseLine(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"printable", []byte("hello")},
		{"arrow sequence", []byte{0x1b, '[', 'A'}},
		{"carriage return", []byte{'\r'}},
		{"newline", []byte{'\n'}},
		{"backslash", []byte(`a\b`)},
		{"del", []byte{0x7f}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseLine(FormatKey(tt.raw))
			require.NoError(t, err)
			key, ok := ev.(Key)
			require.True(t, ok)
			assert.Equal(t, []byte(tt.raw), append([]byte(nil), key.Raw...))
		})
	}
}

func TestEscapePrintablePassThrough(t *testing.T) {
	assert.Equal(t, "abc 123", Escape([]byte("abc 123")))
	assert.Equal(t, `\x1b[A`, Escape([]byte{0x1b, '[', 'A'}))
	assert.Equal(t, `\n\r\\`, Escape([]byte("\n\r\\")))
}

func TestUnescapeErrors(t *testing.T) {
	for _, payload := range []string{`\`, `\x`, `\x1`, `\xzz`, `\q`} {
		_, err := Unescape(payload)
		assert.Error(t, err, "payload %q", payload)
	}
}

func TestFormatResize(t *testing.T) {
	assert.Equal(t, "S:120x40", FormatResize(120, 40))
}
