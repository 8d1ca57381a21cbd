package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushNewestFirst(t *testing.T) {
	s := NewStack(5)
	s.Push(Entry{Command: "first"})
	s.Push(Entry{Command: "second"})
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "second", s.At(0).Command)
	assert.Equal(t, "first", s.At(1).Command)
}

func TestOverflowTrimsOldest(t *testing.T) {
	const max, extra = 20, 5
	s := NewStack(max)
	for i := 1; i <= max+extra; i++ {
		s.Push(Entry{Command: fmt.Sprintf("cmd-%d", i)})
	}
	assert.Equal(t, max, s.Len())
	assert.Equal(t, fmt.Sprintf("cmd-%d", max+extra), s.At(0).Command, "newest entry survives")
	assert.Equal(t, fmt.Sprintf("cmd-%d", extra+1), s.At(max-1).Command, "oldest surviving entry")
	for i := 0; i < s.Len(); i++ {
		assert.NotEqual(t, "cmd-1", s.At(i).Command, "first-pushed entry is discarded")
	}
}

func TestRecentIsOneBased(t *testing.T) {
	s := NewStack(10)
	s.Push(Entry{Output: "oldest"})
	s.Push(Entry{Output: "middle"})
	s.Push(Entry{Output: "newest"})

	e, ok := s.Recent(1)
	require.True(t, ok)
	assert.Equal(t, "newest", e.Output)

	e, ok = s.Recent(3)
	require.True(t, ok)
	assert.Equal(t, "oldest", e.Output)

	_, ok = s.Recent(0)
	assert.False(t, ok)
	_, ok = s.Recent(4)
	assert.False(t, ok)
}

func TestToggleCollapsedOnly(t *testing.T) {
	s := NewStack(10)
	s.Push(Entry{Command: "a", Output: "out"})
	s.Push(Entry{Command: "b"})

	s.Toggle(1)
	assert.True(t, s.At(1).Collapsed)
	assert.False(t, s.At(0).Collapsed)

	// The rest of the entry is untouched.
	assert.Equal(t, "a", s.At(1).Command)
	assert.Equal(t, "out", s.At(1).Output)

	s.Toggle(1)
	assert.False(t, s.At(1).Collapsed)

	s.Toggle(99) // out of range is a no-op
}

func TestCollapseSurvivesLaterPushes(t *testing.T) {
	s := NewStack(10)
	s.Push(Entry{Command: "a"})
	s.Toggle(0)
	s.Push(Entry{Command: "b"})
	assert.True(t, s.At(1).Collapsed, "collapse flag follows the entry, not the position")
	assert.False(t, s.At(0).Collapsed)
}

func TestDefaultMax(t *testing.T) {
	s := NewStack(0)
	assert.Equal(t, DefaultMax, s.Max())
}

func TestAtOutOfRange(t *testing.T) {
	s := NewStack(3)
	assert.Nil(t, s.At(0))
	assert.Nil(t, s.At(-1))
}
