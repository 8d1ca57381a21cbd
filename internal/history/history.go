// Package history keeps the bounded, newest-first stack of executed
// command results shown below the command line.
package history

import "time"

// DefaultMax is the stack depth used when the configuration does not set
// one.
const DefaultMax = 20

// Entry is one executed-command result. After being pushed an entry is
// immutable except for its Collapsed flag.
type Entry struct {
	// Header is the context label at execution time, e.g. "acme/deploy".
	Header string
	// Command is the literal command string as dispatched.
	Command string
	// Output is the captured combined output text.
	Output string
	// Status is the exit indicator; non-zero marks failure.
	Status int
	// Timestamp records when the command ran.
	Timestamp time.Time
	// Collapsed hides the output body in the content view.
	Collapsed bool
}

// Stack is a bounded LIFO of entries. Push prepends; overflow trims from
// the oldest end, so the newest entries always survive.
type Stack struct {
	max     int
	entries []*Entry
}

// NewStack returns a stack capped at max entries; max <= 0 means
// DefaultMax.
func NewStack(max int) *Stack {
	if max <= 0 {
		max = DefaultMax
	}
	return &Stack{max: max}
}

// Push adds an entry at the front, trimming the back on overflow.
func (s *Stack) Push(e Entry) {
	entry := e
	entries := make([]*Entry, 0, len(s.entries)+1)
	entries = append(entries, &entry)
	entries = append(entries, s.entries...)
	if len(entries) > s.max {
		entries = entries[:s.max]
	}
	s.entries = entries
}

// Len returns the number of retained entries.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Max returns the configured depth cap.
func (s *Stack) Max() int {
	return s.max
}

// At returns the entry at position i, 0 being the most recent. Out of
// range returns nil.
func (s *Stack) At(i int) *Entry {
	if i < 0 || i >= len(s.entries) {
		return nil
	}
	return s.entries[i]
}

// Recent returns the Nth most recent entry, 1-based, for recall
// substitution ("reuse the 3rd most recent output").
func (s *Stack) Recent(n int) (*Entry, bool) {
	if n < 1 || n > len(s.entries) {
		return nil, false
	}
	return s.entries[n-1], true
}

// Toggle flips the Collapsed flag of the entry at position i.
func (s *Stack) Toggle(i int) {
	if e := s.At(i); e != nil {
		e.Collapsed = !e.Collapsed
	}
}
