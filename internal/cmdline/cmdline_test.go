package cmdline

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	builtins []string
	module   []string
	fallback []string
}

func (s fakeSource) Builtins() []string         { return s.builtins }
func (s fakeSource) ModuleCommands() []string   { return s.module }
func (s fakeSource) FallbackCommands() []string { return s.fallback }

func defaultSource() fakeSource {
	return fakeSource{
		builtins: []string{"help", "clear", "where", "stats", "recall"},
		module:   []string{"deploy", "destroy", "status"},
	}
}

func TestCompletePrefixSortedDeduped(t *testing.T) {
	e := NewEngine(fakeSource{
		builtins: []string{"clear", "help"},
		module:   []string{"clean", "clear", "config"},
	})
	got := e.Complete("c")
	assert.Equal(t, []string{"clean", "clear", "config"}, got)
	for _, c := range got {
		assert.True(t, strings.HasPrefix(c, "c"))
	}
	assert.True(t, sort.StringsAreSorted(got))
}

func TestCompleteFallbackUsedWhenNoDeclaredList(t *testing.T) {
	e := NewEngine(fakeSource{
		builtins: []string{"help"},
		fallback: []string{"scraped"},
	})
	assert.Contains(t, e.Complete(""), "scraped")
}

func TestCompleteLastResortDefaults(t *testing.T) {
	e := NewEngine(fakeSource{})
	got := e.Complete("")
	assert.Contains(t, got, "help")
	assert.Contains(t, got, "clear")
}

func TestTabOnEmptyInputShowsHelpListing(t *testing.T) {
	e := NewEngine(defaultSource())
	e.Reset()
	e.Tab()
	s := e.State()
	assert.True(t, s.ShowHelp)
	assert.False(t, s.Open)
}

func TestTypeAutoOpensDropdown(t *testing.T) {
	e := NewEngine(defaultSource())
	e.Reset()
	e.Type('c')
	e.Type('l')
	s := e.State()
	assert.True(t, s.Open)
	assert.Contains(t, s.Candidates, "clear")
	for _, c := range s.Candidates {
		assert.True(t, strings.HasPrefix(c, "cl"))
	}
}

func TestTabOpensThenCycles(t *testing.T) {
	e := NewEngine(defaultSource())
	e.Reset()
	e.Type('s')
	// Typing already opened the dropdown; Tab now cycles.
	first := e.State().Selected
	e.Tab()
	assert.Equal(t, (first+1)%len(e.State().Candidates), e.State().Selected)
}

func TestCycleWrapsBothDirections(t *testing.T) {
	e := NewEngine(defaultSource())
	e.Reset()
	e.Type('d') // deploy, destroy
	require.True(t, e.State().Open)
	n := len(e.State().Candidates)
	require.Equal(t, 2, n)

	e.Cycle(-1)
	assert.Equal(t, n-1, e.State().Selected)
	e.Cycle(1)
	assert.Equal(t, 0, e.State().Selected)
}

func TestBackspaceRecomputes(t *testing.T) {
	e := NewEngine(defaultSource())
	e.Reset()
	e.Type('d')
	e.Type('e')
	e.Type('s')
	assert.Equal(t, []string{"destroy"}, e.State().Candidates)
	e.Backspace()
	assert.ElementsMatch(t, []string{"deploy", "destroy"}, e.State().Candidates)

	e.Backspace()
	e.Backspace()
	assert.Equal(t, "", e.State().Input)
	e.Backspace() // no-op at empty input
	assert.Equal(t, "", e.State().Input)
}

func TestCommitUsesHighlightedCandidate(t *testing.T) {
	e := NewEngine(defaultSource())
	e.Reset()
	e.Type('d')
	e.Cycle(1) // destroy
	line := e.Commit()
	assert.Equal(t, "destroy", line)
	assert.Equal(t, "", e.State().Input, "engine resets after commit")
}

func TestCommitPreservesArgumentTail(t *testing.T) {
	e := NewEngine(defaultSource())
	e.Reset()
	for _, r := range "dep --force" {
		e.Type(r)
	}
	require.True(t, e.State().Open)
	assert.Equal(t, "deploy --force", e.Commit())
}

func TestCommitClosedDropdownReturnsRawInput(t *testing.T) {
	e := NewEngine(defaultSource())
	e.Reset()
	for _, r := range "xyzzy 1" {
		e.Type(r)
	}
	e.State() // dropdown closed: no candidate starts with xyzzy
	assert.Equal(t, "xyzzy 1", e.Commit())
}

func TestScrollWindowKeepsHighlightVisible(t *testing.T) {
	var many []string
	for i := 0; i < 30; i++ {
		many = append(many, fmt.Sprintf("cmd%02d", i))
	}
	e := NewEngine(fakeSource{module: many, builtins: []string{"cmdzz"}})
	e.SetVisibleRows(5)
	e.Reset()
	e.Type('c')
	require.True(t, e.State().Open)

	for i := 0; i < 40; i++ {
		e.Cycle(1)
		s := e.State()
		assert.GreaterOrEqual(t, s.Selected, s.Scroll)
		assert.Less(t, s.Selected, s.Scroll+s.VisibleRows)
	}
	for i := 0; i < 40; i++ {
		e.Cycle(-1)
		s := e.State()
		assert.GreaterOrEqual(t, s.Selected, s.Scroll)
		assert.Less(t, s.Selected, s.Scroll+s.VisibleRows)
	}
}

func TestWindowSliceMatchesScroll(t *testing.T) {
	var many []string
	for i := 0; i < 12; i++ {
		many = append(many, fmt.Sprintf("c%02d", i))
	}
	e := NewEngine(fakeSource{module: many})
	e.SetVisibleRows(4)
	e.Reset()
	e.Type('c')
	for i := 0; i < 6; i++ {
		e.Cycle(1)
	}
	visible, highlight := e.Window()
	require.Len(t, visible, 4)
	assert.Equal(t, e.State().Candidates[e.State().Selected], visible[highlight])
}
