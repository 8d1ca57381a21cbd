// Package cmdline implements the command-line state and the completion
// engine with its scroll-windowed dropdown.
package cmdline

import (
	"sort"
	"strings"
)

// DefaultVisibleRows is the dropdown row budget when the layout does not
// set one.
const DefaultVisibleRows = 8

// Source supplies completion candidates for the active module. The
// engine consults it in order: built-ins, the declared command list, the
// scraped fallback, and finally the default set.
type Source interface {
	// Builtins is the small fixed command set always available.
	Builtins() []string
	// ModuleCommands is the active module's declared command list, nil
	// when no module is active or nothing is declared.
	ModuleCommands() []string
	// FallbackCommands is a best-effort extraction from the module's
	// own dispatch definitions.
	FallbackCommands() []string
}

// defaultCandidates is the last-resort set when nothing else resolves.
var defaultCandidates = []string{"help", "clear"}

// State is the visible command-line state: the input buffer, the
// candidate list, the highlighted candidate, and the dropdown window.
type State struct {
	Input       string
	Candidates  []string
	Selected    int
	Open        bool
	Scroll      int
	VisibleRows int
	// ShowHelp marks the "what can I do here" listing shown for Tab on
	// empty input instead of raw candidate names.
	ShowHelp bool
}

// Engine owns a State and resolves candidates against a Source.
type Engine struct {
	src   Source
	state State
}

// NewEngine returns an engine with a closed dropdown and empty input.
func NewEngine(src Source) *Engine {
	return &Engine{
		src:   src,
		state: State{VisibleRows: DefaultVisibleRows},
	}
}

// State returns the current command-line state.
func (e *Engine) State() State {
	return e.state
}

// SetVisibleRows adjusts the dropdown row budget to the current layout.
func (e *Engine) SetVisibleRows(rows int) {
	if rows < 1 {
		rows = 1
	}
	e.state.VisibleRows = rows
	e.ensureVisible()
}

// Reset clears the input and closes the dropdown, seeding candidates for
// the empty prefix (used on entry to command mode).
func (e *Engine) Reset() {
	e.state.Input = ""
	e.state.Open = false
	e.state.ShowHelp = false
	e.state.Selected = 0
	e.state.Scroll = 0
	e.state.Candidates = e.Complete("")
}

// Complete returns the candidates for a prefix: every candidate starts
// with the prefix, the list is sorted and free of duplicates.
func (e *Engine) Complete(prefix string) []string {
	merged := append([]string(nil), e.src.Builtins()...)
	if mod := e.src.ModuleCommands(); len(mod) > 0 {
		merged = append(merged, mod...)
	} else if fb := e.src.FallbackCommands(); len(fb) > 0 {
		merged = append(merged, fb...)
	}
	if len(merged) == 0 {
		merged = append(merged, defaultCandidates...)
	}

	seen := make(map[string]bool, len(merged))
	out := make([]string, 0, len(merged))
	for _, c := range merged {
		name, _, _ := strings.Cut(c, " ")
		if name == "" || !strings.HasPrefix(name, prefix) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Type appends a printable character, recomputes candidates and
// auto-opens the dropdown if any exist.
func (e *Engine) Type(r rune) {
	e.state.Input += string(r)
	e.recompute()
	e.state.Open = len(e.state.Candidates) > 0
	e.state.ShowHelp = false
}

// Backspace removes the last input character and recomputes candidates.
func (e *Engine) Backspace() {
	if e.state.Input == "" {
		return
	}
	runes := []rune(e.state.Input)
	e.state.Input = string(runes[:len(runes)-1])
	e.recompute()
	if len(e.state.Candidates) == 0 {
		e.state.Open = false
	}
}

// Tab handles the completion key. With empty input it toggles the
// descriptive capability listing; with input it opens the dropdown on
// the first press and cycles the highlight on subsequent ones.
func (e *Engine) Tab() {
	if e.state.Input == "" {
		e.state.ShowHelp = true
		e.state.Open = false
		return
	}
	e.state.ShowHelp = false
	if !e.state.Open {
		e.recompute()
		e.state.Open = len(e.state.Candidates) > 0
		return
	}
	e.Cycle(1)
}

// Cycle moves the dropdown highlight by delta, wrapping, and keeps it
// inside the scroll window.
func (e *Engine) Cycle(delta int) {
	n := len(e.state.Candidates)
	if !e.state.Open || n == 0 {
		return
	}
	e.state.Selected = ((e.state.Selected+delta)%n + n) % n
	e.ensureVisible()
}

// Commit resolves the final command string for Enter: the highlighted
// candidate when the dropdown is open, otherwise the raw input. The
// engine is reset afterwards.
func (e *Engine) Commit() string {
	line := strings.TrimSpace(e.state.Input)
	if e.state.Open && e.state.Selected < len(e.state.Candidates) {
		chosen := e.state.Candidates[e.state.Selected]
		// Preserve any argument tail typed after the completed name.
		if _, rest, found := strings.Cut(line, " "); found {
			line = chosen + " " + rest
		} else {
			line = chosen
		}
	}
	e.Reset()
	return line
}

// Window returns the candidate slice visible in the dropdown and the
// index of the highlighted row within it.
func (e *Engine) Window() (visible []string, highlight int) {
	s := e.state
	if !s.Open || len(s.Candidates) == 0 {
		return nil, -1
	}
	end := s.Scroll + s.VisibleRows
	if end > len(s.Candidates) {
		end = len(s.Candidates)
	}
	return s.Candidates[s.Scroll:end], s.Selected - s.Scroll
}

func (e *Engine) recompute() {
	name, _, _ := strings.Cut(e.state.Input, " ")
	e.state.Candidates = e.Complete(name)
	if e.state.Selected >= len(e.state.Candidates) {
		e.state.Selected = 0
	}
	e.state.Scroll = 0
	e.ensureVisible()
}

// ensureVisible keeps the highlighted index within
// [scroll, scroll+visibleRows).
func (e *Engine) ensureVisible() {
	if e.state.Selected < e.state.Scroll {
		e.state.Scroll = e.state.Selected
	}
	if e.state.Selected >= e.state.Scroll+e.state.VisibleRows {
		e.state.Scroll = e.state.Selected - e.state.VisibleRows + 1
	}
	if e.state.Scroll < 0 {
		e.state.Scroll = 0
	}
}
