package theme

// Stack is the phase-shift stack. Push saves the active theme and
// activates the requested one; Pop restores whatever was active before
// the most recent push. Pushes and pops are always paired around
// module-context enter/leave, so a palette change never leaks past the
// context that requested it.
type Stack struct {
	reg    *Registry
	active Theme
	styles Styles
	saved  []Theme
}

// NewStack returns a stack with the named theme active.
func NewStack(reg *Registry, initial string) *Stack {
	t := reg.Get(initial)
	return &Stack{
		reg:    reg,
		active: t,
		styles: Compile(t),
	}
}

// Active returns the palette currently on top.
func (s *Stack) Active() Theme {
	return s.active
}

// Styles returns the compiled styles for the active palette.
func (s *Stack) Styles() Styles {
	return s.styles
}

// Depth returns how many pushes are outstanding.
func (s *Stack) Depth() int {
	return len(s.saved)
}

// Push saves the active theme and activates name.
func (s *Stack) Push(name string) {
	s.saved = append(s.saved, s.active)
	s.active = s.reg.Get(name)
	s.styles = Compile(s.active)
}

// Pop restores the theme active before the most recent Push. Popping an
// empty stack is a no-op.
func (s *Stack) Pop() {
	if len(s.saved) == 0 {
		return
	}
	s.active = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	s.styles = Compile(s.active)
}
