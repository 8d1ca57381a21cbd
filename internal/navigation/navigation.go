// Package navigation holds the three-slot navigation context and the
// interaction-mode state machine.
package navigation

// Slot identifies one of the three cyclable navigation dimensions.
type Slot int

const (
	SlotOrg Slot = iota
	SlotModule
	SlotFilter

	slotCount = 3
)

// String makes Slot satisfy fmt.Stringer.
func (s Slot) String() string {
	switch s {
	case SlotOrg:
		return "org"
	case SlotModule:
		return "module"
	case SlotFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// Mode is the active interaction mode. Exactly one is active at a time.
type Mode int

const (
	// ModeNormal accepts slot navigation.
	ModeNormal Mode = iota
	// ModeCommand accepts text entry and completion.
	ModeCommand
	// ModeResults accepts history browsing.
	ModeResults
)

// String makes Mode satisfy fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "command"
	case ModeResults:
		return "results"
	default:
		return "normal"
	}
}

// Context is the current navigation position: one index per slot into a
// same-named ordered list, plus the focused slot. Indices always satisfy
// 0 <= index < len(list); cycling wraps modulo list length.
type Context struct {
	lists   [slotCount][]string
	indices [slotCount]int
	focused Slot
}

// NewContext returns a context focused on the organization slot.
func NewContext() *Context {
	return &Context{}
}

// SetList replaces the ordered list behind a slot, clamping its index
// into the new bounds.
func (c *Context) SetList(slot Slot, items []string) {
	c.lists[slot] = items
	if c.indices[slot] >= len(items) {
		c.indices[slot] = 0
	}
}

// List returns the ordered list behind a slot.
func (c *Context) List(slot Slot) []string {
	return c.lists[slot]
}

// Focused returns the focused slot.
func (c *Context) Focused() Slot {
	return c.focused
}

// CycleFocus moves the focus left or right across the three slots,
// wrapping at either end.
func (c *Context) CycleFocus(delta int) {
	c.focused = Slot(((int(c.focused)+delta)%slotCount + slotCount) % slotCount)
}

// CycleValue advances the focused slot's index by delta, wrapping modulo
// the list length. Returns the slot and whether the index changed.
func (c *Context) CycleValue(delta int) (Slot, bool) {
	slot := c.focused
	n := len(c.lists[slot])
	if n == 0 {
		return slot, false
	}
	next := ((c.indices[slot]+delta)%n + n) % n
	changed := next != c.indices[slot]
	c.indices[slot] = next
	return slot, changed
}

// Index returns the current index of a slot.
func (c *Context) Index(slot Slot) int {
	return c.indices[slot]
}

// SetIndex places a slot at index i, ignoring out-of-range values.
// Returns whether the index changed.
func (c *Context) SetIndex(slot Slot, i int) bool {
	if i < 0 || i >= len(c.lists[slot]) {
		return false
	}
	changed := c.indices[slot] != i
	c.indices[slot] = i
	return changed
}

// Current returns the selected item of a slot, or "" for an empty list.
func (c *Context) Current(slot Slot) string {
	if len(c.lists[slot]) == 0 {
		return ""
	}
	return c.lists[slot][c.indices[slot]]
}

// ControlIndex maps a 7-bit control-change value onto a list index:
// index = value*(N-1)/127. Integer division makes the mapping monotonic
// with value 0 at the first item and 127 at the last.
func ControlIndex(value, listLen int) int {
	if listLen <= 1 {
		return 0
	}
	if value < 0 {
		value = 0
	}
	if value > 127 {
		value = 127
	}
	return value * (listLen - 1) / 127
}

// SetFromControl positions a slot from a control-change value. Returns
// whether the index changed.
func (c *Context) SetFromControl(slot Slot, value int) bool {
	n := len(c.lists[slot])
	if n == 0 {
		return false
	}
	return c.SetIndex(slot, ControlIndex(value, n))
}
