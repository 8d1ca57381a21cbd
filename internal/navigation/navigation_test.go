package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestContext() *Context {
	c := NewContext()
	c.SetList(SlotOrg, []string{"acme", "globex", "initech"})
	c.SetList(SlotModule, []string{"deploy", "fetch"})
	c.SetList(SlotFilter, []string{"all", "app", "module"})
	return c
}

func TestCycleValueWraps(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, 0, c.Index(SlotOrg))

	c.CycleValue(-1)
	assert.Equal(t, 2, c.Index(SlotOrg), "cycling up from the first item wraps to the last")

	c.CycleValue(1)
	assert.Equal(t, 0, c.Index(SlotOrg))
}

func TestCycleValueFullLoopReturnsToStart(t *testing.T) {
	c := newTestContext()
	n := len(c.List(SlotOrg))
	for i := 0; i < n; i++ {
		_, _ = c.CycleValue(1)
		assert.GreaterOrEqual(t, c.Index(SlotOrg), 0)
		assert.Less(t, c.Index(SlotOrg), n)
	}
	assert.Equal(t, 0, c.Index(SlotOrg), "cycling len times returns to the original index")
}

func TestCycleValueEmptyList(t *testing.T) {
	c := NewContext()
	slot, changed := c.CycleValue(1)
	assert.Equal(t, SlotOrg, slot)
	assert.False(t, changed)
}

func TestCycleFocusWraps(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, SlotOrg, c.Focused())
	c.CycleFocus(-1)
	assert.Equal(t, SlotFilter, c.Focused())
	c.CycleFocus(1)
	assert.Equal(t, SlotOrg, c.Focused())
	c.CycleFocus(1)
	assert.Equal(t, SlotModule, c.Focused())
}

func TestControlIndexEndpoints(t *testing.T) {
	assert.Equal(t, 0, ControlIndex(0, 5))
	assert.Equal(t, 4, ControlIndex(127, 5))
	assert.Equal(t, 0, ControlIndex(64, 1))
	assert.Equal(t, 0, ControlIndex(64, 0))
}

func TestControlIndexMonotonic(t *testing.T) {
	for _, n := range []int{2, 3, 5, 10, 128} {
		prev := 0
		for v := 0; v <= 127; v++ {
			idx := ControlIndex(v, n)
			assert.GreaterOrEqual(t, idx, prev, "monotonic in v (N=%d, v=%d)", n, v)
			assert.Less(t, idx, n)
			prev = idx
		}
		assert.Equal(t, n-1, prev, "v=127 lands on the last index (N=%d)", n)
	}
}

func TestControlIndexClampsOutOfRangeValues(t *testing.T) {
	assert.Equal(t, 0, ControlIndex(-5, 4))
	assert.Equal(t, 3, ControlIndex(200, 4))
}

func TestSetFromControl(t *testing.T) {
	c := newTestContext()
	assert.True(t, c.SetFromControl(SlotOrg, 127))
	assert.Equal(t, "initech", c.Current(SlotOrg))
	assert.False(t, c.SetFromControl(SlotOrg, 127), "same index again reports no change")
}

func TestSetListClampsIndex(t *testing.T) {
	c := newTestContext()
	c.SetIndex(SlotOrg, 2)
	c.SetList(SlotOrg, []string{"solo"})
	assert.Equal(t, 0, c.Index(SlotOrg))
	assert.Equal(t, "solo", c.Current(SlotOrg))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "command", ModeCommand.String())
	assert.Equal(t, "results", ModeResults.String())
}
