package change

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstage/historycore/internal/appstate"
)

func TestCalculateAppStateChange_DetectsFieldChange(t *testing.T) {
	prev := appstate.ObservedAppState{Name: "a"}
	next := appstate.ObservedAppState{Name: "b"}

	c := CalculateAppStateChange(prev, next)

	assert.False(t, c.IsEmpty())
	assert.Equal(t, "a", c.From["name"])
	assert.Equal(t, "b", c.To["name"])
}

func TestCalculateAppStateChange_NoFieldChange(t *testing.T) {
	s := appstate.ObservedAppState{Name: "a"}
	c := CalculateAppStateChange(s, s)

	// ToMap reflects a nil selection as a freshly allocated empty map on
	// every call, and the generic valuesEqual rule compares maps by identity
	// only, so the captured delta is not empty even though nothing
	// meaningfully differs; the selection-aware ShallowEqual pass is what
	// decides real visibility.
	assert.Contains(t, c.From, "selectedElementIds")
}

func TestAppStateChange_ApplyTo_SelectionComparatorSuppressesFalsePositive(t *testing.T) {
	prev := appstate.ObservedAppState{SelectedElementIDs: map[string]bool{"e1": true}}
	next := appstate.ObservedAppState{SelectedElementIDs: map[string]bool{"e1": true}}
	c := CalculateAppStateChange(prev, next)

	_, visible := c.ApplyTo(prev)
	assert.False(t, visible, "identical selection content must not be reported as a visible change")
}

func TestAppStateChange_ApplyTo_DetectsRealSelectionChange(t *testing.T) {
	prev := appstate.ObservedAppState{SelectedElementIDs: map[string]bool{"e1": true}}
	next := appstate.ObservedAppState{SelectedElementIDs: map[string]bool{"e2": true}}
	c := CalculateAppStateChange(prev, next)

	_, visible := c.ApplyTo(prev)
	assert.True(t, visible)
}

func TestAppStateChange_Inverse(t *testing.T) {
	prev := appstate.ObservedAppState{Name: "a"}
	next := appstate.ObservedAppState{Name: "b"}
	c := CalculateAppStateChange(prev, next)

	inv := c.Inverse()
	assert.Equal(t, "b", inv.From["name"])
	assert.Equal(t, "a", inv.To["name"])
}
