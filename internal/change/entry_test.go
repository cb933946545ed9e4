package change

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstage/historycore/internal/appstate"
	"github.com/inkstage/historycore/internal/scene"
)

func TestHistoryEntry_IsEmptyRequiresBothChildrenEmpty(t *testing.T) {
	e := EmptyHistoryEntry()
	assert.True(t, e.IsEmpty())

	withElements := NewHistoryEntry(EmptyAppStateChange(), CalculateElementsChange(scene.New(), scene.FromSlice([]scene.DrawingElement{{ID: "a", VersionNonce: 1}})))
	assert.False(t, withElements.IsEmpty())
}

func TestHistoryEntry_InverseInvertsBothChildren(t *testing.T) {
	prevElements := scene.New()
	nextElements := scene.FromSlice([]scene.DrawingElement{{ID: "a", VersionNonce: 1, Props: map[string]any{"x": 1}}})
	elementsChange := CalculateElementsChange(prevElements, nextElements)

	prevState := appstate.ObservedAppState{Name: "a"}
	nextState := appstate.ObservedAppState{Name: "b"}
	appStateChange := CalculateAppStateChange(prevState, nextState)

	entry := NewHistoryEntry(appStateChange, elementsChange)
	inv := entry.Inverse()

	assert.Equal(t, "b", inv.AppState.From["name"])
	assert.Equal(t, "a", inv.AppState.To["name"])

	d, _ := elementsChange.Get("a")
	invD, _ := inv.Elements.Get("a")
	assert.Equal(t, d.From, invD.To)
}

func TestHistoryEntry_ApplyTo_ReturnsValuesAndVisibility(t *testing.T) {
	nextElements := scene.FromSlice([]scene.DrawingElement{{ID: "a", VersionNonce: 1, Props: map[string]any{"x": 1}}})
	elementsChange := CalculateElementsChange(scene.New(), nextElements)
	entry := NewHistoryEntry(EmptyAppStateChange(), elementsChange)

	// Applying the entry's inverse (the "undo") to the live collection that
	// already has the element mirrors how History.UndoOnce drives this.
	inv := entry.Inverse()
	elementsResult, appStateResult := inv.ApplyTo(nextElements, appstate.ObservedAppState{})

	assert.True(t, elementsResult.Visible)
	e, ok := elementsResult.Value.Get("a")
	assert.True(t, ok)
	assert.True(t, e.IsDeleted)
	assert.False(t, appStateResult.Visible)
}

func TestHistoryEntry_ApplyLatestChanges_RebasesElementsOnly(t *testing.T) {
	before := scene.FromSlice([]scene.DrawingElement{{ID: "a", VersionNonce: 1, Props: map[string]any{"x": 1}}})
	after := scene.FromSlice([]scene.DrawingElement{{ID: "a", VersionNonce: 2, Props: map[string]any{"x": 2}}})
	drifted := scene.FromSlice([]scene.DrawingElement{{ID: "a", VersionNonce: 3, Props: map[string]any{"x": 42}}})

	elementsChange := CalculateElementsChange(before, after)
	appStateChange := CalculateAppStateChange(appstate.ObservedAppState{Name: "a"}, appstate.ObservedAppState{Name: "b"})
	entry := NewHistoryEntry(appStateChange, elementsChange)

	rebased := entry.ApplyLatestChanges(drifted)

	d, ok := rebased.Elements.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 42, d.To["x"], "the captured To-side is refreshed against the live element's current value")
	assert.Equal(t, entry.AppState, rebased.AppState, "app state change passes through rebase unchanged")
}
