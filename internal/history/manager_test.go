package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstage/historycore/internal/appstate"
	"github.com/inkstage/historycore/internal/change"
	"github.com/inkstage/historycore/internal/event"
	"github.com/inkstage/historycore/internal/scene"
)

func addEntry(elements scene.ElementsMap, id scene.ElementID, x int) (change.ElementsChange, scene.ElementsMap) {
	next := elements.WithSet(scene.DrawingElement{ID: id, VersionNonce: 1, Props: map[string]any{"x": x}})
	return change.CalculateElementsChange(elements, next), next
}

func TestRecord_EmptyEntryPreservesRedoStack(t *testing.T) {
	h := New(true)
	elements := scene.New()

	elementsChange, next := addEntry(elements, "a", 1)
	h.Record(elementsChange, change.EmptyAppStateChange())

	entry, err := h.UndoOnce(next)
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.False(t, h.IsRedoStackEmpty())

	// Recording a no-op increment must not clear what UndoOnce just pushed.
	h.Record(change.EmptyElementsChange(), change.EmptyAppStateChange())
	assert.False(t, h.IsRedoStackEmpty(), "an empty increment must not clear the redo stack")
}

func TestRecord_NonEmptyEntryClearsRedoStack(t *testing.T) {
	h := New(true)
	elements := scene.New()

	elementsChange, next := addEntry(elements, "a", 1)
	h.Record(elementsChange, change.EmptyAppStateChange())
	_, err := h.UndoOnce(next)
	assert.NoError(t, err)
	assert.False(t, h.IsRedoStackEmpty())

	secondChange, _ := addEntry(next, "b", 2)
	h.Record(secondChange, change.EmptyAppStateChange())
	assert.True(t, h.IsRedoStackEmpty(), "a genuinely new increment clears the redo stack")
}

func TestUndoOnce_SkipsInvisibleEntries(t *testing.T) {
	h := New(true)
	elements := scene.New()

	// First increment: a visible addition.
	firstChange, withA := addEntry(elements, "a", 1)
	h.Record(firstChange, change.EmptyAppStateChange())

	// Second increment: a property update that gets entirely stripped as
	// irrelevant, so its recorded entry is invisible against live state.
	updated := withA.WithSet(scene.DrawingElement{ID: "a", VersionNonce: 2, Props: map[string]any{"x": 1, "seed": 2}})
	secondChange := change.CalculateElementsChange(withA, updated)
	assert.True(t, secondChange.IsEmpty(), "an update touching only irrelevant props produces no delta")
	h.Record(secondChange, change.EmptyAppStateChange())

	// Third increment: "a" moves to x=2. Undoing it is invisible against
	// the live state passed below, where "a" is back at x=1.
	moved := updated.WithSet(scene.DrawingElement{ID: "a", VersionNonce: 3, Props: map[string]any{"x": 2}})
	h.Record(change.CalculateElementsChange(updated, moved), change.EmptyAppStateChange())

	// UndoOnce skips the invisible move entry and returns the first, visible
	// one; undoing it removes "a" rather than returning a no-op entry.
	entry, err := h.UndoOnce(updated)
	assert.NoError(t, err)
	assert.NotNil(t, entry)

	result, _ := entry.ApplyTo(updated, appstate.ObservedAppState{})
	el, ok := result.Value.Get("a")
	assert.True(t, ok)
	assert.True(t, el.IsDeleted)
	assert.True(t, h.IsUndoStackEmpty())
}

func TestUndoOnce_ReturnsNilWhenStackEmpty(t *testing.T) {
	h := New(true)
	entry, err := h.UndoOnce(scene.New())
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestUndoOnce_PushesRebasedInverseOntoRedoStack(t *testing.T) {
	h := New(true)
	elements := scene.New()

	elementsChange, withA := addEntry(elements, "a", 1)
	h.Record(elementsChange, change.EmptyAppStateChange())

	entry, err := h.UndoOnce(withA)
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.False(t, h.IsRedoStackEmpty())

	// The host commits the undo before redoing, so redo runs against the
	// collection in which "a" is soft-deleted.
	afterUndo, _ := entry.Elements.ApplyTo(withA)
	redone, err := h.RedoOnce(afterUndo)
	assert.NoError(t, err)
	assert.NotNil(t, redone)
	assert.True(t, h.IsRedoStackEmpty())
	assert.False(t, h.IsUndoStackEmpty())
}

func TestHistory_DispatchesBusEvents(t *testing.T) {
	h := New(true)
	bus := event.NewManager()
	h.Bus = bus

	var recorded, undone, redone, cleared int
	bus.Subscribe(event.TypeHistoryRecorded, func(e event.Event) { recorded++ })
	bus.Subscribe(event.TypeUndoPerformed, func(e event.Event) { undone++ })
	bus.Subscribe(event.TypeRedoPerformed, func(e event.Event) { redone++ })
	bus.Subscribe(event.TypeHistoryCleared, func(e event.Event) { cleared++ })

	elements := scene.New()
	elementsChange, withA := addEntry(elements, "a", 1)
	h.Record(elementsChange, change.EmptyAppStateChange())
	assert.Equal(t, 1, recorded)

	entry, _ := h.UndoOnce(withA)
	assert.Equal(t, 1, undone)

	afterUndo, _ := entry.Elements.ApplyTo(withA)
	h.RedoOnce(afterUndo)
	assert.Equal(t, 1, redone)

	h.Clear()
	assert.Equal(t, 1, cleared)
}

func TestHistory_SkipInvisibleEntriesFalseReturnsEveryEntry(t *testing.T) {
	h := New(false)
	elements := scene.New()

	firstChange, withA := addEntry(elements, "a", 1)
	h.Record(firstChange, change.EmptyAppStateChange())

	secondChange, withAB := addEntry(withA, "b", 2)
	assert.False(t, secondChange.IsEmpty())
	h.Record(secondChange, change.EmptyAppStateChange())

	// Both recorded entries are genuinely visible against withAB, so with
	// skipping disabled the first UndoOnce call pops the most recent one
	// ("b") and leaves "a" still on the undo stack.
	entry, err := h.UndoOnce(withAB)
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.False(t, h.IsUndoStackEmpty())
}
