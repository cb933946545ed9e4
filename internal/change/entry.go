package change

import (
	"github.com/inkstage/historycore/internal/appstate"
	"github.com/inkstage/historycore/internal/scene"
)

// HistoryEntry pairs an AppStateChange and an ElementsChange as a single
// undoable step.
type HistoryEntry struct {
	AppState AppStateChange
	Elements ElementsChange
}

// NewHistoryEntry builds an entry from its two children.
func NewHistoryEntry(appState AppStateChange, elements ElementsChange) HistoryEntry {
	return HistoryEntry{AppState: appState, Elements: elements}
}

// EmptyHistoryEntry returns an entry with both children empty.
func EmptyHistoryEntry() HistoryEntry {
	return HistoryEntry{AppState: EmptyAppStateChange(), Elements: EmptyElementsChange()}
}

// IsEmpty reports whether both children are empty.
func (e HistoryEntry) IsEmpty() bool {
	return e.AppState.IsEmpty() && e.Elements.IsEmpty()
}

// Inverse returns the entry with both children inverted.
func (e HistoryEntry) Inverse() HistoryEntry {
	return HistoryEntry{AppState: e.AppState.Inverse(), Elements: e.Elements.Inverse()}
}

// ApplyResult pairs an applied value with whether applying it produced a
// visible difference.
type ApplyResult[T any] struct {
	Value   T
	Visible bool
}

// ApplyTo applies both children to the live elements and app state.
func (e HistoryEntry) ApplyTo(elements scene.ElementsMap, appState appstate.ObservedAppState) (ApplyResult[scene.ElementsMap], ApplyResult[appstate.ObservedAppState]) {
	nextElements, elementsVisible := e.Elements.ApplyTo(elements)
	nextAppState, appStateVisible := e.AppState.ApplyTo(appState)
	return ApplyResult[scene.ElementsMap]{Value: nextElements, Visible: elementsVisible},
		ApplyResult[appstate.ObservedAppState]{Value: nextAppState, Visible: appStateVisible}
}

// ApplyLatestChanges rebases the entry's ElementsChange against elements
// (refreshing the To half); the AppStateChange passes through unchanged, as
// app state carries no concurrent-remote-editor concept in this design.
func (e HistoryEntry) ApplyLatestChanges(elements scene.ElementsMap) HistoryEntry {
	return HistoryEntry{
		AppState: e.AppState,
		Elements: e.Elements.ApplyLatestChanges(elements, SideTo),
	}
}
