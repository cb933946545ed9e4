// Package history implements the two-stack undo/redo engine: it records
// increments emitted by a Store, and on UndoOnce/RedoOnce re-anchors the
// popped entry against the live scene before replaying it.
package history

import (
	"sync"

	"github.com/inkstage/historycore/internal/change"
	"github.com/inkstage/historycore/internal/event"
	"github.com/inkstage/historycore/internal/logger"
	"github.com/inkstage/historycore/internal/scene"
)

// History holds the undo and redo stacks of change.HistoryEntry.
type History struct {
	mu sync.Mutex

	undoStack []change.HistoryEntry
	redoStack []change.HistoryEntry

	// SkipInvisibleEntries resolves Open Question (a): when true, UndoOnce
	// and RedoOnce keep popping past entries that produce no visible
	// difference against the live state, so a single host-level undo/redo
	// command advances by one user-perceivable step (Scenario D).
	SkipInvisibleEntries bool

	// Bus, when non-nil, receives TypeHistoryRecorded/TypeUndoPerformed/
	// TypeRedoPerformed/TypeHistoryCleared notifications so a host can keep
	// a toolbar's undo/redo enabled state in sync without polling.
	Bus *event.Manager
}

// New creates an empty History. skipInvisibleEntries sets the
// SkipInvisibleEntries policy (see SPEC_FULL.md Section 9, Open Question
// (a); the host's config.Config.History.SkipInvisibleEntries feeds this).
func New(skipInvisibleEntries bool) *History {
	return &History{SkipInvisibleEntries: skipInvisibleEntries}
}

func (h *History) dispatch(t event.Type) {
	if h.Bus == nil {
		return
	}
	h.Bus.Dispatch(t, event.HistoryStackData{
		UndoDepth: len(h.undoStack),
		RedoDepth: len(h.redoStack),
	})
}

// Record pushes the inverse of the given increment onto the undo stack and
// clears the redo stack. An empty entry (both elementsChange and
// appStateChange empty) is ignored and leaves the redo stack untouched —
// Open Question (b)'s resolution: only a genuinely new branch point clears
// redoable future.
func (h *History) Record(elementsChange change.ElementsChange, appStateChange change.AppStateChange) {
	entry := change.NewHistoryEntry(appStateChange.Inverse(), elementsChange.Inverse())
	if entry.IsEmpty() {
		logger.Debugf("History: ignoring empty increment, redo stack preserved")
		return
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.redoStack = h.redoStack[:0]
	logger.Debugf("History: recorded entry, undo depth %d, redo stack cleared", len(h.undoStack))
	h.dispatch(event.TypeHistoryRecorded)
	h.mu.Unlock()
}

// UndoOnce pops the most recent undo entry, pushes its rebased inverse onto
// the redo stack, and returns it for the caller to apply to the editor. It
// returns a nil entry when the undo stack is empty. The error return is
// always nil; the undo/redo commands in internal/commands propagate it to
// their caller rather than discarding it.
func (h *History) UndoOnce(liveElements scene.ElementsMap) (*change.HistoryEntry, error) {
	return h.stepOnce(liveElements, &h.undoStack, &h.redoStack, event.TypeUndoPerformed)
}

// RedoOnce is the symmetric counterpart of UndoOnce, popping from the redo
// stack and pushing onto the undo stack.
func (h *History) RedoOnce(liveElements scene.ElementsMap) (*change.HistoryEntry, error) {
	return h.stepOnce(liveElements, &h.redoStack, &h.undoStack, event.TypeRedoPerformed)
}

func (h *History) stepOnce(liveElements scene.ElementsMap, from, to *[]change.HistoryEntry, notify event.Type) (*change.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for {
		if len(*from) == 0 {
			return nil, nil
		}

		entry := (*from)[len(*from)-1]
		*from = (*from)[:len(*from)-1]

		rebased := entry.Inverse().ApplyLatestChanges(liveElements)
		*to = append(*to, rebased)

		if !h.SkipInvisibleEntries {
			h.dispatch(notify)
			return &entry, nil
		}

		if entryIsVisible(entry, liveElements) {
			h.dispatch(notify)
			return &entry, nil
		}
		logger.Debugf("History: skipping invisible entry, %d remaining", len(*from))
	}
}

// entryIsVisible reports whether applying entry against the live state
// would produce a visible difference on either side. It uses the live
// elements the caller already holds; app state visibility is judged against
// an empty state map, since an entry's AppStateChange carries its own
// visibility verdict regardless of the app state's current field values —
// any non-empty field assignment in To is itself the visible change.
func entryIsVisible(entry change.HistoryEntry, liveElements scene.ElementsMap) bool {
	_, elementsVisible := entry.Elements.ApplyTo(liveElements)
	return elementsVisible || !entry.AppState.IsEmpty()
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.mu.Lock()
	h.undoStack = nil
	h.redoStack = nil
	h.dispatch(event.TypeHistoryCleared)
	h.mu.Unlock()
}

// IsUndoStackEmpty reports whether there is nothing left to undo.
func (h *History) IsUndoStackEmpty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) == 0
}

// IsRedoStackEmpty reports whether there is nothing left to redo.
func (h *History) IsRedoStackEmpty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) == 0
}
