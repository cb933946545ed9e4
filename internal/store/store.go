// Package store implements the transition observer: it watches captures of
// the live elements/app state, decides when a change is semantically
// interesting, and fans out the resulting increment to listeners (e.g. a
// network layer, or this module's own internal/history.History).
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/inkstage/historycore/internal/appstate"
	"github.com/inkstage/historycore/internal/change"
	"github.com/inkstage/historycore/internal/event"
	"github.com/inkstage/historycore/internal/logger"
	"github.com/inkstage/historycore/internal/scene"
	"github.com/inkstage/historycore/internal/snapshot"
)

// Increment is the value handed to Store listeners on a captured
// transition.
type Increment struct {
	ID       uuid.UUID
	Elements change.ElementsChange
	AppState change.AppStateChange
}

// Listener is a Store subscriber. A non-nil error aborts the remaining
// fan-out for this capture and is returned to the caller of Capture.
type Listener func(Increment) error

// listenerEntry pairs a registered Listener with the id Listen assigned it,
// so deregistration can find and remove it without disturbing the order of
// the rest.
type listenerEntry struct {
	id int
	cb Listener
}

// Store owns the current Snapshot and fans out increments to listeners.
type Store struct {
	mu sync.Mutex

	snapshot  *snapshot.Snapshot
	nextSubID int
	listeners []listenerEntry

	recordingChanges         bool
	shouldOnlyUpdateSnapshot bool
	isRemoteUpdate           bool

	// everCaptured is set the first time Capture proceeds past the arming
	// check, regardless of whether that capture actually advances the
	// snapshot. It is a one-shot flag Clone cannot infer from the snapshot's
	// own content (an empty scene recaptured twice looks the same as an
	// as-yet-uncaptured one), so Store tracks it itself.
	everCaptured bool

	// Bus, when non-nil, also receives a TypeIncrementCaptured notification
	// for every increment this Store emits, alongside the Listen callbacks.
	Bus *event.Manager
}

// New creates a Store with an empty starting snapshot.
func New() *Store {
	return &Store{
		snapshot: snapshot.Empty(),
	}
}

// ResumeRecording arms the next Capture to compute and emit an increment.
func (s *Store) ResumeRecording() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordingChanges = true
}

// OnlyUpdateSnapshot arms the next Capture to update the snapshot without
// emitting, absorbing a change that should not itself be undoable.
func (s *Store) OnlyUpdateSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shouldOnlyUpdateSnapshot = true
}

// MarkRemoteUpdate arms the next Capture's snapshot clone to apply the
// editing-element exception.
func (s *Store) MarkRemoteUpdate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isRemoteUpdate = true
}

// Listen registers cb and returns a function that deregisters it. Multiple
// listeners are called in registration order, synchronously, on every
// emitting Capture.
func (s *Store) Listen(cb Listener) (deregister func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners = append(s.listeners, listenerEntry{id: id, cb: cb})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		for i, entry := range s.listeners {
			if entry.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}

// Capture observes a transition to elements/appState. sceneVersionNonce and
// editingElementID are forwarded to the snapshot clone unchanged; either may
// be a zero value when the host has nothing to report. The three one-shot
// flags (ResumeRecording/OnlyUpdateSnapshot/MarkRemoteUpdate) are reset at
// the end of the call regardless of outcome.
func (s *Store) Capture(elements scene.ElementsMap, appState appstate.ObservedAppState, sceneVersionNonce *int64, editingElementID scene.ElementID) error {
	s.mu.Lock()
	recording := s.recordingChanges
	onlyUpdate := s.shouldOnlyUpdateSnapshot
	remote := s.isRemoteUpdate
	prev := s.snapshot
	s.mu.Unlock()

	defer s.resetFlags()

	if !recording && !onlyUpdate {
		return nil
	}

	s.mu.Lock()
	isFirstCapture := !s.everCaptured
	s.everCaptured = true
	s.mu.Unlock()

	next := prev.Clone(elements, appState, snapshotCloneOptions(sceneVersionNonce, remote, editingElementID, isFirstCapture))
	if next == prev {
		return nil
	}

	var emitErr error
	if recording && !onlyUpdate {
		emitErr = s.emit(prev, next)
	}

	// The snapshot advances even when a listener failed: retrying the same
	// capture must not re-diff against the stale prev and double-emit.
	s.mu.Lock()
	s.snapshot = next
	s.mu.Unlock()

	return emitErr
}

func (s *Store) emit(prev, next *snapshot.Snapshot) error {
	elementsChange := change.EmptyElementsChange()
	if next.Meta.DidElementsChange {
		elementsChange = change.CalculateElementsChange(prev.Elements, next.Elements)
	}
	appStateChange := change.EmptyAppStateChange()
	if next.Meta.DidAppStateChange {
		appStateChange = change.CalculateAppStateChange(prev.AppState, next.AppState)
	}

	if elementsChange.IsEmpty() && appStateChange.IsEmpty() {
		return nil
	}

	increment := Increment{ID: uuid.New(), Elements: elementsChange, AppState: appStateChange}

	if s.Bus != nil {
		s.Bus.Dispatch(event.TypeIncrementCaptured, increment)
	}

	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	for i, entry := range s.listeners {
		listeners[i] = entry.cb
	}
	s.mu.Unlock()

	for _, cb := range listeners {
		if err := cb(increment); err != nil {
			logger.Errorf("Store: listener returned error for increment %s: %v", increment.ID, err)
			return fmt.Errorf("store: listener failed: %w", err)
		}
	}
	return nil
}

func (s *Store) resetFlags() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordingChanges = false
	s.shouldOnlyUpdateSnapshot = false
	s.isRemoteUpdate = false
}

// Clear resets the snapshot to empty and re-arms the first-capture
// exception, so a subsequent capture establishes a fresh quiet baseline
// rather than being diffed against the state Clear discarded. Undo/redo
// stacks are owned by internal/history.History, not Store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot.Empty()
	s.everCaptured = false
}

// Destroy clears the snapshot, drops all listeners, and re-arms the
// first-capture exception.
func (s *Store) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot.Empty()
	s.listeners = nil
	s.everCaptured = false
}

func snapshotCloneOptions(sceneVersionNonce *int64, isRemoteUpdate bool, editingElementID scene.ElementID, isFirstCapture bool) snapshot.CloneOptions {
	return snapshot.CloneOptions{
		SceneVersionNonce: sceneVersionNonce,
		IsRemoteUpdate:    isRemoteUpdate,
		EditingElementID:  editingElementID,
		IsFirstCapture:    isFirstCapture,
	}
}
