// Package snapshot holds the Store's memoized last-observed state: the
// elements collection and observed app state the next capture diffs
// against, plus the structural-sharing clone that decides whether a
// transition is interesting enough to produce one.
package snapshot

import (
	"github.com/inkstage/historycore/internal/appstate"
	"github.com/inkstage/historycore/internal/delta"
	"github.com/inkstage/historycore/internal/scene"
)

// Meta records what changed relative to the snapshot's predecessor.
type Meta struct {
	DidElementsChange bool
	DidAppStateChange bool
	SceneVersionNonce *int64
}

// Snapshot is an immutable observed state: elements plus the observed
// editor fields.
type Snapshot struct {
	Elements scene.ElementsMap
	AppState appstate.ObservedAppState
	Meta     Meta
}

// Empty returns the zero snapshot: no elements, zero-value app state.
func Empty() *Snapshot {
	return &Snapshot{Elements: scene.New()}
}

var selectionComparators = delta.Comparators{
	"selectedElementIds": delta.ShallowEqualSelection,
	"selectedGroupIds":   delta.ShallowEqualSelection,
}

// CloneOptions configures Clone's editing-element exception and the
// elements fast-path.
type CloneOptions struct {
	// SceneVersionNonce, when non-nil, is compared against the previous
	// snapshot's recorded nonce to short-circuit the elements change check.
	SceneVersionNonce *int64
	// IsRemoteUpdate marks this clone as originating from a remote capture.
	IsRemoteUpdate bool
	// EditingElementID is the id of the element the local user is currently
	// editing; skipped during the structural clone when IsRemoteUpdate is
	// true, so a half-committed remote mutation of it is never captured.
	EditingElementID scene.ElementID
	// IsFirstCapture marks this clone as the very first capture the owning
	// Store has ever made (a one-shot flag the Store tracks itself, not
	// re-derived from s's content). Whatever scene the host hands in at
	// that point becomes the baseline future diffs anchor against, but it
	// must not itself be reported as a change (Scenario F) — it may be a
	// populated scene a host loaded from disk, not a prior user action.
	IsFirstCapture bool
}

// Clone observes a transition to nextElements/nextAppState and returns
// either s unchanged (when nothing observable changed) or a new Snapshot
// built via structural sharing.
func (s *Snapshot) Clone(nextElements scene.ElementsMap, nextAppState appstate.ObservedAppState, opts CloneOptions) *Snapshot {
	elementsContentChanged := s.elementsContentDiffers(nextElements, opts)
	didElementsChange := elementsContentChanged && !opts.IsFirstCapture
	didAppStateChange := !delta.ShallowEqual(s.AppState.ToMap(), nextAppState.ToMap(), selectionComparators)

	if !elementsContentChanged && !didAppStateChange {
		return s
	}

	var mergedElements scene.ElementsMap
	if elementsContentChanged {
		mergedElements = s.structuralClone(nextElements, opts)
	} else {
		mergedElements = s.Elements
	}

	return &Snapshot{
		Elements: mergedElements,
		AppState: nextAppState,
		Meta: Meta{
			DidElementsChange: didElementsChange,
			DidAppStateChange: didAppStateChange,
			SceneVersionNonce: opts.SceneVersionNonce,
		},
	}
}

// elementsContentDiffers decides whether nextElements differs from
// s.Elements in raw content terms, with no first-initialization
// suppression (that is applied by the caller). When both the caller and the
// previous snapshot supply a SceneVersionNonce, comparing the two is the fast
// path; otherwise a size+id+VersionNonce scan (right-to-left, matching the
// spec's scan order) decides.
func (s *Snapshot) elementsContentDiffers(nextElements scene.ElementsMap, opts CloneOptions) bool {
	if opts.SceneVersionNonce != nil && s.Meta.SceneVersionNonce != nil {
		return *opts.SceneVersionNonce != *s.Meta.SceneVersionNonce
	}

	prevIds := s.Elements.Ids()
	nextIds := nextElements.Ids()
	if len(prevIds) != len(nextIds) {
		return true
	}
	for i := len(nextIds) - 1; i >= 0; i-- {
		id := nextIds[i]
		if prevIds[i] != id {
			return true
		}
		prevEl, ok := s.Elements.Get(id)
		if !ok {
			return true
		}
		nextEl, _ := nextElements.Get(id)
		if prevEl.VersionNonce != nextEl.VersionNonce {
			return true
		}
	}
	return false
}

// structuralClone builds the merged elements map: every previous entry is
// copied (never dropped — remote collaborators may deliver a subset), then
// any id whose VersionNonce differs from the previous is overwritten with a
// deep copy of the new element. An element matching opts.EditingElementID
// is skipped during a remote update.
func (s *Snapshot) structuralClone(nextElements scene.ElementsMap, opts CloneOptions) scene.ElementsMap {
	merged := s.Elements.Clone()

	for _, id := range nextElements.Ids() {
		nextEl, _ := nextElements.Get(id)

		if opts.IsRemoteUpdate && opts.EditingElementID != "" && id == opts.EditingElementID {
			continue
		}

		prevEl, existed := s.Elements.Get(id)
		if existed && prevEl.VersionNonce == nextEl.VersionNonce {
			continue
		}
		merged.Set(nextEl.Clone())
	}

	return merged
}
