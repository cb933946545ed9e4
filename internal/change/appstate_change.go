package change

import (
	"github.com/inkstage/historycore/internal/appstate"
	"github.com/inkstage/historycore/internal/delta"
)

// selectionComparators pairs the nested selection id maps with their own
// one-level shallow comparator, per Snapshot.Clone's DidAppStateChange rule
// (Section 4.5 of SPEC_FULL.md).
var selectionComparators = delta.Comparators{
	"selectedElementIds": delta.ShallowEqualSelection,
	"selectedGroupIds":   delta.ShallowEqualSelection,
}

// AppStateChange wraps a delta.Delta over appstate.ObservedAppState.
type AppStateChange struct {
	delta.Delta
}

// EmptyAppStateChange returns a change with no differences.
func EmptyAppStateChange() AppStateChange {
	return AppStateChange{Delta: delta.Empty()}
}

// IsEmpty reports whether the change carries no differences.
func (c AppStateChange) IsEmpty() bool {
	return c.Delta.IsEmpty()
}

// CalculateAppStateChange diffs prev against next over the observed fields.
func CalculateAppStateChange(prev, next appstate.ObservedAppState) AppStateChange {
	return AppStateChange{Delta: delta.Calculate(prev.ToMap(), next.ToMap())}
}

// Inverse returns the change with From/To swapped.
func (c AppStateChange) Inverse() AppStateChange {
	return AppStateChange{Delta: delta.Delta{From: c.To, To: c.From}}
}

// ApplyTo merges the change's To half onto state and reports whether doing
// so produces a visible difference against state as it stood before the
// call.
func (c AppStateChange) ApplyTo(state appstate.ObservedAppState) (appstate.ObservedAppState, bool) {
	stateMap := state.ToMap()
	visible := delta.ContainsDifference(c.To, stateMap, selectionComparators)

	merged := make(map[string]any, len(stateMap))
	for k, v := range stateMap {
		merged[k] = v
	}
	for k, v := range c.To {
		merged[k] = v
	}
	return appstate.FromMap(merged), visible
}
