// Package change implements the invertible, applyable change objects built
// on top of internal/delta: AppStateChange, ElementsChange, and the
// HistoryEntry that pairs them.
package change

import (
	"github.com/inkstage/historycore/internal/delta"
	"github.com/inkstage/historycore/internal/scene"
)

// Side selects which half of a delta ApplyLatestChanges should refresh
// against the live collection.
type Side int

const (
	SideFrom Side = iota
	SideTo
)

// ElementDelta is delta.Delta specialized for a single element's property
// map, with add/remove encoded as a flip of "isDeleted" rather than as
// distinct variants. Addition and removal deltas carry the element's payload
// (irrelevant props stripped) on the non-deleted side, so their two halves
// do not share a key set.
type ElementDelta struct {
	delta.Delta
}

func (d ElementDelta) inverse() ElementDelta {
	return ElementDelta{Delta: delta.Delta{From: d.To, To: d.From}}
}

// ElementsChange is a mapping from element id to ElementDelta. Empty deltas
// are never inserted.
type ElementsChange struct {
	deltas map[scene.ElementID]ElementDelta
}

// EmptyElementsChange returns a change with no deltas.
func EmptyElementsChange() ElementsChange {
	return ElementsChange{deltas: map[scene.ElementID]ElementDelta{}}
}

// IsEmpty reports whether the change carries no deltas.
func (c ElementsChange) IsEmpty() bool {
	return len(c.deltas) == 0
}

// Len returns the number of per-element deltas.
func (c ElementsChange) Len() int {
	return len(c.deltas)
}

// Get returns the delta recorded for id, if any.
func (c ElementsChange) Get(id scene.ElementID) (ElementDelta, bool) {
	d, ok := c.deltas[id]
	return d, ok
}

// clearIrrelevantProps removes updated/version/versionNonce/seed from a
// property map modifier-style, matching delta.Modifier's signature.
func clearIrrelevantProps(props map[string]any) map[string]any {
	if props == nil {
		return props
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = v
	}
	for _, k := range scene.IrrelevantProps {
		delete(out, k)
	}
	return out
}

// CalculateElementsChange diffs prev against next, producing removal deltas
// for ids that disappeared, addition deltas for ids that are new, and
// update deltas (with irrelevant props stripped) for ids whose
// VersionNonce changed. Deltas that collapse to empty after stripping are
// discarded. prev and next being the same backing collection short-circuits
// to an empty change.
func CalculateElementsChange(prev, next scene.ElementsMap) ElementsChange {
	c := EmptyElementsChange()
	if prev.SameAs(next) {
		return c
	}

	for _, id := range prev.Ids() {
		if next.Has(id) {
			continue
		}
		prevEl, _ := prev.Get(id)
		if prevEl.IsDeleted {
			continue
		}
		d := delta.Delta{From: clearIrrelevantProps(prevEl.ToMap()), To: map[string]any{"isDeleted": true}}
		c.deltas[id] = ElementDelta{Delta: d}
	}

	for _, id := range next.Ids() {
		nextEl, _ := next.Get(id)
		prevEl, existed := prev.Get(id)
		if !existed {
			if nextEl.IsDeleted {
				continue
			}
			d := delta.Delta{From: map[string]any{"isDeleted": true}, To: clearIrrelevantProps(nextEl.ToMap())}
			c.deltas[id] = ElementDelta{Delta: d}
			continue
		}
		if prevEl.VersionNonce == nextEl.VersionNonce {
			continue
		}
		d := delta.Calculate(prevEl.ToMap(), nextEl.ToMap(), clearIrrelevantProps)
		if !d.IsEmpty() {
			c.deltas[id] = ElementDelta{Delta: d}
		}
	}

	return c
}

// Inverse returns the change with each per-id delta's From/To swapped.
func (c ElementsChange) Inverse() ElementsChange {
	inv := EmptyElementsChange()
	for id, d := range c.deltas {
		inv.deltas[id] = d.inverse()
	}
	return inv
}

// ApplyTo applies every delta to elements, merging each delta's To half
// into the existing element (preserving identity and z-order) and skipping
// deltas whose target id is absent (its effect is deferred to a future
// rebase). It returns the resulting collection and whether the application
// produced a visible difference against the elements as they stood before
// the call.
func (c ElementsChange) ApplyTo(elements scene.ElementsMap) (scene.ElementsMap, bool) {
	next := elements.Clone()
	visible := false

	for id, d := range c.deltas {
		existing, ok := elements.Get(id)
		if !ok {
			continue
		}

		if wasDeleted, hasFlag := d.To["isDeleted"].(bool); hasFlag && wasDeleted != existing.IsDeleted {
			visible = true
		} else if !existing.IsDeleted {
			if delta.ContainsDifference(d.To, existing.ToMap()) {
				visible = true
			}
		}

		next.Set(existing.WithMerged(d.To))
	}

	return next, visible
}

// ApplyLatestChanges rebases every delta whose id exists in elements: the
// chosen side is replaced with the current values of the same keys taken
// from elements, while the other side is preserved unchanged. Deltas whose
// id is absent from elements pass through untouched.
func (c ElementsChange) ApplyLatestChanges(elements scene.ElementsMap, side Side) ElementsChange {
	next := EmptyElementsChange()
	for id, d := range c.deltas {
		current, ok := elements.Get(id)
		if !ok {
			next.deltas[id] = d
			continue
		}
		currentMap := current.ToMap()
		refreshed := delta.Delta{From: cloneMap(d.From), To: cloneMap(d.To)}
		var target map[string]any
		if side == SideFrom {
			target = refreshed.From
		} else {
			target = refreshed.To
		}
		for k := range target {
			if v, ok := currentMap[k]; ok {
				target[k] = v
			}
		}
		next.deltas[id] = ElementDelta{Delta: refreshed}
	}
	return next
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
