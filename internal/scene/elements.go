package scene

import "reflect"

// ElementsMap is a keyed collection of drawing elements whose iteration
// order is significant — it represents z-order. An ordered id slice rides
// alongside the lookup map so that rebuilding the collection (e.g. during
// Snapshot.Clone or ElementsChange.ApplyTo) preserves insertion order,
// mirroring the way the teacher's SliceBuffer pairs an ordered line slice
// with its own bookkeeping rather than relying on a bare map.
type ElementsMap struct {
	order []ElementID
	byID  map[ElementID]*DrawingElement
}

// New returns an empty ElementsMap.
func New() ElementsMap {
	return ElementsMap{byID: make(map[ElementID]*DrawingElement)}
}

// FromSlice builds an ElementsMap from elements in the given z-order.
func FromSlice(elements []DrawingElement) ElementsMap {
	m := ElementsMap{
		order: make([]ElementID, 0, len(elements)),
		byID:  make(map[ElementID]*DrawingElement, len(elements)),
	}
	for _, e := range elements {
		e := e
		m.order = append(m.order, e.ID)
		m.byID[e.ID] = &e
	}
	return m
}

// SameAs reports whether m and other share the same backing map instance —
// the ElementsMap analogue of reference equality used to short-circuit
// ElementsChange.Calculate when the caller passes back the same collection.
func (m ElementsMap) SameAs(other ElementsMap) bool {
	if m.byID == nil || other.byID == nil {
		return m.byID == nil && other.byID == nil
	}
	return reflect.ValueOf(m.byID).Pointer() == reflect.ValueOf(other.byID).Pointer()
}

// Len returns the number of elements, including soft-deleted ones.
func (m ElementsMap) Len() int {
	return len(m.order)
}

// Ids returns the element ids in z-order. The returned slice is owned by the
// caller.
func (m ElementsMap) Ids() []ElementID {
	out := make([]ElementID, len(m.order))
	copy(out, m.order)
	return out
}

// Get returns the element with the given id and whether it was present.
func (m ElementsMap) Get(id ElementID) (DrawingElement, bool) {
	e, ok := m.byID[id]
	if !ok {
		return DrawingElement{}, false
	}
	return *e, true
}

// Has reports whether id is present in the map.
func (m ElementsMap) Has(id ElementID) bool {
	_, ok := m.byID[id]
	return ok
}

// Clone returns a new ElementsMap with its own backing storage, sharing
// element pointers with m (structural sharing — no element is deep-copied
// by Clone itself; see Snapshot.Clone for the version-gated deep-copy step).
func (m ElementsMap) Clone() ElementsMap {
	next := ElementsMap{
		order: make([]ElementID, len(m.order)),
		byID:  make(map[ElementID]*DrawingElement, len(m.byID)),
	}
	copy(next.order, m.order)
	for id, e := range m.byID {
		next.byID[id] = e
	}
	return next
}

// Set inserts or overwrites the element with the given id, appending to the
// end of z-order if the id is new.
func (m *ElementsMap) Set(e DrawingElement) {
	if _, exists := m.byID[e.ID]; !exists {
		m.order = append(m.order, e.ID)
	}
	m.byID[e.ID] = &e
}

// WithSet returns a copy of m with e inserted or overwritten, leaving m
// untouched.
func (m ElementsMap) WithSet(e DrawingElement) ElementsMap {
	next := m.Clone()
	next.Set(e)
	return next
}

// Each calls fn for every element in z-order.
func (m ElementsMap) Each(fn func(DrawingElement)) {
	for _, id := range m.order {
		fn(*m.byID[id])
	}
}
