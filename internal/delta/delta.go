// Package delta implements the property-level difference algebra the rest of
// the history core is built on: a Delta is a (From, To) pair of partial
// property maps describing how a single record changed.
package delta

import "reflect"

// Modifier transforms a delta's from/to halves after calculation, e.g. to
// strip properties that should never participate in a diff.
type Modifier func(props map[string]any) map[string]any

// Delta is a value object describing a property-level change of a single
// record. A Delta built by Calculate or Create has identical key sets in
// From and To, and for every key k, From[k] != To[k] at construction time.
type Delta struct {
	From map[string]any
	To   map[string]any
}

// Empty returns a Delta with no differences.
func Empty() Delta {
	return Delta{From: map[string]any{}, To: map[string]any{}}
}

// IsEmpty reports whether the delta carries no differences.
func (d Delta) IsEmpty() bool {
	return len(d.From) == 0 && len(d.To) == 0
}

// Calculate walks the union of keys of prev and next and records every key
// whose value differs. Modifiers are applied to both halves afterward.
func Calculate(prev, next map[string]any, modifiers ...Modifier) Delta {
	from := make(map[string]any)
	to := make(map[string]any)

	for k, prevVal := range prev {
		nextVal, ok := next[k]
		if !ok || !valuesEqual(prevVal, nextVal) {
			from[k] = prevVal
			to[k] = nextVal
		}
	}
	for k, nextVal := range next {
		if _, ok := prev[k]; ok {
			continue // already handled above
		}
		from[k] = nil
		to[k] = nextVal
	}

	return Create(from, to, modifiers...)
}

// Create builds a Delta directly from already-computed halves, applying any
// modifiers and dropping keys that collapse to equal values after modifier
// application.
func Create(from, to map[string]any, modifiers ...Modifier) Delta {
	for _, m := range modifiers {
		from = m(from)
		to = m(to)
	}

	result := Delta{From: map[string]any{}, To: map[string]any{}}
	for k, fv := range from {
		tv, ok := to[k]
		if !ok {
			continue
		}
		if valuesEqual(fv, tv) {
			continue
		}
		result.From[k] = fv
		result.To[k] = tv
	}
	return result
}

// ContainsDifference reports whether applying partial to object would
// produce a visible change: for each key in partial, partial[k] must differ
// from object[k], using shallow equality to avoid false positives against
// newly-allocated-but-identical sub-objects.
func ContainsDifference(partial, object map[string]any, comparators ...Comparators) bool {
	var cmp Comparators
	if len(comparators) > 0 {
		cmp = comparators[0]
	}
	for k, pv := range partial {
		ov := object[k]
		if !shallowEqualValue(k, pv, ov, cmp) {
			return true
		}
	}
	return false
}

// valuesEqual is the "reference/value inequality" check Calculate uses to
// decide whether a property changed. Maps compare by identity only: the same
// map instance is equal to itself, while a caller that reallocated one is
// assumed to have changed it; callers that need structural comparison of
// sub-objects use ShallowEqual instead.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Map:
		bv := reflect.ValueOf(b)
		return bv.Kind() == reflect.Map && rv.Type() == bv.Type() && rv.Pointer() == bv.Pointer()
	case reflect.Slice, reflect.Array:
		bv := reflect.ValueOf(b)
		if bv.Kind() != rv.Kind() || rv.Len() != bv.Len() {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if !valuesEqual(rv.Index(i).Interface(), bv.Index(i).Interface()) {
				return false
			}
		}
		return true
	default:
		if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
			return false
		}
		return a == b
	}
}
