package delta

// Comparators overrides the equality check for specific keys when comparing
// two maps with ShallowEqual — used for nested sub-objects (e.g. selection
// id maps) that need their own one-level shallow comparison instead of
// reference equality.
type Comparators map[string]func(a, b any) bool

// ShallowEqual compares a and b field-by-field. a and b must both be
// map[string]any (or nil); any key present in one side's comparator override
// is compared with that function instead of value equality.
func ShallowEqual(a, b map[string]any, comparators ...Comparators) bool {
	var cmp Comparators
	if len(comparators) > 0 {
		cmp = comparators[0]
	}
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		if !shallowEqualValue(k, av, bv, cmp) {
			return false
		}
	}
	return true
}

func shallowEqualValue(key string, av, bv any, cmp Comparators) bool {
	if cmp != nil {
		if fn, ok := cmp[key]; ok {
			return fn(av, bv)
		}
	}
	if avMap, ok := av.(map[string]any); ok {
		bvMap, ok := bv.(map[string]any)
		if !ok {
			return false
		}
		return ShallowEqual(avMap, bvMap)
	}
	return valuesEqual(av, bv)
}

// ShallowEqualSelection is the default comparator for id-set selection maps
// (map[string]bool keyed by element/group id), used as the per-key override
// for ObservedAppState.SelectedElementIDs / SelectedGroupIDs.
func ShallowEqualSelection(a, b any) bool {
	am, aok := a.(map[string]bool)
	bm, bok := b.(map[string]bool)
	if !aok || !bok {
		return aok == bok && a == nil && b == nil
	}
	if len(am) != len(bm) {
		return false
	}
	for k, v := range am {
		if bm[k] != v {
			return false
		}
	}
	return true
}
