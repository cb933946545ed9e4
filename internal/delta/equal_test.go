package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShallowEqual_DifferentLengthsAreUnequal(t *testing.T) {
	a := map[string]any{"x": 1}
	b := map[string]any{"x": 1, "y": 2}

	assert.False(t, ShallowEqual(a, b))
}

func TestShallowEqual_NestedMapsCompareStructurally(t *testing.T) {
	a := map[string]any{"nested": map[string]any{"k": 1}}
	b := map[string]any{"nested": map[string]any{"k": 1}}

	assert.True(t, ShallowEqual(a, b), "nested maps with equal content are shallow-equal even though valuesEqual alone would say no")
}

func TestShallowEqual_ComparatorOverrideWins(t *testing.T) {
	a := map[string]any{"selectedElementIds": map[string]bool{"a": true}}
	b := map[string]any{"selectedElementIds": map[string]bool{"a": true}}

	cmp := Comparators{"selectedElementIds": ShallowEqualSelection}
	assert.True(t, ShallowEqual(a, b, cmp))
}

func TestShallowEqualSelection(t *testing.T) {
	assert.True(t, ShallowEqualSelection(map[string]bool{"a": true}, map[string]bool{"a": true}))
	assert.False(t, ShallowEqualSelection(map[string]bool{"a": true}, map[string]bool{"a": false}))
	assert.False(t, ShallowEqualSelection(map[string]bool{"a": true}, map[string]bool{"a": true, "b": true}))
}
