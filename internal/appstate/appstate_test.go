package appstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMap_RoundTripsThroughFromMap(t *testing.T) {
	s := ObservedAppState{
		Name:                "doc",
		EditingGroupID:      "g1",
		ViewBackgroundColor: "#fff",
		SelectedElementIDs:  map[string]bool{"e1": true},
		SelectedGroupIDs:    map[string]bool{"g1": true},
	}

	m := s.ToMap()
	restored := FromMap(m)

	assert.Equal(t, s.Name, restored.Name)
	assert.Equal(t, s.EditingGroupID, restored.EditingGroupID)
	assert.Equal(t, s.ViewBackgroundColor, restored.ViewBackgroundColor)
	assert.Equal(t, s.SelectedElementIDs, restored.SelectedElementIDs)
	assert.Equal(t, s.SelectedGroupIDs, restored.SelectedGroupIDs)
}

func TestObservedAppState_LinearElementFields(t *testing.T) {
	s := ObservedAppState{
		EditingLinearElement: &LinearElementState{ElementID: "l1", PointIndex: 2, IsDragging: true},
	}

	m := s.ToMap()
	restored := FromMap(m)

	assert.Equal(t, s.EditingLinearElement, restored.EditingLinearElement)
	assert.Nil(t, restored.SelectedLinearElement)
}

func TestToMap_NilSelectionBecomesEmptyMap(t *testing.T) {
	s := ObservedAppState{}
	m := s.ToMap()

	assert.Equal(t, map[string]bool{}, m["selectedElementIds"])
	assert.Equal(t, map[string]bool{}, m["selectedGroupIds"])
}
