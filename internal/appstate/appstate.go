// Package appstate defines the fixed, enumerated projection of editor state
// that participates in undo/redo history. Fields outside this projection
// (tool mode, zoom, cursor position, ...) are deliberately never represented
// here and never reach the history core.
package appstate

// LinearElementState mirrors the host's in-progress linear-element editing
// state (e.g. a multi-point line or arrow being drawn). It is treated as an
// opaque flat record by the history core.
type LinearElementState struct {
	ElementID     string
	PointIndex    int
	IsDragging    bool
	LastCommitted int
}

// ObservedAppState is the subset of editor state the history core watches.
type ObservedAppState struct {
	Name                  string
	EditingGroupID        string
	ViewBackgroundColor   string
	SelectedElementIDs    map[string]bool
	SelectedGroupIDs      map[string]bool
	EditingLinearElement  *LinearElementState
	SelectedLinearElement *LinearElementState
}

// ToMap reflects the observed fields into a property map so the generic
// delta.Delta machinery can diff them the same way it diffs element props.
func (s ObservedAppState) ToMap() map[string]any {
	return map[string]any{
		"name":                  s.Name,
		"editingGroupId":        s.EditingGroupID,
		"viewBackgroundColor":   s.ViewBackgroundColor,
		"selectedElementIds":    selectionToAny(s.SelectedElementIDs),
		"selectedGroupIds":      selectionToAny(s.SelectedGroupIDs),
		"editingLinearElement":  linearToAny(s.EditingLinearElement),
		"selectedLinearElement": linearToAny(s.SelectedLinearElement),
	}
}

// FromMap rebuilds an ObservedAppState from a property map produced by
// ToMap (or a merge thereof). Unknown keys are ignored.
func FromMap(m map[string]any) ObservedAppState {
	s := ObservedAppState{}
	if v, ok := m["name"].(string); ok {
		s.Name = v
	}
	if v, ok := m["editingGroupId"].(string); ok {
		s.EditingGroupID = v
	}
	if v, ok := m["viewBackgroundColor"].(string); ok {
		s.ViewBackgroundColor = v
	}
	if v, ok := m["selectedElementIds"].(map[string]bool); ok {
		s.SelectedElementIDs = v
	}
	if v, ok := m["selectedGroupIds"].(map[string]bool); ok {
		s.SelectedGroupIDs = v
	}
	if v, ok := m["editingLinearElement"].(*LinearElementState); ok {
		s.EditingLinearElement = v
	}
	if v, ok := m["selectedLinearElement"].(*LinearElementState); ok {
		s.SelectedLinearElement = v
	}
	return s
}

func selectionToAny(m map[string]bool) any {
	if m == nil {
		return map[string]bool{}
	}
	return m
}

func linearToAny(l *LinearElementState) any {
	return l
}
