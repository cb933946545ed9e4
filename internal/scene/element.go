// Package scene models the keyed, z-ordered collection of drawing elements
// the history core diffs and rebases against. It knows nothing about
// geometry, hit-testing, or rendering — an element's payload is an opaque
// property map as far as this package and the rest of the history core are
// concerned.
package scene

import "github.com/google/uuid"

// ElementID is the stable identity key of a DrawingElement.
type ElementID string

// NewElementID returns a fresh random element id. Production hosts are free
// to assign ids however they like; this helper exists for tests and example
// scene construction.
func NewElementID() ElementID {
	return ElementID(uuid.New().String())
}

// IrrelevantProps are stripped from every emitted delta: they churn without
// semantic meaning for undo/redo.
var IrrelevantProps = []string{"updated", "version", "versionNonce", "seed"}

// DrawingElement is an opaque record identified by a stable id.
type DrawingElement struct {
	ID           ElementID
	VersionNonce int64
	IsDeleted    bool
	Props        map[string]any
}

// ToMap reflects the element's observable fields into a single flat
// property map, the shape the delta package diffs.
func (e DrawingElement) ToMap() map[string]any {
	m := make(map[string]any, len(e.Props)+1)
	for k, v := range e.Props {
		m[k] = v
	}
	m["isDeleted"] = e.IsDeleted
	return m
}

// WithMerged returns a new element with the given partial property map
// merged on top of its current props, preserving identity (ID) and bumping
// no version nonce of its own — callers that originate the change are
// responsible for assigning a new VersionNonce.
func (e DrawingElement) WithMerged(partial map[string]any) DrawingElement {
	next := e.Clone()
	if v, ok := partial["isDeleted"].(bool); ok {
		next.IsDeleted = v
	}
	for k, v := range partial {
		if k == "isDeleted" {
			continue
		}
		next.Props[k] = v
	}
	return next
}

// Clone returns a deep copy of the element. Only the props map is
// structurally copied; values inside it are assumed immutable once stored
// (the same discipline the host applies to elements themselves).
func (e DrawingElement) Clone() DrawingElement {
	props := make(map[string]any, len(e.Props))
	for k, v := range e.Props {
		props[k] = v
	}
	return DrawingElement{
		ID:           e.ID,
		VersionNonce: e.VersionNonce,
		IsDeleted:    e.IsDeleted,
		Props:        props,
	}
}
