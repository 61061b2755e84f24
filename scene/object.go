// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/render"
)

// ObjectAttribs are bit flags controlling how an object is culled and drawn.
type ObjectAttribs int32

const (
	// Cullable objects are tested against the view frustum.
	// Objects without it are drawn whenever they are visible.
	Cullable ObjectAttribs = 1 << iota

	// Overlay objects are drawn after the scene, without culling.
	Overlay

	// Moveable objects are expected to change bound every frame.
	Moveable
)

// Has returns true if all of the given attributes are set.
func (oa ObjectAttribs) Has(attr ObjectAttribs) bool {
	return oa&attr == attr
}

// Object is one entry in a scene: a world-space bounding box, and
// optionally the layout drawn for it. An object is owned by at most
// one [Manager]; its Bound must only be changed through [Manager.Update].
type Object struct {
	// Name is used in logs and debugging.
	Name string

	Attrib ObjectAttribs

	// Visible is false for hidden objects, which are never drawn.
	Visible bool

	// Bound is the world-space axis-aligned bounding box.
	Bound math32.Box3

	// Layout is drawn for the object if it is non-nil.
	Layout render.RenderLayout

	mark math32.BoundOverlap
}

// NewObject returns a visible cullable object with the given bound.
func NewObject(name string, bound math32.Box3) *Object {
	return &Object{Name: name, Attrib: Cullable, Visible: true, Bound: bound}
}

// VisibleMark returns the result of the last culling pass.
func (ob *Object) VisibleMark() math32.BoundOverlap { return ob.mark }

// SetVisibleMark sets the culling result.
func (ob *Object) SetVisibleMark(mark math32.BoundOverlap) { ob.mark = mark }

func (ob *Object) String() string {
	return ob.Name
}
