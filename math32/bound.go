// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "strconv"

// Bound is a closed volume in space that supports containment
// and overlap tests. It is implemented by [Box3], [Sphere] and [*Frustum].
type Bound interface {
	// IsEmpty returns true if the bound encloses zero volume.
	IsEmpty() bool

	// Centroid returns the center of the bound.
	Centroid() Vector3

	// MaxRadiusSq returns the squared distance from the centroid to
	// the farthest point of the bound. A point within this radius may
	// still be outside a non-spherical bound.
	MaxRadiusSq() float32

	// ContainsPoint returns true if the point is inside or on the bound.
	ContainsPoint(p Vector3) bool

	// AABB returns the axis-aligned box enclosing the bound.
	AABB() Box3
}

// BoundOverlap is the result of testing one volume against another.
type BoundOverlap int32

const (
	// Outside means the volumes do not overlap.
	Outside BoundOverlap = iota

	// Inside means the tested volume lies entirely inside.
	Inside

	// Partial means the volumes overlap but the tested volume is not fully inside.
	Partial
)

func (bo BoundOverlap) String() string {
	switch bo {
	case Outside:
		return "Outside"
	case Inside:
		return "Inside"
	case Partial:
		return "Partial"
	}
	return "BoundOverlap(" + strconv.Itoa(int(bo)) + ")"
}

// Visible returns true unless the overlap is [Outside].
func (bo BoundOverlap) Visible() bool {
	return bo != Outside
}
