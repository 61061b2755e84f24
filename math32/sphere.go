// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Sphere represents a 3D sphere defined by its center point and a radius
type Sphere struct {
	Center Vector3 // center of the sphere
	Radius float32 // radius of the sphere
}

// NewSphere creates and returns a pointer to a new sphere with
// the specified center and radius.
func NewSphere(center Vector3, radius float32) *Sphere {
	return &Sphere{center, radius}
}

// IsEmpty checks if this sphere is empty (radius <= 0)
func (s Sphere) IsEmpty() bool {
	return s.Radius <= 0
}

// ContainsPoint returns if this sphere contains the specified point.
func (s Sphere) ContainsPoint(point Vector3) bool {
	return point.DistanceToSquared(s.Center) <= (s.Radius * s.Radius)
}

// DistanceToPoint returns the distance from the sphere surface to the specified point.
func (s Sphere) DistanceToPoint(point Vector3) float32 {
	return Sqrt(point.DistanceToSquared(s.Center)) - s.Radius
}

// IntersectSphere returns if other sphere intersects this one.
func (s Sphere) IntersectSphere(other Sphere) bool {
	radiusSum := s.Radius + other.Radius
	return other.Center.DistanceToSquared(s.Center) <= (radiusSum * radiusSum)
}

// GetBoundingBox calculates a [Box3] which bounds this sphere.
func (s Sphere) GetBoundingBox() Box3 {
	box := Box3{s.Center, s.Center}
	box.ExpandByScalar(s.Radius)
	return box
}

// Translate translates this sphere by the specified offset.
func (s *Sphere) Translate(offset Vector3) {
	s.Center.SetAdd(offset)
}

// Centroid returns the sphere center.
func (s Sphere) Centroid() Vector3 {
	return s.Center
}

// MaxRadiusSq returns the squared radius.
func (s Sphere) MaxRadiusSq() float32 {
	return s.Radius * s.Radius
}

// AABB returns the bounding box of the sphere.
func (s Sphere) AABB() Box3 {
	return s.GetBoundingBox()
}
