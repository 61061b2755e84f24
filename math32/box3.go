// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Box3 represents a 3D bounding box defined by two points:
// the point with minimum coordinates and the point with maximum coordinates.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// B3 returns a new [Box3] from the given minimum and maximum x, y, and z coordinates.
func B3(x0, y0, z0, x1, y1, z1 float32) Box3 {
	return Box3{Vec3(x0, y0, z0), Vec3(x1, y1, z1)}
}

// B3Empty returns a new [Box3] with empty minimum and maximum values.
func B3Empty() Box3 {
	bx := Box3{}
	bx.SetEmpty()
	return bx
}

// B3CenterSize returns a new [Box3] from a center point and size.
func B3CenterSize(center, size Vector3) Box3 {
	bx := Box3{}
	bx.SetFromCenterAndSize(center, size)
	return bx
}

// SetEmpty set this bounding box to empty (min / max +/- Infinity)
func (b *Box3) SetEmpty() {
	b.Min.SetScalar(Infinity)
	b.Max.SetScalar(-Infinity)
}

// IsEmpty returns true if this bounding box encloses zero volume,
// which includes inverted (max < min) and flat (max == min) boxes.
func (b Box3) IsEmpty() bool {
	return (b.Max.X <= b.Min.X) || (b.Max.Y <= b.Min.Y) || (b.Max.Z <= b.Min.Z)
}

// IsValid returns true if the box has no NaN coordinates and
// max >= min on every axis. Flat and point boxes are valid.
func (b Box3) IsValid() bool {
	if b.Min.IsNaN() || b.Max.IsNaN() {
		return false
	}
	return b.Max.X >= b.Min.X && b.Max.Y >= b.Min.Y && b.Max.Z >= b.Min.Z
}

// SetFromPoints sets this bounding box from the specified array of points.
func (b *Box3) SetFromPoints(points []Vector3) {
	b.SetEmpty()
	for _, p := range points {
		b.ExpandByPoint(p)
	}
}

// ExpandByPoint may expand this bounding box to include the specified point.
func (b *Box3) ExpandByPoint(point Vector3) {
	b.Min.SetMin(point)
	b.Max.SetMax(point)
}

// ExpandByBox may expand this bounding box to include the specified box
func (b *Box3) ExpandByBox(box Box3) {
	b.ExpandByPoint(box.Min)
	b.ExpandByPoint(box.Max)
}

// ExpandByScalar expands this bounding box by the specified scalar
// subtracting from min and adding to max.
func (b *Box3) ExpandByScalar(scalar float32) {
	b.Min.SetSubScalar(scalar)
	b.Max.SetAddScalar(scalar)
}

// SetFromCenterAndSize sets this bounding box from a center point and size.
// Size is a vector from the minimum point to the maximum point.
func (b *Box3) SetFromCenterAndSize(center, size Vector3) {
	halfSize := size.MulScalar(0.5)
	b.Min = center.Sub(halfSize)
	b.Max = center.Add(halfSize)
}

// Center returns the center of the bounding box.
func (b Box3) Center() Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Size calculates the size of this bounding box: the vector from
// its minimum point to its maximum point.
func (b Box3) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Centroid returns the center of the bounding box.
func (b Box3) Centroid() Vector3 {
	return b.Center()
}

// MaxRadiusSq returns the squared distance from the center to a corner.
func (b Box3) MaxRadiusSq() float32 {
	return b.Size().MulScalar(0.5).LengthSquared()
}

// AABB returns the box itself.
func (b Box3) AABB() Box3 {
	return b
}

// ContainsPoint returns if this bounding box contains the specified point.
func (b Box3) ContainsPoint(point Vector3) bool {
	if point.X < b.Min.X || point.X > b.Max.X ||
		point.Y < b.Min.Y || point.Y > b.Max.Y ||
		point.Z < b.Min.Z || point.Z > b.Max.Z {
		return false
	}
	return true
}

// ContainsBox returns if this bounding box fully contains other box.
func (b Box3) ContainsBox(box Box3) bool {
	return (b.Min.X <= box.Min.X) && (box.Max.X <= b.Max.X) &&
		(b.Min.Y <= box.Min.Y) && (box.Max.Y <= b.Max.Y) &&
		(b.Min.Z <= box.Min.Z) && (box.Max.Z <= b.Max.Z)
}

// IntersectsBox returns if other box intersects this one.
func (b Box3) IntersectsBox(other Box3) bool {
	// using 6 splitting planes to rule out intersections.
	if other.Max.X < b.Min.X || other.Min.X > b.Max.X ||
		other.Max.Y < b.Min.Y || other.Min.Y > b.Max.Y ||
		other.Max.Z < b.Min.Z || other.Min.Z > b.Max.Z {
		return false
	}
	return true
}

// Octant returns the child octant box with the given Morton index:
// bit 0 selects the upper half in X, bit 1 in Y and bit 2 in Z.
func (b Box3) Octant(idx int) Box3 {
	c := b.Center()
	ob := Box3{b.Min, c}
	if idx&1 != 0 {
		ob.Min.X, ob.Max.X = c.X, b.Max.X
	}
	if idx&2 != 0 {
		ob.Min.Y, ob.Max.Y = c.Y, b.Max.Y
	}
	if idx&4 != 0 {
		ob.Min.Z, ob.Max.Z = c.Z, b.Max.Z
	}
	return ob
}

// Corner returns the corner with the given index, using the same
// bit layout as [Box3.Octant].
func (b Box3) Corner(idx int) Vector3 {
	p := b.Min
	if idx&1 != 0 {
		p.X = b.Max.X
	}
	if idx&2 != 0 {
		p.Y = b.Max.Y
	}
	if idx&4 != 0 {
		p.Z = b.Max.Z
	}
	return p
}

// GetBoundingSphere returns a bounding sphere to this bounding box.
func (b Box3) GetBoundingSphere() Sphere {
	return Sphere{b.Center(), b.Size().Length() * 0.5}
}

// Union returns the union with other box.
func (b Box3) Union(other Box3) Box3 {
	other.Min.SetMin(b.Min)
	other.Max.SetMax(b.Max)
	return other
}

// Translate returns translated position of this box by offset.
func (b Box3) Translate(offset Vector3) Box3 {
	return Box3{b.Min.Add(offset), b.Max.Add(offset)}
}

// MulMatrix4 multiplies the specified matrix to the vertices of this bounding box
// and computes the resulting spanning Box3 of the transformed points
func (b Box3) MulMatrix4(m *Matrix4) Box3 {
	nb := B3Empty()
	for i := 0; i < 8; i++ {
		nb.ExpandByPoint(b.Corner(i).MulMatrix4(m))
	}
	return nb
}

// MVProjToNDC projects bounding box through given MVP model-view-projection Matrix4
// with perspective divide to return normalized display coordinates (NDC).
func (b Box3) MVProjToNDC(m *Matrix4) Box3 {
	nb := B3Empty()
	for i := 0; i < 8; i++ {
		nb.ExpandByPoint(Vector4FromVector3(b.Corner(i), 1).MulMatrix4(m).PerspDiv())
	}
	return nb
}
