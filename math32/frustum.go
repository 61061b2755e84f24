// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// FrustumPlanes are the indexes of the planes of a [Frustum].
type FrustumPlanes int32

const (
	LeftPlane FrustumPlanes = iota
	RightPlane
	BottomPlane
	TopPlane
	NearPlane
	FarPlane
	FrustumPlanesN
)

// Frustum represents a frustum: the convex region bounded by six planes
// with normals pointing inward, ordered by [FrustumPlanes].
type Frustum struct {
	Planes [FrustumPlanesN]Plane
}

// NewFrustumFromMatrix creates and returns a Frustum based on the provided
// combined view-projection matrix, using OpenGL clip space (-w <= z <= w).
func NewFrustumFromMatrix(m *Matrix4) *Frustum {
	f := &Frustum{}
	f.SetFromMatrix(m)
	return f
}

// NewFrustumFromBox returns a Frustum whose six planes are the faces of the box.
func NewFrustumFromBox(b Box3) *Frustum {
	f := &Frustum{}
	f.Planes[LeftPlane].SetDims(1, 0, 0, -b.Min.X)
	f.Planes[RightPlane].SetDims(-1, 0, 0, b.Max.X)
	f.Planes[BottomPlane].SetDims(0, 1, 0, -b.Min.Y)
	f.Planes[TopPlane].SetDims(0, -1, 0, b.Max.Y)
	f.Planes[NearPlane].SetDims(0, 0, -1, b.Max.Z)
	f.Planes[FarPlane].SetDims(0, 0, 1, -b.Min.Z)
	return f
}

// SetFromMatrix sets the frustum's planes from the specified
// view-projection matrix, using OpenGL clip space (-w <= z <= w).
// Each plane is a sum or difference of the fourth matrix row
// and one of the first three rows, normalized.
func (f *Frustum) SetFromMatrix(m *Matrix4) {
	f.setFromRows(m, m.Row(3).Add(m.Row(2)))
}

// SetFromMatrixZO is like [Frustum.SetFromMatrix] for zero-to-one
// clip space depth (0 <= z <= w), as used by Direct3D and Vulkan.
func (f *Frustum) SetFromMatrixZO(m *Matrix4) {
	f.setFromRows(m, m.Row(2))
}

func (f *Frustum) setFromRows(m *Matrix4, near Vector4) {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	f.Planes[LeftPlane].SetVector4(r3.Add(r0))
	f.Planes[RightPlane].SetVector4(r3.Sub(r0))
	f.Planes[BottomPlane].SetVector4(r3.Add(r1))
	f.Planes[TopPlane].SetVector4(r3.Sub(r1))
	f.Planes[NearPlane].SetVector4(near)
	f.Planes[FarPlane].SetVector4(r3.Sub(r2))
	for i := range f.Planes {
		if !f.Planes[i].IsDegenerate() {
			f.Planes[i].Normalize()
		}
	}
}

// ContainsPoint returns true if the point has a signed distance of at
// least zero to each of the six planes.
func (f *Frustum) ContainsPoint(point Vector3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(point) < 0 {
			return false
		}
	}
	return true
}

// Corners returns the eight corner points of the frustum,
// indexed with bit 0 selecting right, bit 1 top and bit 2 far.
// It returns false if any three bounding planes do not meet in a point.
func (f *Frustum) Corners() ([8]Vector3, bool) {
	var cs [8]Vector3
	for i := 0; i < 8; i++ {
		x, y, z := LeftPlane, BottomPlane, NearPlane
		if i&1 != 0 {
			x = RightPlane
		}
		if i&2 != 0 {
			y = TopPlane
		}
		if i&4 != 0 {
			z = FarPlane
		}
		p, ok := intersectPlanes(&f.Planes[x], &f.Planes[y], &f.Planes[z])
		if !ok {
			return cs, false
		}
		cs[i] = p
	}
	return cs, true
}

// Centroid returns the average of the corner points.
func (f *Frustum) Centroid() Vector3 {
	cs, ok := f.Corners()
	if !ok {
		return Vector3{}
	}
	var c Vector3
	for _, p := range cs {
		c.SetAdd(p)
	}
	return c.MulScalar(1.0 / 8)
}

// MaxRadiusSq returns the squared distance from the centroid to the farthest corner.
func (f *Frustum) MaxRadiusSq() float32 {
	cs, ok := f.Corners()
	if !ok {
		return 0
	}
	c := f.Centroid()
	var r float32
	for _, p := range cs {
		r = Max(r, p.DistanceToSquared(c))
	}
	return r
}

// AABB returns the box spanning the corner points.
func (f *Frustum) AABB() Box3 {
	cs, ok := f.Corners()
	if !ok {
		return B3Empty()
	}
	b := B3Empty()
	for _, p := range cs {
		b.ExpandByPoint(p)
	}
	return b
}

// IsEmpty returns true if the planes do not enclose any volume.
func (f *Frustum) IsEmpty() bool {
	for i := range f.Planes {
		if f.Planes[i].IsDegenerate() {
			return true
		}
	}
	if f.AABB().IsEmpty() {
		return true
	}
	return !f.ContainsPoint(f.Centroid())
}

// IntersectBox tests the box against the frustum. For each plane the
// corner farthest along the normal (p-vertex) decides [Outside], and
// the nearest corner (n-vertex) decides [Partial].
func (f *Frustum) IntersectBox(box Box3) BoundOverlap {
	res := Inside
	for i := range f.Planes {
		pl := &f.Planes[i]
		pv, nv := box.Max, box.Min
		if pl.Norm.X < 0 {
			pv.X, nv.X = box.Min.X, box.Max.X
		}
		if pl.Norm.Y < 0 {
			pv.Y, nv.Y = box.Min.Y, box.Max.Y
		}
		if pl.Norm.Z < 0 {
			pv.Z, nv.Z = box.Min.Z, box.Max.Z
		}
		if pl.DistanceToPoint(pv) < 0 {
			return Outside
		}
		if pl.DistanceToPoint(nv) < 0 {
			res = Partial
		}
	}
	return res
}

// IntersectsBox returns true if the box is not fully outside the frustum.
func (f *Frustum) IntersectsBox(box Box3) bool {
	return f.IntersectBox(box) != Outside
}

// IntersectSphere tests the sphere against the frustum.
func (f *Frustum) IntersectSphere(s Sphere) BoundOverlap {
	res := Inside
	for i := range f.Planes {
		d := f.Planes[i].DistanceToPoint(s.Center)
		if d < -s.Radius {
			return Outside
		}
		if d < s.Radius {
			res = Partial
		}
	}
	return res
}

// IntersectFrustum tests the corners of other against this frustum.
// The result is conservative: [Partial] may be returned for a frustum
// that lies outside but straddles the extension of several planes.
func (f *Frustum) IntersectFrustum(other *Frustum) BoundOverlap {
	cs, ok := other.Corners()
	if !ok {
		return Outside
	}
	res := Inside
	for i := range f.Planes {
		out := 0
		for _, p := range cs {
			if f.Planes[i].DistanceToPoint(p) < 0 {
				out++
			}
		}
		if out == len(cs) {
			return Outside
		}
		if out > 0 {
			res = Partial
		}
	}
	return res
}

// Intersect tests any [Bound] against the frustum, dispatching on its
// concrete shape and falling back to its AABB.
func (f *Frustum) Intersect(b Bound) BoundOverlap {
	switch bt := b.(type) {
	case Box3:
		return f.IntersectBox(bt)
	case *Box3:
		return f.IntersectBox(*bt)
	case Sphere:
		return f.IntersectSphere(bt)
	case *Sphere:
		return f.IntersectSphere(*bt)
	case *Frustum:
		return f.IntersectFrustum(bt)
	}
	return f.IntersectBox(b.AABB())
}
