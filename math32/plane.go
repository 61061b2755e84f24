// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Plane represents a plane in 3D space by its normal vector and a constant offset.
// When the the normal vector is the unit vector the offset is the distance from the origin.
type Plane struct {
	Norm Vector3
	Off  float32
}

// NewPlane creates and returns a new plane from a normal vector and a offset.
func NewPlane(normal Vector3, offset float32) *Plane {
	p := &Plane{normal, offset}
	return p
}

// Set sets this plane normal vector and offset.
func (p *Plane) Set(normal Vector3, offset float32) {
	p.Norm = normal
	p.Off = offset
}

// SetDims sets this plane normal vector dimensions and offset.
func (p *Plane) SetDims(x, y, z, w float32) {
	p.Norm.Set(x, y, z)
	p.Off = w
}

// SetVector4 sets the plane from the (a, b, c, d) coefficients of
// the equation ax + by + cz + d = 0.
func (p *Plane) SetVector4(v Vector4) {
	p.SetDims(v.X, v.Y, v.Z, v.W)
}

// Normalize normalizes this plane normal vector and adjusts the offset.
// Note: will lead to a divide by zero if the plane is invalid.
func (p *Plane) Normalize() {
	inverseNormalLength := 1.0 / p.Norm.Length()
	p.Norm = p.Norm.MulScalar(inverseNormalLength)
	p.Off *= inverseNormalLength
}

// DistanceToPoint returns the signed distance from this plane to the specified point.
// Positive distances are on the side the normal points to.
func (p *Plane) DistanceToPoint(point Vector3) float32 {
	return p.Norm.Dot(point) + p.Off
}

// IsDegenerate returns true if the plane normal has zero or NaN length.
func (p *Plane) IsDegenerate() bool {
	l := p.Norm.LengthSquared()
	return l == 0 || IsNaN(l) || IsNaN(p.Off)
}

// intersectPlanes returns the single point where the three planes meet,
// with false if any two are parallel.
func intersectPlanes(a, b, c *Plane) (Vector3, bool) {
	bc := b.Norm.Cross(c.Norm)
	den := a.Norm.Dot(bc)
	if Abs(den) < 1e-12 || IsNaN(den) {
		return Vector3{}, false
	}
	ca := c.Norm.Cross(a.Norm)
	ab := a.Norm.Cross(b.Norm)
	p := bc.MulScalar(-a.Off).Add(ca.MulScalar(-b.Off)).Add(ab.MulScalar(-c.Off))
	return p.DivScalar(den), true
}
