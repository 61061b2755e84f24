// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1.0e-5

func assertVec3(t *testing.T, want, got Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, standardTol)
	assert.InDelta(t, want.Y, got.Y, standardTol)
	assert.InDelta(t, want.Z, got.Z, standardTol)
}

func TestFrustumIdentity(t *testing.T) {
	f := NewFrustumFromMatrix(Identity4())
	assert.True(t, f.ContainsPoint(Vec3(0, 0, 0)))
	assert.True(t, f.ContainsPoint(Vec3(1, 1, 1)), "boundary counts as inside")
	assert.False(t, f.ContainsPoint(Vec3(1.01, 0, 0)))
	assert.False(t, f.ContainsPoint(Vec3(0, 0, -2)))

	for i := range f.Planes {
		assert.InDelta(t, 1, f.Planes[i].Norm.Length(), standardTol)
		assert.InDelta(t, 1, f.Planes[i].DistanceToPoint(Vector3{}), standardTol)
	}
	assertVec3(t, Vec3(-1, 0, 0), f.Planes[RightPlane].Norm)
	assertVec3(t, Vec3(0, 0, 1), f.Planes[NearPlane].Norm)

	cs, ok := f.Corners()
	require.True(t, ok)
	assertVec3(t, Vec3(-1, -1, -1), cs[0])
	assertVec3(t, Vec3(1, 1, 1), cs[7])
	assert.False(t, f.IsEmpty())
	assertVec3(t, Vector3{}, f.Centroid())
	assert.InDelta(t, 3, f.MaxRadiusSq(), standardTol)
}

func perspectiveFrustum() *Frustum {
	var proj, view Matrix4
	proj.SetPerspective(60, 1, 1, 100)
	view.SetLookAt(Vec3(0, 0, 10), Vec3(0, 0, 0), Vec3(0, 1, 0))
	return NewFrustumFromMatrix(proj.Mul(&view))
}

func TestFrustumPerspective(t *testing.T) {
	f := perspectiveFrustum()
	assert.True(t, f.ContainsPoint(Vec3(0, 0, 0)))
	assert.False(t, f.ContainsPoint(Vec3(0, 0, 11)), "behind the camera")
	assert.False(t, f.ContainsPoint(Vec3(0, 0, 9.5)), "before the near plane")
	assert.False(t, f.ContainsPoint(Vec3(0, 0, -95)), "beyond the far plane")
	assert.False(t, f.ContainsPoint(Vec3(20, 0, 0)))

	assert.Equal(t, Inside, f.IntersectBox(B3(-1, -1, -1, 1, 1, 1)))
	assert.Equal(t, Outside, f.IntersectBox(B3(50, 50, 0, 60, 60, 1)))
	assert.Equal(t, Partial, f.IntersectBox(B3(-1, -1, 0, 1, 1, 20)))

	assert.Equal(t, Inside, f.IntersectSphere(Sphere{Vec3(0, 0, 0), 1}))
	assert.Equal(t, Outside, f.IntersectSphere(Sphere{Vec3(0, 0, 30), 5}))
	assert.Equal(t, Partial, f.IntersectSphere(Sphere{Vec3(0, 0, 10), 2}))
	assert.False(t, f.IsEmpty())
}

func TestFrustumFromBox(t *testing.T) {
	b := B3(-100, -100, -100, 100, 100, 100)
	f := NewFrustumFromBox(b)
	assert.True(t, f.ContainsPoint(Vec3(100, -100, 0)))
	assert.False(t, f.ContainsPoint(Vec3(0, 0, 100.5)))
	assert.Equal(t, Inside, f.IntersectBox(b))
	assert.Equal(t, Inside, f.Intersect(B3(-5, -5, -5, 5, 5, 5)))
	assert.Equal(t, Partial, f.Intersect(B3(90, 90, 90, 110, 110, 110)))
	assert.Equal(t, Outside, f.Intersect(B3(101, 0, 0, 110, 1, 1)))

	ab := f.AABB()
	assertVec3(t, b.Min, ab.Min)
	assertVec3(t, b.Max, ab.Max)

	inner := NewFrustumFromBox(B3(-1, -1, -1, 1, 1, 1))
	assert.Equal(t, Inside, f.Intersect(inner))
	far := NewFrustumFromBox(B3(200, 200, 200, 210, 210, 210))
	assert.Equal(t, Outside, f.Intersect(far))
}

func TestFrustumEmpty(t *testing.T) {
	assert.True(t, (&Frustum{}).IsEmpty())
	flat := NewFrustumFromBox(B3(0, 0, 0, 1, 1, 0))
	assert.True(t, flat.IsEmpty())
	inverted := NewFrustumFromBox(B3(1, 0, 0, 0, 1, 1))
	assert.True(t, inverted.IsEmpty())
}

func TestFrustumZeroToOne(t *testing.T) {
	f := &Frustum{}
	f.SetFromMatrixZO(Identity4())
	assert.True(t, f.ContainsPoint(Vec3(0, 0, 0.5)))
	assert.True(t, f.ContainsPoint(Vec3(0, 0, 0)))
	assert.False(t, f.ContainsPoint(Vec3(0, 0, -0.5)))
}
