// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix4Inverse(t *testing.T) {
	var m Matrix4
	m.SetPerspective(45, 1.5, 0.1, 50)
	inv, err := m.Inverse()
	require.NoError(t, err)
	id := m.Mul(inv)
	for i, v := range Identity4() {
		assert.InDelta(t, v, id[i], standardTol)
	}

	var zero Matrix4
	_, err = zero.Inverse()
	assert.Error(t, err)
	assert.Equal(t, float32(0), zero.Determinant())
}

func TestMatrix4Translation(t *testing.T) {
	var m Matrix4
	m.SetTranslation(1, 2, 3)
	assertVec3(t, Vec3(2, 3, 4), Vec3(1, 1, 1).MulMatrix4(&m))
	assert.Equal(t, Vec4(0, 0, 0, 1), m.Row(3))
}

func TestLookAt(t *testing.T) {
	var view Matrix4
	view.SetLookAt(Vec3(0, 0, 10), Vec3(0, 0, 0), Vec3(0, 1, 0))
	assertVec3(t, Vec3(0, 0, -10), Vec3(0, 0, 0).MulMatrix4(&view))
}

func TestBox3(t *testing.T) {
	b := B3(-1, -2, -3, 1, 2, 3)
	assert.False(t, b.IsEmpty())
	assert.True(t, b.IsValid())
	assert.Equal(t, Vec3(0, 0, 0), b.Centroid())
	assert.InDelta(t, 14, b.MaxRadiusSq(), standardTol)
	assert.True(t, b.ContainsPoint(Vec3(1, 2, 3)))
	assert.False(t, b.ContainsPoint(Vec3(1, 2, 3.1)))

	flat := B3(0, 0, 0, 1, 1, 0)
	assert.True(t, flat.IsEmpty())
	assert.True(t, flat.IsValid())
	assert.True(t, B3Empty().IsEmpty())
	assert.False(t, B3Empty().IsValid())
	assert.False(t, B3(0, 0, 0, NaN(), 1, 1).IsValid())

	assert.True(t, b.ContainsBox(B3(0, 0, 0, 1, 1, 1)))
	assert.False(t, b.ContainsBox(B3(0, 0, 0, 2, 1, 1)))
}

func TestBox3Octant(t *testing.T) {
	b := B3(0, 0, 0, 2, 2, 2)
	assert.Equal(t, B3(0, 0, 0, 1, 1, 1), b.Octant(0))
	assert.Equal(t, B3(1, 0, 0, 2, 1, 1), b.Octant(1))
	assert.Equal(t, B3(0, 1, 0, 1, 2, 1), b.Octant(2))
	assert.Equal(t, B3(0, 0, 1, 1, 1, 2), b.Octant(4))
	assert.Equal(t, B3(1, 1, 1, 2, 2, 2), b.Octant(7))
	assert.Equal(t, Vec3(2, 0, 2), b.Corner(5))
}

func TestSphereBound(t *testing.T) {
	var bd Bound = Sphere{Vec3(1, 1, 1), 2}
	assert.False(t, bd.IsEmpty())
	assert.Equal(t, float32(4), bd.MaxRadiusSq())
	assert.True(t, bd.ContainsPoint(Vec3(1, 1, 3)))
	assert.False(t, bd.ContainsPoint(Vec3(3, 3, 3)))
	assert.Equal(t, B3(-1, -1, -1, 3, 3, 3), bd.AABB())
	assert.True(t, Sphere{}.IsEmpty())
}

func TestBoundOverlapString(t *testing.T) {
	assert.Equal(t, "Partial", Partial.String())
	assert.True(t, Inside.Visible())
	assert.False(t, Outside.Visible())
}
