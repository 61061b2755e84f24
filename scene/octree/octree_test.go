// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package octree

import (
	"math/rand/v2"
	"slices"
	"testing"

	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/scene"
	"cogentcore.org/engine/scene/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var world = math32.B3(-100, -100, -100, 100, 100, 100)

func newTree(t *testing.T, depth int) *Tree {
	tr := &Tree{}
	require.NoError(t, tr.Init(scene.Options{WorldBound: world, MaxDepth: depth}))
	return tr
}

func randomObjects(rng *rand.Rand, n int) []*scene.Object {
	objs := make([]*scene.Object, n)
	for i := range objs {
		lo := math32.Vec3(rng.Float32()*188-99, rng.Float32()*188-99, rng.Float32()*188-99)
		size := math32.Vec3(rng.Float32()*10, rng.Float32()*10, rng.Float32()*10)
		objs[i] = scene.NewObject("obj", math32.Box3{Min: lo, Max: lo.Add(size)})
	}
	return objs
}

func collect(tr scene.Index, f *math32.Frustum) []*scene.Object {
	return slices.Collect(tr.QueryVisible(f))
}

func perspective() *math32.Frustum {
	var proj, view, vp math32.Matrix4
	proj.SetPerspective(60, 1.5, 1, 150)
	view.SetLookAt(math32.Vec3(0, 20, 120), math32.Vec3(30, 0, 0), math32.Vec3(0, 1, 0))
	vp.MulMatrices(&proj, &view)
	return math32.NewFrustumFromMatrix(&vp)
}

func TestFullQuery(t *testing.T) {
	tr := newTree(t, 4)
	objs := randomObjects(rand.New(rand.NewPCG(1, 2)), 1000)
	for _, obj := range objs {
		require.NoError(t, tr.Insert(obj))
	}
	assert.Equal(t, 1000, tr.Len())

	f := math32.NewFrustumFromBox(world)
	got := collect(tr, f)
	assert.Len(t, got, 1000)
	assert.ElementsMatch(t, objs, got)
	assert.Equal(t, got, collect(tr, f))
}

func TestMatchesLinear(t *testing.T) {
	tr := newTree(t, 5)
	ls := linear.New()
	objs := randomObjects(rand.New(rand.NewPCG(3, 4)), 500)
	for _, obj := range objs {
		require.NoError(t, tr.Insert(obj))
		require.NoError(t, ls.Insert(obj))
	}
	f := perspective()
	want := collect(ls, f)
	assert.NotEmpty(t, want)
	assert.Less(t, len(want), len(objs))
	assert.ElementsMatch(t, want, collect(tr, f))
}

func TestEmpty(t *testing.T) {
	tr := New()
	assert.Empty(t, collect(tr, math32.NewFrustumFromBox(world)))
	assert.Equal(t, 1, tr.NumNodes())
}

func TestRemove(t *testing.T) {
	tr := newTree(t, 4)
	objs := randomObjects(rand.New(rand.NewPCG(5, 6)), 100)
	for _, obj := range objs {
		require.NoError(t, tr.Insert(obj))
	}
	f := math32.NewFrustumFromBox(world)
	for i, obj := range objs {
		require.True(t, tr.Remove(obj))
		assert.NotContains(t, collect(tr, f), obj)
		assert.Equal(t, len(objs)-i-1, tr.Len())
	}
	assert.False(t, tr.Remove(objs[0]))
	assert.Equal(t, 1, tr.NumNodes())
}

func TestUpdateUnchanged(t *testing.T) {
	tr := newTree(t, 4)
	objs := randomObjects(rand.New(rand.NewPCG(7, 8)), 50)
	for _, obj := range objs {
		require.NoError(t, tr.Insert(obj))
	}
	f := math32.NewFrustumFromBox(world)
	before := collect(tr, f)
	nodes := tr.NumNodes()
	for _, obj := range objs {
		where := tr.where[obj]
		require.NoError(t, tr.Update(obj, obj.Bound))
		assert.Same(t, where, tr.where[obj])
	}
	assert.Equal(t, before, collect(tr, f))
	assert.Equal(t, nodes, tr.NumNodes())
}

func TestUpdateMoves(t *testing.T) {
	tr := newTree(t, 3)
	obj := scene.NewObject("mover", math32.B3(10, 10, 10, 11, 11, 11))
	require.NoError(t, tr.Insert(obj))
	assert.Equal(t, 3, tr.Depth(obj))

	// straddles the root split planes
	require.NoError(t, tr.Update(obj, math32.B3(-1, -1, -1, 1, 1, 1)))
	assert.Equal(t, 0, tr.Depth(obj))
	assert.Equal(t, 1, tr.NumNodes())

	require.NoError(t, tr.Update(obj, math32.B3(200, 0, 0, 210, 1, 1)))
	assert.Equal(t, -1, tr.Depth(obj))
	assert.Contains(t, collect(tr, math32.NewFrustumFromBox(math32.B3(150, -10, -10, 250, 10, 10))), obj)
	assert.Empty(t, collect(tr, math32.NewFrustumFromBox(world)))

	require.NoError(t, tr.Update(obj, math32.B3(-50, -50, -50, -49, -49, -49)))
	assert.Equal(t, 3, tr.Depth(obj))
	assert.Equal(t, []*scene.Object{obj}, collect(tr, math32.NewFrustumFromBox(world)))
	assert.ErrorIs(t, tr.Update(scene.NewObject("other", world), world), scene.ErrNotFound)
}

func TestInvalidBound(t *testing.T) {
	tr := newTree(t, 4)
	nan := math32.B3(0, 0, 0, 1, 1, 1)
	nan.Max.Y = math32.NaN()
	assert.ErrorIs(t, tr.Insert(scene.NewObject("nan", nan)), scene.ErrInvalidBound)
	assert.ErrorIs(t, tr.Insert(scene.NewObject("empty", math32.B3Empty())), scene.ErrInvalidBound)
	assert.Zero(t, tr.Len())

	obj := scene.NewObject("ok", math32.B3(0, 0, 0, 1, 1, 1))
	require.NoError(t, tr.Insert(obj))
	assert.ErrorIs(t, tr.Insert(obj), scene.ErrDuplicate)
	assert.ErrorIs(t, tr.Update(obj, nan), scene.ErrInvalidBound)
	assert.Equal(t, math32.B3(0, 0, 0, 1, 1, 1), obj.Bound)

	// a flat box is indexed
	flat := scene.NewObject("flat", math32.B3(5, 5, 5, 6, 5, 6))
	assert.NoError(t, tr.Insert(flat))
}

func TestOversized(t *testing.T) {
	tr := newTree(t, 4)
	big := scene.NewObject("big", math32.B3(-200, -200, -200, 200, 200, 200))
	require.NoError(t, tr.Insert(big))
	assert.Equal(t, -1, tr.Depth(big))
	assert.Equal(t, []*scene.Object{big}, collect(tr, math32.NewFrustumFromBox(world)))
	assert.Empty(t, collect(tr, math32.NewFrustumFromBox(math32.B3(300, 300, 300, 400, 400, 400))))
}

func TestMortonOrder(t *testing.T) {
	tr := newTree(t, 1)
	objs := make([]*scene.Object, 8)
	for i := 7; i >= 0; i-- {
		c := world.Octant(i).Center()
		objs[i] = scene.NewObject("octant", math32.B3CenterSize(c, math32.Vec3(1, 1, 1)))
		require.NoError(t, tr.Insert(objs[i]))
		assert.Equal(t, 1, tr.Depth(objs[i]))
	}
	root := scene.NewObject("root", math32.B3(-1, -1, -1, 1, 1, 1))
	require.NoError(t, tr.Insert(root))
	want := append([]*scene.Object{root}, objs...)
	assert.Equal(t, want, collect(tr, math32.NewFrustumFromBox(world)))
	assert.Equal(t, 9, tr.NumNodes())
}

func TestPartialQuery(t *testing.T) {
	tr := newTree(t, 3)
	in := scene.NewObject("in", math32.B3(10, 10, 10, 12, 12, 12))
	out := scene.NewObject("out", math32.B3(-60, -60, -60, -58, -58, -58))
	cross := scene.NewObject("cross", math32.B3(-5, 20, 20, 5, 22, 22))
	for _, obj := range []*scene.Object{in, out, cross} {
		require.NoError(t, tr.Insert(obj))
	}
	got := collect(tr, math32.NewFrustumFromBox(math32.B3(0, 0, 0, 50, 50, 50)))
	assert.ElementsMatch(t, []*scene.Object{in, cross}, got)
}

func TestQueryStop(t *testing.T) {
	tr := newTree(t, 4)
	for _, obj := range randomObjects(rand.New(rand.NewPCG(9, 10)), 20) {
		require.NoError(t, tr.Insert(obj))
	}
	n := 0
	for range tr.QueryVisible(math32.NewFrustumFromBox(world)) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestClear(t *testing.T) {
	tr := newTree(t, 4)
	for _, obj := range randomObjects(rand.New(rand.NewPCG(11, 12)), 20) {
		require.NoError(t, tr.Insert(obj))
	}
	tr.Clear()
	assert.Zero(t, tr.Len())
	assert.Equal(t, 1, tr.NumNodes())
	assert.Equal(t, world, tr.WorldBound())
	assert.Equal(t, 4, tr.MaxDepth())
}
