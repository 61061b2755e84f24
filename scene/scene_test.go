// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene_test

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/render"
	"cogentcore.org/engine/render/soft"
	"cogentcore.org/engine/scene"
	_ "cogentcore.org/engine/scene/linear"
	_ "cogentcore.org/engine/scene/octree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, index string) *scene.Manager {
	var opts scene.Options
	opts.Defaults()
	m, err := scene.NewManager(index, "^1.0", opts)
	require.NoError(t, err)
	return m
}

func testView() *scene.View {
	var proj, view, vp math32.Matrix4
	proj.SetPerspective(60, 1, 0.1, 100)
	eye := math32.Vec3(0, 0, 10)
	view.SetLookAt(eye, math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	vp.MulMatrices(&proj, &view)
	return scene.NewView(eye, &vp)
}

func TestRegistry(t *testing.T) {
	names := scene.Indexes.Names()
	assert.Contains(t, names, "octree")
	assert.Contains(t, names, "linear")

	var opts scene.Options
	opts.Defaults()
	_, err := scene.NewManager("bsp", "", opts)
	assert.Error(t, err)
	_, err = scene.NewManager("octree", ">=2", opts)
	assert.Error(t, err)
	opts.WorldBound = math32.B3Empty()
	_, err = scene.NewManager("octree", "", opts)
	assert.ErrorIs(t, err, scene.ErrInvalidBound)
}

func TestObjects(t *testing.T) {
	for _, index := range []string{"octree", "linear"} {
		m := newManager(t, index)
		a := scene.NewObject("a", math32.B3(0, 0, 0, 1, 1, 1))
		b := scene.NewObject("b", math32.B3(5, 5, 5, 6, 6, 6))
		require.NoError(t, m.Add(a), index)
		require.NoError(t, m.Add(b), index)
		assert.ErrorIs(t, m.Add(a), scene.ErrDuplicate, index)
		assert.Equal(t, 2, m.Len(), index)
		assert.Equal(t, []*scene.Object{a, b}, slices.Collect(m.Objects()), index)

		require.NoError(t, m.Update(a, math32.B3(2, 2, 2, 3, 3, 3)), index)
		assert.Equal(t, math32.B3(2, 2, 2, 3, 3, 3), a.Bound, index)
		assert.True(t, m.Remove(a), index)
		assert.False(t, m.Remove(a), index)
		assert.ErrorIs(t, m.Update(a, a.Bound), scene.ErrNotFound, index)

		b.Visible = false
		assert.Empty(t, slices.Collect(m.QueryVisible(math32.NewFrustumFromBox(math32.B3(0, 0, 0, 10, 10, 10)))), index)
		m.Clear()
		assert.Zero(t, m.Len(), index)
		assert.Zero(t, m.Index().Len(), index)
	}
}

func TestConcurrentQuery(t *testing.T) {
	m := newManager(t, "octree")
	f := math32.NewFrustumFromBox(math32.B3(-1000, -1000, -1000, 1000, 1000, 1000))
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 500 {
			x := float32(i%100) - 50
			assert.NoError(t, m.Add(scene.NewObject(fmt.Sprint("obj", i), math32.B3(x, x, x, x+1, x+1, x+1))))
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			for obj := range m.QueryVisible(f) {
				_ = obj.Bound
			}
		}
	}()
	wg.Wait()
	assert.Len(t, slices.Collect(m.QueryVisible(f)), 500)

	// the manager can be changed from inside the loop
	for obj := range m.QueryVisible(f) {
		assert.True(t, m.Remove(obj))
	}
	assert.Zero(t, m.Len())
}

func TestClipScene(t *testing.T) {
	m := newManager(t, "octree")
	front := scene.NewObject("front", math32.B3(-1, -1, -1, 1, 1, 1))
	edge := scene.NewObject("edge", math32.B3(-1, 5, -1, 1, 7, 1))
	behind := scene.NewObject("behind", math32.B3(-1, -1, 20, 1, 1, 22))
	hidden := scene.NewObject("hidden", math32.B3(-1, -1, -1, 1, 1, 1))
	hidden.Visible = false
	static := scene.NewObject("static", math32.B3(-1, -1, 20, 1, 1, 22))
	static.Attrib = 0
	hud := scene.NewObject("hud", math32.B3(0, 0, 0, 0, 0, 0))
	hud.Attrib = scene.Overlay
	for _, obj := range []*scene.Object{front, edge, behind, hidden, static, hud} {
		require.NoError(t, m.Add(obj))
	}
	assert.Equal(t, 5, m.Index().Len())

	m.ClipScene(testView())
	assert.Equal(t, math32.Inside, front.VisibleMark())
	assert.Equal(t, math32.Partial, edge.VisibleMark())
	assert.Equal(t, math32.Outside, behind.VisibleMark())
	assert.Equal(t, math32.Outside, hidden.VisibleMark())
	assert.Equal(t, math32.Inside, static.VisibleMark())
	assert.Equal(t, math32.Inside, hud.VisibleMark())
}

func TestSmallObjects(t *testing.T) {
	m := newManager(t, "linear")
	near := scene.NewObject("near", math32.B3(-1, -1, -1, 1, 1, 1))
	tiny := scene.NewObject("tiny", math32.B3(0, 0, -80, 0.01, 0.01, -79.99))
	require.NoError(t, m.Add(near))
	require.NoError(t, m.Add(tiny))
	v := testView()

	m.ClipScene(v)
	assert.True(t, tiny.VisibleMark().Visible())

	m.SetSmallObjectThreshold(0.001)
	assert.Equal(t, float32(0.001), m.SmallObjectThreshold())
	m.ClipScene(v)
	assert.True(t, near.VisibleMark().Visible())
	assert.False(t, tiny.VisibleMark().Visible())
}

func TestProjectedArea(t *testing.T) {
	v := testView()
	full := scene.ProjectedArea(math32.B3(-100, -100, -1, 100, 100, 1), &v.ViewProj)
	assert.InDelta(t, 1, full, 1e-5)
	small := scene.ProjectedArea(math32.B3(-1, -1, -1, 1, 1, 1), &v.ViewProj)
	assert.Greater(t, small, float32(0.01))
	assert.Less(t, small, float32(0.1))
	assert.Equal(t, float32(1), scene.ProjectedArea(math32.B3(-1, -1, 5, 1, 1, 15), &v.ViewProj))
}

func triangle(t *testing.T, e *render.Engine) render.RenderLayout {
	vb, err := e.MakeBuffer(render.BufferDesc{Type: render.VertexBuffer}, make([]byte, 36))
	require.NoError(t, err)
	l, err := e.MakeRenderLayout()
	require.NoError(t, err)
	require.NoError(t, l.BindVertexStream(vb, render.VertexElement{Usage: render.UsagePosition, Format: render.FormatRGB32F}))
	return l
}

func TestFlush(t *testing.T) {
	var rs render.RenderSettings
	rs.Defaults()
	e, err := render.NewEngine(soft.New(), rs)
	require.NoError(t, err)
	defer e.Close()

	m := newManager(t, "octree")
	front := scene.NewObject("front", math32.B3(-1, -1, -1, 1, 1, 1))
	front.Layout = triangle(t, e)
	behind := scene.NewObject("behind", math32.B3(-1, -1, 20, 1, 1, 22))
	behind.Layout = triangle(t, e)
	empty := scene.NewObject("empty", math32.B3(2, 0, 0, 3, 1, 1))
	hud := scene.NewObject("hud", math32.B3(0, 0, 0, 0, 0, 0))
	hud.Attrib = scene.Overlay
	hud.Layout = triangle(t, e)
	for _, obj := range []*scene.Object{front, behind, empty, hud} {
		require.NoError(t, m.Add(obj))
	}

	v := testView()
	m.ClipScene(v)
	require.NoError(t, m.Flush(e, v))
	st := m.Stats()
	assert.Equal(t, 3, st.NumObjectsRendered)
	assert.Equal(t, 1, st.NumObjectsCulled)
	assert.Equal(t, uint64(2), st.NumDrawCalls)
	assert.Equal(t, uint64(2), st.NumPrimitivesRendered)
	assert.Equal(t, uint64(6), st.NumVerticesRendered)

	m.Suspend()
	require.NoError(t, m.Flush(e, v))
	assert.Equal(t, uint64(2), e.Stats().DrawCalls)
	m.Resume()

	require.NoError(t, e.Suspend())
	assert.ErrorIs(t, m.Flush(e, v), render.ErrDeviceLost)
	require.NoError(t, e.Resume())
	require.NoError(t, m.Flush(e, v))
	assert.Equal(t, uint64(4), e.Stats().DrawCalls)
}
