// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cmp"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"cogentcore.org/engine/base/ordmap"
	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/render"
)

// View is the camera state a scene is culled against.
type View struct {
	// Eye is the camera position, for front-to-back sorting.
	Eye math32.Vector3

	// ViewProj is the combined view and projection matrix.
	ViewProj math32.Matrix4

	Frustum math32.Frustum
}

// NewView returns a view for the given eye position and
// view-projection matrix, with its frustum extracted from the matrix.
func NewView(eye math32.Vector3, viewProj *math32.Matrix4) *View {
	v := &View{Eye: eye, ViewProj: *viewProj}
	v.Frustum.SetFromMatrix(viewProj)
	return v
}

// Stats are the counts of the last [Manager.Flush].
type Stats struct {
	NumObjectsRendered    int
	NumObjectsCulled      int
	NumDrawCalls          uint64
	NumPrimitivesRendered uint64
	NumVerticesRendered   uint64
}

// Manager is the scene manager: it owns the objects of a scene,
// culls them against a [View] with its spatial [Index], and draws
// the visible ones. It is safe for concurrent use, unlike the index.
type Manager struct {
	mu        sync.Mutex
	name      string
	index     Index
	objects   ordmap.Map[*Object, struct{}]
	threshold float32
	stats     Stats
	suspended bool
}

// NewManager makes a manager using the named index from [Indexes],
// which must satisfy the version constraint.
func NewManager(name, constraint string, opts Options) (*Manager, error) {
	idx, p, err := Indexes.Make(name, constraint)
	if err != nil {
		return nil, err
	}
	return New(p.Name, idx, opts)
}

// New makes a manager over the given index.
func New(name string, idx Index, opts Options) (*Manager, error) {
	if err := CheckBound(opts.WorldBound); err != nil {
		return nil, fmt.Errorf("scene: world bound %v: %w", opts.WorldBound, err)
	}
	if err := idx.Init(opts); err != nil {
		return nil, err
	}
	return &Manager{name: name, index: idx}, nil
}

// Name returns the index name.
func (m *Manager) Name() string { return m.name }

// Index returns the spatial index.
func (m *Manager) Index() Index { return m.index }

// SetSmallObjectThreshold sets the fraction of the viewport area
// below which a projected object is culled. Zero disables it.
func (m *Manager) SetSmallObjectThreshold(area float32) {
	m.mu.Lock()
	m.threshold = area
	m.mu.Unlock()
}

// SmallObjectThreshold returns the small object culling threshold.
func (m *Manager) SmallObjectThreshold() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.threshold
}

// Add adds an object. Overlay objects are kept out of the spatial index.
func (m *Manager) Add(obj *Object) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects.Has(obj) {
		return ErrDuplicate
	}
	if !obj.Attrib.Has(Overlay) {
		if err := m.index.Insert(obj); err != nil {
			return err
		}
	} else if err := CheckBound(obj.Bound); err != nil {
		return err
	}
	m.objects.Add(obj, struct{}{})
	return nil
}

// Remove removes an object, returning false if it was not added.
func (m *Manager) Remove(obj *Object) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.objects.DeleteKey(obj) {
		return false
	}
	if !obj.Attrib.Has(Overlay) {
		m.index.Remove(obj)
	}
	return true
}

// Update moves an object to a new bound.
func (m *Manager) Update(obj *Object, bound math32.Box3) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.objects.Has(obj) {
		return ErrNotFound
	}
	if obj.Attrib.Has(Overlay) {
		if err := CheckBound(bound); err != nil {
			return err
		}
		obj.Bound = bound
		return nil
	}
	return m.index.Update(obj, bound)
}

// Len returns the number of objects.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects.Len()
}

// Objects returns the objects in the order they were added.
func (m *Manager) Objects() iter.Seq[*Object] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Values(m.objects.Keys())
}

// Clear removes all objects.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects.Reset()
	m.index.Clear()
}

// QueryVisible returns the visible scene objects not outside the
// frustum, in index order. Overlay objects are not included.
// The objects are collected under the lock when iteration starts,
// so the loop body may call back into the manager.
func (m *Manager) QueryVisible(f *math32.Frustum) iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		m.mu.Lock()
		var objs []*Object
		for obj := range m.index.QueryVisible(f) {
			if obj.Visible {
				objs = append(objs, obj)
			}
		}
		m.mu.Unlock()
		for _, obj := range objs {
			if !yield(obj) {
				return
			}
		}
	}
}

// ProjectedArea returns the fraction of the viewport covered by the
// screen-space rectangle around the projected box, in [0, 1]. A box
// reaching behind the eye covers the viewport.
func ProjectedArea(b math32.Box3, viewProj *math32.Matrix4) float32 {
	ndc := math32.B3Empty()
	for i := range 8 {
		p := math32.Vector4FromVector3(b.Corner(i), 1).MulMatrix4(viewProj)
		if p.W <= 1e-6 {
			return 1
		}
		ndc.ExpandByPoint(p.PerspDiv())
	}
	w := math32.Clamp(ndc.Max.X, -1, 1) - math32.Clamp(ndc.Min.X, -1, 1)
	h := math32.Clamp(ndc.Max.Y, -1, 1) - math32.Clamp(ndc.Min.Y, -1, 1)
	return w * h / 4
}

// ClipScene sets the visible mark of every object for the view.
// Hidden objects are [math32.Outside]. Cullable objects get their
// overlap with the frustum, and are culled if their projected area
// is below the small object threshold. Other visible objects are
// [math32.Inside].
func (m *Manager) ClipScene(v *View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, obj := range m.objects.Keys() {
		switch {
		case !obj.Visible:
			obj.mark = math32.Outside
		case obj.Attrib.Has(Overlay) || !obj.Attrib.Has(Cullable):
			obj.mark = math32.Inside
		default:
			obj.mark = math32.Outside
		}
	}
	for obj := range m.index.QueryVisible(&v.Frustum) {
		if !obj.Visible || !obj.Attrib.Has(Cullable) {
			continue
		}
		if m.threshold > 0 && ProjectedArea(obj.Bound, &v.ViewProj) < m.threshold {
			continue
		}
		obj.mark = v.Frustum.IntersectBox(obj.Bound)
	}
}

// Flush draws the layouts of the objects marked visible by the last
// [Manager.ClipScene] on the engine: scene objects front to back
// from the eye, then overlay objects in the order they were added.
// It stops at the first draw error.
func (m *Manager) Flush(e *render.Engine, v *View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.suspended {
		return nil
	}
	var scene, overlay []*Object
	culled := 0
	for _, obj := range m.objects.Keys() {
		switch {
		case !obj.mark.Visible():
			if !obj.Attrib.Has(Overlay) {
				culled++
			}
		case obj.Attrib.Has(Overlay):
			overlay = append(overlay, obj)
		default:
			scene = append(scene, obj)
		}
	}
	slices.SortStableFunc(scene, func(a, b *Object) int {
		return cmp.Compare(a.Bound.Center().DistanceToSquared(v.Eye), b.Bound.Center().DistanceToSquared(v.Eye))
	})
	start := e.Stats()
	st := Stats{NumObjectsCulled: culled}
	var err error
	for _, obj := range slices.Concat(scene, overlay) {
		if obj.Layout != nil {
			if err = e.Render(obj.Layout); err != nil {
				break
			}
		}
		st.NumObjectsRendered++
	}
	d := e.Stats().Sub(start)
	st.NumDrawCalls = d.DrawCalls
	st.NumPrimitivesRendered = d.Primitives
	st.NumVerticesRendered = d.Vertices
	m.stats = st
	return err
}

// Stats returns the counts of the last flush.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Suspend stops drawing until Resume. Objects are kept.
func (m *Manager) Suspend() {
	m.mu.Lock()
	m.suspended = true
	m.mu.Unlock()
	slog.Debug("scene manager suspended", "index", m.name)
}

// Resume resumes drawing after Suspend.
func (m *Manager) Resume() {
	m.mu.Lock()
	m.suspended = false
	m.mu.Unlock()
	slog.Debug("scene manager resumed", "index", m.name)
}
