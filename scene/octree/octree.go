// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package octree provides the octree spatial index for scene culling.
//
// Each object is stored in the deepest node whose region fully
// contains its bound, up to the maximum depth. Objects straddling
// the split planes of a node stay in that node, and objects not
// contained in the world bound are kept in an overflow list at the
// root that is tested object by object. Children are made on first
// use and removed when they become empty.
//
// Child nodes are numbered in Morton order: bit 0 of the index
// selects the upper half of the parent in X, bit 1 in Y and bit 2
// in Z, as in [math32.Box3.Octant]. Queries visit a node's objects
// in insertion order and then its children in index order, and the
// overflow list last, so results are deterministic for an unchanged
// tree.
package octree

import (
	"iter"
	"slices"

	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/scene"
)

func init() {
	scene.Register("octree", scene.APIVersion, func() (scene.Index, error) {
		return New(), nil
	})
}

// node is one region of the tree.
type node struct {
	region   math32.Box3
	depth    int
	parent   *node
	children [8]*node

	// objects are stored in insertion order.
	objects []*scene.Object

	// count is the number of objects in this subtree.
	count int
}

// Tree is an octree index. The zero value must be initialized with
// [Tree.Init] before use; [New] returns a tree over the default world.
type Tree struct {
	maxDepth int
	root     *node
	overflow []*scene.Object

	// where is the node of each object, nil for the overflow list.
	where map[*scene.Object]*node
}

// New returns an empty tree with [scene.Options.Defaults].
func New() *Tree {
	t := &Tree{}
	var opts scene.Options
	opts.Defaults()
	t.Init(opts)
	return t
}

func (t *Tree) Init(opts scene.Options) error {
	if err := scene.CheckBound(opts.WorldBound); err != nil {
		return err
	}
	t.maxDepth = max(opts.MaxDepth, 0)
	t.root = &node{region: opts.WorldBound}
	t.overflow = nil
	t.where = make(map[*scene.Object]*node)
	return nil
}

// WorldBound returns the root region.
func (t *Tree) WorldBound() math32.Box3 { return t.root.region }

// MaxDepth returns the maximum node depth.
func (t *Tree) MaxDepth() int { return t.maxDepth }

func (t *Tree) Len() int { return len(t.where) }

func (t *Tree) Clear() {
	t.root = &node{region: t.root.region}
	t.overflow = nil
	clear(t.where)
}

// octant returns the index of the child of a region that fully
// contains b, or -1 if b straddles a split plane.
func octant(region, b math32.Box3) int {
	c := region.Center()
	idx := 0
	for d, bit := range [3]int{1, 2, 4} {
		dim := math32.Dims(d)
		switch {
		case b.Min.Dim(dim) >= c.Dim(dim):
			idx |= bit
		case b.Max.Dim(dim) <= c.Dim(dim):
		default:
			return -1
		}
	}
	return idx
}

// place is where an object with a given bound belongs: a node depth
// and region, or the overflow list.
type place struct {
	overflow bool
	depth    int
	region   math32.Box3
}

// locate returns the place for the bound, without changing the tree.
func (t *Tree) locate(b math32.Box3) place {
	if !t.root.region.ContainsBox(b) {
		return place{overflow: true}
	}
	region, depth := t.root.region, 0
	for depth < t.maxDepth {
		idx := octant(region, b)
		if idx < 0 {
			break
		}
		region = region.Octant(idx)
		depth++
	}
	return place{depth: depth, region: region}
}

// Insert adds the object at its current bound.
func (t *Tree) Insert(obj *scene.Object) error {
	if err := scene.CheckBound(obj.Bound); err != nil {
		return err
	}
	if _, has := t.where[obj]; has {
		return scene.ErrDuplicate
	}
	t.insert(obj)
	return nil
}

func (t *Tree) insert(obj *scene.Object) {
	if !t.root.region.ContainsBox(obj.Bound) {
		t.overflow = append(t.overflow, obj)
		t.where[obj] = nil
		return
	}
	n := t.root
	for n.depth < t.maxDepth {
		idx := octant(n.region, obj.Bound)
		if idx < 0 {
			break
		}
		if n.children[idx] == nil {
			n.children[idx] = &node{region: n.region.Octant(idx), depth: n.depth + 1, parent: n}
		}
		n.count++
		n = n.children[idx]
	}
	n.count++
	n.objects = append(n.objects, obj)
	t.where[obj] = n
}

// Update moves the object to the new bound. If the object still
// belongs to the same node, only its bound changes.
func (t *Tree) Update(obj *scene.Object, bound math32.Box3) error {
	if err := scene.CheckBound(bound); err != nil {
		return err
	}
	n, has := t.where[obj]
	if !has {
		return scene.ErrNotFound
	}
	p := t.locate(bound)
	if n == nil && p.overflow || n != nil && !p.overflow && n.depth == p.depth && n.region == p.region {
		obj.Bound = bound
		return nil
	}
	t.remove(obj, n)
	obj.Bound = bound
	t.insert(obj)
	return nil
}

// Remove removes the object, returning false if it is not in the tree.
func (t *Tree) Remove(obj *scene.Object) bool {
	n, has := t.where[obj]
	if !has {
		return false
	}
	t.remove(obj, n)
	return true
}

func (t *Tree) remove(obj *scene.Object, n *node) {
	delete(t.where, obj)
	if n == nil {
		t.overflow = slices.DeleteFunc(t.overflow, func(o *scene.Object) bool { return o == obj })
		return
	}
	if i := slices.Index(n.objects, obj); i >= 0 {
		n.objects = slices.Delete(n.objects, i, i+1)
	}
	for ; n != nil; n = n.parent {
		n.count--
		if n.count == 0 && n.parent != nil {
			for i, c := range n.parent.children {
				if c == n {
					n.parent.children[i] = nil
				}
			}
		}
	}
}

// QueryVisible returns the objects not outside the frustum. Subtrees
// outside the frustum are skipped, subtrees inside it are returned
// without testing each object, and objects of partially visible
// nodes are tested one by one.
func (t *Tree) QueryVisible(f *math32.Frustum) iter.Seq[*scene.Object] {
	return func(yield func(*scene.Object) bool) {
		if !t.visit(t.root, f, yield) {
			return
		}
		for _, obj := range t.overflow {
			if f.IntersectBox(obj.Bound) != math32.Outside && !yield(obj) {
				return
			}
		}
	}
}

func (t *Tree) visit(n *node, f *math32.Frustum, yield func(*scene.Object) bool) bool {
	if n.count == 0 {
		return true
	}
	switch f.IntersectBox(n.region) {
	case math32.Outside:
		return true
	case math32.Inside:
		return n.all(yield)
	}
	for _, obj := range n.objects {
		if f.IntersectBox(obj.Bound) != math32.Outside && !yield(obj) {
			return false
		}
	}
	for _, c := range n.children {
		if c != nil && !t.visit(c, f, yield) {
			return false
		}
	}
	return true
}

// all yields every object in the subtree, in query order.
func (n *node) all(yield func(*scene.Object) bool) bool {
	for _, obj := range n.objects {
		if !yield(obj) {
			return false
		}
	}
	for _, c := range n.children {
		if c != nil && !c.all(yield) {
			return false
		}
	}
	return true
}

// NumNodes returns the number of nodes in the tree, including the root.
func (t *Tree) NumNodes() int {
	var count func(n *node) int
	count = func(n *node) int {
		total := 1
		for _, c := range n.children {
			if c != nil {
				total += count(c)
			}
		}
		return total
	}
	return count(t.root)
}

// Depth returns the node depth of the object, or -1 if it is in the
// overflow list or not in the tree.
func (t *Tree) Depth(obj *scene.Object) int {
	n := t.where[obj]
	if n == nil {
		return -1
	}
	return n.depth
}
