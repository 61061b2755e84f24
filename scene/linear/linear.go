// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linear provides a scene index that tests every object
// against the frustum. It is the reference for the octree and is
// faster for small scenes.
package linear

import (
	"iter"

	"cogentcore.org/engine/base/ordmap"
	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/scene"
)

func init() {
	scene.Register("linear", scene.APIVersion, func() (scene.Index, error) {
		return New(), nil
	})
}

// List is a linear scene index, in insertion order.
type List struct {
	objects ordmap.Map[*scene.Object, struct{}]
}

// New returns an empty list.
func New() *List {
	return &List{}
}

func (l *List) Init(opts scene.Options) error {
	l.objects.Reset()
	return nil
}

func (l *List) Insert(obj *scene.Object) error {
	if err := scene.CheckBound(obj.Bound); err != nil {
		return err
	}
	if l.objects.Has(obj) {
		return scene.ErrDuplicate
	}
	l.objects.Add(obj, struct{}{})
	return nil
}

func (l *List) Update(obj *scene.Object, bound math32.Box3) error {
	if err := scene.CheckBound(bound); err != nil {
		return err
	}
	if !l.objects.Has(obj) {
		return scene.ErrNotFound
	}
	obj.Bound = bound
	return nil
}

func (l *List) Remove(obj *scene.Object) bool {
	return l.objects.DeleteKey(obj)
}

func (l *List) QueryVisible(f *math32.Frustum) iter.Seq[*scene.Object] {
	return func(yield func(*scene.Object) bool) {
		for obj := range l.objects.All() {
			if f.IntersectBox(obj.Bound) != math32.Outside && !yield(obj) {
				return
			}
		}
	}
}

func (l *List) Len() int { return l.objects.Len() }

func (l *List) Clear() { l.objects.Reset() }
