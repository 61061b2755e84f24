// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene manages scene objects for visibility culling. A
// [Manager] holds the objects of a scene and draws the ones visible
// to a [View], using a pluggable spatial [Index] selected by name
// from the [Indexes] registry.
package scene

import (
	"iter"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/plugin"
	"cogentcore.org/engine/math32"
)

// APIVersion is the version of the [Index] interface.
const APIVersion = "1.0.0"

var (
	// ErrInvalidBound is returned for a bound with NaN components or
	// a minimum greater than its maximum.
	ErrInvalidBound = errors.New("scene: invalid bound")

	// ErrNotFound is returned for an object that is not in the index.
	ErrNotFound = errors.New("scene: object not found")

	// ErrDuplicate is returned when adding an object twice.
	ErrDuplicate = errors.New("scene: object already added")
)

// Options configure a spatial index.
type Options struct {
	// WorldBound is the region the index subdivides. Objects
	// outside of it are still indexed, but are tested one by one.
	WorldBound math32.Box3

	// MaxDepth is the maximum subdivision depth.
	MaxDepth int
}

// Defaults sets a [-1000, 1000] world with a depth of 6.
func (o *Options) Defaults() {
	o.WorldBound = math32.B3(-1000, -1000, -1000, 1000, 1000, 1000)
	o.MaxDepth = 6
}

// Index is a spatial index of objects for frustum queries.
// Indexes have no internal locking: one goroutine at a time may use
// an index, and it must not be changed while a query sequence is
// being iterated.
type Index interface {
	// Init prepares an empty index.
	Init(opts Options) error

	// Insert adds an object at its current Bound.
	Insert(obj *Object) error

	// Update moves an object to a new bound.
	Update(obj *Object, bound math32.Box3) error

	// Remove removes an object, returning false if it was not present.
	Remove(obj *Object) bool

	// QueryVisible returns the objects whose bound is not outside
	// the frustum. The order is deterministic for an unchanged index.
	QueryVisible(f *math32.Frustum) iter.Seq[*Object]

	// Len returns the number of objects.
	Len() int

	// Clear removes all objects.
	Clear()
}

// Indexes is the registry of spatial index implementations.
var Indexes = plugin.NewRegistry[Index]("scene")

// Register registers a spatial index constructor. It is intended to
// be called from init functions and panics on a duplicate name.
func Register(name, version string, fn func() (Index, error)) {
	Indexes.MustRegister(name, version, fn)
}

// CheckBound returns [ErrInvalidBound] if the bound cannot be indexed.
func CheckBound(b math32.Box3) error {
	if !b.IsValid() {
		return ErrInvalidBound
	}
	return nil
}
