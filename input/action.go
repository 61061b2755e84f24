// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import "maps"

// ActionDefine binds a key semantic to an action id.
type ActionDefine struct {
	Action uint16
	Key    Key
}

// ActionMap maps key semantics to action ids. A key has at most one action.
type ActionMap struct {
	actions map[Key]uint16
}

// NewActionMap returns a map with the given bindings.
func NewActionMap(defs ...ActionDefine) *ActionMap {
	m := &ActionMap{}
	m.AddActions(defs...)
	return m
}

// AddAction binds a key to an action, replacing any earlier binding.
func (m *ActionMap) AddAction(def ActionDefine) {
	if m.actions == nil {
		m.actions = make(map[Key]uint16)
	}
	m.actions[def.Key] = def.Action
}

func (m *ActionMap) AddActions(defs ...ActionDefine) {
	for _, d := range defs {
		m.AddAction(d)
	}
}

// HasAction returns whether the key is bound.
func (m *ActionMap) HasAction(k Key) bool {
	_, ok := m.actions[k]
	return ok
}

// Action returns the action bound to the key.
func (m *ActionMap) Action(k Key) (uint16, bool) {
	id, ok := m.actions[k]
	return id, ok
}

// Len returns the number of bindings.
func (m *ActionMap) Len() int { return len(m.actions) }

// Clone returns a copy of the map.
func (m *ActionMap) Clone() *ActionMap {
	return &ActionMap{actions: maps.Clone(m.actions)}
}

// Action is an action triggered by a device in one frame.
type Action struct {
	ID   uint16
	Key  Key
	Type DeviceTypes

	// Pressed is set when the key went down in this frame.
	Pressed bool

	// Released is set when the key was released in this frame.
	Released bool

	// Held is set while the key is down.
	Held bool
}

// Handler is called for each triggered action of a map.
type Handler func(e *Engine, act Action)
