// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input provides the input engine, keyboard state and action
// maps, and the factory that selects an input backend by name from
// the [Backends] registry.
//
// An [ActionMap] binds key semantics to application actions. On each
// [Engine.Update] every device reports the actions whose keys are
// down or were released since the previous update, and the handler
// registered with the map is called once per action.
package input

import (
	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/plugin"
)

// APIVersion is the version of the [Backend] interface.
const APIVersion = "1.0.0"

var ErrClosed = errors.New("input: engine closed")

// DeviceTypes are the types of input devices.
type DeviceTypes int32

const (
	Keyboard DeviceTypes = iota
	Mouse
	Joystick
	Touch
	Sensor
)

func (dt DeviceTypes) String() string {
	switch dt {
	case Keyboard:
		return "Keyboard"
	case Mouse:
		return "Mouse"
	case Joystick:
		return "Joystick"
	case Touch:
		return "Touch"
	case Sensor:
		return "Sensor"
	}
	return "DeviceTypes(?)"
}

// Device is an input device of a backend.
type Device interface {
	Name() string
	Type() DeviceTypes

	// UpdateInputs reads the device state for the new frame.
	UpdateInputs() error

	// Actions returns the actions of the map triggered in this frame,
	// ordered by key.
	Actions(m *ActionMap) []Action
}

// Backend is the native input system implemented by each input plugin.
type Backend interface {
	Name() string

	// EnumDevices returns the devices of the backend.
	EnumDevices() ([]Device, error)

	Suspend() error
	Resume() error
	Close() error
}

// Backends is the registry of input backends.
var Backends = plugin.NewRegistry[Backend]("input")

// Register registers an input backend constructor. It is intended
// to be called from init functions and panics on a duplicate name.
func Register(name, version string, fn func() (Backend, error)) {
	Backends.MustRegister(name, version, fn)
}
