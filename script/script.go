// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script provides the script engine and the factory that
// selects a script backend by name from the [Backends] registry.
//
// Values cross between Go and scripts as nil, bool, float64, string,
// []any and map[string]any, plus [Func] for Go functions callable
// from scripts. Go integers and float32 are converted to float64.
package script

import (
	"context"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/plugin"
)

// APIVersion is the version of the [Backend] interface.
const APIVersion = "1.0.0"

var (
	ErrNotFunction     = errors.New("script: not a function")
	ErrUnsupportedType = errors.New("script: unsupported value type")
	ErrClosed          = errors.New("script: closed")
)

// Func is a Go function callable from scripts.
type Func func(args ...any) (any, error)

// Module is an isolated script environment. Modules are safe for
// concurrent use; calls into one module are serialized.
type Module interface {
	Name() string

	// RunString runs source code in the module and returns its first result.
	RunString(ctx context.Context, src string) (any, error)

	// Call calls the global function fn and returns its first result.
	Call(ctx context.Context, fn string, args ...any) (any, error)

	// Value returns the global variable of the given name.
	Value(name string) (any, error)

	// SetValue sets a global variable.
	SetValue(name string, v any) error

	Close() error
}

// Backend is the native script runtime implemented by each script plugin.
type Backend interface {
	Name() string
	NewModule(name string) (Module, error)
	Close() error
}

// Backends is the registry of script backends.
var Backends = plugin.NewRegistry[Backend]("script")

// Register registers a script backend constructor. It is intended
// to be called from init functions and panics on a duplicate name.
func Register(name, version string, fn func() (Backend, error)) {
	Backends.MustRegister(name, version, fn)
}
