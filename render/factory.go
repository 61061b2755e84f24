// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"log/slog"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/plugin"
)

// APIVersion is the version of the [Backend] interface that
// backends built into this module implement.
const APIVersion = "1.0.0"

// Backends is the registry of render backends.
var Backends = plugin.NewRegistry[Backend]("render")

// Register registers a render backend constructor under the given
// name. It is intended to be called from backend init functions and
// panics on a duplicate name.
func Register(name, version string, fn func() (Backend, error)) {
	Backends.MustRegister(name, version, fn)
}

// Factory owns the render engine of one backend. The engine is made
// on first use, and the factory forwards suspend and resume to it.
type Factory struct {
	plugin   *plugin.Plugin[Backend]
	settings RenderSettings
	engine   *Engine
	closed   bool
}

// NewFactory resolves the named backend against the version constraint.
// A missing or incompatible backend is a configuration error.
func NewFactory(name, constraint string, settings RenderSettings) (*Factory, error) {
	p, err := Backends.Lookup(name, constraint)
	if err != nil {
		return nil, err
	}
	return &Factory{plugin: p, settings: settings}, nil
}

// Name returns the backend name.
func (f *Factory) Name() string { return f.plugin.Name }

// Version returns the backend API version.
func (f *Factory) Version() string { return f.plugin.Version.String() }

// HasEngine returns true if the engine has been made.
func (f *Factory) HasEngine() bool { return f.engine != nil }

// Engine returns the render engine, making it on first call.
func (f *Factory) Engine() (*Engine, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if f.engine != nil {
		return f.engine, nil
	}
	b, err := f.plugin.New()
	if err != nil {
		return nil, &DeviceError{Op: "new backend", Backend: f.plugin.Name, Err: err}
	}
	e, err := NewEngine(b, f.settings)
	if err != nil {
		errors.Log(b.Close())
		return nil, err
	}
	f.engine = e
	return e, nil
}

// MakeRenderLayout makes an empty layout on the engine.
func (f *Factory) MakeRenderLayout() (RenderLayout, error) {
	e, err := f.Engine()
	if err != nil {
		return nil, err
	}
	return e.MakeRenderLayout()
}

// MakeSamplerState returns the cached sampler state for s.
func (f *Factory) MakeSamplerState(s Sampler) (*SamplerState, error) {
	e, err := f.Engine()
	if err != nil {
		return nil, err
	}
	return e.MakeSamplerState(s)
}

// MakeOcclusionQuery makes an occlusion query on the engine.
func (f *Factory) MakeOcclusionQuery() (OcclusionQuery, error) {
	e, err := f.Engine()
	if err != nil {
		return nil, err
	}
	return e.MakeOcclusionQuery()
}

// MakeConditionalRender makes a conditional render query on the engine.
func (f *Factory) MakeConditionalRender() (ConditionalRender, error) {
	e, err := f.Engine()
	if err != nil {
		return nil, err
	}
	return e.MakeConditionalRender()
}

// Suspend suspends the engine if it has been made.
func (f *Factory) Suspend() error {
	if f.engine == nil {
		return nil
	}
	return f.engine.Suspend()
}

// Resume resumes the engine if it has been made.
func (f *Factory) Resume() error {
	if f.engine == nil {
		return nil
	}
	return f.engine.Resume()
}

// Close releases the engine, then calls the plugin release hook.
func (f *Factory) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	var err error
	if f.engine != nil {
		err = f.engine.Close()
		f.engine = nil
	}
	if f.plugin.Release != nil {
		f.plugin.Release()
	}
	slog.Debug("render factory closed", "backend", f.plugin.Name)
	return err
}
