// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"fmt"
	"log/slog"

	"cogentcore.org/engine/base/plugin"
)

// Factory owns the script engine of one backend, made on first use.
type Factory struct {
	plugin *plugin.Plugin[Backend]
	engine *Engine
	closed bool
}

// NewFactory resolves the named backend against the version constraint.
func NewFactory(name, constraint string) (*Factory, error) {
	p, err := Backends.Lookup(name, constraint)
	if err != nil {
		return nil, err
	}
	return &Factory{plugin: p}, nil
}

func (f *Factory) Name() string { return f.plugin.Name }

func (f *Factory) HasEngine() bool { return f.engine != nil }

// Engine returns the script engine, making it on first call.
func (f *Factory) Engine() (*Engine, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if f.engine != nil {
		return f.engine, nil
	}
	b, err := f.plugin.New()
	if err != nil {
		return nil, fmt.Errorf("script %s: new backend: %w", f.plugin.Name, err)
	}
	f.engine = NewEngine(b)
	return f.engine, nil
}

// Close closes the engine, then calls the plugin release hook.
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
	slog.Debug("script factory closed", "backend", f.plugin.Name)
	return err
}
