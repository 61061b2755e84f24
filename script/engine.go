// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/ordmap"
)

// Engine keeps the named modules of a script backend.
type Engine struct {
	mu      sync.Mutex
	backend Backend
	modules ordmap.Map[string, Module]
	closed  bool
}

// NewEngine returns an engine for the backend.
func NewEngine(b Backend) *Engine {
	slog.Info("script engine created", "backend", b.Name())
	return &Engine{backend: b}
}

func (e *Engine) Name() string { return e.backend.Name() }

// Module returns the named module, creating it if needed.
func (e *Engine) Module(name string) (Module, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	if m, ok := e.modules.ValueByKeyTry(name); ok {
		return m, nil
	}
	m, err := e.backend.NewModule(name)
	if err != nil {
		return nil, fmt.Errorf("script %s: new module %q: %w", e.backend.Name(), name, err)
	}
	e.modules.Add(name, m)
	return m, nil
}

// LoadModule creates the named module and runs the source read from r in it.
func (e *Engine) LoadModule(ctx context.Context, name string, r io.Reader) (Module, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("script: read %q: %w", name, err)
	}
	m, err := e.Module(name)
	if err != nil {
		return nil, err
	}
	if _, err := m.RunString(ctx, string(src)); err != nil {
		return nil, err
	}
	return m, nil
}

// NumModules returns the number of modules.
func (e *Engine) NumModules() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modules.Len()
}

// Close closes every module, then the backend.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	var errs []error
	for m := range e.modules.Values() {
		errs = append(errs, m.Close())
	}
	e.modules.Reset()
	errs = append(errs, e.backend.Close())
	slog.Info("script engine closed", "backend", e.backend.Name())
	return errors.Join(errs...)
}
