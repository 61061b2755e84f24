// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"fmt"
	"log/slog"
	"time"
)

type binding struct {
	actions *ActionMap
	handler Handler
}

// Engine polls the devices of a backend and dispatches actions.
// It is used from the frame loop goroutine only.
type Engine struct {
	backend   Backend
	devices   []Device
	bindings  []binding
	last      time.Time
	elapsed   time.Duration
	suspended bool
	closed    bool
}

// NewEngine enumerates the devices of the backend.
func NewEngine(b Backend) (*Engine, error) {
	devs, err := b.EnumDevices()
	if err != nil {
		return nil, fmt.Errorf("input %s: enum devices: %w", b.Name(), err)
	}
	slog.Info("input engine created", "backend", b.Name(), "devices", len(devs))
	return &Engine{backend: b, devices: devs}, nil
}

func (e *Engine) Name() string { return e.backend.Name() }

// Backend returns the native backend.
func (e *Engine) Backend() Backend { return e.backend }

func (e *Engine) NumDevices() int { return len(e.devices) }

func (e *Engine) Device(i int) Device { return e.devices[i] }

// ActionMap registers a handler for the actions of the map and
// returns its id. The map is copied.
func (e *Engine) ActionMap(m *ActionMap, h Handler) int {
	e.bindings = append(e.bindings, binding{actions: m.Clone(), handler: h})
	return len(e.bindings) - 1
}

// ElapsedTime returns the time between the last two updates.
func (e *Engine) ElapsedTime() time.Duration { return e.elapsed }

// Update reads all devices and calls the handlers of every triggered
// action, in map then device order. Updates are skipped while suspended.
func (e *Engine) Update() error {
	if e.closed {
		return ErrClosed
	}
	if e.suspended {
		return nil
	}
	now := time.Now()
	if !e.last.IsZero() {
		e.elapsed = now.Sub(e.last)
	}
	e.last = now
	for _, d := range e.devices {
		if err := d.UpdateInputs(); err != nil {
			return fmt.Errorf("input %s: update %s: %w", e.backend.Name(), d.Name(), err)
		}
	}
	for _, b := range e.bindings {
		for _, d := range e.devices {
			for _, act := range d.Actions(b.actions) {
				b.handler(e, act)
			}
		}
	}
	return nil
}

func (e *Engine) Suspend() error {
	if e.suspended || e.closed {
		return nil
	}
	e.suspended = true
	return e.backend.Suspend()
}

// Resume resumes the backend. The next update does not count the
// suspended time as elapsed.
func (e *Engine) Resume() error {
	if !e.suspended || e.closed {
		return nil
	}
	e.suspended = false
	e.last = time.Time{}
	return e.backend.Resume()
}

func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.bindings = nil
	slog.Info("input engine closed", "backend", e.backend.Name())
	return e.backend.Close()
}
