// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plugin provides a generic registry mapping backend names to
// versioned constructors. Each engine subsystem (render, audio, input,
// scene, script) keeps one registry, which backends populate from their
// init functions, and a context resolves one backend per subsystem by
// name and API version constraint at startup.
package plugin

import (
	"fmt"
	"log/slog"
	"sync"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/ordmap"
	"github.com/Masterminds/semver/v3"
)

var (
	// ErrNotFound is returned when no plugin is registered under a name.
	ErrNotFound = errors.New("plugin: not found")

	// ErrIncompatible is returned when a plugin version does not satisfy
	// the requested constraint.
	ErrIncompatible = errors.New("plugin: incompatible version")

	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("plugin: already registered")
)

// Plugin describes one backend implementation of type T.
type Plugin[T any] struct {

	// Name is the registry key, such as "opengl" or "octree".
	Name string

	// Version is the API version the plugin implements.
	Version *semver.Version

	// New constructs a new instance. Ownership of the instance
	// passes to the caller.
	New func() (T, error)

	// Release is called, if set, after the last instance made by
	// this plugin has been released.
	Release func()
}

// Registry is a named, ordered set of plugins for one subsystem.
// It is safe for concurrent use.
type Registry[T any] struct {

	// Kind names the subsystem, used in errors and logs.
	Kind string

	mu      sync.RWMutex
	plugins ordmap.Map[string, *Plugin[T]]
}

// NewRegistry returns a new empty registry for the given subsystem kind.
func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{Kind: kind}
}

// Register adds a plugin with the given name, semantic version and constructor.
func (r *Registry[T]) Register(name, version string, fn func() (T, error)) error {
	return r.RegisterPlugin(&Plugin[T]{Name: name, New: fn, Version: errors.Log1(semver.NewVersion(version))})
}

// MustRegister is like [Registry.Register] but panics on error.
// It is intended for use in init functions.
func (r *Registry[T]) MustRegister(name, version string, fn func() (T, error)) {
	v, err := semver.NewVersion(version)
	errors.Must(err)
	errors.Must(r.RegisterPlugin(&Plugin[T]{Name: name, Version: v, New: fn}))
}

// RegisterPlugin adds the given plugin.
func (r *Registry[T]) RegisterPlugin(p *Plugin[T]) error {
	if p.Name == "" || p.New == nil {
		return fmt.Errorf("%s plugin: name and constructor are required", r.Kind)
	}
	if p.Version == nil {
		return fmt.Errorf("%s plugin %q: missing or invalid version", r.Kind, p.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.plugins.Has(p.Name) {
		return fmt.Errorf("%s plugin %q: %w", r.Kind, p.Name, ErrDuplicate)
	}
	r.plugins.Add(p.Name, p)
	slog.Debug("plugin registered", "kind", r.Kind, "name", p.Name, "version", p.Version.String())
	return nil
}

// Unregister removes the named plugin, returning false if it was not registered.
func (r *Registry[T]) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plugins.DeleteKey(name)
}

// Lookup returns the named plugin, checking its version against the
// given semver constraint (such as "^1.0"). An empty constraint
// accepts any version.
func (r *Registry[T]) Lookup(name, constraint string) (*Plugin[T], error) {
	r.mu.RLock()
	p, ok := r.plugins.ValueByKeyTry(name)
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s plugin %q: %w (available: %v)", r.Kind, name, ErrNotFound, r.Names())
	}
	if constraint == "" {
		return p, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("%s plugin %q: invalid version constraint %q: %w", r.Kind, name, constraint, err)
	}
	if !c.Check(p.Version) {
		return nil, fmt.Errorf("%s plugin %q version %s does not satisfy %q: %w", r.Kind, name, p.Version, constraint, ErrIncompatible)
	}
	return p, nil
}

// Make looks up the named plugin and constructs a new instance.
func (r *Registry[T]) Make(name, constraint string) (T, *Plugin[T], error) {
	var zero T
	p, err := r.Lookup(name, constraint)
	if err != nil {
		return zero, nil, err
	}
	v, err := p.New()
	if err != nil {
		return zero, p, fmt.Errorf("%s plugin %q: %w", r.Kind, name, err)
	}
	return v, p, nil
}

// Names returns the registered plugin names in registration order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plugins.Keys()
}

// Plugins returns the registered plugins in registration order.
func (r *Registry[T]) Plugins() []*Plugin[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ps := make([]*Plugin[T], 0, r.plugins.Len())
	for p := range r.plugins.Values() {
		ps = append(ps, p)
	}
	return ps
}
