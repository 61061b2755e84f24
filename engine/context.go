// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine ties the subsystems together: a [Context] owns one
// factory per subsystem, the scene manager and the resource loader,
// all selected by a [Config]. An [App] runs the frame loop over a
// Context.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"cogentcore.org/engine/audio"
	"cogentcore.org/engine/audio/mixer"
	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/iox/imagex"
	"cogentcore.org/engine/base/logx"
	"cogentcore.org/engine/input"
	"cogentcore.org/engine/render"
	"cogentcore.org/engine/resloader"
	"cogentcore.org/engine/scene"
	"cogentcore.org/engine/script"

	// built-in backends
	_ "cogentcore.org/engine/audio/null"
	_ "cogentcore.org/engine/input/null"
	_ "cogentcore.org/engine/input/term"
	_ "cogentcore.org/engine/render/gl"
	_ "cogentcore.org/engine/render/null"
	_ "cogentcore.org/engine/render/soft"
	_ "cogentcore.org/engine/scene/linear"
	_ "cogentcore.org/engine/scene/octree"
	_ "cogentcore.org/engine/script/lua"
)

// Option configures a [Context].
type Option func(o *options)

type options struct {
	loader *resloader.Loader
	logOut io.Writer
}

// WithResourceLoader uses the given loader instead of a new one.
// The configured resource paths are added to it.
func WithResourceLoader(l *resloader.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithLogger installs the default logger writing to w at the
// configured log level.
func WithLogger(w io.Writer) Option {
	return func(o *options) { o.logOut = w }
}

// Context owns the subsystems of one engine instance. Its methods
// are safe for concurrent use, but the engines it hands out follow
// their own rules.
type Context struct {
	mu        sync.Mutex
	cfg       Config
	render    *render.Factory
	audio     *audio.Factory
	input     *input.Factory
	script    *script.Factory
	scene     *scene.Manager
	loader    *resloader.Loader
	suspended bool
	closed    bool
}

// New makes a context for the config. Every backend is resolved
// here: a missing backend or version mismatch is an [ErrConfig].
// Engines are made on first use.
func New(cfg Config, opts ...Option) (*Context, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if o.logOut != nil {
		logx.UserLevel = errors.Ignore1(logx.LevelFromString(cfg.Log.Level))
		logx.SetLogger(o.logOut)
	}
	c := &Context{cfg: cfg.Clone()}
	cc := &cfg.Context
	rs, err := cfg.RenderSettings()
	if err != nil {
		return nil, err
	}
	if c.render, err = render.NewFactory(cc.Render, cc.RenderVersion, rs); err != nil {
		return nil, fmt.Errorf("%w: render: %w", ErrConfig, err)
	}
	if c.audio, err = audio.NewFactory(cc.Audio, cc.AudioVersion, cfg.AudioSettings()); err != nil {
		return nil, fmt.Errorf("%w: audio: %w", ErrConfig, err)
	}
	if c.input, err = input.NewFactory(cc.Input, cc.InputVersion); err != nil {
		return nil, fmt.Errorf("%w: input: %w", ErrConfig, err)
	}
	if cc.Script != "" {
		if c.script, err = script.NewFactory(cc.Script, cc.ScriptVersion); err != nil {
			return nil, fmt.Errorf("%w: script: %w", ErrConfig, err)
		}
	}
	if c.scene, err = scene.NewManager(cc.Scene, cc.SceneVersion, cfg.SceneOptions()); err != nil {
		return nil, fmt.Errorf("%w: scene: %w", ErrConfig, err)
	}
	c.scene.SetSmallObjectThreshold(cfg.Scene.SmallObjectThreshold)

	c.loader = o.loader
	if c.loader == nil {
		if c.loader, err = resloader.New(); err != nil {
			return nil, err
		}
	}
	for _, p := range cfg.Resources.Paths {
		if _, err := c.loader.AddDir(p); err != nil {
			return nil, fmt.Errorf("%w: resources: %w", ErrConfig, err)
		}
	}
	slog.Info("engine context created", "render", cc.Render, "audio", cc.Audio, "input", cc.Input, "scene", cc.Scene, "script", cc.Script)
	return c, nil
}

// Config returns a copy of the config of the context.
func (c *Context) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Clone()
}

func (c *Context) RenderFactory() *render.Factory { return c.render }
func (c *Context) AudioFactory() *audio.Factory   { return c.audio }
func (c *Context) InputFactory() *input.Factory   { return c.input }

// ScriptFactory returns the script factory, or nil if no script
// backend is configured.
func (c *Context) ScriptFactory() *script.Factory { return c.script }

func (c *Context) SceneManager() *scene.Manager { return c.scene }

func (c *Context) ResLoader() *resloader.Loader { return c.loader }

// Suspended returns whether the context is suspended.
func (c *Context) Suspended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suspended
}

// Suspend suspends the scene manager, then every factory.
func (c *Context) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.suspended || c.closed {
		return nil
	}
	c.suspended = true
	c.scene.Suspend()
	err := errors.Join(c.render.Suspend(), c.audio.Suspend(), c.input.Suspend())
	slog.Info("engine context suspended")
	return err
}

// Resume resumes every factory, then the scene manager. If any
// factory fails, the context and the scene manager stay suspended.
// A render device that fails to resume stays faulted; audio and
// input failures can be retried with another Resume, which skips
// the factories already running.
func (c *Context) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.suspended || c.closed {
		return nil
	}
	if err := c.render.Resume(); err != nil {
		return err
	}
	if err := errors.Join(c.audio.Resume(), c.input.Resume()); err != nil {
		slog.Error("engine context resume failed", "err", err)
		return err
	}
	c.suspended = false
	c.scene.Resume()
	slog.Info("engine context resumed")
	return nil
}

// Close releases the scene manager, then the render, audio, input
// and script factories, in that order.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.scene.Clear()
	errs := []error{c.render.Close(), c.audio.Close(), c.input.Close()}
	if c.script != nil {
		errs = append(errs, c.script.Close())
	}
	slog.Info("engine context closed")
	return errors.Join(errs...)
}

// LoadSound reads a WAV resource into a buffer of the audio engine
// under the resource name.
func (c *Context) LoadSound(name string, kind audio.BufferKinds) (audio.Buffer, error) {
	ae, err := c.audio.Engine()
	if err != nil {
		return nil, err
	}
	res, err := c.loader.Open(name)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	if !res.IsAudio() {
		return nil, fmt.Errorf("engine: %s: not an audio resource (%s)", name, res.MIME())
	}
	clip, err := mixer.LoadWAV(res)
	if err != nil {
		return nil, fmt.Errorf("engine: %s: %w", name, err)
	}
	return ae.AddBuffer(name, clip, kind)
}

// LoadTexture decodes an image resource into an RGBA8 shader
// resource texture of the render engine. Rows are flipped when flip
// is true, for devices that address texels bottom up.
func (c *Context) LoadTexture(name string, flip bool) (*render.Texture, error) {
	re, err := c.render.Engine()
	if err != nil {
		return nil, err
	}
	res, err := c.loader.Open(name)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	if !res.IsImage() {
		return nil, fmt.Errorf("engine: %s: not an image resource (%s)", name, res.MIME())
	}
	im, _, err := imagex.Read(res)
	if err != nil {
		return nil, fmt.Errorf("engine: %s: %w", name, err)
	}
	rgba := imagex.AsRGBA(im)
	if flip {
		rgba = imagex.FlipV(rgba)
	}
	var desc render.TextureDesc
	desc.Defaults()
	desc.Width, desc.Height = rgba.Rect.Dx(), rgba.Rect.Dy()
	return re.MakeTexture(desc, rgba.Pix)
}

// LoadScript runs a script resource in a module named after it.
func (c *Context) LoadScript(ctx context.Context, name string) (script.Module, error) {
	if c.script == nil {
		return nil, fmt.Errorf("%w: no script backend", ErrConfig)
	}
	se, err := c.script.Engine()
	if err != nil {
		return nil, err
	}
	res, err := c.loader.Open(name)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	return se.LoadModule(ctx, name, res)
}
