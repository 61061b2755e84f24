// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// App runs the frame loop of a [Context]: each frame updates the
// app, clips the scene against the camera, draws it and updates
// the inputs.
type App struct {
	// Context is the engine context the app runs on.
	Context *Context

	// Camera gives the view of every frame.
	Camera *Camera

	// OnUpdate is called at the start of every frame with the time
	// since the previous frame. An error stops [App.Run].
	OnUpdate func(app *App, dt time.Duration) error

	quit   atomic.Bool
	frames uint64
	last   time.Time
}

// NewApp returns an app for the context, with a default camera if
// cam is nil.
func NewApp(c *Context, cam *Camera) *App {
	if cam == nil {
		cam = NewCamera()
	}
	return &App{Context: c, Camera: cam}
}

// NumFrames returns the number of frames drawn so far.
func (app *App) NumFrames() uint64 { return app.frames }

// Quit makes [App.Run] return after the current frame.
// It is safe to call from any goroutine.
func (app *App) Quit() { app.quit.Store(true) }

// Frame runs one frame. It does nothing while the context is
// suspended.
func (app *App) Frame() error {
	c := app.Context
	if c.Suspended() {
		return nil
	}
	now := time.Now()
	var dt time.Duration
	if !app.last.IsZero() {
		dt = now.Sub(app.last)
	}
	app.last = now
	if app.OnUpdate != nil {
		if err := app.OnUpdate(app, dt); err != nil {
			return err
		}
	}

	re, err := c.render.Engine()
	if err != nil {
		return err
	}
	if err := re.BeginFrame(); err != nil {
		return err
	}
	view := app.Camera.View()
	c.scene.ClipScene(view)
	ferr := c.scene.Flush(re, view)
	if err := re.EndFrame(); err != nil {
		return err
	}
	if ferr != nil {
		return fmt.Errorf("engine: flush: %w", ferr)
	}

	ie, err := c.input.Engine()
	if err != nil {
		return err
	}
	if err := ie.Update(); err != nil {
		return err
	}
	app.frames++
	instrumentFrame(re.Name(), c.scene.Stats(), time.Since(now))
	return nil
}

// Run runs frames until the given number of frames is drawn, Quit is
// called, the context is done or a frame fails. A frames value of 0
// runs without limit.
func (app *App) Run(ctx context.Context, frames int) error {
	app.quit.Store(false)
	start := app.frames
	for frames == 0 || app.frames-start < uint64(frames) {
		if app.quit.Load() {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		suspended := app.Context.Suspended()
		if err := app.Frame(); err != nil {
			slog.Error("engine frame failed", "frame", app.frames, "err", err)
			return err
		}
		if suspended {
			// nothing drawn; don't spin
			time.Sleep(time.Millisecond)
		}
	}
	slog.Debug("engine run done", "frames", app.frames-start)
	return nil
}
