// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/ordmap"
)

// entry is a named buffer and how it was last played.
type entry struct {
	buf    Buffer
	loop   bool
	resume bool
}

// Engine is the audio engine of one device. It is safe for concurrent use.
type Engine struct {
	mu        sync.Mutex
	backend   Backend
	settings  Settings
	buffers   ordmap.Map[string, *entry]
	suspended bool
	closed    bool
}

// NewEngine initializes the backend device with the given settings.
func NewEngine(b Backend, s Settings) (*Engine, error) {
	if err := b.Init(s); err != nil {
		return nil, fmt.Errorf("audio %s: init: %w", b.Name(), err)
	}
	e := &Engine{backend: b, settings: s}
	b.SetVolume(SoundBuffer, clampVolume(s.SoundVolume))
	b.SetVolume(MusicBuffer, clampVolume(s.MusicVolume))
	slog.Info("audio engine created", "backend", b.Name(), "sampleRate", s.SampleRate)
	return e, nil
}

// Name returns the backend name.
func (e *Engine) Name() string { return e.backend.Name() }

// Backend returns the native backend.
func (e *Engine) Backend() Backend { return e.backend }

// AddBuffer makes a buffer for the clip under the given name.
func (e *Engine) AddBuffer(name string, c *Clip, kind BufferKinds) (Buffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	if e.buffers.Has(name) {
		return nil, fmt.Errorf("audio: %q: %w", name, ErrDuplicate)
	}
	if c == nil || len(c.Samples) == 0 {
		return nil, fmt.Errorf("audio: %q: %w", name, ErrEmptyClip)
	}
	buf, err := e.backend.NewBuffer(c, kind)
	if err != nil {
		return nil, fmt.Errorf("audio %s: new buffer %q: %w", e.backend.Name(), name, err)
	}
	e.buffers.Add(name, &entry{buf: buf})
	return buf, nil
}

// Buffer returns the named buffer.
func (e *Engine) Buffer(name string) (Buffer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	en, ok := e.buffers.ValueByKeyTry(name)
	if !ok {
		return nil, false
	}
	return en.buf, true
}

// NumBuffers returns the number of buffers.
func (e *Engine) NumBuffers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffers.Len()
}

// DelBuffer releases the named buffer, returning false if there is none.
func (e *Engine) DelBuffer(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	en, ok := e.buffers.ValueByKeyTry(name)
	if !ok {
		return false
	}
	en.buf.Release()
	e.buffers.DeleteKey(name)
	return true
}

func (e *Engine) lookup(name string) (*entry, error) {
	if e.closed {
		return nil, ErrClosed
	}
	en, ok := e.buffers.ValueByKeyTry(name)
	if !ok {
		return nil, fmt.Errorf("audio: %q: %w", name, ErrNotFound)
	}
	return en, nil
}

// Play plays the named buffer. While the engine is suspended the
// buffer starts playing on resume.
func (e *Engine) Play(name string, loop bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	en, err := e.lookup(name)
	if err != nil {
		return err
	}
	en.loop = loop
	if e.suspended {
		en.resume = true
		return nil
	}
	return en.buf.Play(loop)
}

// Stop pauses the named buffer.
func (e *Engine) Stop(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	en, err := e.lookup(name)
	if err != nil {
		return err
	}
	en.resume = false
	en.buf.Stop()
	return nil
}

// SetSoundVolume sets the master sound volume, clamped to [0, 1].
func (e *Engine) SetSoundVolume(v float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.SoundVolume = clampVolume(v)
	e.backend.SetVolume(SoundBuffer, e.settings.SoundVolume)
}

// SoundVolume returns the master sound volume.
func (e *Engine) SoundVolume() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.SoundVolume
}

// SetMusicVolume sets the master music volume, clamped to [0, 1].
func (e *Engine) SetMusicVolume(v float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.MusicVolume = clampVolume(v)
	e.backend.SetVolume(MusicBuffer, e.settings.MusicVolume)
}

// MusicVolume returns the master music volume.
func (e *Engine) MusicVolume() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.MusicVolume
}

// Suspend pauses every playing buffer and the device.
func (e *Engine) Suspend() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.suspended || e.closed {
		return nil
	}
	for en := range e.buffers.Values() {
		en.resume = en.buf.IsPlaying()
		en.buf.Stop()
	}
	e.suspended = true
	return e.backend.Suspend()
}

// Resume resumes the device and the buffers paused by Suspend.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.suspended || e.closed {
		return nil
	}
	if err := e.backend.Resume(); err != nil {
		return fmt.Errorf("audio %s: resume: %w", e.backend.Name(), err)
	}
	e.suspended = false
	var errs []error
	for en := range e.buffers.Values() {
		if en.resume {
			en.resume = false
			errs = append(errs, en.buf.Play(en.loop))
		}
	}
	return errors.Join(errs...)
}

// Close releases every buffer and the device.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	for en := range e.buffers.Values() {
		en.buf.Release()
	}
	e.buffers.Reset()
	slog.Info("audio engine closed", "backend", e.backend.Name())
	return e.backend.Close()
}
