// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package null provides an audio backend without a device.
// Buffers keep their play state but produce no sound.
package null

import (
	"cogentcore.org/engine/audio"
	"cogentcore.org/engine/base/errors"
)

func init() {
	audio.Register("null", audio.APIVersion, func() (audio.Backend, error) {
		return New(), nil
	})
}

// Backend is the null audio device.
type Backend struct {
	Settings  audio.Settings
	Volumes   [2]float32
	Suspended bool
	Closed    bool

	// FailResume makes the next Resume fail.
	FailResume bool
}

// New returns a new null audio backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "null" }

func (b *Backend) Init(s audio.Settings) error {
	b.Settings = s
	return nil
}

func (b *Backend) NewBuffer(c *audio.Clip, kind audio.BufferKinds) (audio.Buffer, error) {
	return &Buffer{kind: kind, volume: 1, length: len(c.Samples)}, nil
}

func (b *Backend) SetVolume(kind audio.BufferKinds, v float32) { b.Volumes[kind] = v }

func (b *Backend) Suspend() error {
	b.Suspended = true
	return nil
}

func (b *Backend) Resume() error {
	if b.FailResume {
		b.FailResume = false
		return errors.New("null audio: resume failed")
	}
	b.Suspended = false
	return nil
}

func (b *Backend) Close() error {
	b.Closed = true
	return nil
}

// Buffer is a null audio buffer. It plays until stopped.
type Buffer struct {
	kind     audio.BufferKinds
	length   int
	volume   float32
	playing  bool
	looping  bool
	released bool
}

func (b *Buffer) Kind() audio.BufferKinds { return b.kind }

func (b *Buffer) Play(loop bool) error {
	if b.released {
		return audio.ErrNotFound
	}
	b.playing = true
	b.looping = loop
	return nil
}

func (b *Buffer) Stop()               { b.playing = false }
func (b *Buffer) Reset()              { b.playing = false }
func (b *Buffer) IsPlaying() bool     { return b.playing }
func (b *Buffer) Looping() bool       { return b.looping }
func (b *Buffer) SetVolume(v float32) { b.volume = v }
func (b *Buffer) Volume() float32     { return b.volume }
func (b *Buffer) Release()            { b.released, b.playing = true, false }
