// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package audio provides the audio engine and the factory that
// selects an audio backend by name from the [Backends] registry.
// The [Engine] keeps named sound and music buffers on a [Backend],
// with separate master volumes for sounds and music.
package audio

import (
	"time"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/plugin"
)

// APIVersion is the version of the [Backend] interface.
const APIVersion = "1.0.0"

var (
	ErrNotFound  = errors.New("audio: buffer not found")
	ErrDuplicate = errors.New("audio: buffer name in use")
	ErrEmptyClip = errors.New("audio: clip has no samples")
	ErrClosed    = errors.New("audio: engine closed")
)

// BufferKinds are the kinds of audio buffers, each with its own master volume.
type BufferKinds int32

const (
	// SoundBuffer is a short effect, usually played many times.
	SoundBuffer BufferKinds = iota

	// MusicBuffer is a long track, usually looped.
	MusicBuffer
)

func (bk BufferKinds) String() string {
	if bk == MusicBuffer {
		return "Music"
	}
	return "Sound"
}

// Clip is decoded stereo PCM audio.
type Clip struct {
	SampleRate int

	// Samples are left and right samples in [-1, 1].
	Samples [][2]float64
}

// Duration returns the play time of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// Settings configure the audio device.
type Settings struct {
	SampleRate  int
	SoundVolume float32
	MusicVolume float32
}

// Defaults sets 44.1 kHz output at full volume.
func (s *Settings) Defaults() {
	s.SampleRate = 44100
	s.SoundVolume = 1
	s.MusicVolume = 1
}

// Buffer is a playable clip on a backend device.
type Buffer interface {
	Kind() BufferKinds

	// Play starts or continues playing from the current position.
	// A looping buffer restarts from the beginning when it ends.
	Play(loop bool) error

	// Stop pauses the buffer, keeping its position.
	Stop()

	// Reset stops the buffer and rewinds it.
	Reset()

	IsPlaying() bool

	// SetVolume sets the buffer volume in [0, 1].
	SetVolume(v float32)
	Volume() float32

	// Release frees the device resources of the buffer.
	Release()
}

// Backend is the native audio device implemented by each audio plugin.
type Backend interface {
	Name() string
	Init(s Settings) error
	NewBuffer(c *Clip, kind BufferKinds) (Buffer, error)

	// SetVolume sets the master volume in [0, 1] for a kind of buffer.
	SetVolume(kind BufferKinds, v float32)

	Suspend() error
	Resume() error
	Close() error
}

// Backends is the registry of audio backends.
var Backends = plugin.NewRegistry[Backend]("audio")

// Register registers an audio backend constructor. It is intended
// to be called from init functions and panics on a duplicate name.
func Register(name, version string, fn func() (Backend, error)) {
	Backends.MustRegister(name, version, fn)
}

// clampVolume clamps a volume to [0, 1].
func clampVolume(v float32) float32 {
	return min(max(v, 0), 1)
}
