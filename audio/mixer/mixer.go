// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mixer provides a software audio backend that mixes all
// playing buffers into a single [beep.Streamer]. The "mixer" plugin
// is pulled by the caller through [Backend.Output]. A [Device] plays
// the output on real hardware.
package mixer

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"cogentcore.org/engine/audio"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/wav"
)

func init() {
	audio.Register("mixer", audio.APIVersion, func() (audio.Backend, error) {
		return New(), nil
	})
}

// Device plays the mixed output stream.
type Device interface {
	Name() string

	// Open starts pulling the stream at the given sample rate.
	Open(rate beep.SampleRate, s beep.Streamer) error

	Close()
}

// ResampleQuality is the quality passed to [beep.Resample] when a
// clip sample rate differs from the device rate.
var ResampleQuality = 4

// Backend mixes sound and music buffers, each group through its own
// master volume.
type Backend struct {
	mu        sync.Mutex
	rate      beep.SampleRate
	master    beep.Mixer
	groups    [2]*group
	device    Device
	suspended bool
	closed    bool
}

// group is the sub-mix of one kind of buffer.
type group struct {
	mix    beep.Mixer
	volume effects.Volume
}

// New returns a new mixer backend. Init must be called before use.
func New() *Backend { return NewWithDevice(nil) }

// NewWithDevice returns a new mixer backend playing on the device.
func NewWithDevice(d Device) *Backend {
	b := &Backend{device: d}
	for i := range b.groups {
		g := &group{}
		g.volume = effects.Volume{Streamer: &g.mix, Base: 2}
		b.groups[i] = g
		b.master.Add(&g.volume)
	}
	return b
}

func (b *Backend) Name() string {
	if b.device != nil {
		return b.device.Name()
	}
	return "mixer"
}

// Init sets the sample rate and opens the device, if any, on the output.
func (b *Backend) Init(s audio.Settings) error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("mixer: invalid sample rate %d", s.SampleRate)
	}
	b.rate = beep.SampleRate(s.SampleRate)
	if b.device == nil {
		return nil
	}
	if err := b.device.Open(b.rate, b.Output()); err != nil {
		return fmt.Errorf("mixer: open %s: %w", b.device.Name(), err)
	}
	return nil
}

// SampleRate returns the device sample rate.
func (b *Backend) SampleRate() beep.SampleRate { return b.rate }

// setGain sets a linear gain in [0, 1] on a volume effect.
func setGain(v *effects.Volume, gain float32) {
	v.Silent = gain <= 0
	if !v.Silent {
		v.Volume = math.Log2(float64(gain))
	}
}

func (b *Backend) SetVolume(kind audio.BufferKinds, v float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	setGain(&b.groups[kind].volume, v)
}

// Output returns the mixed output stream. It never drains, and plays
// silence while the device is suspended or closed.
func (b *Backend) Output() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.suspended || b.closed {
			clear(samples)
			return len(samples), true
		}
		return b.master.Stream(samples)
	})
}

// Render pulls n samples from the output stream.
func (b *Backend) Render(n int) [][2]float64 {
	samples := make([][2]float64, n)
	b.Output().Stream(samples)
	return samples
}

// NewBuffer renders the clip into a device buffer, resampling it to
// the device rate if needed.
func (b *Backend) NewBuffer(c *audio.Clip, kind audio.BufferKinds) (audio.Buffer, error) {
	if b.rate == 0 {
		return nil, fmt.Errorf("mixer: not initialized")
	}
	var src beep.Streamer = clipStreamer(c)
	if c.SampleRate > 0 && beep.SampleRate(c.SampleRate) != b.rate {
		src = beep.Resample(ResampleQuality, beep.SampleRate(c.SampleRate), b.rate, src)
	}
	data := beep.NewBuffer(beep.Format{SampleRate: b.rate, NumChannels: 2, Precision: 2})
	data.Append(src)
	buf := &Buffer{dev: b, kind: kind, data: data, volume: 1}
	buf.seeker = data.Streamer(0, data.Len())
	return buf, nil
}

// clipStreamer streams the samples of a clip once.
func clipStreamer(c *audio.Clip) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= len(c.Samples) {
			return 0, false
		}
		n = copy(samples, c.Samples[pos:])
		pos += n
		return n, true
	})
}

func (b *Backend) Suspend() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.suspended = true
	return nil
}

func (b *Backend) Resume() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.suspended = false
	return nil
}

// Close closes the device and drops every playing stream.
func (b *Backend) Close() error {
	if b.device != nil {
		b.device.Close()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for _, g := range b.groups {
		g.mix.Clear()
	}
	slog.Debug("mixer closed", "backend", b.Name())
	return nil
}

// LoadWAV decodes a WAV stream into a clip.
func LoadWAV(r io.Reader) (*audio.Clip, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("mixer: decode wav: %w", err)
	}
	defer s.Close()
	c := &audio.Clip{SampleRate: int(format.SampleRate), Samples: make([][2]float64, 0, s.Len())}
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		c.Samples = append(c.Samples, chunk[:n]...)
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("mixer: decode wav: %w", err)
	}
	return c, nil
}
