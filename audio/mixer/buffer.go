// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixer

import (
	"cogentcore.org/engine/audio"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Buffer is a clip rendered at the device sample rate.
type Buffer struct {
	dev    *Backend
	kind   audio.BufferKinds
	data   *beep.Buffer
	seeker beep.StreamSeeker
	volume float32

	// voice is the volume effect of the stream currently in the mixer.
	voice *effects.Volume

	// gen is bumped whenever the buffer stops, so that a stream left
	// in the mixer from an earlier Play drains on its next pull.
	gen      int
	playing  bool
	loop     bool
	released bool
}

func (b *Buffer) Kind() audio.BufferKinds { return b.kind }

func (b *Buffer) Play(loop bool) error {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	if b.released {
		return audio.ErrNotFound
	}
	b.loop = loop
	if b.playing {
		return nil
	}
	if b.seeker.Position() >= b.data.Len() {
		b.seeker.Seek(0)
	}
	b.playing = true
	b.gen++
	b.voice = &effects.Volume{Streamer: b.stream(b.gen), Base: 2}
	setGain(b.voice, b.volume)
	b.dev.groups[b.kind].mix.Add(b.voice)
	return nil
}

// stream returns the streamer for one Play of the buffer. It is only
// called by the mixer, with the device locked.
func (b *Buffer) stream(gen int) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if gen != b.gen || !b.playing {
			return 0, false
		}
		for n < len(samples) {
			m, more := b.seeker.Stream(samples[n:])
			n += m
			if more && m > 0 {
				continue
			}
			if !b.loop || b.data.Len() == 0 {
				b.playing = false
				break
			}
			b.seeker.Seek(0)
		}
		return n, n > 0
	})
}

func (b *Buffer) Stop() {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	b.playing = false
	b.gen++
}

func (b *Buffer) Reset() {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	b.playing = false
	b.gen++
	b.seeker.Seek(0)
}

func (b *Buffer) IsPlaying() bool {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	return b.playing
}

func (b *Buffer) SetVolume(v float32) {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	b.volume = v
	if b.voice != nil {
		setGain(b.voice, v)
	}
}

func (b *Buffer) Volume() float32 {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	return b.volume
}

// Position returns the play position in samples.
func (b *Buffer) Position() int {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	return b.seeker.Position()
}

// Len returns the length of the buffer in samples.
func (b *Buffer) Len() int { return b.data.Len() }

func (b *Buffer) Release() {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	b.released = true
	b.playing = false
	b.gen++
}
