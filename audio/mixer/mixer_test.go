// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixer

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/engine/audio"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constClip(rate, n int, v float64) *audio.Clip {
	c := &audio.Clip{SampleRate: rate, Samples: make([][2]float64, n)}
	for i := range c.Samples {
		c.Samples[i] = [2]float64{v, -v}
	}
	return c
}

func newBackend(t *testing.T) *Backend {
	b := New()
	var s audio.Settings
	s.Defaults()
	require.NoError(t, b.Init(s))
	return b
}

func assertLevel(t *testing.T, samples [][2]float64, v float64) {
	t.Helper()
	for i, s := range samples {
		if !assert.InDelta(t, v, s[0], 1e-9, "sample %d", i) {
			return
		}
		assert.InDelta(t, -v, s[1], 1e-9)
	}
}

func TestSilence(t *testing.T) {
	b := newBackend(t)
	assertLevel(t, b.Render(64), 0)
}

func TestPlayOnce(t *testing.T) {
	b := newBackend(t)
	ab, err := b.NewBuffer(constClip(44100, 100, 0.5), audio.SoundBuffer)
	require.NoError(t, err)
	buf := ab.(*Buffer)
	assert.Equal(t, 100, buf.Len())

	require.NoError(t, buf.Play(false))
	assert.True(t, buf.IsPlaying())
	out := b.Render(150)
	assertLevel(t, out[:100], 0.5)
	assertLevel(t, out[100:], 0)
	assert.False(t, buf.IsPlaying())
	assert.Equal(t, 100, buf.Position())

	// replay from the start after the end
	require.NoError(t, buf.Play(false))
	assertLevel(t, b.Render(100), 0.5)
}

func TestLoop(t *testing.T) {
	b := newBackend(t)
	buf, err := b.NewBuffer(constClip(44100, 100, 0.25), audio.MusicBuffer)
	require.NoError(t, err)
	require.NoError(t, buf.Play(true))
	assertLevel(t, b.Render(350), 0.25)
	assert.True(t, buf.IsPlaying())
	assert.Equal(t, 50, buf.(*Buffer).Position())
}

func TestStopKeepsPosition(t *testing.T) {
	b := newBackend(t)
	ab, err := b.NewBuffer(constClip(44100, 100, 0.5), audio.SoundBuffer)
	require.NoError(t, err)
	buf := ab.(*Buffer)

	require.NoError(t, buf.Play(false))
	b.Render(40)
	buf.Stop()
	assertLevel(t, b.Render(10), 0)
	assert.Equal(t, 40, buf.Position())

	require.NoError(t, buf.Play(false))
	out := b.Render(70)
	assertLevel(t, out[:60], 0.5)
	assertLevel(t, out[60:], 0)

	buf.Reset()
	assert.Equal(t, 0, buf.Position())
	assert.False(t, buf.IsPlaying())
}

func TestPlayTwice(t *testing.T) {
	b := newBackend(t)
	buf, err := b.NewBuffer(constClip(44100, 100, 0.5), audio.SoundBuffer)
	require.NoError(t, err)
	require.NoError(t, buf.Play(false))
	buf.Stop()
	require.NoError(t, buf.Play(false))
	require.NoError(t, buf.Play(false))
	// one voice only
	assertLevel(t, b.Render(50), 0.5)
}

func TestVolume(t *testing.T) {
	b := newBackend(t)
	snd, err := b.NewBuffer(constClip(44100, 100, 0.5), audio.SoundBuffer)
	require.NoError(t, err)
	mus, err := b.NewBuffer(constClip(44100, 100, 0.25), audio.MusicBuffer)
	require.NoError(t, err)

	snd.SetVolume(0.5)
	assert.Equal(t, float32(0.5), snd.Volume())
	b.SetVolume(audio.MusicBuffer, 0)
	require.NoError(t, snd.Play(false))
	require.NoError(t, mus.Play(false))
	assertLevel(t, b.Render(20), 0.25)

	b.SetVolume(audio.MusicBuffer, 1)
	b.SetVolume(audio.SoundBuffer, 0.5)
	assertLevel(t, b.Render(20), 0.125+0.25)
}

func TestSuspend(t *testing.T) {
	b := newBackend(t)
	buf, err := b.NewBuffer(constClip(44100, 100, 0.5), audio.SoundBuffer)
	require.NoError(t, err)
	require.NoError(t, buf.Play(true))
	require.NoError(t, b.Suspend())
	assertLevel(t, b.Render(20), 0)
	require.NoError(t, b.Resume())
	assertLevel(t, b.Render(20), 0.5)
	assert.Equal(t, 20, buf.(*Buffer).Position())
}

func TestResample(t *testing.T) {
	b := newBackend(t)
	buf, err := b.NewBuffer(constClip(22050, 1000, 0.5), audio.SoundBuffer)
	require.NoError(t, err)
	assert.InDelta(t, 2000, buf.(*Buffer).Len(), 8)
}

func TestRelease(t *testing.T) {
	b := newBackend(t)
	buf, err := b.NewBuffer(constClip(44100, 100, 0.5), audio.SoundBuffer)
	require.NoError(t, err)
	require.NoError(t, buf.Play(true))
	buf.Release()
	assertLevel(t, b.Render(10), 0)
	assert.ErrorIs(t, buf.Play(false), audio.ErrNotFound)
}

func TestLoadWAV(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(fn)
	require.NoError(t, err)
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, clipStreamer(constClip(22050, 300, 0.5)), format))
	require.NoError(t, f.Close())

	f, err = os.Open(fn)
	require.NoError(t, err)
	defer f.Close()
	c, err := LoadWAV(f)
	require.NoError(t, err)
	assert.Equal(t, 22050, c.SampleRate)
	require.Len(t, c.Samples, 300)
	assert.InDelta(t, 0.5, c.Samples[150][0], 1e-3)
	assert.InDelta(t, -0.5, c.Samples[150][1], 1e-3)
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, audio.Backends.Names(), "mixer")
	f, err := audio.NewFactory("mixer", "^1", audio.Settings{SampleRate: 8000, SoundVolume: 1, MusicVolume: 1})
	require.NoError(t, err)
	e, err := f.Engine()
	require.NoError(t, err)
	assert.Equal(t, "mixer", e.Name())
	assert.Equal(t, beep.SampleRate(8000), e.Backend().(*Backend).SampleRate())
	require.NoError(t, f.Close())
}
