// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package audio_test

import (
	"testing"
	"time"

	"cogentcore.org/engine/audio"
	"cogentcore.org/engine/audio/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) (*audio.Engine, *null.Backend) {
	var s audio.Settings
	s.Defaults()
	b := null.New()
	e, err := audio.NewEngine(b, s)
	require.NoError(t, err)
	return e, b
}

func clip(n int) *audio.Clip {
	return &audio.Clip{SampleRate: 44100, Samples: make([][2]float64, n)}
}

func TestClipDuration(t *testing.T) {
	assert.Equal(t, time.Second/2, clip(22050).Duration())
	assert.Equal(t, time.Duration(0), (&audio.Clip{}).Duration())
}

func TestBuffers(t *testing.T) {
	e, _ := newEngine(t)
	_, err := e.AddBuffer("shot", clip(10), audio.SoundBuffer)
	require.NoError(t, err)
	_, err = e.AddBuffer("theme", clip(10), audio.MusicBuffer)
	require.NoError(t, err)
	assert.Equal(t, 2, e.NumBuffers())

	_, err = e.AddBuffer("shot", clip(10), audio.SoundBuffer)
	assert.ErrorIs(t, err, audio.ErrDuplicate)
	_, err = e.AddBuffer("empty", clip(0), audio.SoundBuffer)
	assert.ErrorIs(t, err, audio.ErrEmptyClip)

	buf, ok := e.Buffer("theme")
	require.True(t, ok)
	assert.Equal(t, audio.MusicBuffer, buf.Kind())

	require.NoError(t, e.Play("theme", true))
	assert.True(t, buf.IsPlaying())
	assert.True(t, buf.(*null.Buffer).Looping())
	require.NoError(t, e.Stop("theme"))
	assert.False(t, buf.IsPlaying())

	assert.ErrorIs(t, e.Play("missing", false), audio.ErrNotFound)
	assert.ErrorIs(t, e.Stop("missing"), audio.ErrNotFound)

	assert.True(t, e.DelBuffer("shot"))
	assert.False(t, e.DelBuffer("shot"))
	assert.Equal(t, 1, e.NumBuffers())
}

func TestVolumes(t *testing.T) {
	e, b := newEngine(t)
	e.SetSoundVolume(2)
	assert.Equal(t, float32(1), e.SoundVolume())
	e.SetMusicVolume(-1)
	assert.Equal(t, float32(0), e.MusicVolume())
	e.SetMusicVolume(0.25)
	assert.Equal(t, [2]float32{1, 0.25}, b.Volumes)
}

func TestSuspendResume(t *testing.T) {
	e, b := newEngine(t)
	theme, err := e.AddBuffer("theme", clip(10), audio.MusicBuffer)
	require.NoError(t, err)
	shot, err := e.AddBuffer("shot", clip(10), audio.SoundBuffer)
	require.NoError(t, err)
	require.NoError(t, e.Play("theme", true))

	require.NoError(t, e.Suspend())
	assert.True(t, b.Suspended)
	assert.False(t, theme.IsPlaying())

	// played while suspended: starts on resume
	require.NoError(t, e.Play("shot", false))
	assert.False(t, shot.IsPlaying())

	require.NoError(t, e.Resume())
	assert.False(t, b.Suspended)
	assert.True(t, theme.IsPlaying())
	assert.True(t, theme.(*null.Buffer).Looping())
	assert.True(t, shot.IsPlaying())
}

func TestClose(t *testing.T) {
	e, b := newEngine(t)
	buf, err := e.AddBuffer("shot", clip(10), audio.SoundBuffer)
	require.NoError(t, err)
	require.NoError(t, e.Close())
	assert.True(t, b.Closed)
	assert.Equal(t, 0, e.NumBuffers())
	assert.ErrorIs(t, buf.Play(false), audio.ErrNotFound)
	assert.ErrorIs(t, e.Play("shot", false), audio.ErrClosed)
	require.NoError(t, e.Close())
}

func TestFactory(t *testing.T) {
	var s audio.Settings
	s.Defaults()
	_, err := audio.NewFactory("missing", "", s)
	assert.Error(t, err)

	f, err := audio.NewFactory("null", "^1", s)
	require.NoError(t, err)
	assert.Equal(t, "null", f.Name())
	assert.False(t, f.HasEngine())
	require.NoError(t, f.Suspend())

	e, err := f.Engine()
	require.NoError(t, err)
	e2, err := f.Engine()
	require.NoError(t, err)
	assert.Same(t, e, e2)

	require.NoError(t, f.Close())
	_, err = f.Engine()
	assert.ErrorIs(t, err, audio.ErrClosed)
}
