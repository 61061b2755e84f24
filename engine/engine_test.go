// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cogentcore.org/engine/audio"
	"cogentcore.org/engine/audio/null"
	"cogentcore.org/engine/base/iox/imagex"
	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/render"
	"cogentcore.org/engine/scene"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, "null", c.Context.Render)
	assert.Equal(t, "octree", c.Context.Scene)
	assert.Equal(t, "RGBA8", c.Graphics.ColorFormat)
	rs, err := c.RenderSettings()
	require.NoError(t, err)
	assert.Equal(t, render.FormatD24S8, rs.DepthStencilFormat)
	assert.Equal(t, 6, c.SceneOptions().MaxDepth)

	d := c.Clone()
	d.Resources.Paths = append(d.Resources.Paths, "x")
	assert.Empty(t, c.Resources.Paths)

	bad := NewConfig()
	bad.Graphics.DepthStencilFormat = "rgba8"
	assert.ErrorIs(t, bad.Validate(), ErrConfig)
	bad = NewConfig()
	bad.Scene.WorldMax = [3]float32{-2000, 0, 0}
	assert.ErrorIs(t, bad.Validate(), ErrConfig)
	bad = NewConfig()
	bad.Context.Input = ""
	assert.ErrorIs(t, bad.Validate(), ErrConfig)
	bad = NewConfig()
	bad.Log.Level = "loud"
	assert.ErrorIs(t, bad.Validate(), ErrConfig)
}

const tomlConfig = `
[context]
render = "soft"
script = "lua"

[graphics]
width = 640
height = 480
color_format = "rgba16f"

[scene]
max_depth = 4
small_object_threshold = 0.001
`

const yamlConfig = `
context:
  scene: linear
audio:
  sample_rate: 22050
log:
  level: debug
`

func writeFile(t *testing.T, name, data string) string {
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0666))
	return fn
}

func TestOpenConfig(t *testing.T) {
	c, err := OpenConfig(writeFile(t, "kge.toml", tomlConfig))
	require.NoError(t, err)
	assert.Equal(t, "soft", c.Context.Render)
	assert.Equal(t, "lua", c.Context.Script)
	assert.Equal(t, "null", c.Context.Audio)
	assert.Equal(t, 640, c.Graphics.Width)
	assert.Equal(t, 480, c.Graphics.Height)
	assert.Equal(t, 4, c.Scene.MaxDepth)
	rs, err := c.RenderSettings()
	require.NoError(t, err)
	assert.Equal(t, render.FormatRGBA16F, rs.ColorFormat)

	c, err = OpenConfig(writeFile(t, "kge.yml", yamlConfig))
	require.NoError(t, err)
	assert.Equal(t, "linear", c.Context.Scene)
	assert.Equal(t, 22050, c.AudioSettings().SampleRate)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 800, c.Graphics.Width)

	_, err = OpenConfig(writeFile(t, "kge.ini", "render = soft"))
	assert.ErrorIs(t, err, ErrConfig)
	_, err = OpenConfig(writeFile(t, "kge.toml", "[graphics]\nbogus = 1\n"))
	assert.ErrorIs(t, err, ErrConfig)
	_, err = OpenConfig(writeFile(t, "kge.yaml", "graphics:\n  bogus: 1\n"))
	assert.ErrorIs(t, err, ErrConfig)
	_, err = OpenConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrConfig)

	c, err = ReadConfig([]byte("[graphics]\nwidth = 320\n"), "toml")
	require.NoError(t, err)
	assert.Equal(t, 320, c.Graphics.Width)
}

func testConfig() Config {
	c := NewConfig()
	c.Context.Render = "soft"
	return c
}

func TestNewErrors(t *testing.T) {
	c := testConfig()
	c.Context.Render = "missing"
	_, err := New(c)
	assert.ErrorIs(t, err, ErrConfig)

	c = testConfig()
	c.Context.RenderVersion = "^2"
	_, err = New(c)
	assert.ErrorIs(t, err, ErrConfig)

	c = testConfig()
	c.Context.Script = "python"
	_, err = New(c)
	assert.ErrorIs(t, err, ErrConfig)

	c = testConfig()
	c.Context.Scene = "bsp"
	_, err = New(c)
	assert.ErrorIs(t, err, ErrConfig)
}

func newContext(t *testing.T, c Config) *Context {
	ctx, err := New(c)
	require.NoError(t, err)
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

func TestContextLifecycle(t *testing.T) {
	c := newContext(t, testConfig())
	assert.Nil(t, c.ScriptFactory())
	assert.Equal(t, "soft", c.RenderFactory().Name())
	assert.Equal(t, "octree", c.SceneManager().Name())

	re, err := c.RenderFactory().Engine()
	require.NoError(t, err)
	ae, err := c.AudioFactory().Engine()
	require.NoError(t, err)

	require.NoError(t, c.Suspend())
	assert.True(t, c.Suspended())
	assert.Equal(t, render.EngineSuspended, re.State())
	require.NoError(t, c.Suspend())

	require.NoError(t, c.Resume())
	assert.False(t, c.Suspended())
	assert.Equal(t, render.EngineRunning, re.State())

	ab := ae.Backend().(*null.Backend)
	require.NoError(t, c.Suspend())
	ab.FailResume = true
	assert.Error(t, c.Resume())
	assert.True(t, c.Suspended())
	assert.True(t, ab.Suspended)
	require.NoError(t, c.Resume())
	assert.False(t, c.Suspended())
	assert.False(t, ab.Suspended)

	require.NoError(t, c.Close())
	assert.Equal(t, render.EngineClosed, re.State())
	assert.ErrorIs(t, ae.Play("none", false), audio.ErrClosed)
	require.NoError(t, c.Close())
}

func triangle(t *testing.T, e *render.Engine) render.RenderLayout {
	vb, err := e.MakeBuffer(render.BufferDesc{Type: render.VertexBuffer}, make([]byte, 36))
	require.NoError(t, err)
	l, err := e.MakeRenderLayout()
	require.NoError(t, err)
	require.NoError(t, l.BindVertexStream(vb, render.VertexElement{Usage: render.UsagePosition, Format: render.FormatRGB32F}))
	return l
}

func TestApp(t *testing.T) {
	c := newContext(t, testConfig())
	re, err := c.RenderFactory().Engine()
	require.NoError(t, err)

	front := scene.NewObject("front", math32.B3(-1, -1, -1, 1, 1, 1))
	front.Layout = triangle(t, re)
	behind := scene.NewObject("behind", math32.B3(-1, -1, 20, 1, 1, 22))
	behind.Layout = triangle(t, re)
	require.NoError(t, c.SceneManager().Add(front))
	require.NoError(t, c.SceneManager().Add(behind))

	frames0 := testutil.ToFloat64(frameCount.WithLabelValues("soft"))
	draws0 := testutil.ToFloat64(drawCalls.WithLabelValues("soft"))

	app := NewApp(c, nil)
	updates := 0
	app.OnUpdate = func(app *App, dt time.Duration) error {
		updates++
		return nil
	}
	require.NoError(t, app.Run(context.Background(), 3))
	assert.Equal(t, uint64(3), app.NumFrames())
	assert.Equal(t, 3, updates)
	assert.Equal(t, math32.Inside, front.VisibleMark())
	assert.Equal(t, math32.Outside, behind.VisibleMark())
	assert.Equal(t, uint64(3), re.Stats().DrawCalls)
	st := c.SceneManager().Stats()
	assert.Equal(t, 1, st.NumObjectsRendered)
	assert.Equal(t, 1, st.NumObjectsCulled)

	assert.Equal(t, frames0+3, testutil.ToFloat64(frameCount.WithLabelValues("soft")))
	assert.Equal(t, draws0+3, testutil.ToFloat64(drawCalls.WithLabelValues("soft")))
	assert.Equal(t, float64(1), testutil.ToFloat64(objectsCulled.WithLabelValues("soft")))

	require.NoError(t, c.Suspend())
	require.NoError(t, app.Frame())
	assert.Equal(t, uint64(3), app.NumFrames())
	require.NoError(t, c.Resume())

	app.OnUpdate = func(app *App, dt time.Duration) error {
		if app.NumFrames() == 5 {
			app.Quit()
		}
		return nil
	}
	require.NoError(t, app.Run(context.Background(), 0))
	assert.Equal(t, uint64(6), app.NumFrames())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, app.Run(ctx, 0), context.Canceled)
}

func TestCamera(t *testing.T) {
	cm := NewCamera()
	v := cm.View()
	assert.Equal(t, math32.Vec3(0, 0, 10), v.Eye)
	assert.True(t, v.Frustum.IntersectBox(math32.B3(-1, -1, -1, 1, 1, 1)).Visible())
	assert.False(t, v.Frustum.IntersectBox(math32.B3(-1, -1, 20, 1, 1, 22)).Visible())

	cm.Pan(math32.Vec3(100, 0, 0))
	v = cm.View()
	assert.False(t, v.Frustum.IntersectBox(math32.B3(-1, -1, -1, 1, 1, 1)).Visible())
	assert.True(t, v.Frustum.IntersectBox(math32.B3(99, -1, -1, 101, 1, 1)).Visible())

	cm.Zoom(50)
	assert.InDelta(t, 5, cm.ViewVector().Length(), 1e-4)
}

func TestWatchConfig(t *testing.T) {
	fn := writeFile(t, "kge.toml", "[graphics]\nwidth = 320\n")
	var mu sync.Mutex
	var got Config
	var gotErr error
	cw, err := WatchConfig(fn, func(c Config, err error) {
		mu.Lock()
		got, gotErr = c, err
		mu.Unlock()
	})
	require.NoError(t, err)
	defer cw.Close()

	require.NoError(t, os.WriteFile(fn, []byte("[graphics]\nwidth = 1024\n"), 0666))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return gotErr == nil && got.Graphics.Width == 1024
	}, 5*time.Second, 10*time.Millisecond)
}

type toneStreamer struct{ n int }

func (s *toneStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.n <= 0 {
		return 0, false
	}
	n := min(len(samples), s.n)
	for i := range n {
		samples[i] = [2]float64{0.25, -0.25}
	}
	s.n -= n
	return n, true
}

func (s *toneStreamer) Err() error { return nil }

func TestLoadResources(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "tone.wav"))
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, &toneStreamer{n: 441}, beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}))
	require.NoError(t, f.Close())
	im := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	im.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	pf, err := os.Create(filepath.Join(dir, "red.png"))
	require.NoError(t, err)
	require.NoError(t, imagex.Write(im, pf, imagex.PNG))
	require.NoError(t, pf.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.lua"), []byte("speed = 3\nfunction double(x) return 2 * x end\n"), 0666))

	cfg := testConfig()
	cfg.Context.Audio = "mixer"
	cfg.Context.Script = "lua"
	cfg.Resources.Paths = []string{dir}
	c := newContext(t, cfg)

	buf, err := c.LoadSound("tone.wav", audio.SoundBuffer)
	require.NoError(t, err)
	assert.Equal(t, audio.SoundBuffer, buf.Kind())
	ae, err := c.AudioFactory().Engine()
	require.NoError(t, err)
	assert.Equal(t, 1, ae.NumBuffers())
	require.NoError(t, ae.Play("tone.wav", false))

	_, err = c.LoadSound("init.lua", audio.SoundBuffer)
	assert.Error(t, err)
	_, err = c.LoadSound("missing.wav", audio.SoundBuffer)
	assert.Error(t, err)

	tx, err := c.LoadTexture("red.png", true)
	require.NoError(t, err)
	assert.Equal(t, 4, tx.Width())
	assert.Equal(t, 2, tx.Height())
	assert.Equal(t, render.FormatRGBA8, tx.Format())
	_, err = c.LoadTexture("tone.wav", false)
	assert.Error(t, err)

	m, err := c.LoadScript(context.Background(), "init.lua")
	require.NoError(t, err)
	v, err := m.Value("speed")
	require.NoError(t, err)
	assert.Equal(t, float64(3), v)
	v, err = m.Call(context.Background(), "double", 4)
	require.NoError(t, err)
	assert.Equal(t, float64(8), v)

	noScript := newContext(t, testConfig())
	_, err = noScript.LoadScript(context.Background(), "init.lua")
	assert.ErrorIs(t, err, ErrConfig)
}
