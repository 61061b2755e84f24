// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/engine/audio"
	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/iox"
	"cogentcore.org/engine/base/iox/tomlx"
	"cogentcore.org/engine/base/iox/yamlx"
	"cogentcore.org/engine/base/logx"
	"cogentcore.org/engine/math32"
	"cogentcore.org/engine/render"
	"cogentcore.org/engine/scene"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
)

// ErrConfig is returned for an invalid configuration, including a
// backend that is missing or does not satisfy its version constraint.
var ErrConfig = errors.New("engine: invalid config")

// Config is the configuration of a [Context]. Files are read over
// the defaults, so a file only needs the settings it changes.
type Config struct {
	Context   ContextConfig   `toml:"context" yaml:"context"`
	Graphics  GraphicsConfig  `toml:"graphics" yaml:"graphics"`
	Scene     SceneConfig     `toml:"scene" yaml:"scene"`
	Audio     AudioConfig     `toml:"audio" yaml:"audio"`
	Resources ResourcesConfig `toml:"resources" yaml:"resources"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// ContextConfig selects the backend of each subsystem by name.
// Versions are semantic version constraints on the backend API,
// where empty allows any version.
type ContextConfig struct {
	Render        string `toml:"render" yaml:"render"`
	RenderVersion string `toml:"render_version" yaml:"render_version"`
	Audio         string `toml:"audio" yaml:"audio"`
	AudioVersion  string `toml:"audio_version" yaml:"audio_version"`
	Input         string `toml:"input" yaml:"input"`
	InputVersion  string `toml:"input_version" yaml:"input_version"`
	Scene         string `toml:"scene" yaml:"scene"`
	SceneVersion  string `toml:"scene_version" yaml:"scene_version"`

	// Script is optional: no script factory is made when empty.
	Script        string `toml:"script" yaml:"script"`
	ScriptVersion string `toml:"script_version" yaml:"script_version"`
}

// GraphicsConfig are the frame settings of the render device.
type GraphicsConfig struct {
	Width              int    `toml:"width" yaml:"width"`
	Height             int    `toml:"height" yaml:"height"`
	ColorFormat        string `toml:"color_format" yaml:"color_format"`
	DepthStencilFormat string `toml:"depth_stencil_format" yaml:"depth_stencil_format"`
	SampleCount        int    `toml:"sample_count" yaml:"sample_count"`
	SampleQuality      int    `toml:"sample_quality" yaml:"sample_quality"`
	FullScreen         bool   `toml:"full_screen" yaml:"full_screen"`
	SyncInterval       int    `toml:"sync_interval" yaml:"sync_interval"`
	HDR                bool   `toml:"hdr" yaml:"hdr"`
	Gamma              bool   `toml:"gamma" yaml:"gamma"`
}

// SceneConfig configures the spatial index of the scene manager.
type SceneConfig struct {
	MaxDepth int        `toml:"max_depth" yaml:"max_depth"`
	WorldMin [3]float32 `toml:"world_min" yaml:"world_min"`
	WorldMax [3]float32 `toml:"world_max" yaml:"world_max"`

	// SmallObjectThreshold is the fraction of the viewport below which
	// an object is culled. Zero disables small object culling.
	SmallObjectThreshold float32 `toml:"small_object_threshold" yaml:"small_object_threshold"`
}

type AudioConfig struct {
	SampleRate  int     `toml:"sample_rate" yaml:"sample_rate"`
	SoundVolume float32 `toml:"sound_volume" yaml:"sound_volume"`
	MusicVolume float32 `toml:"music_volume" yaml:"music_volume"`
}

// ResourcesConfig lists the host directories searched for resources,
// in order. A leading ~ is the home directory.
type ResourcesConfig struct {
	Paths []string `toml:"paths" yaml:"paths"`
}

type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
}

// Defaults sets the null backends with an octree scene.
func (c *Config) Defaults() {
	c.Context = ContextConfig{
		Render: "null", RenderVersion: "^" + render.APIVersion,
		Audio: "null", AudioVersion: "^" + audio.APIVersion,
		Input: "null",
		Scene: "octree", SceneVersion: "^" + scene.APIVersion,
	}
	var rs render.RenderSettings
	rs.Defaults()
	c.Graphics = GraphicsConfig{
		Width:              rs.Width,
		Height:             rs.Height,
		ColorFormat:        rs.ColorFormat.String(),
		DepthStencilFormat: rs.DepthStencilFormat.String(),
		SampleCount:        rs.SampleCount,
		SampleQuality:      rs.SampleQuality,
		SyncInterval:       rs.SyncInterval,
	}
	var so scene.Options
	so.Defaults()
	c.Scene = SceneConfig{
		MaxDepth: so.MaxDepth,
		WorldMin: [3]float32{so.WorldBound.Min.X, so.WorldBound.Min.Y, so.WorldBound.Min.Z},
		WorldMax: [3]float32{so.WorldBound.Max.X, so.WorldBound.Max.Y, so.WorldBound.Max.Z},
	}
	var as audio.Settings
	as.Defaults()
	c.Audio = AudioConfig{SampleRate: as.SampleRate, SoundVolume: as.SoundVolume, MusicVolume: as.MusicVolume}
	c.Resources = ResourcesConfig{}
	c.Log = LogConfig{Level: "info"}
}

// NewConfig returns a config with [Config.Defaults] set.
func NewConfig() Config {
	var c Config
	c.Defaults()
	return c
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() Config {
	var n Config
	errors.Log(copier.CopyWithOption(&n, c, copier.Option{DeepCopy: true}))
	return n
}

// RenderSettings returns the device settings of the graphics section.
func (c *Config) RenderSettings() (render.RenderSettings, error) {
	g := &c.Graphics
	rs := render.RenderSettings{
		Width:         g.Width,
		Height:        g.Height,
		SampleCount:   g.SampleCount,
		SampleQuality: g.SampleQuality,
		FullScreen:    g.FullScreen,
		SyncInterval:  g.SyncInterval,
	}
	var err error
	if rs.ColorFormat, err = render.ParseElementFormat(g.ColorFormat); err != nil {
		return rs, fmt.Errorf("%w: graphics: %w", ErrConfig, err)
	}
	if rs.DepthStencilFormat, err = render.ParseElementFormat(g.DepthStencilFormat); err != nil {
		return rs, fmt.Errorf("%w: graphics: %w", ErrConfig, err)
	}
	if !rs.DepthStencilFormat.IsDepth() {
		return rs, fmt.Errorf("%w: graphics: %s is not a depth format", ErrConfig, rs.DepthStencilFormat)
	}
	return rs, nil
}

// SceneOptions returns the index options of the scene section.
func (c *Config) SceneOptions() scene.Options {
	s := &c.Scene
	return scene.Options{
		WorldBound: math32.B3(s.WorldMin[0], s.WorldMin[1], s.WorldMin[2], s.WorldMax[0], s.WorldMax[1], s.WorldMax[2]),
		MaxDepth:   s.MaxDepth,
	}
}

// AudioSettings returns the device settings of the audio section.
func (c *Config) AudioSettings() audio.Settings {
	return audio.Settings{SampleRate: c.Audio.SampleRate, SoundVolume: c.Audio.SoundVolume, MusicVolume: c.Audio.MusicVolume}
}

// Validate checks the settings that do not depend on the backends.
func (c *Config) Validate() error {
	if c.Context.Render == "" || c.Context.Audio == "" || c.Context.Input == "" || c.Context.Scene == "" {
		return fmt.Errorf("%w: context: render, audio, input and scene backends are required", ErrConfig)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: graphics: invalid size %dx%d", ErrConfig, c.Graphics.Width, c.Graphics.Height)
	}
	if _, err := c.RenderSettings(); err != nil {
		return err
	}
	if c.Scene.MaxDepth < 0 {
		return fmt.Errorf("%w: scene: negative max depth", ErrConfig)
	}
	if err := scene.CheckBound(c.SceneOptions().WorldBound); err != nil {
		return fmt.Errorf("%w: scene: world bound: %w", ErrConfig, err)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio: invalid sample rate %d", ErrConfig, c.Audio.SampleRate)
	}
	if _, err := logx.LevelFromString(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log: %w", ErrConfig, err)
	}
	return nil
}

// decoderFor returns the decoder for the extension of a config file.
func decoderFor(filename string) (iox.DecoderFunc, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return tomlx.NewDecoder, nil
	case ".yaml", ".yml":
		return yamlx.NewDecoder, nil
	}
	return nil, fmt.Errorf("%w: %s: unknown config file type", ErrConfig, filename)
}

// OpenConfig reads a TOML or YAML config file over the defaults and
// validates it. A leading ~ in the file name is the home directory.
func OpenConfig(filename string) (Config, error) {
	c := NewConfig()
	fn, err := homedir.Expand(filename)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	dec, err := decoderFor(fn)
	if err != nil {
		return c, err
	}
	if err := iox.Open(&c, fn, dec); err != nil {
		return c, fmt.Errorf("%w: %s: %w", ErrConfig, fn, err)
	}
	return c, c.Validate()
}

// ReadConfig reads config data of the given type (toml or yaml) over
// the defaults and validates it.
func ReadConfig(data []byte, typ string) (Config, error) {
	c := NewConfig()
	dec, err := decoderFor("." + typ)
	if err != nil {
		return c, err
	}
	if err := iox.ReadBytes(&c, data, dec); err != nil {
		return c, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return c, c.Validate()
}
