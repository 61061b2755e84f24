// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestBackends(t *testing.T) {
	out := run(t, "backends")
	for _, s := range []string{"render", "soft", "opengles2", "audio", "mixer", "input", "term", "script", "lua", "scene", "octree", "linear"} {
		assert.Contains(t, out, s)
	}
	assert.Contains(t, out, "v1.0.0")
}

func TestConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "kge.toml")
	require.NoError(t, os.WriteFile(fn, []byte("[context]\nrender = \"soft\"\n"), 0666))
	out := run(t, "config", "--config", fn, "--format", "yaml")
	assert.Contains(t, out, "render: soft")
	assert.Contains(t, out, "scene: octree")

	out = run(t, "config")
	assert.Regexp(t, `render = ['"]null['"]`, out)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "--format", "ini"})
	assert.Error(t, cmd.Execute())
}

func TestBench(t *testing.T) {
	out := run(t, "bench", "-n", "300", "-f", "8", "--extent", "50")
	assert.Contains(t, out, "null (octree index)")
	assert.Contains(t, out, "frames")
	assert.Contains(t, out, "rendered/frame")

	out = run(t, "bench", "-n", "50", "-f", "4", "--gl")
	assert.Contains(t, out, "opengl (octree index)")
	assert.Contains(t, out, "DrawArrays")
}
