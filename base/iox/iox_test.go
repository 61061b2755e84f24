// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iox_test

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"cogentcore.org/engine/base/iox"
	"cogentcore.org/engine/base/iox/tomlx"
	"cogentcore.org/engine/base/iox/yamlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level struct {
	Name  string
	Depth int
}

func TestTOML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "level.toml")
	require.NoError(t, tomlx.Save(&level{Name: "cave", Depth: 5}, fn))
	var l level
	require.NoError(t, tomlx.Open(&l, fn))
	assert.Equal(t, level{Name: "cave", Depth: 5}, l)

	assert.Error(t, tomlx.ReadBytes(&l, []byte("Unknown = 1")))
}

func TestYAML(t *testing.T) {
	b, err := yamlx.WriteBytes(&level{Name: "cave", Depth: 5})
	require.NoError(t, err)
	var l level
	require.NoError(t, yamlx.ReadBytes(&l, b))
	assert.Equal(t, level{Name: "cave", Depth: 5}, l)

	assert.Error(t, yamlx.ReadBytes(&l, []byte("unknown: 1")))
}

func TestOpenFS(t *testing.T) {
	fsys := fstest.MapFS{"l.yaml": {Data: []byte("name: hall\ndepth: 2\n")}}
	var l level
	require.NoError(t, iox.OpenFS(&l, fsys, "l.yaml", yamlx.NewDecoder))
	assert.Equal(t, level{Name: "hall", Depth: 2}, l)
	assert.Error(t, iox.OpenFS(&l, fsys, "missing.yaml", yamlx.NewDecoder))
}
