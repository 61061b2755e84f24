// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resloader

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func memFS(t *testing.T, files map[string]string) hackpadfs.FS {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	for name, data := range files {
		if dir := filepath.ToSlash(filepath.Dir(name)); dir != "." {
			require.NoError(t, hackpadfs.MkdirAll(fsys, dir, 0o755))
		}
		require.NoError(t, hackpadfs.WriteFullFile(fsys, name, []byte(data), 0o644))
	}
	return fsys
}

func TestNormPath(t *testing.T) {
	assert.Equal(t, ".", NormPath(""))
	assert.Equal(t, ".", NormPath("/"))
	assert.Equal(t, "a/b", NormPath("/a/./b/"))
	assert.Equal(t, "b", NormPath("a/../b"))
}

func TestSearchPaths(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	require.NoError(t, l.Mount("base", memFS(t, map[string]string{
		"textures/wall.png": string(pngHeader),
		"scripts/main.lua":  "base",
	})))
	require.NoError(t, l.Mount("mod", memFS(t, map[string]string{
		"scripts/main.lua": "mod",
	})))

	_, err = l.Locate("scripts/main.lua")
	assert.ErrorIs(t, err, ErrNotFound)

	l.AddPath("/mod/")
	l.AddPath("base")
	l.AddPath("mod")
	assert.Equal(t, []string{".", "mod", "base"}, l.Paths())

	p, err := l.Locate("scripts/main.lua")
	require.NoError(t, err)
	assert.Equal(t, "mod/scripts/main.lua", p)
	data, err := l.ReadFile("scripts/main.lua")
	require.NoError(t, err)
	assert.Equal(t, "mod", string(data))

	// directories are not resources
	_, err = l.Locate("scripts")
	assert.ErrorIs(t, err, ErrNotFound)

	// full paths resolve from the root
	p, err = l.Locate("/base/scripts/main.lua")
	require.NoError(t, err)
	assert.Equal(t, "base/scripts/main.lua", p)

	assert.True(t, l.DelPath("mod"))
	assert.False(t, l.DelPath("mod"))
	data, err = l.ReadFile("scripts/main.lua")
	require.NoError(t, err)
	assert.Equal(t, "base", string(data))
}

func TestOpenSniff(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	wav := "RIFF\x24\x00\x00\x00WAVEfmt "
	require.NoError(t, l.Mount("res", memFS(t, map[string]string{
		"wall.png":  string(pngHeader),
		"shot.wav":  wav,
		"notes.txt": "plain text",
		"empty":     "",
	})))
	l.AddPath("res")

	res, err := l.Open("wall.png")
	require.NoError(t, err)
	assert.Equal(t, "res/wall.png", res.Path)
	assert.Equal(t, "png", res.Type.Extension)
	assert.Equal(t, "image/png", res.MIME())
	assert.True(t, res.IsImage())
	// the sniffed bytes are still read
	data, err := io.ReadAll(res)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
	require.NoError(t, res.Close())

	res, err = l.Open("shot.wav")
	require.NoError(t, err)
	assert.True(t, res.IsAudio())
	require.NoError(t, res.Close())

	for _, name := range []string{"notes.txt", "empty"} {
		res, err = l.Open(name)
		require.NoError(t, err)
		assert.Empty(t, res.Kind(), name)
		require.NoError(t, res.Close())
	}

	_, err = l.Open("missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "level.toml"), []byte("depth = 4"), 0o644))

	l, err := New()
	require.NoError(t, err)
	mp, err := l.AddDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "dirs/1", mp)
	assert.Contains(t, l.Paths(), mp)

	data, err := l.ReadFile("level.toml")
	require.NoError(t, err)
	assert.Equal(t, "depth = 4", string(data))
}
