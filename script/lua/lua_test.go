// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lua

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cogentcore.org/engine/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModule(t *testing.T) script.Module {
	m, err := New().NewModule("test")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRunString(t *testing.T) {
	m := newModule(t)
	v, err := m.RunString(context.Background(), "x = 40 + 2\nreturn x, 'ignored'")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	v, err = m.Value("x")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	v, err = m.RunString(context.Background(), "y = 1")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = m.RunString(context.Background(), "this is not lua")
	assert.ErrorContains(t, err, "lua test")
}

func TestCall(t *testing.T) {
	m := newModule(t)
	_, err := m.RunString(context.Background(), `
function greet(name, n)
	return string.rep("hi " .. name .. " ", n)
end
function sum(t)
	local s = 0
	for _, v in ipairs(t) do s = s + v end
	return s
end`)
	require.NoError(t, err)

	v, err := m.Call(context.Background(), "greet", "bob", 2)
	require.NoError(t, err)
	assert.Equal(t, "hi bob hi bob ", v)

	v, err = m.Call(context.Background(), "sum", []any{1, 2.5, int64(3)})
	require.NoError(t, err)
	assert.Equal(t, 6.5, v)

	_, err = m.Call(context.Background(), "missing")
	assert.ErrorIs(t, err, script.ErrNotFunction)
	_, err = m.Call(context.Background(), "sum", struct{}{})
	assert.ErrorIs(t, err, script.ErrUnsupportedType)
}

func TestValues(t *testing.T) {
	m := newModule(t)
	require.NoError(t, m.SetValue("cfg", map[string]any{
		"name":  "octree",
		"depth": 6,
		"on":    true,
		"list":  []any{"a", "b"},
	}))
	v, err := m.RunString(context.Background(), "return cfg.name .. cfg.depth .. tostring(cfg.on) .. #cfg.list")
	require.NoError(t, err)
	assert.Equal(t, "octree6true2", v)

	v, err = m.Value("cfg")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":  "octree",
		"depth": 6.0,
		"on":    true,
		"list":  []any{"a", "b"},
	}, v)

	v, err = m.Value("undefined")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestGoFunc(t *testing.T) {
	m := newModule(t)
	var got []any
	require.NoError(t, m.SetValue("record", script.Func(func(args ...any) (any, error) {
		got = append(got, args...)
		return len(got), nil
	})))
	require.NoError(t, m.SetValue("fail", func(args ...any) (any, error) {
		return nil, errors.New("no way")
	}))

	v, err := m.RunString(context.Background(), "record('a', 1); return record(true)")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, []any{"a", 1.0, true}, got)

	_, err = m.RunString(context.Background(), "fail()")
	assert.ErrorContains(t, err, "no way")

	v, err = m.RunString(context.Background(), "local ok = pcall(fail); return ok")
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestCancel(t *testing.T) {
	m := newModule(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := m.RunString(ctx, "while true do end")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "context deadline exceeded"), err.Error())

	// the module is still usable
	v, err := m.RunString(context.Background(), "return 1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestClosed(t *testing.T) {
	m := newModule(t)
	require.NoError(t, m.Close())
	_, err := m.RunString(context.Background(), "return 1")
	assert.ErrorIs(t, err, script.ErrClosed)
	require.NoError(t, m.Close())
}
