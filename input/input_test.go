// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input_test

import (
	"testing"

	"cogentcore.org/engine/input"
	"cogentcore.org/engine/input/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	actForward uint16 = iota + 1
	actJump
	actAny
)

func TestKeys(t *testing.T) {
	k, ok := input.KeyForChar('w')
	assert.True(t, ok)
	assert.Equal(t, input.KeyW, k)
	k, _ = input.KeyForChar('W')
	assert.Equal(t, input.KeyW, k)
	k, _ = input.KeyForChar('0')
	assert.Equal(t, input.Key0, k)
	k, _ = input.KeyForChar('/')
	assert.Equal(t, input.KeySlash, k)
	_, ok = input.KeyForChar('é')
	assert.False(t, ok)

	assert.Equal(t, "W", input.KeyW.String())
	assert.Equal(t, "7", input.Key7.String())
	assert.Equal(t, "F11", input.KeyF11.String())
	assert.Equal(t, "UpArrow", input.KeyUpArrow.String())
	assert.Equal(t, "Key(0xFF)", input.Key(0xFF).String())
}

func TestActionMap(t *testing.T) {
	m := input.NewActionMap(
		input.ActionDefine{Action: actForward, Key: input.KeyW},
		input.ActionDefine{Action: actJump, Key: input.KeySpace},
	)
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.HasAction(input.KeyW))
	assert.False(t, m.HasAction(input.KeyS))
	m.AddAction(input.ActionDefine{Action: actJump, Key: input.KeyW})
	id, ok := m.Action(input.KeyW)
	assert.True(t, ok)
	assert.Equal(t, actJump, id)

	c := m.Clone()
	c.AddAction(input.ActionDefine{Action: actAny, Key: input.KeyAnyKey})
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 3, c.Len())
}

func TestKeyboardState(t *testing.T) {
	var ks input.KeyboardState
	ks.Swap(func(k input.Key) bool { return k == input.KeyA })
	assert.True(t, ks.Key(input.KeyA))
	assert.True(t, ks.KeyDown(input.KeyA))
	assert.False(t, ks.KeyUp(input.KeyA))

	ks.Swap(func(k input.Key) bool { return k == input.KeyA })
	assert.True(t, ks.Key(input.KeyA))
	assert.False(t, ks.KeyDown(input.KeyA))

	ks.Swap(func(k input.Key) bool { return false })
	assert.False(t, ks.Key(input.KeyA))
	assert.True(t, ks.KeyUp(input.KeyA))
	assert.False(t, ks.Key(input.Key(300)))
}

func TestUpdate(t *testing.T) {
	b := null.New()
	e, err := input.NewEngine(b)
	require.NoError(t, err)
	assert.Equal(t, 1, e.NumDevices())
	assert.Equal(t, input.Keyboard, e.Device(0).Type())

	var got []input.Action
	m := input.NewActionMap(
		input.ActionDefine{Action: actForward, Key: input.KeyW},
		input.ActionDefine{Action: actJump, Key: input.KeySpace},
		input.ActionDefine{Action: actAny, Key: input.KeyAnyKey},
	)
	e.ActionMap(m, func(e *input.Engine, act input.Action) {
		got = append(got, act)
	})

	require.NoError(t, e.Update())
	assert.Empty(t, got)

	b.Keyboard.Press(input.KeySpace, input.KeyW, input.KeyQ)
	require.NoError(t, e.Update())
	require.Len(t, got, 3)
	// ordered by key: W (0x11) before Space (0x39), any key last
	assert.Equal(t, input.Action{ID: actForward, Key: input.KeyW, Type: input.Keyboard, Pressed: true, Held: true}, got[0])
	assert.Equal(t, actJump, got[1].ID)
	assert.Equal(t, actAny, got[2].ID)
	assert.True(t, got[2].Pressed)

	got = nil
	b.Keyboard.Release(input.KeySpace)
	require.NoError(t, e.Update())
	require.Len(t, got, 3)
	assert.True(t, got[0].Held)
	assert.False(t, got[0].Pressed)
	assert.Equal(t, input.Action{ID: actJump, Key: input.KeySpace, Type: input.Keyboard, Released: true}, got[1])
	assert.True(t, got[2].Held)
	assert.True(t, got[2].Released)

	got = nil
	b.Keyboard.Release(input.KeyW, input.KeyQ)
	require.NoError(t, e.Update())
	require.Len(t, got, 2)
	got = nil
	require.NoError(t, e.Update())
	assert.Empty(t, got)
}

func TestSuspend(t *testing.T) {
	b := null.New()
	e, err := input.NewEngine(b)
	require.NoError(t, err)
	n := 0
	e.ActionMap(input.NewActionMap(input.ActionDefine{Action: actJump, Key: input.KeySpace}),
		func(e *input.Engine, act input.Action) { n++ })

	require.NoError(t, e.Suspend())
	assert.True(t, b.Suspended)
	b.Keyboard.Press(input.KeySpace)
	require.NoError(t, e.Update())
	assert.Equal(t, 0, n)

	require.NoError(t, e.Resume())
	require.NoError(t, e.Update())
	assert.Equal(t, 1, n)

	require.NoError(t, e.Close())
	assert.True(t, b.Closed)
	assert.ErrorIs(t, e.Update(), input.ErrClosed)
}

func TestFactory(t *testing.T) {
	_, err := input.NewFactory("null", "^2")
	assert.Error(t, err)
	f, err := input.NewFactory("null", "^1")
	require.NoError(t, err)
	e, err := f.Engine()
	require.NoError(t, err)
	assert.Equal(t, "null", e.Name())
	require.NoError(t, f.Close())
	_, err = f.Engine()
	assert.ErrorIs(t, err, input.ErrClosed)
}
