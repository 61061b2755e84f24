// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

// KeyboardState is the key state of a keyboard over two frames.
// Keyboard devices embed it and call [KeyboardState.Swap] with the
// keys that are down in each new frame.
type KeyboardState struct {
	keys  [2][NumKeys]bool
	index int
}

// Swap starts a new frame with the keys reported down by the device.
func (ks *KeyboardState) Swap(down func(k Key) bool) {
	ks.index = 1 - ks.index
	cur := &ks.keys[ks.index]
	for i := range cur {
		cur[i] = down(Key(i))
	}
}

// Key returns whether k is down.
func (ks *KeyboardState) Key(k Key) bool {
	return k < NumKeys && ks.keys[ks.index][k]
}

// KeyDown returns whether k went down in this frame.
func (ks *KeyboardState) KeyDown(k Key) bool {
	return k < NumKeys && ks.keys[ks.index][k] && !ks.keys[1-ks.index][k]
}

// KeyUp returns whether k was released in this frame.
func (ks *KeyboardState) KeyUp(k Key) bool {
	return k < NumKeys && !ks.keys[ks.index][k] && ks.keys[1-ks.index][k]
}

// Actions returns an action for every mapped key that is down or was
// released in this frame, then one for [KeyAnyKey] if any key is.
func (ks *KeyboardState) Actions(m *ActionMap) []Action {
	var acts []Action
	anyKey := Action{Key: KeyAnyKey, Type: Keyboard}
	for i := range Key(NumKeys) {
		if !ks.keys[0][i] && !ks.keys[1][i] {
			continue
		}
		down, up := ks.KeyDown(i), ks.KeyUp(i)
		anyKey.Pressed = anyKey.Pressed || down
		anyKey.Released = anyKey.Released || up
		anyKey.Held = anyKey.Held || ks.Key(i)
		if id, ok := m.Action(i); ok {
			acts = append(acts, Action{ID: id, Key: i, Type: Keyboard, Pressed: down, Released: up, Held: ks.Key(i)})
		}
	}
	if anyKey.Pressed || anyKey.Released || anyKey.Held {
		if id, ok := m.Action(KeyAnyKey); ok {
			anyKey.ID = id
			acts = append(acts, anyKey)
		}
	}
	return acts
}
