// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package null provides an input backend with one scripted keyboard.
// Keys are pressed and released from code and take effect on the
// next update.
package null

import (
	"sync"

	"cogentcore.org/engine/input"
)

func init() {
	input.Register("null", input.APIVersion, func() (input.Backend, error) {
		return New(), nil
	})
}

// Backend is the null input system.
type Backend struct {
	Keyboard  *Keyboard
	Suspended bool
	Closed    bool
}

// New returns a backend with one keyboard.
func New() *Backend { return &Backend{Keyboard: &Keyboard{}} }

func (b *Backend) Name() string { return "null" }

func (b *Backend) EnumDevices() ([]input.Device, error) {
	return []input.Device{b.Keyboard}, nil
}

func (b *Backend) Suspend() error {
	b.Suspended = true
	return nil
}

func (b *Backend) Resume() error {
	b.Suspended = false
	return nil
}

func (b *Backend) Close() error {
	b.Closed = true
	return nil
}

// Keyboard is a keyboard driven by Press and Release.
// They may be called from any goroutine.
type Keyboard struct {
	input.KeyboardState
	mu   sync.Mutex
	down [input.NumKeys]bool
}

func (kb *Keyboard) Name() string            { return "null keyboard" }
func (kb *Keyboard) Type() input.DeviceTypes { return input.Keyboard }

// Press sets the keys down.
func (kb *Keyboard) Press(keys ...input.Key) { kb.set(keys, true) }

// Release sets the keys up.
func (kb *Keyboard) Release(keys ...input.Key) { kb.set(keys, false) }

func (kb *Keyboard) set(keys []input.Key, down bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	for _, k := range keys {
		if k < input.NumKeys {
			kb.down[k] = down
		}
	}
}

func (kb *Keyboard) UpdateInputs() error {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.Swap(func(k input.Key) bool { return kb.down[k] })
	return nil
}
