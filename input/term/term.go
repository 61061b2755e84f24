// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package term provides an input backend with a keyboard read from a
// terminal. When the source is a terminal it is put in raw mode while
// the backend runs.
//
// Terminals report typed keys, not key releases, so each typed key is
// down for one update and released on the next.
package term

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/input"
	"golang.org/x/term"
)

func init() {
	input.Register("term", input.APIVersion, func() (input.Backend, error) {
		return New(os.Stdin), nil
	})
}

// QueueSize is the number of keys buffered between updates.
// Further keys are dropped.
var QueueSize = 256

// Backend reads one keyboard from a byte stream.
type Backend struct {
	src      io.Reader
	fd       int
	isTerm   bool
	oldState *term.State
	keyboard *Keyboard
	start    sync.Once
}

// New returns a backend reading from r.
func New(r io.Reader) *Backend {
	b := &Backend{src: r, fd: -1}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b.fd = int(f.Fd())
		b.isTerm = true
	}
	b.keyboard = &Keyboard{keys: make(chan input.Key, QueueSize)}
	return b
}

func (b *Backend) Name() string { return "term" }

// Keyboard returns the keyboard device.
func (b *Backend) Keyboard() *Keyboard { return b.keyboard }

// EnumDevices starts reading the source.
func (b *Backend) EnumDevices() ([]input.Device, error) {
	var err error
	b.start.Do(func() {
		if err = b.makeRaw(); err != nil {
			return
		}
		go b.keyboard.read(b.src)
	})
	if err != nil {
		return nil, err
	}
	return []input.Device{b.keyboard}, nil
}

func (b *Backend) makeRaw() error {
	if !b.isTerm || b.oldState != nil {
		return nil
	}
	st, err := term.MakeRaw(b.fd)
	if err != nil {
		return err
	}
	b.oldState = st
	return nil
}

func (b *Backend) restore() error {
	if b.oldState == nil {
		return nil
	}
	err := term.Restore(b.fd, b.oldState)
	b.oldState = nil
	return err
}

// Suspend restores the terminal mode.
func (b *Backend) Suspend() error { return b.restore() }

// Resume puts the terminal back in raw mode.
func (b *Backend) Resume() error { return b.makeRaw() }

// Close restores the terminal mode. A read in progress on the source
// ends when the source does.
func (b *Backend) Close() error {
	b.keyboard.stop()
	return b.restore()
}

// Keyboard is the terminal keyboard device.
type Keyboard struct {
	input.KeyboardState
	keys    chan input.Key
	mu      sync.Mutex
	err     error
	stopped bool
}

func (kb *Keyboard) Name() string            { return "terminal keyboard" }
func (kb *Keyboard) Type() input.DeviceTypes { return input.Keyboard }

func (kb *Keyboard) read(r io.Reader) {
	var dec decoder
	buf := make([]byte, 64)
	emit := func(k input.Key) {
		select {
		case kb.keys <- k:
		default:
			slog.Debug("terminal key dropped", "key", k)
		}
	}
	for {
		n, err := r.Read(buf)
		if kb.isStopped() {
			return
		}
		if n > 0 {
			dec.feed(buf[:n], emit)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				kb.mu.Lock()
				kb.err = err
				kb.mu.Unlock()
			}
			return
		}
	}
}

func (kb *Keyboard) isStopped() bool {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.stopped
}

func (kb *Keyboard) stop() {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.stopped = true
}

// UpdateInputs takes the keys typed since the last update. A read
// error of the source is returned once.
func (kb *Keyboard) UpdateInputs() error {
	var down [input.NumKeys]bool
drain:
	for {
		select {
		case k := <-kb.keys:
			down[k] = true
		default:
			break drain
		}
	}
	kb.Swap(func(k input.Key) bool { return down[k] })
	kb.mu.Lock()
	defer kb.mu.Unlock()
	err := kb.err
	kb.err = nil
	return err
}
