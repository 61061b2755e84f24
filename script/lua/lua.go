// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lua provides a Lua script backend. Each module is a
// separate Lua state with the standard libraries open, and with
// print writing to the default logger.
package lua

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"cogentcore.org/engine/script"
	lua "github.com/yuin/gopher-lua"
)

func init() {
	script.Register("lua", script.APIVersion, func() (script.Backend, error) {
		return New(), nil
	})
}

// Backend is the Lua runtime.
type Backend struct {
	// CallStackSize is the call stack size of new modules.
	// Zero uses the gopher-lua default.
	CallStackSize int
}

func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "lua" }

func (b *Backend) NewModule(name string) (script.Module, error) {
	L := lua.NewState(lua.Options{CallStackSize: b.CallStackSize})
	m := &Module{name: name, L: L}
	L.SetGlobal("print", L.NewFunction(m.print))
	return m, nil
}

func (b *Backend) Close() error { return nil }

// Module is a Lua state.
type Module struct {
	mu     sync.Mutex
	name   string
	L      *lua.LState
	closed bool
}

func (m *Module) Name() string { return m.name }

func (m *Module) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	slog.Info(strings.Join(parts, "\t"), "module", m.name)
	return 0
}

// run runs fn with the module locked and the context set on the state.
func (m *Module) run(ctx context.Context, fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return script.ErrClosed
	}
	if ctx.Done() != nil {
		m.L.SetContext(ctx)
		defer m.L.RemoveContext()
	}
	if err := fn(); err != nil {
		return fmt.Errorf("lua %s: %w", m.name, err)
	}
	return nil
}

// results pops the values above top and returns the first.
func (m *Module) results(top int) any {
	n := m.L.GetTop() - top
	if n <= 0 {
		return nil
	}
	v := fromLua(m.L.Get(top + 1))
	m.L.Pop(n)
	return v
}

func (m *Module) RunString(ctx context.Context, src string) (any, error) {
	var res any
	err := m.run(ctx, func() error {
		top := m.L.GetTop()
		fn, err := m.L.LoadString(src)
		if err != nil {
			return err
		}
		m.L.Push(fn)
		if err := m.L.PCall(0, lua.MultRet, nil); err != nil {
			return err
		}
		res = m.results(top)
		return nil
	})
	return res, err
}

func (m *Module) Call(ctx context.Context, fn string, args ...any) (any, error) {
	var res any
	err := m.run(ctx, func() error {
		f := m.L.GetGlobal(fn)
		if f.Type() != lua.LTFunction {
			return fmt.Errorf("%q: %w", fn, script.ErrNotFunction)
		}
		largs := make([]lua.LValue, len(args))
		for i, a := range args {
			v, err := toLua(m.L, a)
			if err != nil {
				return fmt.Errorf("%q: argument %d: %w", fn, i, err)
			}
			largs[i] = v
		}
		if err := m.L.CallByParam(lua.P{Fn: f, NRet: 1, Protect: true}, largs...); err != nil {
			return err
		}
		res = fromLua(m.L.Get(-1))
		m.L.Pop(1)
		return nil
	})
	return res, err
}

func (m *Module) Value(name string) (any, error) {
	var res any
	err := m.run(context.Background(), func() error {
		res = fromLua(m.L.GetGlobal(name))
		return nil
	})
	return res, err
}

func (m *Module) SetValue(name string, v any) error {
	return m.run(context.Background(), func() error {
		lv, err := toLua(m.L, v)
		if err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		m.L.SetGlobal(name, lv)
		return nil
	})
}

func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		m.L.Close()
	}
	return nil
}
