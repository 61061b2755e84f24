// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lua

import (
	"fmt"

	"cogentcore.org/engine/script"
	lua "github.com/yuin/gopher-lua"
)

// toLua converts a Go value to a Lua value.
func toLua(L *lua.LState, v any) (lua.LValue, error) {
	switch v := v.(type) {
	case nil:
		return lua.LNil, nil
	case lua.LValue:
		return v, nil
	case bool:
		return lua.LBool(v), nil
	case string:
		return lua.LString(v), nil
	case int:
		return lua.LNumber(v), nil
	case int32:
		return lua.LNumber(v), nil
	case int64:
		return lua.LNumber(v), nil
	case uint32:
		return lua.LNumber(v), nil
	case float32:
		return lua.LNumber(v), nil
	case float64:
		return lua.LNumber(v), nil
	case []any:
		t := L.NewTable()
		for i, e := range v {
			lv, err := toLua(L, e)
			if err != nil {
				return nil, err
			}
			t.RawSetInt(i+1, lv)
		}
		return t, nil
	case map[string]any:
		t := L.NewTable()
		for k, e := range v {
			lv, err := toLua(L, e)
			if err != nil {
				return nil, err
			}
			t.RawSetString(k, lv)
		}
		return t, nil
	case script.Func:
		return L.NewFunction(goFunc(v)), nil
	case func(args ...any) (any, error):
		return L.NewFunction(goFunc(v)), nil
	}
	return nil, fmt.Errorf("%T: %w", v, script.ErrUnsupportedType)
}

// goFunc wraps a Go function for Lua. An error of the function is
// raised as a Lua error.
func goFunc(fn script.Func) lua.LGFunction {
	return func(L *lua.LState) int {
		args := make([]any, L.GetTop())
		for i := range args {
			args[i] = fromLua(L.Get(i + 1))
		}
		ret, err := fn(args...)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		lv, err := toLua(L, ret)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lv)
		return 1
	}
}

// fromLua converts a Lua value to a Go value. A table with only the
// keys 1..n becomes a []any, any other table a map[string]any.
// Functions and userdata are returned as is.
func fromLua(v lua.LValue) any {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		n := v.MaxN()
		if n > 0 && countKeys(v) == n {
			s := make([]any, n)
			for i := range s {
				s[i] = fromLua(v.RawGetInt(i + 1))
			}
			return s
		}
		m := map[string]any{}
		v.ForEach(func(k, e lua.LValue) {
			m[k.String()] = fromLua(e)
		})
		return m
	}
	return v
}

func countKeys(t *lua.LTable) int {
	n := 0
	t.ForEach(func(lua.LValue, lua.LValue) { n++ })
	return n
}
