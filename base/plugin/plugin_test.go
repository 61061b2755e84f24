// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plugin

import (
	"testing"

	"cogentcore.org/engine/base/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{ name string }

func newRegistry(t *testing.T) *Registry[*widget] {
	r := NewRegistry[*widget]("widget")
	require.NoError(t, r.Register("a", "1.2.0", func() (*widget, error) { return &widget{"a"}, nil }))
	require.NoError(t, r.Register("b", "2.0.0", func() (*widget, error) { return nil, errors.New("no device") }))
	return r
}

func TestRegistryLookup(t *testing.T) {
	r := newRegistry(t)
	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Len(t, r.Plugins(), 2)

	p, err := r.Lookup("a", "^1.0")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", p.Version.String())

	_, err = r.Lookup("a", ">=2")
	assert.ErrorIs(t, err, ErrIncompatible)

	_, err = r.Lookup("zzz", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Lookup("a", "not a constraint")
	assert.Error(t, err)
}

func TestRegistryMake(t *testing.T) {
	r := newRegistry(t)
	w, p, err := r.Make("a", "")
	require.NoError(t, err)
	assert.Equal(t, "a", w.name)
	assert.Equal(t, "a", p.Name)

	_, _, err = r.Make("b", "")
	assert.ErrorContains(t, err, "no device")
}

func TestRegistryDuplicate(t *testing.T) {
	r := newRegistry(t)
	err := r.Register("a", "1.0.0", func() (*widget, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Error(t, r.Register("c", "bogus", func() (*widget, error) { return nil, nil }))
	assert.Panics(t, func() { r.MustRegister("a", "1.0.0", func() (*widget, error) { return nil, nil }) })

	assert.True(t, r.Unregister("a"))
	assert.False(t, r.Unregister("a"))
	assert.Equal(t, []string{"b"}, r.Names())
}
