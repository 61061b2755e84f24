// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	om := New[string, int]()
	om.Add("key0", 0)
	om.Add("key1", 1)
	om.Add("key2", 2)
	assert.Equal(t, 3, om.Len())

	v, ok := om.ValueByKeyTry("key1")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = om.ValueByKeyTry("nope")
	assert.False(t, ok)

	om.Add("key1", 11)
	assert.Equal(t, []string{"key0", "key1", "key2"}, om.Keys())

	assert.True(t, om.DeleteKey("key0"))
	assert.False(t, om.DeleteKey("key0"))
	assert.Equal(t, []string{"key1", "key2"}, om.Keys())
	v, _ = om.ValueByKeyTry("key2")
	assert.Equal(t, 2, v)
	assert.Equal(t, []int{11, 2}, slices.Collect(om.Values()))

	om.Reset()
	assert.Equal(t, 0, om.Len())
	om.Add("again", 5)
	assert.True(t, om.Has("again"))
}

func TestNilMap(t *testing.T) {
	var om *Map[int, int]
	assert.Equal(t, 0, om.Len())
	n := 0
	for range om.All() {
		n++
	}
	assert.Equal(t, 0, n)
}
