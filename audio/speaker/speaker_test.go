// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build speaker

package speaker

import (
	"testing"

	"cogentcore.org/engine/audio"
	"github.com/stretchr/testify/assert"
)

func TestRegistered(t *testing.T) {
	assert.Contains(t, audio.Backends.Names(), "speaker")
	assert.Equal(t, "speaker", Device{}.Name())
}
