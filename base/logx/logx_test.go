// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromString(t *testing.T) {
	l, err := LevelFromString("DEBUG")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
	l, err = LevelFromString("warning")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
	_, err = LevelFromString("loud")
	assert.Error(t, err)
}

func TestSetLogger(t *testing.T) {
	prev, prevLevel := slog.Default(), UserLevel
	defer func() {
		slog.SetDefault(prev)
		UserLevel = prevLevel
	}()
	var buf bytes.Buffer
	UserLevel = slog.LevelWarn
	SetLogger(&buf)
	slog.Info("hidden")
	slog.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
