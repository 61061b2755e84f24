// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build speaker

// Package speaker provides the "speaker" audio backend: the software
// mixer playing on the system speaker.
package speaker

import (
	"time"

	"cogentcore.org/engine/audio"
	"cogentcore.org/engine/audio/mixer"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

func init() {
	audio.Register("speaker", audio.APIVersion, func() (audio.Backend, error) {
		return mixer.NewWithDevice(Device{}), nil
	})
}

// BufferTime is the length of the speaker buffer.
var BufferTime = time.Second / 10

// Device is the system speaker. There is only one.
type Device struct{}

func (Device) Name() string { return "speaker" }

// Open initializes the speaker and plays the stream on it.
func (Device) Open(rate beep.SampleRate, s beep.Streamer) error {
	if err := speaker.Init(rate, rate.N(BufferTime)); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

// Close stops playing.
func (Device) Close() { speaker.Clear() }
