// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"cogentcore.org/engine/math32"
	"github.com/google/uuid"
)

// AddressModes are texture addressing modes for coordinates outside [0, 1].
type AddressModes int32

const (
	// AddressWrap repeats the texture.
	AddressWrap AddressModes = iota

	// AddressMirror repeats the texture, mirroring every other repetition.
	AddressMirror

	// AddressClamp clamps coordinates to the edge texel.
	AddressClamp

	// AddressBorder returns the sampler border color.
	AddressBorder
)

func (am AddressModes) String() string {
	switch am {
	case AddressWrap:
		return "Wrap"
	case AddressMirror:
		return "Mirror"
	case AddressClamp:
		return "Clamp"
	case AddressBorder:
		return "Border"
	}
	return fmt.Sprintf("AddressModes(%d)", int32(am))
}

// Filters are texture filtering modes.
type Filters int32

const (
	FilterPoint Filters = iota
	FilterLinear
	FilterAnisotropic
)

func (ft Filters) String() string {
	switch ft {
	case FilterPoint:
		return "Point"
	case FilterLinear:
		return "Linear"
	case FilterAnisotropic:
		return "Anisotropic"
	}
	return fmt.Sprintf("Filters(%d)", int32(ft))
}

// Sampler describes how a texture is addressed and filtered.
// It is a comparable value: equal Samplers map to the same
// backend sampler state in [Engine.MakeSamplerState].
type Sampler struct {

	// BorderColor is returned for [AddressBorder] lookups outside the texture.
	BorderColor Color

	// address modes for each texture coordinate
	AddrModeU AddressModes
	AddrModeV AddressModes
	AddrModeW AddressModes

	Filter Filters

	// MaxAnisotropy is the anisotropy level for [FilterAnisotropic], from 1 to 16.
	MaxAnisotropy uint8

	// range of mip levels that can be sampled
	MinLOD float32
	MaxLOD float32

	// MipLODBias is added to the computed mip level.
	MipLODBias float32
}

// NewSampler returns a Sampler with [Sampler.Defaults] applied.
func NewSampler() Sampler {
	s := Sampler{}
	s.Defaults()
	return s
}

// Defaults sets wrap addressing on all axes, point filtering,
// anisotropy 1, the full mip range, no bias and a transparent
// black border.
func (s *Sampler) Defaults() {
	s.BorderColor = Color{}
	s.AddrModeU = AddressWrap
	s.AddrModeV = AddressWrap
	s.AddrModeW = AddressWrap
	s.Filter = FilterPoint
	s.MaxAnisotropy = 1
	s.MinLOD = 0
	s.MaxLOD = math32.MaxFloat32
	s.MipLODBias = 0
}

// Validate returns an error if the sampler fields are out of range.
func (s *Sampler) Validate() error {
	if s.MaxAnisotropy < 1 || s.MaxAnisotropy > 16 {
		return fmt.Errorf("render: sampler anisotropy %d out of range [1, 16]", s.MaxAnisotropy)
	}
	if s.MinLOD > s.MaxLOD || math32.IsNaN(s.MinLOD) || math32.IsNaN(s.MaxLOD) {
		return fmt.Errorf("render: sampler lod range [%g, %g] is invalid", s.MinLOD, s.MaxLOD)
	}
	// NaN never compares equal, so it would defeat the state cache.
	if math32.IsNaN(s.MipLODBias) {
		return fmt.Errorf("render: sampler lod bias is NaN")
	}
	c := s.BorderColor
	for _, v := range [...]float32{c.R, c.G, c.B, c.A} {
		if math32.IsNaN(v) {
			return fmt.Errorf("render: sampler border color %v has a NaN channel", c)
		}
	}
	return nil
}

// SamplerState is the backend sampler object for one [Sampler] value.
// It is owned and cached by the [Engine] that made it.
type SamplerState struct {
	id     uuid.UUID
	engine *Engine
	desc   Sampler
	handle Handle
}

// ID returns the unique identity of the sampler state.
func (ss *SamplerState) ID() uuid.UUID { return ss.id }

// Desc returns the sampler description.
func (ss *SamplerState) Desc() Sampler { return ss.desc }

// Handle returns the backend sampler object, zero while the device is lost.
func (ss *SamplerState) Handle() Handle { return ss.handle }

// Bind binds the sampler to the given texture unit.
func (ss *SamplerState) Bind(slot int) error {
	if err := ss.engine.checkState(); err != nil {
		return err
	}
	return ss.engine.deviceErr("bind sampler", ss.engine.backend.BindSampler(ss.handle, slot))
}

func (ss *SamplerState) DeviceLost() {
	ss.engine.backend.Destroy(SamplerResource, ss.handle)
	ss.handle = 0
}

func (ss *SamplerState) DeviceRestored() error {
	h, err := ss.engine.backend.CreateSampler(&ss.desc)
	if err != nil {
		return err
	}
	ss.handle = h
	return nil
}
