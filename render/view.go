// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/google/uuid"
)

// ViewKinds are the pipeline usages a view binds a resource for.
type ViewKinds int32

const (
	ShaderResourceViewKind ViewKinds = iota
	RenderTargetViewKind
	DepthStencilViewKind
	UnorderedAccessViewKind
)

var viewBindFlags = [...]BindFlags{BindShaderResource, BindRenderTarget, BindDepthStencil, BindUnorderedAccess}

// BindFlag returns the resource bind flag required to make a view of this kind.
func (vk ViewKinds) BindFlag() BindFlags {
	return viewBindFlags[vk]
}

func (vk ViewKinds) String() string {
	switch vk {
	case ShaderResourceViewKind:
		return "ShaderResourceView"
	case RenderTargetViewKind:
		return "RenderTargetView"
	case DepthStencilViewKind:
		return "DepthStencilView"
	case UnorderedAccessViewKind:
		return "UnorderedAccessView"
	}
	return "ViewKinds(?)"
}

// ViewDesc selects the subresource range of a view. Zero counts
// select everything from the first mip or array slice onward.
type ViewDesc struct {
	FirstMip   int
	NumMips    int
	FirstArray int
	ArraySize  int

	// Format overrides the resource format when not [FormatUnknown].
	Format ElementFormat
}

// View is a typed binding of one resource subresource range.
// A view becomes invalid when its resource is released and
// while the device is lost.
type View interface {
	ID() uuid.UUID
	Kind() ViewKinds
	Resource() Resource
	Desc() ViewDesc
	Valid() bool
	Release()
}

// ShaderResourceView binds a resource for reading in shaders.
type ShaderResourceView interface {
	View
	BindShaderResource(slot int) error
}

// RenderTargetView binds a resource as a color target.
type RenderTargetView interface {
	View
	BindRenderTarget(slot int) error
}

// DepthStencilView binds a resource as the depth-stencil target.
type DepthStencilView interface {
	View
	BindDepthStencil() error
}

// UnorderedAccessView binds a resource for random read-write access.
type UnorderedAccessView interface {
	View
	BindUnorderedAccess(slot int) error
}

type viewBase struct {
	id       uuid.UUID
	engine   *Engine
	kind     ViewKinds
	res      Resource
	owner    *resourceBase
	desc     ViewDesc
	handle   Handle
	released bool
}

func (vb *viewBase) ID() uuid.UUID      { return vb.id }
func (vb *viewBase) Kind() ViewKinds    { return vb.kind }
func (vb *viewBase) Resource() Resource { return vb.res }
func (vb *viewBase) Desc() ViewDesc     { return vb.desc }

func (vb *viewBase) Valid() bool {
	return !vb.released && vb.handle != 0 && vb.res.Valid()
}

// Release destroys the view. The resource is unaffected.
func (vb *viewBase) Release() {
	if vb.released {
		return
	}
	vb.released = true
	vb.owner.removeView(vb)
	vb.engine.untrack(vb.id)
	if vb.handle != 0 {
		vb.engine.backend.Destroy(ViewResource, vb.handle)
		vb.handle = 0
	}
}

func (vb *viewBase) bind(slot int) error {
	if !vb.Valid() {
		return ErrInvalidView
	}
	if err := vb.engine.checkState(); err != nil {
		return err
	}
	return vb.engine.deviceErr("bind "+vb.kind.String(), vb.engine.backend.BindView(vb.kind, vb.handle, slot))
}

func (vb *viewBase) DeviceLost() {
	vb.engine.backend.Destroy(ViewResource, vb.handle)
	vb.handle = 0
}

func (vb *viewBase) DeviceRestored() error {
	h, err := vb.engine.backend.CreateView(vb.kind, vb.res.Handle(), &vb.desc)
	if err != nil {
		return err
	}
	vb.handle = h
	return nil
}

type srView struct{ viewBase }

func (v *srView) BindShaderResource(slot int) error { return v.bind(slot) }

type rtView struct{ viewBase }

func (v *rtView) BindRenderTarget(slot int) error { return v.bind(slot) }

type dsView struct{ viewBase }

func (v *dsView) BindDepthStencil() error { return v.bind(0) }

type uaView struct{ viewBase }

func (v *uaView) BindUnorderedAccess(slot int) error { return v.bind(slot) }
