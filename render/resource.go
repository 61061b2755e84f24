// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// DeviceObject is an object backed by device memory. The [Engine]
// tracks every device object it makes, calling DeviceLost on all of
// them when the device is suspended and DeviceRestored, in creation
// order, when it resumes.
type DeviceObject interface {
	ID() uuid.UUID

	// DeviceLost releases the native object. The Go object stays
	// usable as a description but is invalid until restored.
	DeviceLost()

	// DeviceRestored recreates the native object.
	DeviceRestored() error
}

// Resource is a buffer or texture that views can be made over.
type Resource interface {
	ID() uuid.UUID
	Kind() ResourceKinds
	BindFlags() BindFlags
	Handle() Handle

	// Valid returns false after the resource is released
	// and while the device is lost.
	Valid() bool
}

// resourceBase has the identity, validity and view tracking
// shared by buffers and textures.
type resourceBase struct {
	id       uuid.UUID
	engine   *Engine
	handle   Handle
	released bool
	views    []*viewBase
}

func newResourceBase(e *Engine) resourceBase {
	return resourceBase{id: uuid.New(), engine: e}
}

func (rb *resourceBase) ID() uuid.UUID  { return rb.id }
func (rb *resourceBase) Handle() Handle { return rb.handle }

func (rb *resourceBase) Valid() bool {
	return !rb.released && rb.handle != 0
}

func (rb *resourceBase) addView(v *viewBase) {
	rb.views = append(rb.views, v)
}

func (rb *resourceBase) removeView(v *viewBase) {
	rb.views = slices.DeleteFunc(rb.views, func(o *viewBase) bool { return o == v })
}

// release destroys all views over the resource, then the resource itself.
func (rb *resourceBase) release(kind ResourceKinds) {
	if rb.released {
		return
	}
	for _, v := range slices.Clone(rb.views) {
		v.Release()
	}
	rb.released = true
	rb.engine.untrack(rb.id)
	if rb.handle != 0 {
		rb.engine.backend.Destroy(kind, rb.handle)
		rb.handle = 0
	}
}

// BufferDesc describes a [GraphicsBuffer].
type BufferDesc struct {
	Type  BufferType
	Usage BufferUsage
	Bind  BindFlags

	// Size in bytes.
	Size int
}

// GraphicsBuffer is a vertex or index buffer in device memory.
// A copy of the contents is kept to recreate the buffer after the
// device is lost.
type GraphicsBuffer struct {
	resourceBase
	desc   BufferDesc
	shadow []byte
}

func (gb *GraphicsBuffer) Kind() ResourceKinds  { return BufferResource }
func (gb *GraphicsBuffer) BindFlags() BindFlags { return gb.desc.Bind }
func (gb *GraphicsBuffer) Desc() BufferDesc     { return gb.desc }
func (gb *GraphicsBuffer) Type() BufferType     { return gb.desc.Type }
func (gb *GraphicsBuffer) Size() int            { return gb.desc.Size }

// Data returns the current buffer contents as last uploaded.
func (gb *GraphicsBuffer) Data() []byte { return gb.shadow }

// Update copies data into the buffer at the given byte offset.
func (gb *GraphicsBuffer) Update(offset int, data []byte) error {
	if err := gb.engine.checkState(); err != nil {
		return err
	}
	if !gb.Valid() {
		return ErrInvalidResource
	}
	if offset < 0 || offset+len(data) > gb.desc.Size {
		return fmt.Errorf("render: buffer update [%d, %d) outside size %d", offset, offset+len(data), gb.desc.Size)
	}
	if err := gb.engine.backend.UpdateBuffer(gb.handle, offset, data); err != nil {
		return gb.engine.deviceErr("update buffer", err)
	}
	copy(gb.shadow[offset:], data)
	return nil
}

// Release destroys the buffer and every view made over it.
func (gb *GraphicsBuffer) Release() {
	gb.release(BufferResource)
}

func (gb *GraphicsBuffer) DeviceLost() {
	gb.engine.backend.Destroy(BufferResource, gb.handle)
	gb.handle = 0
}

func (gb *GraphicsBuffer) DeviceRestored() error {
	h, err := gb.engine.backend.CreateBuffer(&gb.desc, gb.shadow)
	if err != nil {
		return err
	}
	gb.handle = h
	return nil
}

// TextureDesc describes a [Texture].
type TextureDesc struct {
	Width     int
	Height    int
	ArraySize int
	MipLevels int
	Format    ElementFormat

	// SampleCount is the number of multisamples per texel.
	SampleCount int
	Bind        BindFlags
}

// Defaults sets a single-layer, single-mip RGBA8 shader resource texture.
func (td *TextureDesc) Defaults() {
	td.ArraySize = 1
	td.MipLevels = 1
	td.Format = FormatRGBA8
	td.SampleCount = 1
	td.Bind = BindShaderResource
}

// Validate returns an error if the description is unusable.
func (td *TextureDesc) Validate() error {
	if td.Width <= 0 || td.Height <= 0 {
		return fmt.Errorf("render: texture size %dx%d is invalid", td.Width, td.Height)
	}
	if td.Format == FormatUnknown {
		return fmt.Errorf("render: texture format is unknown")
	}
	if td.Bind.Has(BindDepthStencil) && !td.Format.IsDepth() {
		return fmt.Errorf("render: depth-stencil binding requires a depth format")
	}
	return nil
}

// Texture is a 2D texture or texture array in device memory.
type Texture struct {
	resourceBase
	desc TextureDesc
	data []byte
}

func (tx *Texture) Kind() ResourceKinds  { return TextureResource }
func (tx *Texture) BindFlags() BindFlags { return tx.desc.Bind }
func (tx *Texture) Desc() TextureDesc    { return tx.desc }
func (tx *Texture) Width() int           { return tx.desc.Width }
func (tx *Texture) Height() int          { return tx.desc.Height }
func (tx *Texture) Format() ElementFormat {
	return tx.desc.Format
}

// Release destroys the texture and every view made over it.
func (tx *Texture) Release() {
	tx.release(TextureResource)
}

func (tx *Texture) DeviceLost() {
	tx.engine.backend.Destroy(TextureResource, tx.handle)
	tx.handle = 0
}

func (tx *Texture) DeviceRestored() error {
	h, err := tx.engine.backend.CreateTexture(&tx.desc, tx.data)
	if err != nil {
		return err
	}
	tx.handle = h
	return nil
}
