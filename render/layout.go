// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"cogentcore.org/engine/base/errors"
	"github.com/google/uuid"
)

// VertexUsages are the semantic meanings of vertex elements.
type VertexUsages int32

const (
	UsagePosition VertexUsages = iota
	UsageNormal
	UsageDiffuse
	UsageSpecular
	UsageBlendWeight
	UsageBlendIndex
	UsageTextureCoord
	UsageTangent
	UsageBinormal
)

// VertexElement is one attribute within an interleaved vertex.
type VertexElement struct {
	Usage      VertexUsages
	UsageIndex int
	Format     ElementFormat
}

// VertexStream is a vertex buffer bound to a layout.
type VertexStream struct {
	Buffer   *GraphicsBuffer
	Elements []VertexElement

	// Stride is the size in bytes of one vertex.
	Stride int
}

// IndexStream is the index buffer bound to a layout.
type IndexStream struct {
	Buffer *GraphicsBuffer
	Format ElementFormat
}

// RenderLayout describes the vertex and index streams of one
// drawable and binds them into the device for draw calls.
// Backends implement Active and Deactive, usually by embedding
// [LayoutBase] for stream bookkeeping. Use [WithLayout] or
// [Engine.Render] to guarantee that every Active is paired with
// a Deactive.
type RenderLayout interface {
	DeviceObject

	Topology() Topology
	SetTopology(tp Topology)

	// BindVertexStream appends a vertex stream. The buffer must
	// have been made with [VertexBuffer] type.
	BindVertexStream(buf *GraphicsBuffer, elems ...VertexElement) error

	// BindIndexStream sets the index stream. The buffer must
	// have been made with [IndexBuffer] type.
	BindIndexStream(buf *GraphicsBuffer, format ElementFormat) error

	VertexStreams() []VertexStream
	IndexStream() (IndexStream, bool)
	UseIndices() bool

	NumVertices() int
	NumIndices() int
	NumPrimitives() int

	// Active binds the layout streams into the device.
	Active() error

	// Deactive unbinds the layout streams.
	Deactive() error

	IsActive() bool
}

// LayoutBase implements the device-independent parts of
// [RenderLayout]. Backends embed it and implement Active and Deactive
// calling [LayoutBase.BeginActive] and [LayoutBase.EndActive].
type LayoutBase struct {
	id            uuid.UUID
	topology      Topology
	vertexStreams []VertexStream
	indexStream   IndexStream
	hasIndices    bool
	numVertices   int
	active        bool
	dirty         bool
}

// NewLayoutBase returns a triangle list layout with no streams.
func NewLayoutBase() LayoutBase {
	return LayoutBase{id: uuid.New(), topology: TriangleList, dirty: true}
}

func (lb *LayoutBase) ID() uuid.UUID           { return lb.id }
func (lb *LayoutBase) Topology() Topology      { return lb.topology }
func (lb *LayoutBase) SetTopology(tp Topology) { lb.topology = tp }
func (lb *LayoutBase) UseIndices() bool        { return lb.hasIndices }
func (lb *LayoutBase) IsActive() bool          { return lb.active }

func (lb *LayoutBase) VertexStreams() []VertexStream {
	return lb.vertexStreams
}

func (lb *LayoutBase) IndexStream() (IndexStream, bool) {
	return lb.indexStream, lb.hasIndices
}

// Dirty returns true if streams changed since the last [LayoutBase.ClearDirty].
func (lb *LayoutBase) Dirty() bool { return lb.dirty }

// ClearDirty marks the stream bindings as uploaded to the device.
func (lb *LayoutBase) ClearDirty() { lb.dirty = false }

// MarkDirty forces the next activation to rebuild device bindings.
func (lb *LayoutBase) MarkDirty() { lb.dirty = true }

func (lb *LayoutBase) BindVertexStream(buf *GraphicsBuffer, elems ...VertexElement) error {
	if buf == nil || buf.released {
		return ErrInvalidResource
	}
	if buf.Type() != VertexBuffer {
		return fmt.Errorf("vertex stream given %s buffer: %w", buf.Type(), ErrBufferType)
	}
	if lb.active {
		return ErrLayoutActive
	}
	stride := 0
	for _, el := range elems {
		stride += el.Format.Size()
	}
	if stride == 0 {
		return errors.New("render: vertex stream needs at least one sized element")
	}
	lb.vertexStreams = append(lb.vertexStreams, VertexStream{Buffer: buf, Elements: elems, Stride: stride})
	lb.dirty = true
	return nil
}

func (lb *LayoutBase) BindIndexStream(buf *GraphicsBuffer, format ElementFormat) error {
	if buf == nil || buf.released {
		return ErrInvalidResource
	}
	if buf.Type() != IndexBuffer {
		return fmt.Errorf("index stream given %s buffer: %w", buf.Type(), ErrBufferType)
	}
	if !format.IsIndex() {
		return fmt.Errorf("render: format %d is not an index format", format)
	}
	if lb.active {
		return ErrLayoutActive
	}
	lb.indexStream = IndexStream{Buffer: buf, Format: format}
	lb.hasIndices = true
	lb.dirty = true
	return nil
}

// SetNumVertices overrides the vertex count derived from the first stream.
func (lb *LayoutBase) SetNumVertices(n int) {
	lb.numVertices = n
}

// NumVertices returns the explicit vertex count if set, or the
// number of whole vertices in the first vertex stream.
func (lb *LayoutBase) NumVertices() int {
	if lb.numVertices > 0 {
		return lb.numVertices
	}
	if len(lb.vertexStreams) == 0 {
		return 0
	}
	vs := lb.vertexStreams[0]
	return vs.Buffer.Size() / vs.Stride
}

// NumIndices returns the number of indices in the index stream.
func (lb *LayoutBase) NumIndices() int {
	if !lb.hasIndices {
		return 0
	}
	return lb.indexStream.Buffer.Size() / lb.indexStream.Format.Size()
}

// NumPrimitives returns the number of primitives one draw produces.
func (lb *LayoutBase) NumPrimitives() int {
	if lb.hasIndices {
		return lb.topology.Primitives(lb.NumIndices())
	}
	return lb.topology.Primitives(lb.NumVertices())
}

// BeginActive marks the layout active, failing if it already is
// or if any bound buffer is no longer valid.
func (lb *LayoutBase) BeginActive() error {
	if lb.active {
		return ErrLayoutActive
	}
	for _, vs := range lb.vertexStreams {
		if !vs.Buffer.Valid() {
			return ErrInvalidResource
		}
	}
	if lb.hasIndices && !lb.indexStream.Buffer.Valid() {
		return ErrInvalidResource
	}
	lb.active = true
	return nil
}

// EndActive marks the layout inactive, failing if it is not active.
func (lb *LayoutBase) EndActive() error {
	if !lb.active {
		return ErrLayoutInactive
	}
	lb.active = false
	return nil
}

// DeviceLost resets the active state and forces a rebuild of device
// bindings. Backends holding native layout objects extend it.
func (lb *LayoutBase) DeviceLost() {
	lb.active = false
	lb.dirty = true
}

func (lb *LayoutBase) DeviceRestored() error { return nil }

// WithLayout activates the layout, calls fn, and deactivates the
// layout even if fn fails or panics. The first error is returned.
func WithLayout(l RenderLayout, fn func() error) (err error) {
	if err := l.Active(); err != nil {
		return err
	}
	defer func() {
		if derr := l.Deactive(); err == nil {
			err = derr
		}
	}()
	return fn()
}
