// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

import (
	"fmt"

	"cogentcore.org/engine/render"
)

// attribFormat returns the component count and type of a vertex element format.
func attribFormat(f render.ElementFormat) (size int, ty Enum, normalized bool, err error) {
	switch f {
	case render.FormatR8:
		return 1, UNSIGNED_BYTE, true, nil
	case render.FormatRGBA8:
		return 4, UNSIGNED_BYTE, true, nil
	case render.FormatR32F, render.FormatRG32F, render.FormatRGB32F, render.FormatRGBA32F:
		return f.Components(), FLOAT, false, nil
	case render.FormatRGBA16F:
		return 4, HALF_FLOAT, false, nil
	case render.FormatR16UI:
		return 1, UNSIGNED_SHORT, false, nil
	case render.FormatR32UI:
		return 1, UNSIGNED_INT, false, nil
	}
	return 0, 0, false, fmt.Errorf("gl: format %d cannot be a vertex attribute", f)
}

// Layout binds vertex and index streams. With vertex array objects
// the attribute setup is recorded once into a VAO and rebuilt only
// when streams change; otherwise attributes are set on every Active
// and disabled again on Deactive.
type Layout struct {
	render.LayoutBase
	dev *Backend

	vao     uint32
	attribs uint32
	restart bool
}

func (l *Layout) useVAO() bool {
	return l.dev.caps.Features.Has(render.FeatureVertexArrays)
}

// setupAttribs binds every stream buffer and points consecutive
// attribute indices at its elements, in stream order.
func (l *Layout) setupAttribs() error {
	gl := l.dev.gl
	idx := uint32(0)
	for _, vs := range l.VertexStreams() {
		o, err := l.dev.lookup(vs.Buffer.Handle(), render.BufferResource)
		if err != nil {
			return err
		}
		gl.BindBuffer(ARRAY_BUFFER, o.name)
		offset := 0
		for _, el := range vs.Elements {
			size, ty, norm, err := attribFormat(el.Format)
			if err != nil {
				return err
			}
			gl.EnableVertexAttribArray(idx)
			gl.VertexAttribPointer(idx, size, ty, norm, vs.Stride, offset)
			offset += el.Format.Size()
			idx++
		}
	}
	l.attribs = idx
	if is, ok := l.IndexStream(); ok {
		o, err := l.dev.lookup(is.Buffer.Handle(), render.BufferResource)
		if err != nil {
			return err
		}
		gl.BindBuffer(ELEMENT_ARRAY_BUFFER, o.name)
	}
	return nil
}

func (l *Layout) Active() error {
	if n := len(l.VertexStreams()); n > l.dev.caps.MaxVertexStreams {
		return fmt.Errorf("gl: %d vertex streams exceeds max %d", n, l.dev.caps.MaxVertexStreams)
	}
	if err := l.BeginActive(); err != nil {
		return err
	}
	gl := l.dev.gl
	if l.useVAO() {
		if l.vao == 0 {
			l.vao = gl.GenVertexArray()
			l.MarkDirty()
		}
		gl.BindVertexArray(l.vao)
		if l.Dirty() {
			if err := l.setupAttribs(); err != nil {
				gl.BindVertexArray(0)
				l.EndActive()
				return err
			}
			l.ClearDirty()
		}
	} else if err := l.setupAttribs(); err != nil {
		l.EndActive()
		return err
	}
	if is, ok := l.IndexStream(); ok && l.dev.caps.Features.Has(render.FeaturePrimitiveRestart) {
		if l.Topology() == render.LineStrip || l.Topology() == render.TriangleStrip {
			gl.Enable(PRIMITIVE_RESTART)
			gl.PrimitiveRestartIndex(RestartIndex(is.Format))
			l.restart = true
		}
	}
	if err := l.dev.checkError("activate layout"); err != nil {
		l.Deactive()
		return err
	}
	return nil
}

// RestartIndex returns the primitive restart index for an index format.
func RestartIndex(f render.ElementFormat) uint32 {
	if f == render.FormatR32UI {
		return 0xFFFFFFFF
	}
	return 0xFFFF
}

func (l *Layout) Deactive() error {
	if err := l.EndActive(); err != nil {
		return err
	}
	gl := l.dev.gl
	if l.restart {
		gl.Disable(PRIMITIVE_RESTART)
		l.restart = false
	}
	if l.useVAO() {
		gl.BindVertexArray(0)
		return nil
	}
	for i := uint32(0); i < l.attribs; i++ {
		gl.DisableVertexAttribArray(i)
	}
	return nil
}

func (l *Layout) DeviceLost() {
	if l.vao != 0 {
		l.dev.gl.DeleteVertexArray(l.vao)
		l.vao = 0
	}
	l.restart = false
	l.LayoutBase.DeviceLost()
}
