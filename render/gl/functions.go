// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

// Functions is the table of OpenGL entry points the backend calls,
// in the style of golang.org/x/mobile/gl. A platform layer that owns
// the GL context supplies an implementation through [SetLoader];
// calls are only made from the render thread with the context current.
//
// Object names are uint32 with zero meaning none, as in GL.
type Functions interface {
	GetString(name Enum) string
	GetError() Enum

	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target Enum, buf uint32)
	BufferData(target Enum, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)

	GenTexture() uint32
	DeleteTexture(tex uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, tex uint32)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int32)
	TexParameterf(target, pname Enum, param float32)
	TexParameterfv(target, pname Enum, params []float32)

	GenSampler() uint32
	DeleteSampler(smp uint32)
	BindSampler(unit uint32, smp uint32)
	SamplerParameteri(smp uint32, pname Enum, param int32)
	SamplerParameterf(smp uint32, pname Enum, param float32)
	SamplerParameterfv(smp uint32, pname Enum, params []float32)

	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int, ty Enum, normalized bool, stride, offset int)

	Enable(cap Enum)
	Disable(cap Enum)
	PrimitiveRestartIndex(index uint32)
	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, ty Enum, offset int)

	GenQuery() uint32
	DeleteQuery(q uint32)
	BeginQuery(target Enum, q uint32)
	EndQuery(target Enum)
	GetQueryObjectuiv(q uint32, pname Enum) uint32
	BeginConditionalRender(q uint32, mode Enum)
	EndConditionalRender()

	GenFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(target Enum, fb uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, tex uint32, level int)
	BindImageTexture(unit uint32, tex uint32, level int, layered bool, layer int, access, format Enum)

	Flush()
}
