// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

import (
	"fmt"
	"io"
	"strings"
)

// Recorder is a [Functions] implementation with no GL context. It
// hands out object names, records every call, and optionally writes
// a trace of the calls to Trace. It is used for testing and for
// tracing the command stream of a frame.
type Recorder struct {
	// Version is returned for the VERSION string.
	Version string

	// Extensions is returned, space separated, for the EXTENSIONS string.
	Extensions []string

	// QueryLatency is the number of availability polls a query
	// takes to report its result.
	QueryLatency int

	// Samples is the result reported by every query.
	Samples uint32

	// Trace receives one line per call if non-nil.
	Trace io.Writer

	// Calls are the recorded call names, in order.
	Calls []string

	next    uint32
	errs    []Enum
	polls   map[uint32]int
	enabled map[Enum]bool
}

// NewRecorder returns a recorder reporting the given version string.
func NewRecorder(version string, extensions ...string) *Recorder {
	return &Recorder{Version: version, Extensions: extensions, QueryLatency: 1}
}

// FailNext makes the next GetError call return e.
func (r *Recorder) FailNext(e Enum) {
	r.errs = append(r.errs, e)
}

// Count returns the number of recorded calls with the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// Reset clears the recorded calls.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Enabled returns whether the capability is enabled.
func (r *Recorder) Enabled(c Enum) bool { return r.enabled[c] }

func (r *Recorder) call(name string, args ...any) {
	r.Calls = append(r.Calls, name)
	if r.Trace == nil {
		return
	}
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = fmt.Sprint(a)
	}
	fmt.Fprintf(r.Trace, "gl%s(%s)\n", name, strings.Join(s, ", "))
}

func (r *Recorder) gen(name string) uint32 {
	r.next++
	r.call(name)
	return r.next
}

func (r *Recorder) GetString(name Enum) string {
	r.call("GetString", name)
	switch name {
	case VERSION:
		return r.Version
	case EXTENSIONS:
		return strings.Join(r.Extensions, " ")
	case RENDERER:
		return "recorder"
	}
	return ""
}

func (r *Recorder) GetError() Enum {
	if len(r.errs) == 0 {
		return NO_ERROR
	}
	e := r.errs[0]
	r.errs = r.errs[1:]
	return e
}

func (r *Recorder) GenBuffer() uint32                           { return r.gen("GenBuffer") }
func (r *Recorder) DeleteBuffer(buf uint32)                     { r.call("DeleteBuffer", buf) }
func (r *Recorder) BindBuffer(target Enum, buf uint32)          { r.call("BindBuffer", target, buf) }
func (r *Recorder) BufferData(target Enum, data []byte, u Enum) { r.call("BufferData", target, len(data), u) }

func (r *Recorder) BufferSubData(target Enum, offset int, data []byte) {
	r.call("BufferSubData", target, offset, len(data))
}

func (r *Recorder) GenTexture() uint32                  { return r.gen("GenTexture") }
func (r *Recorder) DeleteTexture(tex uint32)            { r.call("DeleteTexture", tex) }
func (r *Recorder) ActiveTexture(unit Enum)             { r.call("ActiveTexture", unit) }
func (r *Recorder) BindTexture(target Enum, tex uint32) { r.call("BindTexture", target, tex) }

func (r *Recorder) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte) {
	r.call("TexImage2D", target, level, internalFormat, width, height, format, ty, len(data))
}

func (r *Recorder) TexParameteri(target, pname Enum, param int32) {
	r.call("TexParameteri", target, pname, param)
}

func (r *Recorder) TexParameterf(target, pname Enum, param float32) {
	r.call("TexParameterf", target, pname, param)
}

func (r *Recorder) TexParameterfv(target, pname Enum, params []float32) {
	r.call("TexParameterfv", target, pname, params)
}

func (r *Recorder) GenSampler() uint32                  { return r.gen("GenSampler") }
func (r *Recorder) DeleteSampler(smp uint32)            { r.call("DeleteSampler", smp) }
func (r *Recorder) BindSampler(unit uint32, smp uint32) { r.call("BindSampler", unit, smp) }

func (r *Recorder) SamplerParameteri(smp uint32, pname Enum, param int32) {
	r.call("SamplerParameteri", smp, pname, param)
}

func (r *Recorder) SamplerParameterf(smp uint32, pname Enum, param float32) {
	r.call("SamplerParameterf", smp, pname, param)
}

func (r *Recorder) SamplerParameterfv(smp uint32, pname Enum, params []float32) {
	r.call("SamplerParameterfv", smp, pname, params)
}

func (r *Recorder) GenVertexArray() uint32               { return r.gen("GenVertexArray") }
func (r *Recorder) DeleteVertexArray(vao uint32)         { r.call("DeleteVertexArray", vao) }
func (r *Recorder) BindVertexArray(vao uint32)           { r.call("BindVertexArray", vao) }
func (r *Recorder) EnableVertexAttribArray(index uint32) { r.call("EnableVertexAttribArray", index) }

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	r.call("DisableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int, ty Enum, normalized bool, stride, offset int) {
	r.call("VertexAttribPointer", index, size, ty, normalized, stride, offset)
}

func (r *Recorder) Enable(c Enum) {
	if r.enabled == nil {
		r.enabled = make(map[Enum]bool)
	}
	r.enabled[c] = true
	r.call("Enable", c)
}

func (r *Recorder) Disable(c Enum) {
	delete(r.enabled, c)
	r.call("Disable", c)
}

func (r *Recorder) PrimitiveRestartIndex(index uint32) { r.call("PrimitiveRestartIndex", index) }

func (r *Recorder) DrawArrays(mode Enum, first, count int) {
	r.call("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode Enum, count int, ty Enum, offset int) {
	r.call("DrawElements", mode, count, ty, offset)
}

func (r *Recorder) GenQuery() uint32      { return r.gen("GenQuery") }
func (r *Recorder) DeleteQuery(q uint32)  { r.call("DeleteQuery", q) }
func (r *Recorder) EndQuery(target Enum)  { r.call("EndQuery", target) }
func (r *Recorder) EndConditionalRender() { r.call("EndConditionalRender") }

func (r *Recorder) BeginQuery(t Enum, q uint32) {
	if r.polls == nil {
		r.polls = make(map[uint32]int)
	}
	r.polls[q] = 0
	r.call("BeginQuery", t, q)
}

// GetQueryObjectuiv reports the result available after QueryLatency polls.
func (r *Recorder) GetQueryObjectuiv(q uint32, pname Enum) uint32 {
	r.call("GetQueryObjectuiv", q, pname)
	switch pname {
	case QUERY_RESULT_AVAILABLE:
		if r.polls == nil {
			r.polls = make(map[uint32]int)
		}
		r.polls[q]++
		if r.polls[q] >= r.QueryLatency {
			return 1
		}
		return 0
	case QUERY_RESULT:
		return r.Samples
	}
	return 0
}

func (r *Recorder) BeginConditionalRender(q uint32, mode Enum) {
	r.call("BeginConditionalRender", q, mode)
}

func (r *Recorder) GenFramebuffer() uint32                 { return r.gen("GenFramebuffer") }
func (r *Recorder) DeleteFramebuffer(fb uint32)            { r.call("DeleteFramebuffer", fb) }
func (r *Recorder) BindFramebuffer(target Enum, fb uint32) { r.call("BindFramebuffer", target, fb) }

func (r *Recorder) FramebufferTexture2D(target, attachment, texTarget Enum, tex uint32, level int) {
	r.call("FramebufferTexture2D", target, attachment, texTarget, tex, level)
}

func (r *Recorder) BindImageTexture(unit uint32, tex uint32, level int, layered bool, layer int, access, format Enum) {
	r.call("BindImageTexture", unit, tex, level, layered, layer, access, format)
}

func (r *Recorder) Flush() { r.call("Flush") }
