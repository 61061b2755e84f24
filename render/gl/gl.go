// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gl provides the OpenGL and OpenGL ES 2 render backends.
// Both profiles share one implementation over a [Functions] table;
// feature detection from the context version and extension string
// picks the vertex array object path for layouts, native sampler
// objects, occlusion queries, conditional rendering and primitive
// restart where available, and falls back to per-draw attribute
// binding and per-texture sampler state otherwise.
package gl

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"cogentcore.org/engine/render"
)

// Profile selects the OpenGL flavor of a backend.
type Profile struct {
	Name string

	// ES is true for OpenGL ES.
	ES bool
}

var (
	OpenGL    = Profile{Name: "opengl"}
	OpenGLES2 = Profile{Name: "opengles2", ES: true}
)

// Loader returns the function table for a current context of the given profile.
type Loader func(p Profile) (Functions, error)

var (
	loaderMu sync.Mutex
	loader   Loader
)

// SetLoader sets the function used to obtain GL entry points.
// Until it is set, making an OpenGL backend returns
// [render.ErrBackendUnavailable].
func SetLoader(ld Loader) {
	loaderMu.Lock()
	loader = ld
	loaderMu.Unlock()
}

func init() {
	for _, p := range []Profile{OpenGL, OpenGLES2} {
		render.Register(p.Name, render.APIVersion, func() (render.Backend, error) {
			return New(p)
		})
	}
}

// New returns a backend of the given profile using the installed [Loader].
func New(p Profile) (*Backend, error) {
	loaderMu.Lock()
	ld := loader
	loaderMu.Unlock()
	if ld == nil {
		return nil, fmt.Errorf("%s: no GL loader installed: %w", p.Name, render.ErrBackendUnavailable)
	}
	fns, err := ld(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", p.Name, render.ErrBackendUnavailable, err)
	}
	return NewWithFunctions(p, fns), nil
}

// NewWithFunctions returns a backend calling the given function table.
func NewWithFunctions(p Profile, fns Functions) *Backend {
	return &Backend{profile: p, gl: fns}
}

// glObject is the native state behind one [render.Handle].
type glObject struct {
	kind   render.ResourceKinds
	name   uint32
	target Enum

	// texture format, for views
	format render.ElementFormat

	// view state
	view    render.ViewKinds
	texture uint32
	desc    render.ViewDesc

	// sampler state for profiles without sampler objects
	sampler render.Sampler
}

// Backend is an OpenGL or OpenGL ES 2 render backend.
type Backend struct {
	profile Profile
	gl      Functions

	major, minor int
	extensions   map[string]bool
	caps         render.Caps

	objects map[render.Handle]*glObject
	next    render.Handle

	fbo           uint32
	boundTextures map[int]uint32
	boundSamplers map[int]*glObject
	activeQuery   *Query
}

func (b *Backend) Name() string { return b.profile.Name }

// Profile returns the backend profile.
func (b *Backend) Profile() Profile { return b.profile }

// Version returns the context major and minor version.
func (b *Backend) Version() (major, minor int) { return b.major, b.minor }

// HasExtension returns true if the context reports the named extension.
func (b *Backend) HasExtension(name string) bool { return b.extensions[name] }

// parseVersion extracts the major and minor version from a GL_VERSION
// string such as "4.6.0 NVIDIA 535.54" or "OpenGL ES 2.0 Mesa".
func parseVersion(s string) (major, minor int, err error) {
	s = strings.TrimPrefix(s, "OpenGL ES ")
	s = strings.TrimPrefix(s, "OpenGL ES-CM ")
	ver, _, _ := strings.Cut(s, " ")
	maj, rest, ok := strings.Cut(ver, ".")
	if !ok {
		return 0, 0, fmt.Errorf("gl: unrecognized version %q", s)
	}
	mnr, _, _ := strings.Cut(rest, ".")
	if major, err = strconv.Atoi(maj); err != nil {
		return 0, 0, fmt.Errorf("gl: unrecognized version %q", s)
	}
	if minor, err = strconv.Atoi(mnr); err != nil {
		return 0, 0, fmt.Errorf("gl: unrecognized version %q", s)
	}
	return major, minor, nil
}

func (b *Backend) atLeast(major, minor int) bool {
	return b.major > major || (b.major == major && b.minor >= minor)
}

func (b *Backend) Init(settings render.RenderSettings) error {
	var err error
	b.major, b.minor, err = parseVersion(b.gl.GetString(VERSION))
	if err != nil {
		return err
	}
	if b.profile.ES && b.major < 2 {
		return fmt.Errorf("gl: OpenGL ES %d.%d context, 2.0 required", b.major, b.minor)
	}
	if !b.profile.ES && !b.atLeast(2, 0) {
		return fmt.Errorf("gl: OpenGL %d.%d context, 2.0 required", b.major, b.minor)
	}
	b.extensions = make(map[string]bool)
	for _, ext := range strings.Fields(b.gl.GetString(EXTENSIONS)) {
		b.extensions[ext] = true
	}
	b.caps = b.detectCaps()
	b.objects = make(map[render.Handle]*glObject)
	b.boundTextures = make(map[int]uint32)
	b.boundSamplers = make(map[int]*glObject)
	slog.Info("gl context", "profile", b.profile.Name, "version", fmt.Sprintf("%d.%d", b.major, b.minor),
		"renderer", b.gl.GetString(RENDERER), "extensions", len(b.extensions))
	return nil
}

func (b *Backend) detectCaps() render.Caps {
	c := render.Caps{MaxTextureSize: 4096, MaxVertexStreams: 8, MaxAnisotropy: 1}
	if b.profile.ES {
		c.MaxTextureSize = 2048
		if b.HasExtension("GL_EXT_occlusion_query_boolean") {
			c.Features |= render.FeatureOcclusionQuery
		}
	} else {
		c.MaxVertexStreams = 16
		c.Features |= render.FeatureOcclusionQuery
		if b.atLeast(3, 0) || b.HasExtension("GL_ARB_vertex_array_object") {
			c.Features |= render.FeatureVertexArrays
		}
		if b.atLeast(3, 3) || b.HasExtension("GL_ARB_sampler_objects") {
			c.Features |= render.FeatureSamplerObjects
		}
		if b.atLeast(3, 0) || b.HasExtension("GL_NV_conditional_render") {
			c.Features |= render.FeatureConditionalRender
		}
		if b.atLeast(3, 1) || b.HasExtension("GL_NV_primitive_restart") {
			c.Features |= render.FeaturePrimitiveRestart
		}
		if b.atLeast(4, 2) || b.HasExtension("GL_ARB_shader_image_load_store") {
			c.Features |= render.FeatureUnorderedAccess
		}
	}
	if b.HasExtension("GL_EXT_texture_filter_anisotropic") || b.HasExtension("GL_ARB_texture_filter_anisotropic") {
		c.Features |= render.FeatureAnisotropicFilter
		c.MaxAnisotropy = 16
	}
	return c
}

func (b *Backend) Caps() render.Caps { return b.caps }

func (b *Backend) add(o *glObject) render.Handle {
	b.next++
	b.objects[b.next] = o
	return b.next
}

func (b *Backend) lookup(h render.Handle, kind render.ResourceKinds) (*glObject, error) {
	o, ok := b.objects[h]
	if !ok || o.kind != kind {
		return nil, fmt.Errorf("gl: handle %d is not a live object of kind %d", h, kind)
	}
	return o, nil
}

// checkError returns the pending GL error, if any.
func (b *Backend) checkError(op string) error {
	if e := b.gl.GetError(); e != NO_ERROR {
		return fmt.Errorf("gl: %s: error 0x%04X", op, uint32(e))
	}
	return nil
}

func bufferTarget(bt render.BufferType) Enum {
	if bt == render.IndexBuffer {
		return ELEMENT_ARRAY_BUFFER
	}
	return ARRAY_BUFFER
}

func bufferUsage(u render.BufferUsage) Enum {
	if u == render.DynamicUsage {
		return DYNAMIC_DRAW
	}
	return STATIC_DRAW
}

func (b *Backend) CreateBuffer(desc *render.BufferDesc, data []byte) (render.Handle, error) {
	target := bufferTarget(desc.Type)
	name := b.gl.GenBuffer()
	b.gl.BindBuffer(target, name)
	b.gl.BufferData(target, data, bufferUsage(desc.Usage))
	if err := b.checkError("create buffer"); err != nil {
		b.gl.DeleteBuffer(name)
		return 0, err
	}
	return b.add(&glObject{kind: render.BufferResource, name: name, target: target}), nil
}

func (b *Backend) UpdateBuffer(h render.Handle, offset int, data []byte) error {
	o, err := b.lookup(h, render.BufferResource)
	if err != nil {
		return err
	}
	b.gl.BindBuffer(o.target, o.name)
	b.gl.BufferSubData(o.target, offset, data)
	return b.checkError("update buffer")
}

// textureFormat returns the internal format, format and type for an
// element format, reporting false when the profile cannot store it.
func (b *Backend) textureFormat(f render.ElementFormat) (internal, format, ty Enum, ok bool) {
	if b.profile.ES {
		// unsized formats only in ES 2
		switch f {
		case render.FormatRGBA8:
			return RGBA, RGBA, UNSIGNED_BYTE, true
		case render.FormatD16:
			return DEPTH_COMPONENT, DEPTH_COMPONENT, UNSIGNED_SHORT, b.HasExtension("GL_OES_depth_texture")
		}
		return 0, 0, 0, false
	}
	switch f {
	case render.FormatR8:
		return R8, RED, UNSIGNED_BYTE, true
	case render.FormatRGBA8:
		return RGBA8, RGBA, UNSIGNED_BYTE, true
	case render.FormatRGBA16F:
		return RGBA16F, RGBA, HALF_FLOAT, true
	case render.FormatR32F:
		return R32F, RED, FLOAT, true
	case render.FormatRG32F:
		return RG32F, RG, FLOAT, true
	case render.FormatRGB32F:
		return RGB32F, RGB, FLOAT, true
	case render.FormatRGBA32F:
		return RGBA32F, RGBA, FLOAT, true
	case render.FormatD16:
		return DEPTH_COMPONENT16, DEPTH_COMPONENT, UNSIGNED_SHORT, true
	case render.FormatD24S8:
		return DEPTH24_STENCIL8, DEPTH_STENCIL, UNSIGNED_INT_24_8, true
	case render.FormatD32F:
		return DEPTH_COMPONENT32F, DEPTH_COMPONENT, FLOAT, true
	}
	return 0, 0, 0, false
}

func (b *Backend) CreateTexture(desc *render.TextureDesc, data []byte) (render.Handle, error) {
	if desc.Width > b.caps.MaxTextureSize || desc.Height > b.caps.MaxTextureSize {
		return 0, fmt.Errorf("gl: texture %dx%d exceeds max size %d", desc.Width, desc.Height, b.caps.MaxTextureSize)
	}
	internal, format, ty, ok := b.textureFormat(desc.Format)
	if !ok {
		return 0, fmt.Errorf("gl: %s cannot store texture format %d", b.profile.Name, desc.Format)
	}
	name := b.gl.GenTexture()
	b.gl.BindTexture(TEXTURE_2D, name)
	b.gl.TexImage2D(TEXTURE_2D, 0, internal, desc.Width, desc.Height, format, ty, data)
	if err := b.checkError("create texture"); err != nil {
		b.gl.DeleteTexture(name)
		return 0, err
	}
	return b.add(&glObject{kind: render.TextureResource, name: name, target: TEXTURE_2D, format: desc.Format}), nil
}

func addressMode(am render.AddressModes) int32 {
	switch am {
	case render.AddressMirror:
		return int32(MIRRORED_REPEAT)
	case render.AddressClamp:
		return int32(CLAMP_TO_EDGE)
	case render.AddressBorder:
		return int32(CLAMP_TO_BORDER)
	}
	return int32(REPEAT)
}

// filters returns the min and mag filters, with mipmapped minification.
func filters(f render.Filters) (minf, magf int32) {
	if f == render.FilterPoint {
		return int32(NEAREST_MIPMAP_NEAREST), int32(NEAREST)
	}
	return int32(LINEAR_MIPMAP_LINEAR), int32(LINEAR)
}

// samplerParams calls the given setters with the GL state for s.
func (b *Backend) samplerParams(s *render.Sampler, seti func(Enum, int32), setf func(Enum, float32), setfv func(Enum, []float32)) {
	wrapR := addressMode(s.AddrModeW)
	seti(TEXTURE_WRAP_S, addressMode(s.AddrModeU))
	seti(TEXTURE_WRAP_T, addressMode(s.AddrModeV))
	if !b.profile.ES {
		seti(TEXTURE_WRAP_R, wrapR)
		bc := s.BorderColor
		setfv(TEXTURE_BORDER_COLOR, []float32{bc.R, bc.G, bc.B, bc.A})
		setf(TEXTURE_MIN_LOD, s.MinLOD)
		setf(TEXTURE_MAX_LOD, s.MaxLOD)
		setf(TEXTURE_LOD_BIAS, s.MipLODBias)
	}
	minf, magf := filters(s.Filter)
	seti(TEXTURE_MIN_FILTER, minf)
	seti(TEXTURE_MAG_FILTER, magf)
	if s.Filter == render.FilterAnisotropic && b.caps.Features.Has(render.FeatureAnisotropicFilter) {
		setf(TEXTURE_MAX_ANISOTROPY, float32(min(s.MaxAnisotropy, b.caps.MaxAnisotropy)))
	}
}

func (b *Backend) CreateSampler(s *render.Sampler) (render.Handle, error) {
	o := &glObject{kind: render.SamplerResource, sampler: *s}
	if b.caps.Features.Has(render.FeatureSamplerObjects) {
		o.name = b.gl.GenSampler()
		b.samplerParams(s,
			func(p Enum, v int32) { b.gl.SamplerParameteri(o.name, p, v) },
			func(p Enum, v float32) { b.gl.SamplerParameterf(o.name, p, v) },
			func(p Enum, v []float32) { b.gl.SamplerParameterfv(o.name, p, v) })
		if err := b.checkError("create sampler"); err != nil {
			b.gl.DeleteSampler(o.name)
			return 0, err
		}
	}
	return b.add(o), nil
}

func (b *Backend) CreateView(kind render.ViewKinds, res render.Handle, desc *render.ViewDesc) (render.Handle, error) {
	o, err := b.lookup(res, render.TextureResource)
	if err != nil {
		return 0, fmt.Errorf("gl: %s over a non-texture resource: %w", kind, err)
	}
	if kind == render.UnorderedAccessViewKind && !b.caps.Features.Has(render.FeatureUnorderedAccess) {
		return 0, fmt.Errorf("gl: unordered access views need image load/store")
	}
	if kind == render.RenderTargetViewKind || kind == render.DepthStencilViewKind {
		if b.fbo == 0 {
			b.fbo = b.gl.GenFramebuffer()
		}
	}
	return b.add(&glObject{kind: render.ViewResource, view: kind, texture: o.name, format: o.format, desc: *desc}), nil
}

func (b *Backend) Destroy(kind render.ResourceKinds, h render.Handle) {
	o, ok := b.objects[h]
	if !ok || o.kind != kind {
		return
	}
	delete(b.objects, h)
	switch kind {
	case render.BufferResource:
		b.gl.DeleteBuffer(o.name)
	case render.TextureResource:
		b.gl.DeleteTexture(o.name)
	case render.SamplerResource:
		if o.name != 0 {
			b.gl.DeleteSampler(o.name)
		}
		for slot, so := range b.boundSamplers {
			if so == o {
				delete(b.boundSamplers, slot)
			}
		}
	}
}

func (b *Backend) BindView(kind render.ViewKinds, h render.Handle, slot int) error {
	o, err := b.lookup(h, render.ViewResource)
	if err != nil {
		return err
	}
	if o.view != kind {
		return fmt.Errorf("gl: binding %s as %s", o.view, kind)
	}
	switch kind {
	case render.ShaderResourceViewKind:
		b.gl.ActiveTexture(TEXTURE0 + Enum(slot))
		b.gl.BindTexture(TEXTURE_2D, o.texture)
		b.boundTextures[slot] = o.texture
		if so := b.boundSamplers[slot]; so != nil && so.name == 0 {
			b.applyTextureSampler(so)
		}
	case render.RenderTargetViewKind:
		b.gl.BindFramebuffer(FRAMEBUFFER, b.fbo)
		b.gl.FramebufferTexture2D(FRAMEBUFFER, COLOR_ATTACHMENT0+Enum(slot), TEXTURE_2D, o.texture, o.desc.FirstMip)
	case render.DepthStencilViewKind:
		att := DEPTH_ATTACHMENT
		if o.format == render.FormatD24S8 {
			att = DEPTH_STENCIL_ATTACHMENT
		}
		b.gl.BindFramebuffer(FRAMEBUFFER, b.fbo)
		b.gl.FramebufferTexture2D(FRAMEBUFFER, att, TEXTURE_2D, o.texture, o.desc.FirstMip)
	case render.UnorderedAccessViewKind:
		internal, _, _, _ := b.textureFormat(o.format)
		b.gl.BindImageTexture(uint32(slot), o.texture, o.desc.FirstMip, false, 0, READ_WRITE, internal)
	}
	return b.checkError("bind " + kind.String())
}

// applyTextureSampler sets sampler state on the texture bound to the
// active unit, for profiles without sampler objects.
func (b *Backend) applyTextureSampler(o *glObject) {
	b.samplerParams(&o.sampler,
		func(p Enum, v int32) { b.gl.TexParameteri(TEXTURE_2D, p, v) },
		func(p Enum, v float32) { b.gl.TexParameterf(TEXTURE_2D, p, v) },
		func(p Enum, v []float32) { b.gl.TexParameterfv(TEXTURE_2D, p, v) })
}

func (b *Backend) BindSampler(h render.Handle, slot int) error {
	o, err := b.lookup(h, render.SamplerResource)
	if err != nil {
		return err
	}
	b.boundSamplers[slot] = o
	if o.name != 0 {
		b.gl.BindSampler(uint32(slot), o.name)
	} else if b.boundTextures[slot] != 0 {
		b.gl.ActiveTexture(TEXTURE0 + Enum(slot))
		b.applyTextureSampler(o)
	}
	return b.checkError("bind sampler")
}

func (b *Backend) NewLayout() render.RenderLayout {
	return &Layout{LayoutBase: render.NewLayoutBase(), dev: b}
}

func (b *Backend) NewQuery(kind render.QueryKinds) (render.Query, error) {
	if !b.caps.Features.Has(render.FeatureOcclusionQuery) {
		return nil, fmt.Errorf("gl: %s has no occlusion queries", b.profile.Name)
	}
	q := &Query{QueryBase: render.NewQueryBase(kind), dev: b, target: SAMPLES_PASSED}
	if b.profile.ES {
		q.target = ANY_SAMPLES_PASSED
	}
	q.name = b.gl.GenQuery()
	return q, nil
}

func primitiveMode(tp render.Topology) Enum {
	switch tp {
	case render.PointList:
		return POINTS
	case render.LineList:
		return LINES
	case render.LineStrip:
		return LINE_STRIP
	case render.TriangleStrip:
		return TRIANGLE_STRIP
	}
	return TRIANGLES
}

func (b *Backend) Draw(l render.RenderLayout) error {
	gl, ok := l.(*Layout)
	if !ok || gl.dev != b {
		return fmt.Errorf("gl: draw with foreign layout %T", l)
	}
	if !gl.IsActive() {
		return render.ErrLayoutInactive
	}
	mode := primitiveMode(gl.Topology())
	if is, ok := gl.IndexStream(); ok {
		ty := UNSIGNED_SHORT
		if is.Format == render.FormatR32UI {
			ty = UNSIGNED_INT
		}
		b.gl.DrawElements(mode, gl.NumIndices(), ty, 0)
	} else {
		b.gl.DrawArrays(mode, 0, gl.NumVertices())
	}
	return b.checkError("draw")
}

func (b *Backend) BeginFrame() error {
	b.gl.BindFramebuffer(FRAMEBUFFER, 0)
	return nil
}

func (b *Backend) EndFrame() error {
	b.gl.Flush()
	return b.checkError("end frame")
}

// Suspend forgets the framebuffer and bindings. Every object was
// already released by the engine while the context was current.
func (b *Backend) Suspend() error {
	if b.fbo != 0 {
		b.gl.DeleteFramebuffer(b.fbo)
		b.fbo = 0
	}
	clear(b.objects)
	clear(b.boundTextures)
	clear(b.boundSamplers)
	b.activeQuery = nil
	return nil
}

func (b *Backend) Resume() error {
	return b.checkError("resume")
}

func (b *Backend) Close() error {
	if b.fbo != 0 {
		b.gl.DeleteFramebuffer(b.fbo)
		b.fbo = 0
	}
	b.objects = nil
	return nil
}
