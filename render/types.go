// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"strings"
)

// Handle is a backend native object name. Zero is never a valid handle.
type Handle uint64

// ResourceKinds are the kinds of objects a [Backend] creates and destroys.
type ResourceKinds int32

const (
	BufferResource ResourceKinds = iota
	TextureResource
	SamplerResource
	ViewResource
	QueryResource
	LayoutResource
)

// BufferType tags a graphics buffer as holding vertices or indices.
type BufferType int32

const (
	VertexBuffer BufferType = iota
	IndexBuffer
)

func (bt BufferType) String() string {
	if bt == IndexBuffer {
		return "Index"
	}
	return "Vertex"
}

// BufferUsage is the expected update frequency of a buffer.
type BufferUsage int32

const (
	StaticUsage BufferUsage = iota
	DynamicUsage
)

// BindFlags are the pipeline bindings a resource may be viewed as.
type BindFlags uint32

const (
	BindShaderResource BindFlags = 1 << iota
	BindRenderTarget
	BindDepthStencil
	BindUnorderedAccess
)

// Has returns true if all of the given flags are set.
func (bf BindFlags) Has(flags BindFlags) bool {
	return bf&flags == flags
}

// ElementFormat is the data format of a texel, vertex element or index.
type ElementFormat int32

const (
	FormatUnknown ElementFormat = iota
	FormatR8
	FormatRGBA8
	FormatRGBA16F
	FormatR32F
	FormatRG32F
	FormatRGB32F
	FormatRGBA32F
	FormatR16UI
	FormatR32UI
	FormatD16
	FormatD24S8
	FormatD32F
)

var formatSizes = [...]int{0, 1, 4, 8, 4, 8, 12, 16, 2, 4, 2, 4, 4}

var formatNames = [...]string{"Unknown", "R8", "RGBA8", "RGBA16F", "R32F", "RG32F", "RGB32F", "RGBA32F", "R16UI", "R32UI", "D16", "D24S8", "D32F"}

func (ef ElementFormat) String() string {
	if ef < 0 || int(ef) >= len(formatNames) {
		return fmt.Sprintf("ElementFormat(%d)", int32(ef))
	}
	return formatNames[ef]
}

// ParseElementFormat returns the format of the given name, ignoring case.
func ParseElementFormat(s string) (ElementFormat, error) {
	for i, n := range formatNames {
		if strings.EqualFold(n, s) {
			return ElementFormat(i), nil
		}
	}
	return FormatUnknown, fmt.Errorf("render: unknown element format %q", s)
}

// Size returns the number of bytes per element.
func (ef ElementFormat) Size() int {
	if ef < 0 || int(ef) >= len(formatSizes) {
		return 0
	}
	return formatSizes[ef]
}

// Components returns the number of components per element.
func (ef ElementFormat) Components() int {
	switch ef {
	case FormatRG32F:
		return 2
	case FormatRGB32F:
		return 3
	case FormatRGBA8, FormatRGBA16F, FormatRGBA32F:
		return 4
	case FormatUnknown:
		return 0
	}
	return 1
}

// IsDepth returns true for depth and depth-stencil formats.
func (ef ElementFormat) IsDepth() bool {
	return ef == FormatD16 || ef == FormatD24S8 || ef == FormatD32F
}

// IsIndex returns true for formats usable in an index stream.
func (ef ElementFormat) IsIndex() bool {
	return ef == FormatR16UI || ef == FormatR32UI
}

// Topology is the primitive type drawn from a layout.
type Topology int32

const (
	PointList Topology = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

// Primitives returns the number of primitives drawn from n vertices or indices.
func (tp Topology) Primitives(n int) int {
	switch tp {
	case PointList:
		return n
	case LineList:
		return n / 2
	case LineStrip:
		return max(n-1, 0)
	case TriangleList:
		return n / 3
	case TriangleStrip:
		return max(n-2, 0)
	}
	return 0
}

// Features are optional backend capabilities.
type Features uint32

const (
	FeatureVertexArrays Features = 1 << iota
	FeatureSamplerObjects
	FeatureOcclusionQuery
	FeatureConditionalRender
	FeaturePrimitiveRestart
	FeatureUnorderedAccess
	FeatureAnisotropicFilter
)

// Has returns true if all of the given features are present.
func (f Features) Has(feats Features) bool {
	return f&feats == feats
}

// Caps describes what a backend device supports.
type Caps struct {
	Features         Features
	MaxTextureSize   int
	MaxVertexStreams int
	MaxAnisotropy    uint8
}

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

// RenderSettings configures the device a backend creates.
type RenderSettings struct {
	Width              int
	Height             int
	ColorFormat        ElementFormat
	DepthStencilFormat ElementFormat
	SampleCount        int
	SampleQuality      int
	FullScreen         bool
	SyncInterval       int
}

// Defaults sets the default settings: an 800x600 RGBA8 frame with
// a D24S8 depth buffer, no multisampling and vsync on.
func (rs *RenderSettings) Defaults() {
	rs.Width = 800
	rs.Height = 600
	rs.ColorFormat = FormatRGBA8
	rs.DepthStencilFormat = FormatD24S8
	rs.SampleCount = 1
	rs.SampleQuality = 0
	rs.SyncInterval = 1
}
