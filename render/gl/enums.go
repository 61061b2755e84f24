// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

// Enum is an OpenGL enumerant.
type Enum uint32

// OpenGL and OpenGL ES enumerants used by this backend.
const (
	NO_ERROR Enum = 0

	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	LINE_STRIP     Enum = 0x0003
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005

	UNSIGNED_BYTE  Enum = 0x1401
	UNSIGNED_SHORT Enum = 0x1403
	UNSIGNED_INT   Enum = 0x1405
	FLOAT          Enum = 0x1406
	HALF_FLOAT     Enum = 0x140B

	RENDERER   Enum = 0x1F01
	VERSION    Enum = 0x1F02
	EXTENSIONS Enum = 0x1F03

	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STATIC_DRAW          Enum = 0x88E4
	DYNAMIC_DRAW         Enum = 0x88E8

	TEXTURE_2D           Enum = 0x0DE1
	TEXTURE0             Enum = 0x84C0
	RED                  Enum = 0x1903
	RG                   Enum = 0x8227
	RGB                  Enum = 0x1907
	RGBA                 Enum = 0x1908
	R8                   Enum = 0x8229
	RGBA8                Enum = 0x8058
	RGBA16F              Enum = 0x881A
	R32F                 Enum = 0x822E
	RG32F                Enum = 0x8230
	RGB32F               Enum = 0x8815
	RGBA32F              Enum = 0x8814
	DEPTH_COMPONENT      Enum = 0x1902
	DEPTH_COMPONENT16    Enum = 0x81A5
	DEPTH_COMPONENT32F   Enum = 0x8CAC
	DEPTH_STENCIL        Enum = 0x84F9
	DEPTH24_STENCIL8     Enum = 0x88F0
	UNSIGNED_INT_24_8    Enum = 0x84FA
	TEXTURE_BORDER_COLOR Enum = 0x1004

	TEXTURE_MAG_FILTER     Enum = 0x2800
	TEXTURE_MIN_FILTER     Enum = 0x2801
	TEXTURE_WRAP_S         Enum = 0x2802
	TEXTURE_WRAP_T         Enum = 0x2803
	TEXTURE_WRAP_R         Enum = 0x8072
	TEXTURE_MIN_LOD        Enum = 0x813A
	TEXTURE_MAX_LOD        Enum = 0x813B
	TEXTURE_LOD_BIAS       Enum = 0x8501
	TEXTURE_MAX_ANISOTROPY Enum = 0x84FE
	NEAREST                Enum = 0x2600
	LINEAR                 Enum = 0x2601
	NEAREST_MIPMAP_NEAREST Enum = 0x2700
	LINEAR_MIPMAP_LINEAR   Enum = 0x2703
	REPEAT                 Enum = 0x2901
	CLAMP_TO_BORDER        Enum = 0x812D
	CLAMP_TO_EDGE          Enum = 0x812F
	MIRRORED_REPEAT        Enum = 0x8370

	FRAMEBUFFER              Enum = 0x8D40
	COLOR_ATTACHMENT0        Enum = 0x8CE0
	DEPTH_ATTACHMENT         Enum = 0x8D00
	DEPTH_STENCIL_ATTACHMENT Enum = 0x821A
	READ_WRITE               Enum = 0x88BA

	SAMPLES_PASSED         Enum = 0x8914
	ANY_SAMPLES_PASSED     Enum = 0x8C2F
	QUERY_RESULT           Enum = 0x8866
	QUERY_RESULT_AVAILABLE Enum = 0x8867
	QUERY_WAIT             Enum = 0x8E13

	PRIMITIVE_RESTART Enum = 0x8F9D
)
