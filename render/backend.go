// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// Backend is the native device interface implemented by each render
// plugin (null, soft, opengl, opengles2). The [Engine] builds the
// device-independent resource model on top of it: resource tracking,
// view validity, sampler caching and device-lost recovery.
//
// Backends are driven from a single render thread and need no locking.
type Backend interface {
	// Name returns the backend identifier, such as "opengl".
	Name() string

	// Init creates the device.
	Init(settings RenderSettings) error

	Caps() Caps

	CreateBuffer(desc *BufferDesc, data []byte) (Handle, error)
	UpdateBuffer(h Handle, offset int, data []byte) error
	CreateTexture(desc *TextureDesc, data []byte) (Handle, error)
	CreateSampler(s *Sampler) (Handle, error)
	CreateView(kind ViewKinds, res Handle, desc *ViewDesc) (Handle, error)

	// Destroy releases a native object. Zero handles are ignored.
	Destroy(kind ResourceKinds, h Handle)

	BindView(kind ViewKinds, h Handle, slot int) error
	BindSampler(h Handle, slot int) error

	// NewLayout returns an empty layout whose Active and Deactive
	// bind streams on this device.
	NewLayout() RenderLayout

	NewQuery(kind QueryKinds) (Query, error)

	// Draw issues one draw call for an active layout.
	Draw(l RenderLayout) error

	BeginFrame() error
	EndFrame() error

	// Suspend releases the device context, for example when the
	// device is lost or the application is paused.
	Suspend() error

	// Resume reacquires the device context after Suspend.
	Resume() error

	// Close destroys the device.
	Close() error
}
