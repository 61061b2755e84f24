// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package null provides a render backend that accepts every command
// and draws nothing. Queries resolve immediately with zero samples.
// It is used for headless runs and tests.
package null

import (
	"cogentcore.org/engine/render"
)

func init() {
	render.Register("null", render.APIVersion, func() (render.Backend, error) {
		return New(), nil
	})
}

// Backend is the null render backend.
type Backend struct {
	next render.Handle
}

// New returns a new null backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) handle() render.Handle {
	b.next++
	return b.next
}

func (b *Backend) Name() string                              { return "null" }
func (b *Backend) Init(settings render.RenderSettings) error { return nil }

func (b *Backend) Caps() render.Caps {
	return render.Caps{
		Features:         render.FeatureOcclusionQuery | render.FeatureConditionalRender | render.FeatureSamplerObjects,
		MaxTextureSize:   16384,
		MaxVertexStreams: 16,
		MaxAnisotropy:    16,
	}
}

func (b *Backend) CreateBuffer(desc *render.BufferDesc, data []byte) (render.Handle, error) {
	return b.handle(), nil
}

func (b *Backend) UpdateBuffer(h render.Handle, offset int, data []byte) error { return nil }

func (b *Backend) CreateTexture(desc *render.TextureDesc, data []byte) (render.Handle, error) {
	return b.handle(), nil
}

func (b *Backend) CreateSampler(s *render.Sampler) (render.Handle, error) {
	return b.handle(), nil
}

func (b *Backend) CreateView(kind render.ViewKinds, res render.Handle, desc *render.ViewDesc) (render.Handle, error) {
	return b.handle(), nil
}

func (b *Backend) Destroy(kind render.ResourceKinds, h render.Handle)           {}
func (b *Backend) BindView(kind render.ViewKinds, h render.Handle, slot int) error { return nil }
func (b *Backend) BindSampler(h render.Handle, slot int) error                     { return nil }

func (b *Backend) NewLayout() render.RenderLayout {
	return &Layout{LayoutBase: render.NewLayoutBase()}
}

func (b *Backend) NewQuery(kind render.QueryKinds) (render.Query, error) {
	return &Query{QueryBase: render.NewQueryBase(kind)}, nil
}

func (b *Backend) Draw(l render.RenderLayout) error { return nil }
func (b *Backend) BeginFrame() error                { return nil }
func (b *Backend) EndFrame() error                  { return nil }
func (b *Backend) Suspend() error                   { return nil }
func (b *Backend) Resume() error                    { return nil }
func (b *Backend) Close() error                     { return nil }

// Layout is a layout that only tracks its active state.
type Layout struct {
	render.LayoutBase
}

func (l *Layout) Active() error   { return l.BeginActive() }
func (l *Layout) Deactive() error { return l.EndActive() }

// Query resolves with zero samples as soon as it ends.
type Query struct {
	render.QueryBase
}

func (q *Query) Begin() error { return q.BeginTransition() }

func (q *Query) End() error {
	if err := q.EndTransition(); err != nil {
		return err
	}
	q.Resolve(0)
	return nil
}

func (q *Query) SamplesPassed() (uint64, bool, error) {
	return q.CachedResult()
}

func (q *Query) AnySamplesPassed() (bool, bool, error) {
	n, ready, err := q.CachedResult()
	return n > 0, ready, err
}

func (q *Query) BeginConditionalRender() error { return nil }
func (q *Query) EndConditionalRender() error   { return nil }

func (q *Query) DeviceLost()           { q.Reset() }
func (q *Query) DeviceRestored() error { return nil }
