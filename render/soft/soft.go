// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package soft provides a software reference render device. It keeps
// all device state in memory, validates every command against it,
// and counts the work submitted, without rasterizing. Query results
// become available a configurable number of polls after End, which
// models the asynchronous readback of a real device.
package soft

import (
	"fmt"
	"log/slog"

	"cogentcore.org/engine/render"
)

func init() {
	render.Register("soft", render.APIVersion, func() (render.Backend, error) {
		return New(), nil
	})
}

// object is one native object on the device.
type object struct {
	kind render.ResourceKinds
	data []byte
	view render.ViewKinds
}

// Backend is the software render device.
type Backend struct {
	// QueryLatency is the number of result polls after End before
	// a query resolves.
	QueryLatency int

	// FailResume makes the next Resume fail, to simulate a device
	// that cannot be recovered.
	FailResume bool

	settings render.RenderSettings
	objects  map[render.Handle]*object
	next     render.Handle
	lost     bool
	closed   bool

	boundLayout  *Layout
	boundViews   map[render.ViewKinds]map[int]render.Handle
	boundSampler map[int]render.Handle
	activeQuery  *Query
	condition    *Query

	// counters
	Frames       int
	DrawCalls    int
	SkippedDraws int
	Primitives   int
}

// New returns a software device with a query latency of 2 polls.
func New() *Backend {
	return &Backend{QueryLatency: 2}
}

func (b *Backend) Name() string { return "soft" }

func (b *Backend) Init(settings render.RenderSettings) error {
	if settings.Width <= 0 || settings.Height <= 0 {
		return fmt.Errorf("soft: invalid frame size %dx%d", settings.Width, settings.Height)
	}
	b.settings = settings
	b.objects = make(map[render.Handle]*object)
	b.boundViews = make(map[render.ViewKinds]map[int]render.Handle)
	b.boundSampler = make(map[int]render.Handle)
	return nil
}

func (b *Backend) Caps() render.Caps {
	return render.Caps{
		Features: render.FeatureVertexArrays | render.FeatureSamplerObjects | render.FeatureOcclusionQuery |
			render.FeatureConditionalRender | render.FeaturePrimitiveRestart | render.FeatureUnorderedAccess |
			render.FeatureAnisotropicFilter,
		MaxTextureSize:   8192,
		MaxVertexStreams: 8,
		MaxAnisotropy:    16,
	}
}

func (b *Backend) check() error {
	switch {
	case b.closed:
		return fmt.Errorf("soft: device closed")
	case b.lost:
		return fmt.Errorf("soft: device lost")
	}
	return nil
}

func (b *Backend) create(o *object) (render.Handle, error) {
	if err := b.check(); err != nil {
		return 0, err
	}
	b.next++
	b.objects[b.next] = o
	return b.next, nil
}

func (b *Backend) lookup(h render.Handle, kind render.ResourceKinds) (*object, error) {
	o, ok := b.objects[h]
	if !ok || o.kind != kind {
		return nil, fmt.Errorf("soft: handle %d is not a live object of kind %d", h, kind)
	}
	return o, nil
}

// NumObjects returns the number of live native objects.
func (b *Backend) NumObjects() int { return len(b.objects) }

func (b *Backend) CreateBuffer(desc *render.BufferDesc, data []byte) (render.Handle, error) {
	buf := make([]byte, desc.Size)
	copy(buf, data)
	return b.create(&object{kind: render.BufferResource, data: buf})
}

func (b *Backend) UpdateBuffer(h render.Handle, offset int, data []byte) error {
	if err := b.check(); err != nil {
		return err
	}
	o, err := b.lookup(h, render.BufferResource)
	if err != nil {
		return err
	}
	copy(o.data[offset:], data)
	return nil
}

func (b *Backend) CreateTexture(desc *render.TextureDesc, data []byte) (render.Handle, error) {
	if desc.Width > b.Caps().MaxTextureSize || desc.Height > b.Caps().MaxTextureSize {
		return 0, fmt.Errorf("soft: texture %dx%d exceeds max size", desc.Width, desc.Height)
	}
	return b.create(&object{kind: render.TextureResource, data: data})
}

func (b *Backend) CreateSampler(s *render.Sampler) (render.Handle, error) {
	return b.create(&object{kind: render.SamplerResource})
}

func (b *Backend) CreateView(kind render.ViewKinds, res render.Handle, desc *render.ViewDesc) (render.Handle, error) {
	if _, ok := b.objects[res]; !ok {
		return 0, fmt.Errorf("soft: view of dead resource %d", res)
	}
	return b.create(&object{kind: render.ViewResource, view: kind})
}

func (b *Backend) Destroy(kind render.ResourceKinds, h render.Handle) {
	if h == 0 {
		return
	}
	if o, ok := b.objects[h]; ok && o.kind == kind {
		delete(b.objects, h)
		return
	}
	slog.Warn("soft: destroy of unknown object", "kind", kind, "handle", h)
}

func (b *Backend) BindView(kind render.ViewKinds, h render.Handle, slot int) error {
	if err := b.check(); err != nil {
		return err
	}
	o, err := b.lookup(h, render.ViewResource)
	if err != nil {
		return err
	}
	if o.view != kind {
		return fmt.Errorf("soft: binding %s as %s", o.view, kind)
	}
	if b.boundViews[kind] == nil {
		b.boundViews[kind] = make(map[int]render.Handle)
	}
	b.boundViews[kind][slot] = h
	return nil
}

// BoundView returns the view bound to the slot.
func (b *Backend) BoundView(kind render.ViewKinds, slot int) render.Handle {
	return b.boundViews[kind][slot]
}

func (b *Backend) BindSampler(h render.Handle, slot int) error {
	if err := b.check(); err != nil {
		return err
	}
	if _, err := b.lookup(h, render.SamplerResource); err != nil {
		return err
	}
	b.boundSampler[slot] = h
	return nil
}

func (b *Backend) NewLayout() render.RenderLayout {
	return &Layout{LayoutBase: render.NewLayoutBase(), dev: b}
}

func (b *Backend) NewQuery(kind render.QueryKinds) (render.Query, error) {
	q := &Query{QueryBase: render.NewQueryBase(kind), dev: b}
	h, err := b.create(&object{kind: render.QueryResource})
	if err != nil {
		return nil, err
	}
	q.handle = h
	return q, nil
}

func (b *Backend) Draw(l render.RenderLayout) error {
	if err := b.check(); err != nil {
		return err
	}
	sl, ok := l.(*Layout)
	if !ok || sl.dev != b {
		return fmt.Errorf("soft: draw with foreign layout %T", l)
	}
	if b.boundLayout != sl || !sl.IsActive() {
		return fmt.Errorf("soft: draw with inactive layout")
	}
	if b.condition != nil && b.condition.State() == render.QueryResolved && b.condition.samples == 0 {
		b.SkippedDraws++
		return nil
	}
	prims := sl.NumPrimitives()
	b.DrawCalls++
	b.Primitives += prims
	if b.activeQuery != nil {
		b.activeQuery.samples += uint64(prims)
	}
	return nil
}

func (b *Backend) BeginFrame() error { return b.check() }

func (b *Backend) EndFrame() error {
	if err := b.check(); err != nil {
		return err
	}
	b.Frames++
	return nil
}

// Suspend drops all native objects and bindings, as a lost device does.
func (b *Backend) Suspend() error {
	b.lost = true
	clear(b.objects)
	clear(b.boundViews)
	clear(b.boundSampler)
	b.boundLayout = nil
	b.activeQuery = nil
	b.condition = nil
	return nil
}

func (b *Backend) Resume() error {
	if b.FailResume {
		b.FailResume = false
		return fmt.Errorf("soft: device could not be reset")
	}
	b.lost = false
	return nil
}

func (b *Backend) Close() error {
	if n := len(b.objects); n > 0 {
		slog.Debug("soft: closing with live objects", "count", n)
	}
	b.closed = true
	b.objects = nil
	return nil
}

// Layout binds its streams by recording itself as the device's
// current layout, after checking every stream buffer is live.
type Layout struct {
	render.LayoutBase
	dev *Backend
}

func (l *Layout) Active() error {
	if err := l.dev.check(); err != nil {
		return err
	}
	if n := len(l.VertexStreams()); n > l.dev.Caps().MaxVertexStreams {
		return fmt.Errorf("soft: %d vertex streams exceeds max %d", n, l.dev.Caps().MaxVertexStreams)
	}
	for _, vs := range l.VertexStreams() {
		if _, err := l.dev.lookup(vs.Buffer.Handle(), render.BufferResource); err != nil {
			return err
		}
	}
	if l.dev.boundLayout != nil && l.dev.boundLayout != l {
		return fmt.Errorf("soft: layout activated while another is active: %w", render.ErrLayoutActive)
	}
	if err := l.BeginActive(); err != nil {
		return err
	}
	l.ClearDirty()
	l.dev.boundLayout = l
	return nil
}

func (l *Layout) Deactive() error {
	if err := l.EndActive(); err != nil {
		return err
	}
	if l.dev.boundLayout == l {
		l.dev.boundLayout = nil
	}
	return nil
}

func (l *Layout) DeviceLost() {
	if l.dev.boundLayout == l {
		l.dev.boundLayout = nil
	}
	l.LayoutBase.DeviceLost()
}

// Query counts the primitives drawn while it is active.
type Query struct {
	render.QueryBase
	dev     *Backend
	handle  render.Handle
	samples uint64
	polls   int
}

func (q *Query) Begin() error {
	if err := q.dev.check(); err != nil {
		return err
	}
	if q.dev.activeQuery != nil {
		return fmt.Errorf("soft: another query is active: %w", render.ErrQueryActive)
	}
	if err := q.BeginTransition(); err != nil {
		return err
	}
	q.samples = 0
	q.polls = 0
	q.dev.activeQuery = q
	return nil
}

func (q *Query) End() error {
	if err := q.EndTransition(); err != nil {
		return err
	}
	q.dev.activeQuery = nil
	return nil
}

// SamplesPassed resolves the query on the QueryLatency-th poll after End.
func (q *Query) SamplesPassed() (uint64, bool, error) {
	n, ready, err := q.CachedResult()
	if err != nil || ready {
		return n, ready, err
	}
	q.polls++
	if q.polls >= q.dev.QueryLatency {
		q.Resolve(q.samples)
		return q.samples, true, nil
	}
	return 0, false, nil
}

func (q *Query) AnySamplesPassed() (bool, bool, error) {
	n, ready, err := q.SamplesPassed()
	return n > 0, ready, err
}

// BeginConditionalRender skips draws until EndConditionalRender if
// the query resolved with zero samples. An unresolved query draws.
func (q *Query) BeginConditionalRender() error {
	if q.Kind() != render.ConditionalRenderKind {
		return fmt.Errorf("soft: conditional render on an occlusion query")
	}
	if q.dev.condition != nil {
		return fmt.Errorf("soft: conditional render already begun")
	}
	q.dev.condition = q
	return nil
}

func (q *Query) EndConditionalRender() error {
	if q.dev.condition != q {
		return fmt.Errorf("soft: conditional render not begun")
	}
	q.dev.condition = nil
	return nil
}

func (q *Query) DeviceLost() {
	if q.dev.activeQuery == q {
		q.dev.activeQuery = nil
	}
	q.dev.Destroy(render.QueryResource, q.handle)
	q.handle = 0
	q.Reset()
}

func (q *Query) DeviceRestored() error {
	h, err := q.dev.create(&object{kind: render.QueryResource})
	if err != nil {
		return err
	}
	q.handle = h
	return nil
}
