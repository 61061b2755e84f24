// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/engine/base/ordmap"
	"github.com/google/uuid"
)

// EngineStates are the lifecycle states of an [Engine].
type EngineStates int32

const (
	EngineRunning EngineStates = iota
	EngineSuspended

	// EngineFaulted is entered when a resume fails. Every later
	// call returns [ErrDeviceFaulted] until the engine is closed.
	EngineFaulted
	EngineClosed
)

func (es EngineStates) String() string {
	switch es {
	case EngineRunning:
		return "Running"
	case EngineSuspended:
		return "Suspended"
	case EngineFaulted:
		return "Faulted"
	case EngineClosed:
		return "Closed"
	}
	return "EngineStates(?)"
}

// Engine is the render engine of one device. It makes device objects,
// keeps track of them for device-lost recovery, and submits draws.
// It must only be used from the render thread.
type Engine struct {
	name     string
	backend  Backend
	settings RenderSettings
	state    EngineStates

	objects  ordmap.Map[uuid.UUID, DeviceObject]
	samplers ordmap.Map[Sampler, *SamplerState]
	stats    FrameStats
	inFrame  bool
}

// NewEngine initializes the backend device with the given settings.
func NewEngine(b Backend, settings RenderSettings) (*Engine, error) {
	e := &Engine{name: b.Name(), backend: b, settings: settings}
	if err := b.Init(settings); err != nil {
		return nil, e.deviceErr("init", err)
	}
	slog.Info("render engine created", "backend", e.name, "width", settings.Width, "height", settings.Height)
	return e, nil
}

// Name returns the backend name.
func (e *Engine) Name() string { return e.name }

// Backend returns the native backend.
func (e *Engine) Backend() Backend { return e.backend }

// Settings returns the settings the device was created with.
func (e *Engine) Settings() RenderSettings { return e.settings }

// Caps returns the backend capabilities.
func (e *Engine) Caps() Caps { return e.backend.Caps() }

// State returns the lifecycle state.
func (e *Engine) State() EngineStates { return e.state }

// Stats returns the cumulative frame statistics.
func (e *Engine) Stats() FrameStats { return e.stats }

// NumObjects returns the number of live device objects.
func (e *Engine) NumObjects() int { return e.objects.Len() }

func (e *Engine) checkState() error {
	switch e.state {
	case EngineSuspended:
		return ErrDeviceLost
	case EngineFaulted:
		return ErrDeviceFaulted
	case EngineClosed:
		return ErrClosed
	}
	return nil
}

func (e *Engine) deviceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DeviceError{Op: op, Backend: e.name, Err: err}
}

func (e *Engine) track(obj DeviceObject) {
	e.objects.Add(obj.ID(), obj)
}

func (e *Engine) untrack(id uuid.UUID) {
	e.objects.DeleteKey(id)
}

// MakeBuffer makes a vertex or index buffer with the given initial
// contents, which may be nil for a zeroed buffer of desc.Size bytes.
func (e *Engine) MakeBuffer(desc BufferDesc, data []byte) (*GraphicsBuffer, error) {
	if err := e.checkState(); err != nil {
		return nil, err
	}
	if desc.Size == 0 {
		desc.Size = len(data)
	}
	if desc.Size <= 0 || len(data) > desc.Size {
		return nil, fmt.Errorf("render: buffer of %d bytes with %d bytes of data", desc.Size, len(data))
	}
	gb := &GraphicsBuffer{resourceBase: newResourceBase(e), desc: desc, shadow: make([]byte, desc.Size)}
	copy(gb.shadow, data)
	h, err := e.backend.CreateBuffer(&gb.desc, gb.shadow)
	if err != nil {
		return nil, e.deviceErr("create buffer", err)
	}
	gb.handle = h
	e.track(gb)
	return gb, nil
}

// MakeTexture makes a texture, with optional initial texel data for the first mip.
func (e *Engine) MakeTexture(desc TextureDesc, data []byte) (*Texture, error) {
	if err := e.checkState(); err != nil {
		return nil, err
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if desc.Bind.Has(BindUnorderedAccess) && !e.backend.Caps().Features.Has(FeatureUnorderedAccess) {
		return nil, e.deviceErr("create texture", fmt.Errorf("unordered access is not supported"))
	}
	tx := &Texture{resourceBase: newResourceBase(e), desc: desc, data: slices.Clone(data)}
	h, err := e.backend.CreateTexture(&tx.desc, tx.data)
	if err != nil {
		return nil, e.deviceErr("create texture", err)
	}
	tx.handle = h
	e.track(tx)
	return tx, nil
}

// MakeSamplerState returns the sampler state for the given sampler,
// making it on first use. Equal samplers share one state object.
func (e *Engine) MakeSamplerState(s Sampler) (*SamplerState, error) {
	if err := e.checkState(); err != nil {
		return nil, err
	}
	if ss, ok := e.samplers.ValueByKeyTry(s); ok {
		return ss, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	ss := &SamplerState{id: uuid.New(), engine: e, desc: s}
	h, err := e.backend.CreateSampler(&ss.desc)
	if err != nil {
		return nil, e.deviceErr("create sampler", err)
	}
	ss.handle = h
	e.samplers.Add(s, ss)
	e.track(ss)
	return ss, nil
}

// NumSamplerStates returns the number of distinct cached sampler states.
func (e *Engine) NumSamplerStates() int { return e.samplers.Len() }

func (e *Engine) makeView(kind ViewKinds, res Resource, desc ViewDesc) (viewBase, error) {
	if err := e.checkState(); err != nil {
		return viewBase{}, err
	}
	var owner *resourceBase
	switch r := res.(type) {
	case *GraphicsBuffer:
		owner = &r.resourceBase
	case *Texture:
		owner = &r.resourceBase
		if kind == DepthStencilViewKind && !r.desc.Format.IsDepth() {
			return viewBase{}, fmt.Errorf("render: depth-stencil view of %d format texture: %w", r.desc.Format, ErrBindFlags)
		}
	default:
		return viewBase{}, fmt.Errorf("render: cannot view resource of type %T", res)
	}
	if owner.engine != e || !res.Valid() {
		return viewBase{}, ErrInvalidResource
	}
	if !res.BindFlags().Has(kind.BindFlag()) {
		return viewBase{}, fmt.Errorf("render: %s: %w", kind, ErrBindFlags)
	}
	h, err := e.backend.CreateView(kind, res.Handle(), &desc)
	if err != nil {
		return viewBase{}, e.deviceErr("create "+kind.String(), err)
	}
	return viewBase{id: uuid.New(), engine: e, kind: kind, res: res, owner: owner, desc: desc, handle: h}, nil
}

func (e *Engine) addView(vb *viewBase, obj DeviceObject) {
	vb.owner.addView(vb)
	e.track(obj)
}

// MakeShaderResourceView makes a view of res for shader reads.
func (e *Engine) MakeShaderResourceView(res Resource, desc ViewDesc) (ShaderResourceView, error) {
	vb, err := e.makeView(ShaderResourceViewKind, res, desc)
	if err != nil {
		return nil, err
	}
	v := &srView{vb}
	e.addView(&v.viewBase, v)
	return v, nil
}

// MakeRenderTargetView makes a view of res as a color target.
func (e *Engine) MakeRenderTargetView(res Resource, desc ViewDesc) (RenderTargetView, error) {
	vb, err := e.makeView(RenderTargetViewKind, res, desc)
	if err != nil {
		return nil, err
	}
	v := &rtView{vb}
	e.addView(&v.viewBase, v)
	return v, nil
}

// MakeDepthStencilView makes a view of a depth-format texture as the depth target.
func (e *Engine) MakeDepthStencilView(res Resource, desc ViewDesc) (DepthStencilView, error) {
	vb, err := e.makeView(DepthStencilViewKind, res, desc)
	if err != nil {
		return nil, err
	}
	v := &dsView{vb}
	e.addView(&v.viewBase, v)
	return v, nil
}

// MakeUnorderedAccessView makes a read-write view of res.
func (e *Engine) MakeUnorderedAccessView(res Resource, desc ViewDesc) (UnorderedAccessView, error) {
	vb, err := e.makeView(UnorderedAccessViewKind, res, desc)
	if err != nil {
		return nil, err
	}
	v := &uaView{vb}
	e.addView(&v.viewBase, v)
	return v, nil
}

// MakeRenderLayout makes an empty layout for this device.
func (e *Engine) MakeRenderLayout() (RenderLayout, error) {
	if err := e.checkState(); err != nil {
		return nil, err
	}
	l := e.backend.NewLayout()
	e.track(l)
	return l, nil
}

// ReleaseLayout stops tracking the layout and releases its device bindings.
func (e *Engine) ReleaseLayout(l RenderLayout) {
	if _, ok := e.objects.ValueByKeyTry(l.ID()); !ok {
		return
	}
	l.DeviceLost()
	e.untrack(l.ID())
}

func (e *Engine) makeQuery(kind QueryKinds) (Query, error) {
	if err := e.checkState(); err != nil {
		return nil, err
	}
	q, err := e.backend.NewQuery(kind)
	if err != nil {
		return nil, e.deviceErr("create query", err)
	}
	e.track(q)
	return q, nil
}

// MakeOcclusionQuery makes an occlusion query.
func (e *Engine) MakeOcclusionQuery() (OcclusionQuery, error) {
	q, err := e.makeQuery(OcclusionQueryKind)
	if err != nil {
		return nil, err
	}
	oq, ok := q.(OcclusionQuery)
	if !ok {
		e.ReleaseQuery(q)
		return nil, e.deviceErr("create query", fmt.Errorf("backend returned %T for an occlusion query", q))
	}
	return oq, nil
}

// MakeConditionalRender makes a conditional render query.
func (e *Engine) MakeConditionalRender() (ConditionalRender, error) {
	if !e.backend.Caps().Features.Has(FeatureConditionalRender) {
		return nil, e.deviceErr("create conditional render", fmt.Errorf("not supported"))
	}
	q, err := e.makeQuery(ConditionalRenderKind)
	if err != nil {
		return nil, err
	}
	cr, ok := q.(ConditionalRender)
	if !ok {
		e.ReleaseQuery(q)
		return nil, e.deviceErr("create conditional render", fmt.Errorf("backend returned %T", q))
	}
	return cr, nil
}

// ReleaseQuery stops tracking the query and destroys its native object.
func (e *Engine) ReleaseQuery(q Query) {
	if _, ok := e.objects.ValueByKeyTry(q.ID()); !ok {
		return
	}
	q.DeviceLost()
	e.untrack(q.ID())
}

// BeginFrame starts a frame.
func (e *Engine) BeginFrame() error {
	if err := e.checkState(); err != nil {
		return err
	}
	if err := e.backend.BeginFrame(); err != nil {
		return e.deviceErr("begin frame", err)
	}
	e.inFrame = true
	return nil
}

// EndFrame ends the frame and presents it.
func (e *Engine) EndFrame() error {
	if err := e.checkState(); err != nil {
		return err
	}
	e.inFrame = false
	if err := e.backend.EndFrame(); err != nil {
		return e.deviceErr("end frame", err)
	}
	e.stats.Frames++
	return nil
}

// Render draws the layout, activating it for the duration of the draw.
func (e *Engine) Render(l RenderLayout) error {
	if err := e.checkState(); err != nil {
		return err
	}
	return WithLayout(l, func() error {
		if err := e.backend.Draw(l); err != nil {
			return e.deviceErr("draw", err)
		}
		n := l.NumVertices()
		if l.UseIndices() {
			n = l.NumIndices()
		}
		e.stats.DrawCalls++
		e.stats.Primitives += uint64(l.NumPrimitives())
		e.stats.Vertices += uint64(n)
		return nil
	})
}

// Suspend releases every device object and the device context.
// Objects stay usable as descriptions and are recreated by [Engine.Resume].
func (e *Engine) Suspend() error {
	if e.state == EngineSuspended {
		return nil
	}
	if err := e.checkState(); err != nil {
		return err
	}
	objs := slices.Collect(e.objects.Values())
	for i := len(objs) - 1; i >= 0; i-- {
		objs[i].DeviceLost()
	}
	e.inFrame = false
	e.state = EngineSuspended
	if err := e.backend.Suspend(); err != nil {
		e.state = EngineFaulted
		return e.deviceErr("suspend", fmt.Errorf("%w: %w", ErrDeviceFaulted, err))
	}
	slog.Info("render engine suspended", "backend", e.name, "objects", len(objs))
	return nil
}

// Resume reacquires the device and recreates every device object in
// creation order. Any failure faults the engine: there is no partial
// resume.
func (e *Engine) Resume() error {
	if e.state == EngineRunning {
		return nil
	}
	if e.state != EngineSuspended {
		return e.checkState()
	}
	fault := func(op string, err error) error {
		e.state = EngineFaulted
		slog.Error("render engine faulted", "backend", e.name, "op", op, "err", err)
		return e.deviceErr(op, fmt.Errorf("%w: %w", ErrDeviceFaulted, err))
	}
	if err := e.backend.Resume(); err != nil {
		return fault("resume", err)
	}
	for obj := range e.objects.Values() {
		if err := obj.DeviceRestored(); err != nil {
			return fault("restore "+obj.ID().String(), err)
		}
	}
	e.state = EngineRunning
	slog.Info("render engine resumed", "backend", e.name, "objects", e.objects.Len())
	return nil
}

// Close releases every device object and destroys the device.
func (e *Engine) Close() error {
	if e.state == EngineClosed {
		return nil
	}
	if e.state != EngineSuspended {
		objs := slices.Collect(e.objects.Values())
		for i := len(objs) - 1; i >= 0; i-- {
			objs[i].DeviceLost()
		}
	}
	e.objects.Reset()
	e.samplers.Reset()
	e.state = EngineClosed
	slog.Info("render engine closed", "backend", e.name)
	return e.deviceErr("close", e.backend.Close())
}
