// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

import (
	"fmt"

	"cogentcore.org/engine/render"
)

// Query is an occlusion query object. Results are read only after
// QUERY_RESULT_AVAILABLE reports them, so polling never stalls the
// pipeline.
type Query struct {
	render.QueryBase
	dev    *Backend
	name   uint32
	target Enum
}

func (q *Query) Begin() error {
	if q.name == 0 {
		return render.ErrDeviceLost
	}
	if q.dev.activeQuery != nil && q.dev.activeQuery != q {
		return fmt.Errorf("gl: another query is active: %w", render.ErrQueryActive)
	}
	if err := q.BeginTransition(); err != nil {
		return err
	}
	q.dev.gl.BeginQuery(q.target, q.name)
	q.dev.activeQuery = q
	return q.dev.checkError("begin query")
}

func (q *Query) End() error {
	if err := q.EndTransition(); err != nil {
		return err
	}
	q.dev.gl.EndQuery(q.target)
	q.dev.activeQuery = nil
	return q.dev.checkError("end query")
}

func (q *Query) SamplesPassed() (uint64, bool, error) {
	n, ready, err := q.CachedResult()
	if err != nil || ready {
		return n, ready, err
	}
	if q.dev.gl.GetQueryObjectuiv(q.name, QUERY_RESULT_AVAILABLE) == 0 {
		return 0, false, nil
	}
	samples := uint64(q.dev.gl.GetQueryObjectuiv(q.name, QUERY_RESULT))
	q.Resolve(samples)
	return samples, true, nil
}

func (q *Query) AnySamplesPassed() (bool, bool, error) {
	n, ready, err := q.SamplesPassed()
	return n > 0, ready, err
}

// BeginConditionalRender lets the device discard draws while the
// query result is zero, waiting on the device for the result.
func (q *Query) BeginConditionalRender() error {
	if q.Kind() != render.ConditionalRenderKind {
		return fmt.Errorf("gl: conditional render on an occlusion query")
	}
	if !q.dev.caps.Features.Has(render.FeatureConditionalRender) {
		return fmt.Errorf("gl: %s has no conditional render", q.dev.profile.Name)
	}
	if q.State() != render.QueryEnded && q.State() != render.QueryResolved {
		return render.ErrQueryNotEnded
	}
	q.dev.gl.BeginConditionalRender(q.name, QUERY_WAIT)
	return q.dev.checkError("begin conditional render")
}

func (q *Query) EndConditionalRender() error {
	q.dev.gl.EndConditionalRender()
	return q.dev.checkError("end conditional render")
}

func (q *Query) DeviceLost() {
	if q.dev.activeQuery == q {
		q.dev.gl.EndQuery(q.target)
		q.dev.activeQuery = nil
	}
	if q.name != 0 {
		q.dev.gl.DeleteQuery(q.name)
		q.name = 0
	}
	q.Reset()
}

func (q *Query) DeviceRestored() error {
	q.name = q.dev.gl.GenQuery()
	return q.dev.checkError("create query")
}
