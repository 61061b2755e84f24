// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QueryKinds are the kinds of device queries.
type QueryKinds int32

const (
	OcclusionQueryKind QueryKinds = iota
	ConditionalRenderKind
)

// QueryStates are the states of a query.
type QueryStates int32

const (
	// QueryIdle is a query that has not begun, or whose device was lost.
	QueryIdle QueryStates = iota

	// QueryActive is between Begin and End.
	QueryActive

	// QueryEnded has been ended and its result is pending on the device.
	QueryEnded

	// QueryResolved has a result available.
	QueryResolved
)

func (qs QueryStates) String() string {
	switch qs {
	case QueryIdle:
		return "Idle"
	case QueryActive:
		return "Active"
	case QueryEnded:
		return "Ended"
	case QueryResolved:
		return "Resolved"
	}
	return "QueryStates(?)"
}

// Query is an asynchronous device query bracketing a span of commands.
type Query interface {
	DeviceObject
	Kind() QueryKinds
	State() QueryStates
	Begin() error
	End() error
}

// OcclusionQuery counts the samples that pass the depth test
// between Begin and End.
type OcclusionQuery interface {
	Query

	// SamplesPassed returns the sample count if the device has it
	// available. It never waits: ready is false while the result is
	// pending, and the caller polls again later. Calling it before
	// End returns [ErrQueryNotEnded].
	SamplesPassed() (samples uint64, ready bool, err error)
}

// ConditionalRender is an occlusion query whose result can gate
// later draw calls on the device without a round trip to the caller.
type ConditionalRender interface {
	OcclusionQuery

	// AnySamplesPassed is like SamplesPassed, reporting only whether
	// the count is nonzero.
	AnySamplesPassed() (passed bool, ready bool, err error)

	// BeginConditionalRender starts skipping draws if the query
	// result has zero samples.
	BeginConditionalRender() error
	EndConditionalRender() error
}

// QueryBase implements the query state machine
// Idle -> Active -> Ended -> Resolved for backend query types,
// which embed it.
type QueryBase struct {
	id     uuid.UUID
	kind   QueryKinds
	state  QueryStates
	result uint64
}

// NewQueryBase returns an idle query state of the given kind.
func NewQueryBase(kind QueryKinds) QueryBase {
	return QueryBase{id: uuid.New(), kind: kind}
}

func (qb *QueryBase) ID() uuid.UUID      { return qb.id }
func (qb *QueryBase) Kind() QueryKinds   { return qb.kind }
func (qb *QueryBase) State() QueryStates { return qb.state }

// BeginTransition moves the query to [QueryActive]. A query can be
// restarted from any state except active.
func (qb *QueryBase) BeginTransition() error {
	if qb.state == QueryActive {
		return ErrQueryActive
	}
	qb.state = QueryActive
	qb.result = 0
	return nil
}

// EndTransition moves an active query to [QueryEnded].
func (qb *QueryBase) EndTransition() error {
	if qb.state != QueryActive {
		return ErrQueryNotActive
	}
	qb.state = QueryEnded
	return nil
}

// CachedResult returns the result if the query is resolved. It
// returns ready false with no error when the backend must be polled,
// and [ErrQueryNotEnded] for an idle or active query.
func (qb *QueryBase) CachedResult() (uint64, bool, error) {
	switch qb.state {
	case QueryResolved:
		return qb.result, true, nil
	case QueryEnded:
		return 0, false, nil
	}
	return 0, false, ErrQueryNotEnded
}

// Resolve records the result read back from the device.
func (qb *QueryBase) Resolve(samples uint64) {
	qb.result = samples
	qb.state = QueryResolved
}

// Reset returns the query to [QueryIdle], discarding any result.
func (qb *QueryBase) Reset() {
	qb.state = QueryIdle
	qb.result = 0
}

// PollSamples polls the query every interval until its result is
// ready, the query fails, or ctx is done. Each poll is non-blocking,
// so the device keeps working between polls.
func PollSamples(ctx context.Context, q OcclusionQuery, interval time.Duration) (uint64, error) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		n, ready, err := q.SamplesPassed()
		if err != nil {
			return 0, err
		}
		if ready {
			return n, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-tick.C:
		}
	}
}
