// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"cogentcore.org/engine/base/errors"
	"cogentcore.org/engine/base/plugin"
)

var (
	// ErrBackendNotFound is returned when no render backend is registered
	// under the requested name.
	ErrBackendNotFound = plugin.ErrNotFound

	// ErrIncompatibleBackend is returned when the registered backend does
	// not satisfy the requested API version constraint.
	ErrIncompatibleBackend = plugin.ErrIncompatible

	// ErrBackendUnavailable is returned by a backend that is registered
	// but cannot create a device on this system.
	ErrBackendUnavailable = errors.New("render: backend unavailable")

	ErrInvalidView     = errors.New("render: view is invalid")
	ErrInvalidResource = errors.New("render: resource is invalid")
	ErrBindFlags       = errors.New("render: resource lacks the bind flag for this view")
	ErrBufferType      = errors.New("render: wrong buffer type for stream")

	ErrQueryActive    = errors.New("render: query already active")
	ErrQueryNotActive = errors.New("render: query not active")
	ErrQueryNotEnded  = errors.New("render: query result requested before End")

	ErrLayoutActive   = errors.New("render: layout already active")
	ErrLayoutInactive = errors.New("render: layout not active")

	// ErrDeviceLost is returned while the engine is suspended.
	ErrDeviceLost = errors.New("render: device lost")

	// ErrDeviceFaulted is returned after a failed resume.
	// The engine cannot be used again and must be closed.
	ErrDeviceFaulted = errors.New("render: device faulted")

	ErrClosed = errors.New("render: engine closed")
)

// DeviceError records a failed device operation on a backend.
type DeviceError struct {
	Op      string
	Backend string
	Err     error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("render %s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
