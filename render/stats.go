// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// FrameStats counts the work submitted to the device.
type FrameStats struct {
	Frames     uint64
	DrawCalls  uint64
	Primitives uint64
	Vertices   uint64
}

// Sub returns the difference s - o, for per-frame deltas.
func (s FrameStats) Sub(o FrameStats) FrameStats {
	return FrameStats{
		Frames:     s.Frames - o.Frames,
		DrawCalls:  s.DrawCalls - o.DrawCalls,
		Primitives: s.Primitives - o.Primitives,
		Vertices:   s.Vertices - o.Vertices,
	}
}
