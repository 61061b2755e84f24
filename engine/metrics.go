// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"time"

	"cogentcore.org/engine/scene"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	backendLabel = "render_backend"
)

var (
	frameCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kge",
		Name:      "frames_total",
		Help:      "The total number of frames rendered.",
	}, []string{backendLabel})

	frameDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kge",
		Name:      "frame_duration_seconds",
		Help:      "The time taken to update, cull and draw a frame.",
		Buckets:   []float64{.001, .002, .004, .008, .016, .033, .066, .1, .25},
	}, []string{backendLabel})

	objectsRendered = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "kge",
		Name:      "objects_rendered",
		Help:      "The number of objects drawn in the last frame.",
	}, []string{backendLabel})

	objectsCulled = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "kge",
		Name:      "objects_culled",
		Help:      "The number of objects culled in the last frame.",
	}, []string{backendLabel})

	drawCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kge",
		Name:      "draw_calls_total",
		Help:      "The total number of draw calls.",
	}, []string{backendLabel})

	primitivesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kge",
		Name:      "primitives_total",
		Help:      "The total number of primitives drawn.",
	}, []string{backendLabel})
)

func instrumentFrame(backend string, st scene.Stats, d time.Duration) {
	labels := prometheus.Labels{backendLabel: backend}
	frameCount.With(labels).Inc()
	frameDuration.With(labels).Observe(d.Seconds())
	objectsRendered.With(labels).Set(float64(st.NumObjectsRendered))
	objectsCulled.With(labels).Set(float64(st.NumObjectsCulled))
	drawCalls.With(labels).Add(float64(st.NumDrawCalls))
	primitivesRendered.With(labels).Add(float64(st.NumPrimitivesRendered))
}
