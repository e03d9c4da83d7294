// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package enginemetrics exposes the local instrumentation a telemetry
// transport would scrape: dropped frames, shader compile failures by
// system, context-loss events, and crossfade duration. The core only
// has to expose them, not ship them anywhere.
package enginemetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors. The zero value is not
// usable; build one with New against a live Registerer, or use Nop for a
// caller that doesn't want metrics registered at all.
type Metrics struct {
	FramesDropped         prometheus.Counter
	ShaderCompileFailures *prometheus.CounterVec
	ContextLossEvents     prometheus.Counter
	CrossfadeDuration     prometheus.Histogram
}

// New registers the engine's collectors against reg and returns the
// handles Tick/SwitchSystem/HandleContextLoss update.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FramesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "vib3d_engine_frames_dropped_total",
			Help: "Render ticks whose derive/render/composite pass returned an error and were dropped.",
		}),
		ShaderCompileFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vib3d_engine_shader_compile_failures_total",
			Help: "Shader compile failures, labeled by RendererContract system.",
		}, []string{"system"}),
		ContextLossEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "vib3d_engine_context_loss_events_total",
			Help: "GPU context loss signals observed.",
		}),
		CrossfadeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "vib3d_engine_crossfade_duration_seconds",
			Help:    "Wall-clock duration of completed system crossfades.",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}
}

// Nop returns Metrics backed by a private registry, for callers that want
// the recording calls to be safe no-ops rather than threading nil checks
// through the orchestrator.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}
