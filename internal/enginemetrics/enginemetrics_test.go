// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package enginemetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFramesDroppedIncrements(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.FramesDropped.Inc()
	m.FramesDropped.Inc()

	if got := testutil.ToFloat64(m.FramesDropped); got != 2 {
		t.Fatalf("FramesDropped = %v, want 2", got)
	}
}

func TestShaderCompileFailuresLabeledBySystem(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ShaderCompileFailures.WithLabelValues("quantum").Inc()
	m.ShaderCompileFailures.WithLabelValues("holographic").Inc()
	m.ShaderCompileFailures.WithLabelValues("quantum").Inc()

	if got := testutil.ToFloat64(m.ShaderCompileFailures.WithLabelValues("quantum")); got != 2 {
		t.Fatalf("quantum failures = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ShaderCompileFailures.WithLabelValues("holographic")); got != 1 {
		t.Fatalf("holographic failures = %v, want 1", got)
	}
}

func TestContextLossEventsIncrements(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ContextLossEvents.Inc()

	if got := testutil.ToFloat64(m.ContextLossEvents); got != 1 {
		t.Fatalf("ContextLossEvents = %v, want 1", got)
	}
}

func TestCrossfadeDurationObserves(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CrossfadeDuration.Observe(0.6)

	count := testutil.CollectAndCount(m.CrossfadeDuration)
	if count != 1 {
		t.Fatalf("CollectAndCount(CrossfadeDuration) = %d, want 1", count)
	}
}

func TestNopIsIndependentRegistry(t *testing.T) {
	a := Nop()
	b := Nop()
	a.FramesDropped.Inc()
	if got := testutil.ToFloat64(b.FramesDropped); got != 0 {
		t.Fatalf("b.FramesDropped = %v, want 0 (independent registries)", got)
	}
}
