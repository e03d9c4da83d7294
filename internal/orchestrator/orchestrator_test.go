// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/enginelog"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/enginemetrics"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/layergraph"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/renderer"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

func newReady(t *testing.T) (*Orchestrator, *gpu.Fake) {
	t.Helper()
	backend := gpu.NewFake()
	o := New(backend)
	if err := o.Initialize(Config{InitialSystem: renderer.Holographic, Width: 320, Height: 240}); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	return o, backend
}

func TestInitializeReachesActive(t *testing.T) {
	o, _ := newReady(t)
	if o.State() != Active {
		t.Fatalf("State() = %s, want active", o.State())
	}
}

func TestInitializeTwiceRejected(t *testing.T) {
	o, _ := newReady(t)
	if err := o.Initialize(Config{InitialSystem: renderer.Quantum, Width: 1, Height: 1}); err == nil {
		t.Fatal("second Initialize() = nil, want error")
	}
}

func TestSetParameterRoundTrip(t *testing.T) {
	o, _ := newReady(t)
	if ok := o.SetParameter(params.GridDensity, 40); !ok {
		t.Fatal("SetParameter(gridDensity, 40) = false")
	}
	if got := o.GetParameter(params.GridDensity); got != 40 {
		t.Fatalf("GetParameter(gridDensity) = %v, want 40", got)
	}
}

func TestSetParameterRejectsNaN(t *testing.T) {
	o, _ := newReady(t)
	if ok := o.SetParameter(params.Hue, float32(math.NaN())); ok {
		t.Fatal("SetParameter(hue, NaN) = true, want false")
	}
}

func TestOnParameterChangeFires(t *testing.T) {
	o, _ := newReady(t)
	var gotName params.Name
	var gotValue float32
	o.OnParameterChange(func(n params.Name, v float32) { gotName, gotValue = n, v })
	o.SetParameter(params.Speed, 2)
	if gotName != params.Speed || gotValue != 2 {
		t.Fatalf("callback got (%s, %v), want (speed, 2)", gotName, gotValue)
	}
}

func TestTickRendersSteadyState(t *testing.T) {
	o, backend := newReady(t)
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0.5); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if len(backend.CompositeLog) != 1 {
		t.Fatalf("len(CompositeLog) = %d, want 1 (single blit to output)", len(backend.CompositeLog))
	}
	if backend.CompositeLog[0].Opacity != 1 {
		t.Fatalf("steady-state blit opacity = %v, want 1", backend.CompositeLog[0].Opacity)
	}
}

func TestSwitchSystemEntersCrossfadeAndCompletes(t *testing.T) {
	o, backend := newReady(t)
	if err := o.SwitchSystem(renderer.Quantum); err != nil {
		t.Fatalf("SwitchSystem() = %v", err)
	}
	if o.State() != Crossfade {
		t.Fatalf("State() = %s, want crossfade", o.State())
	}

	var changedTo renderer.System
	o.OnSystemChange(func(s renderer.System) { changedTo = s })

	steps := 0
	for o.State() == Crossfade {
		if err := o.Tick(50*time.Millisecond, uniform.Extras{}, 0); err != nil {
			t.Fatalf("Tick() during crossfade = %v", err)
		}
		steps++
		if steps > 100 {
			t.Fatal("crossfade never completed")
		}
	}
	if changedTo != renderer.Quantum {
		t.Fatalf("OnSystemChange fired with %s, want quantum", changedTo)
	}
	backend.CompositeLog = nil
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() after crossfade = %v", err)
	}
	if len(backend.CompositeLog) != 1 {
		t.Fatalf("post-crossfade len(CompositeLog) = %d, want 1", len(backend.CompositeLog))
	}
}

func TestCrossfadeOpacitiesInterpolate(t *testing.T) {
	o, backend := newReady(t)
	if err := o.SwitchSystem(renderer.Quantum); err != nil {
		t.Fatalf("SwitchSystem() = %v", err)
	}
	if err := o.Tick(CrossfadeDuration/4, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if len(backend.CompositeLog) != 2 {
		t.Fatalf("len(CompositeLog) = %d, want 2 (from+to)", len(backend.CompositeLog))
	}
	from, to := backend.CompositeLog[0], backend.CompositeLog[1]
	if from.Opacity <= to.Opacity {
		t.Fatalf("early crossfade: from opacity %v should exceed to opacity %v", from.Opacity, to.Opacity)
	}
	wantFrom := float32(0.75)
	if diff := from.Opacity - wantFrom; diff > 0.01 || diff < -0.01 {
		t.Fatalf("from opacity at 25%% progress = %v, want ~%v", from.Opacity, wantFrom)
	}
}

func TestSwitchSystemRejectedMidCrossfade(t *testing.T) {
	o, _ := newReady(t)
	if err := o.SwitchSystem(renderer.Quantum); err != nil {
		t.Fatalf("SwitchSystem() = %v", err)
	}
	if err := o.SwitchSystem(renderer.Faceted); err == nil {
		t.Fatal("second SwitchSystem() during crossfade = nil, want error")
	}
}

func TestCancelPendingSwitchBeforeFirstFrame(t *testing.T) {
	o, _ := newReady(t)
	if err := o.SwitchSystem(renderer.Quantum); err != nil {
		t.Fatalf("SwitchSystem() = %v", err)
	}
	if err := o.CancelPendingSwitch(); err != nil {
		t.Fatalf("CancelPendingSwitch() = %v", err)
	}
	if o.State() != Active {
		t.Fatalf("State() = %s, want active", o.State())
	}
	if o.to != renderer.Holographic {
		t.Fatalf("to = %s, want holographic restored", o.to)
	}
}

func TestCancelPendingSwitchRejectedAfterFirstFrame(t *testing.T) {
	o, _ := newReady(t)
	if err := o.SwitchSystem(renderer.Quantum); err != nil {
		t.Fatalf("SwitchSystem() = %v", err)
	}
	if err := o.Tick(10*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if err := o.CancelPendingSwitch(); err == nil {
		t.Fatal("CancelPendingSwitch() after first frame = nil, want error")
	}
}

func TestSwitchSystemShaderFailureLeavesActiveSystemRunning(t *testing.T) {
	o, backend := newReady(t)
	backend.FailShader = func(frag string) bool { return true }
	err := o.SwitchSystem(renderer.Quantum)
	if err == nil {
		t.Fatal("SwitchSystem() with forced shader failure = nil, want error")
	}
	if _, ok := err.(*SwitchError); !ok {
		t.Fatalf("error type = %T, want *SwitchError", err)
	}
	if o.State() != Active {
		t.Fatalf("State() = %s, want active (unaffected by failed switch)", o.State())
	}
	backend.FailShader = nil
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() after failed switch = %v", err)
	}
}

func TestTickBeforeInitializeFails(t *testing.T) {
	o := New(gpu.NewFake())
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0); err == nil {
		t.Fatal("Tick() before Initialize() = nil, want error")
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	o, backend := newReady(t)
	o.Dispose()
	o.Dispose()
	if !backend.Disposed() {
		t.Fatal("backend not disposed")
	}
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0); err == nil {
		t.Fatal("Tick() after Dispose() = nil, want error")
	}
}

func TestHandleContextLossFailsNextTick(t *testing.T) {
	o, _ := newReady(t)
	o.HandleContextLoss()
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0); err == nil {
		t.Fatal("Tick() after context loss = nil, want error")
	}
	if err := o.RestoreContext(); err != nil {
		t.Fatalf("RestoreContext() = %v", err)
	}
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() after restore = %v", err)
	}
}

func TestBatchSetSingleVersionBump(t *testing.T) {
	o, _ := newReady(t)
	o.BatchSet(map[params.Name]float32{params.Speed: 2, params.Chaos: 0.5})
	if got := o.GetParameter(params.Speed); got != 2 {
		t.Fatalf("GetParameter(speed) = %v, want 2", got)
	}
	if got := o.GetParameter(params.Chaos); got != 0.5 {
		t.Fatalf("GetParameter(chaos) = %v, want 0.5", got)
	}
}

func TestSetKeystoneChangesGraphRoot(t *testing.T) {
	o, _ := newReady(t)
	if err := o.SetKeystone(layergraph.Shadow); err != nil {
		t.Fatalf("SetKeystone() = %v", err)
	}
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() after SetKeystone() = %v", err)
	}
}

func TestSetProfileResetsGraph(t *testing.T) {
	o, _ := newReady(t)
	if err := o.SetProfile("storm"); err != nil {
		t.Fatalf("SetProfile() = %v", err)
	}
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() after SetProfile() = %v", err)
	}
}

func TestSetProfileRejectsUnknownName(t *testing.T) {
	o, _ := newReady(t)
	if err := o.SetProfile("nonexistent"); err == nil {
		t.Fatal("SetProfile(nonexistent) = nil, want error")
	}
}

func TestShaderFailureLogsAndIncrementsMetric(t *testing.T) {
	o, backend := newReady(t)
	var buf bytes.Buffer
	o.SetLogger(enginelog.New(&buf))
	reg := prometheus.NewRegistry()
	metrics := enginemetrics.New(reg)
	o.SetMetrics(metrics)

	backend.FailShader = func(frag string) bool { return true }
	if err := o.SwitchSystem(renderer.Quantum); err == nil {
		t.Fatal("SwitchSystem() with forced shader failure = nil, want error")
	}

	if got := testutil.ToFloat64(metrics.ShaderCompileFailures.WithLabelValues(renderer.Quantum.String())); got != 1 {
		t.Fatalf("ShaderCompileFailures[quantum] = %v, want 1", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("shader_disabled")) {
		t.Fatalf("log output missing shader_disabled event: %s", buf.String())
	}
}

func TestContextLossLogsAndIncrementsMetric(t *testing.T) {
	o, _ := newReady(t)
	var buf bytes.Buffer
	o.SetLogger(enginelog.New(&buf))
	reg := prometheus.NewRegistry()
	metrics := enginemetrics.New(reg)
	o.SetMetrics(metrics)

	o.HandleContextLoss()

	if got := testutil.ToFloat64(metrics.ContextLossEvents); got != 1 {
		t.Fatalf("ContextLossEvents = %v, want 1", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("context_lost")) {
		t.Fatalf("log output missing context_lost event: %s", buf.String())
	}
}

func TestFrameDroppedLogsAndIncrementsMetric(t *testing.T) {
	o, _ := newReady(t)
	var buf bytes.Buffer
	o.SetLogger(enginelog.New(&buf))
	reg := prometheus.NewRegistry()
	metrics := enginemetrics.New(reg)
	o.SetMetrics(metrics)

	o.Dispose()
	if err := o.Tick(16*time.Millisecond, uniform.Extras{}, 0); err == nil {
		t.Fatal("Tick() after Dispose() = nil, want error")
	}

	if got := testutil.ToFloat64(metrics.FramesDropped); got != 1 {
		t.Fatalf("FramesDropped = %v, want 1", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("frame_dropped")) {
		t.Fatalf("log output missing frame_dropped event: %s", buf.String())
	}
}

func TestCrossfadeCompletionRecordsDuration(t *testing.T) {
	o, _ := newReady(t)
	var buf bytes.Buffer
	o.SetLogger(enginelog.New(&buf))
	reg := prometheus.NewRegistry()
	metrics := enginemetrics.New(reg)
	o.SetMetrics(metrics)

	if err := o.SwitchSystem(renderer.Quantum); err != nil {
		t.Fatalf("SwitchSystem() = %v", err)
	}
	for o.State() == Crossfade {
		if err := o.Tick(100*time.Millisecond, uniform.Extras{}, 0); err != nil {
			t.Fatalf("Tick() = %v", err)
		}
	}

	if testutil.CollectAndCount(metrics.CrossfadeDuration) != 1 {
		t.Fatal("CrossfadeDuration histogram did not observe a sample")
	}
	if !bytes.Contains(buf.Bytes(), []byte("crossfade_completed")) {
		t.Fatalf("log output missing crossfade_completed event: %s", buf.String())
	}
}
