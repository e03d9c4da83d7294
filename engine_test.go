// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vib3d

import (
	"bytes"
	"testing"
	"time"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/layergraph"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/renderer"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

func newTestEngine(t *testing.T) (*Engine, *gpu.Fake) {
	t.Helper()
	backend := gpu.NewFake()
	eng, err := initializeWithBackend(backend, Config{
		InitialSystem: renderer.Holographic,
		ProfileName:   "holographic",
	}, 320, 240)
	if err != nil {
		t.Fatalf("initializeWithBackend() = %v", err)
	}
	return eng, backend
}

func TestInitializeWithBackendReachesReady(t *testing.T) {
	eng, _ := newTestEngine(t)
	if eng.GetParameter(params.Hue) != 200 {
		t.Fatalf("GetParameter(Hue) = %v, want default 200", eng.GetParameter(params.Hue))
	}
}

func TestInitializePrimaryWithoutDisplayReturnsInitError(t *testing.T) {
	backend := gpu.NewFake()
	eng, err := Initialize(Config{InitialSystem: renderer.Holographic, BackendPreference: Primary})
	// Primary resolves to a real glbackend, which has no display in this
	// environment; the call is expected to fail, but must fail with an
	// *InitError rather than panicking.
	if err == nil {
		eng.Dispose()
		t.Skip("real GL backend unexpectedly available in this environment")
	}
	if _, ok := err.(*InitError); !ok {
		t.Fatalf("Initialize() error type = %T, want *InitError", err)
	}
	_ = backend
}

func TestSetParameterRoundTrip(t *testing.T) {
	eng, _ := newTestEngine(t)
	if err := eng.SetParameter(params.GridDensity, 40); err != nil {
		t.Fatalf("SetParameter() = %v", err)
	}
	if got := eng.GetParameter(params.GridDensity); got != 40 {
		t.Fatalf("GetParameter() = %v, want 40", got)
	}
}

func TestSetParameterRejectsNaNWithTypedError(t *testing.T) {
	eng, _ := newTestEngine(t)
	err := eng.SetParameter(params.Hue, float32(nan()))
	if err == nil {
		t.Fatal("SetParameter(NaN) = nil, want *ParamError")
	}
	if _, ok := err.(*ParamError); !ok {
		t.Fatalf("error type = %T, want *ParamError", err)
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestBatchSetAppliesAll(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.BatchSet(map[params.Name]float32{
		params.Hue:         120,
		params.GridDensity: 30,
	})
	if got := eng.GetParameter(params.Hue); got != 120 {
		t.Fatalf("GetParameter(Hue) = %v, want 120", got)
	}
	if got := eng.GetParameter(params.GridDensity); got != 30 {
		t.Fatalf("GetParameter(GridDensity) = %v, want 30", got)
	}
}

func TestOnParameterChangeFires(t *testing.T) {
	eng, _ := newTestEngine(t)
	var gotName params.Name
	var gotValue float32
	eng.OnParameterChange(func(n params.Name, v float32) {
		gotName, gotValue = n, v
	})
	if err := eng.SetParameter(params.Chaos, 0.5); err != nil {
		t.Fatalf("SetParameter() = %v", err)
	}
	if gotName != params.Chaos || gotValue != 0.5 {
		t.Fatalf("callback saw (%s, %v), want (chaos, 0.5)", gotName, gotValue)
	}
}

func TestTickRendersSteadyState(t *testing.T) {
	eng, _ := newTestEngine(t)
	if err := eng.Tick(16*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if eng.OutputTexture() == 0 {
		t.Fatal("OutputTexture() = 0 after a successful Tick")
	}
}

func TestSwitchSystemCrossfadesToCompletion(t *testing.T) {
	eng, _ := newTestEngine(t)
	if err := eng.SwitchSystem(renderer.Quantum); err != nil {
		t.Fatalf("SwitchSystem() = %v", err)
	}
	var switched renderer.System
	eng.OnSystemChange(func(s renderer.System) { switched = s })
	for i := 0; i < 64; i++ {
		if err := eng.Tick(16*time.Millisecond, uniform.Extras{}, float32(i)*0.016); err != nil {
			t.Fatalf("Tick() during crossfade = %v", err)
		}
	}
	if switched != renderer.Quantum {
		t.Fatalf("OnSystemChange reported %s, want quantum", switched)
	}
}

func TestSetProfileRejectsUnknownNameWithTypedError(t *testing.T) {
	eng, _ := newTestEngine(t)
	err := eng.SetProfile("not-a-real-profile")
	if err == nil {
		t.Fatal("SetProfile(unknown) = nil, want *ProfileError")
	}
	if _, ok := err.(*ProfileError); !ok {
		t.Fatalf("error type = %T, want *ProfileError", err)
	}
}

func TestSetRelationshipAndGetLayerConfigRoundTrip(t *testing.T) {
	eng, _ := newTestEngine(t)
	if err := eng.SetRelationship(layergraph.Accent, layergraph.Harmonic(3)); err != nil {
		t.Fatalf("SetRelationship() = %v", err)
	}
	cfg := eng.GetLayerConfig()
	rec, ok := cfg.Edges["accent"]
	if !ok {
		t.Fatal("GetLayerConfig() has no entry for accent")
	}
	if rec.Kind != "harmonic" || rec.N != 3 {
		t.Fatalf("accent edge = %+v, want kind=harmonic n=3", rec)
	}
}

func TestProfileRecordYAMLRoundTrip(t *testing.T) {
	eng, _ := newTestEngine(t)
	if err := eng.SetKeystone(layergraph.Content); err != nil {
		t.Fatalf("SetKeystone() = %v", err)
	}
	if err := eng.SetRelationship(layergraph.Shadow, layergraph.Echo(0.5)); err != nil {
		t.Fatalf("SetRelationship() = %v", err)
	}
	want := eng.GetLayerConfig()

	var buf bytes.Buffer
	if err := WriteProfile(&buf, want); err != nil {
		t.Fatalf("WriteProfile() = %v", err)
	}
	got, err := ReadProfile(&buf)
	if err != nil {
		t.Fatalf("ReadProfile() = %v", err)
	}
	if got.Keystone != want.Keystone {
		t.Fatalf("Keystone = %q, want %q", got.Keystone, want.Keystone)
	}
	if got.Edges["shadow"].Kind != "echo" || got.Edges["shadow"].Alpha != 0.5 {
		t.Fatalf("shadow edge = %+v, want kind=echo alpha=0.5", got.Edges["shadow"])
	}
	if _, err := got.Snapshot(); err != nil {
		t.Fatalf("Snapshot() = %v", err)
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	want := Config{
		InitialSystem:     renderer.Faceted,
		ProfileName:       "symmetry",
		Viewport:          Viewport{Width: 640, Height: 480},
		BackendPreference: Secondary,
	}
	var buf bytes.Buffer
	if err := WriteConfig(&buf, want); err != nil {
		t.Fatalf("WriteConfig() = %v", err)
	}
	got, err := ReadConfig(&buf)
	if err != nil {
		t.Fatalf("ReadConfig() = %v", err)
	}
	if got.InitialSystem != want.InitialSystem || got.ProfileName != want.ProfileName ||
		got.Viewport != want.Viewport || got.BackendPreference != want.BackendPreference {
		t.Fatalf("ReadConfig() = %+v, want %+v", got, want)
	}
}

func TestHandleContextLossFailsNextTick(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.HandleContextLoss()
	if err := eng.Tick(16*time.Millisecond, uniform.Extras{}, 0); err == nil {
		t.Fatal("Tick() after HandleContextLoss() = nil, want error")
	}
	if err := eng.RestoreContext(); err != nil {
		t.Fatalf("RestoreContext() = %v", err)
	}
	if err := eng.Tick(16*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() after RestoreContext() = %v", err)
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.Dispose()
	eng.Dispose()
}
