// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vib3d

import (
	"math"
	"testing"
	"time"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/renderer"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

// TestScenarioInitialFrameWithClampedParameters checks a worked
// initialization: Faceted + legacy profile, geometry=10, rot4dXW=pi/2,
// hue=200. The initial frame must render and every getter must return
// the clamped/wrapped value with no error.
func TestScenarioInitialFrameWithClampedParameters(t *testing.T) {
	backend := gpu.NewFake()
	eng, err := initializeWithBackend(backend, Config{
		InitialSystem: renderer.Faceted,
		ProfileName:   "legacy",
	}, 640, 480)
	if err != nil {
		t.Fatalf("initializeWithBackend() = %v", err)
	}

	const halfPi = float32(math.Pi / 2)
	if err := eng.SetParameter(params.Geometry, 10); err != nil {
		t.Fatalf("SetParameter(Geometry) = %v", err)
	}
	if err := eng.SetParameter(params.Rot4dXW, halfPi); err != nil {
		t.Fatalf("SetParameter(Rot4dXW) = %v", err)
	}
	if err := eng.SetParameter(params.Hue, 200); err != nil {
		t.Fatalf("SetParameter(Hue) = %v", err)
	}

	if got := eng.GetParameter(params.Geometry); got != 10 {
		t.Fatalf("GetParameter(Geometry) = %v, want 10", got)
	}
	if got := eng.GetParameter(params.Rot4dXW); math.Abs(float64(got-halfPi)) > 1e-6 {
		t.Fatalf("GetParameter(Rot4dXW) = %v, want %v", got, halfPi)
	}
	if got := eng.GetParameter(params.Hue); got != 200 {
		t.Fatalf("GetParameter(Hue) = %v, want 200", got)
	}

	if err := eng.Tick(16*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
}

// TestScenarioSameFrameDoubleSetCollapsesToOneDerivation checks that two
// set_parameter calls for the same field within one frame leave only
// the final value visible, and that the next frame then derives and
// renders without error.
func TestScenarioSameFrameDoubleSetCollapsesToOneDerivation(t *testing.T) {
	eng, _ := newTestEngine(t)

	if err := eng.SetParameter(params.Hue, 355); err != nil {
		t.Fatalf("SetParameter(355) = %v", err)
	}
	if err := eng.SetParameter(params.Hue, 20); err != nil {
		t.Fatalf("SetParameter(20) = %v", err)
	}

	if got := eng.GetParameter(params.Hue); got != 20 {
		t.Fatalf("GetParameter(Hue) = %v, want 20 (last write wins)", got)
	}
	if err := eng.Tick(16*time.Millisecond, uniform.Extras{}, 0); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
}

// TestScenarioContextLossBetweenFramesThenRestore checks that a loss
// signaled after a successful frame fails the very next Tick, and that
// a subsequent RestoreContext lets rendering resume cleanly.
func TestScenarioContextLossBetweenFramesThenRestore(t *testing.T) {
	eng, _ := newTestEngine(t)

	for i := 0; i < 3; i++ {
		if err := eng.Tick(16*time.Millisecond, uniform.Extras{}, float32(i)*0.016); err != nil {
			t.Fatalf("frame %d: Tick() = %v", i, err)
		}
	}
	lastGood := eng.OutputTexture()

	eng.HandleContextLoss()
	if err := eng.Tick(16*time.Millisecond, uniform.Extras{}, 0.05); err == nil {
		t.Fatal("Tick() immediately after context loss = nil, want error")
	}
	if got := eng.OutputTexture(); got != lastGood {
		t.Fatalf("OutputTexture() after a dropped frame = %v, want unchanged %v", got, lastGood)
	}

	if err := eng.RestoreContext(); err != nil {
		t.Fatalf("RestoreContext() = %v", err)
	}
	if err := eng.Tick(16*time.Millisecond, uniform.Extras{}, 0.06); err != nil {
		t.Fatalf("Tick() after restore = %v", err)
	}
}
