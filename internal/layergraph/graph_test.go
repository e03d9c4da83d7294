// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layergraph

import (
	"math"
	"testing"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
)

func TestApplyProfileSatisfiesInvariant(t *testing.T) {
	for _, name := range ProfileNames {
		lg, err := ApplyProfile(name)
		if err != nil {
			t.Fatalf("ApplyProfile(%q) = %v", name, err)
		}
		if err := lg.CheckInvariant(); err != nil {
			t.Fatalf("ApplyProfile(%q) invariant: %v", name, err)
		}
		if lg.Keystone() != Content {
			t.Fatalf("ApplyProfile(%q) keystone = %s, want content", name, lg.Keystone())
		}
	}
}

func TestUnknownProfileRejected(t *testing.T) {
	if _, err := ApplyProfile("nonexistent"); err == nil {
		t.Fatal("ApplyProfile(nonexistent) = nil, want error")
	}
}

// TestHolographicGridDensityDerivation checks a worked example: holographic
// profile, Content=keystone, keystone gridDensity=40.
func TestHolographicGridDensityDerivation(t *testing.T) {
	lg, err := ApplyProfile("holographic")
	if err != nil {
		t.Fatalf("ApplyProfile() = %v", err)
	}
	k := params.Defaults()
	k.GridDensity = 40

	out, err := lg.Derive(k, 0)
	if err != nil {
		t.Fatalf("Derive() = %v", err)
	}

	want := map[Role]float32{
		Background: 16,
		Shadow:     24,
		Highlight:  80,
		Accent:     100, // Harmonic(3)*40 = 120, clamped to 100
	}
	for role, exp := range want {
		got := out[role].GridDensity
		if math.Abs(float64(got-exp)) > 1e-3 {
			t.Errorf("%s.GridDensity = %v, want %v", role, got, exp)
		}
	}
}

// TestHarmonicTracksKeystoneAcrossFrames checks a worked 60Hz sequence:
// with Highlight=Harmonic(3), each frame's Highlight.GridDensity/Hue
// tracks 3x/137.508deg-offset of that frame's keystone, even as the
// keystone's own values change frame to frame.
func TestHarmonicTracksKeystoneAcrossFrames(t *testing.T) {
	lg := New()
	if err := lg.SetKeystone(Content); err != nil {
		t.Fatalf("SetKeystone() = %v", err)
	}
	for _, role := range []Role{Background, Shadow, Accent} {
		if err := lg.SetRelationship(role, Echo(1)); err != nil {
			t.Fatalf("SetRelationship(%s) = %v", role, err)
		}
	}
	if err := lg.SetRelationship(Highlight, Harmonic(3)); err != nil {
		t.Fatalf("SetRelationship(Highlight) = %v", err)
	}

	const dt = float32(1.0 / 60.0)
	k := params.Defaults()
	for frame := 0; frame < 30; frame++ {
		k.GridDensity = 10 + float32(frame)
		k.Hue = float32(frame * 7 % 360)

		out, err := lg.Derive(k, dt)
		if err != nil {
			t.Fatalf("frame %d: Derive() = %v", frame, err)
		}

		wantGrid := clampGridDensity(3 * k.GridDensity)
		if got := out[Highlight].GridDensity; math.Abs(float64(got-wantGrid)) > 1e-3 {
			t.Errorf("frame %d: Highlight.GridDensity = %v, want %v", frame, got, wantGrid)
		}
		wantHue := modHue(k.Hue + 3*137.508)
		if got := out[Highlight].Hue; math.Abs(float64(got-wantHue)) > 1e-3 {
			t.Errorf("frame %d: Highlight.Hue = %v, want %v", frame, got, wantHue)
		}
	}
}

func TestDeriveRejectsIncompleteGraph(t *testing.T) {
	lg := New()
	if err := lg.SetKeystone(Content); err != nil {
		t.Fatalf("SetKeystone() = %v", err)
	}
	if _, err := lg.Derive(params.Defaults(), 0); err == nil {
		t.Fatal("Derive() on incomplete graph = nil, want error")
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	lg1, _ := ApplyProfile("chord")
	lg2, _ := ApplyProfile("chord")
	k := params.Defaults()
	k.Hue = 77
	k.GridDensity = 30

	out1, err := lg1.Derive(k, 1.0/60)
	if err != nil {
		t.Fatalf("Derive() = %v", err)
	}
	out2, err := lg2.Derive(k, 1.0/60)
	if err != nil {
		t.Fatalf("Derive() = %v", err)
	}
	for _, r := range AllRoles {
		if out1[r] != out2[r] {
			t.Errorf("role %s: Derive() not deterministic: %+v vs %+v", r, out1[r], out2[r])
		}
	}
}

func TestSetKeystoneChangeResetsRunningState(t *testing.T) {
	lg, err := ApplyProfile("storm")
	if err != nil {
		t.Fatalf("ApplyProfile() = %v", err)
	}
	k := params.Defaults()
	if _, err := lg.Derive(k, 1.0/60); err != nil {
		t.Fatalf("Derive() = %v", err)
	}
	if err := lg.SetKeystone(Content); err != nil {
		t.Fatalf("SetKeystone() = %v", err)
	}
	if lg.initialized {
		t.Fatal("SetKeystone() did not reset initialized flag")
	}
}

func TestSetRelationshipRejectsKeystoneRole(t *testing.T) {
	lg := New()
	if err := lg.SetKeystone(Content); err != nil {
		t.Fatalf("SetKeystone() = %v", err)
	}
	if err := lg.SetRelationship(Content, Echo(0.5)); err != ErrNotFollower {
		t.Fatalf("SetRelationship(keystone) = %v, want ErrNotFollower", err)
	}
}
