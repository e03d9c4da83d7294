// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package uniform

import (
	"strings"
	"testing"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
)

func glslSourceWithAllRequired() string {
	var sb strings.Builder
	for _, f := range Required() {
		glslType := "float"
		if f.Name == "resolution" {
			glslType = "vec2"
		}
		sb.WriteString("uniform " + glslType + " " + f.Name + ";\n")
	}
	return sb.String()
}

func wgslSourceWithAllRequired() string {
	var sb strings.Builder
	sb.WriteString("struct Uniforms {\n")
	for _, f := range Required() {
		wgslType := "f32"
		if f.Name == "resolution" {
			wgslType = "vec2<f32>"
		}
		sb.WriteString("  " + f.Name + ": " + wgslType + ",\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// TestVerifyPassesWithFullCoverage checks that full uniform coverage
// across both shader languages verifies clean.
func TestVerifyPassesWithFullCoverage(t *testing.T) {
	systems := []SystemSource{
		{System: "faceted", GLSL: glslSourceWithAllRequired(), WGSL: wgslSourceWithAllRequired()},
		{System: "quantum", GLSL: glslSourceWithAllRequired(), WGSL: wgslSourceWithAllRequired()},
		{System: "holographic", GLSL: glslSourceWithAllRequired(), WGSL: wgslSourceWithAllRequired()},
	}
	if _, err := Verify(systems); err != nil {
		t.Fatalf("Verify() = %v, want nil", err)
	}
}

func TestVerifyFailsOnMissingUniform(t *testing.T) {
	systems := []SystemSource{
		{System: "faceted", GLSL: "uniform float time;\n", WGSL: "struct Uniforms { time: f32 }\n"},
	}
	_, err := Verify(systems)
	if err == nil {
		t.Fatal("Verify() = nil, want error for missing required uniforms")
	}
	ve, ok := err.(*VerificationError)
	if !ok {
		t.Fatalf("error type = %T, want *VerificationError", err)
	}
	if len(ve.Missing) == 0 {
		t.Fatal("VerificationError.Missing is empty, want entries for every missing required uniform")
	}
}

func TestVerifyFailsOnTypeConflict(t *testing.T) {
	systems := []SystemSource{
		{System: "faceted", GLSL: glslSourceWithAllRequired(), WGSL: wgslSourceWithAllRequired()},
		{
			System: "quantum",
			GLSL:   strings.Replace(glslSourceWithAllRequired(), "uniform float hue;", "uniform vec2 hue;", 1),
			WGSL:   wgslSourceWithAllRequired(),
		},
	}
	_, err := Verify(systems)
	if err == nil {
		t.Fatal("Verify() = nil, want error for cross-system type conflict on hue")
	}
}

func TestPackMatchesCanonicalOffsets(t *testing.T) {
	p := params.Defaults()
	buf := Pack(p, Extras{Time: 1.5, ResolutionX: 800, ResolutionY: 600})
	if len(buf) != BufferSize {
		t.Fatalf("Pack() returned %d bytes, want %d", len(buf), BufferSize)
	}
	// time at offset 0
	if buf[0] == 0 && buf[1] == 0 && buf[2] == 0 && buf[3] == 0 {
		t.Fatal("time field appears to be zero at offset 0")
	}
}

func TestPadTo16(t *testing.T) {
	buf := make([]byte, 10)
	padded := PadTo16(buf)
	if len(padded)%16 != 0 {
		t.Fatalf("PadTo16 returned %d bytes, not a multiple of 16", len(padded))
	}
}
