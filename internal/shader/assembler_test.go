// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"strconv"
	"strings"
	"testing"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

// TestAssembleAllPassesVerification checks end to end that every
// assembled system, in both languages, declares every required uniform
// with an agreeing type.
func TestAssembleAllPassesVerification(t *testing.T) {
	if _, err := uniform.Verify(AssembleAll()); err != nil {
		t.Fatalf("Verify(AssembleAll()) = %v, want nil", err)
	}
}

func TestAssembleIncludesEveryGeometryVariant(t *testing.T) {
	g, w := Assemble(SystemFaceted)
	for i := 0; i < 24; i++ {
		marker := "geometryIndex == " + strconv.Itoa(i)
		if !strings.Contains(g, marker) {
			t.Fatalf("GLSL missing dispatch for geometry index %d", i)
		}
		if !strings.Contains(w, marker) {
			t.Fatalf("WGSL missing dispatch for geometry index %d", i)
		}
	}
}

func TestSystemsHaveDistinctEntryPoints(t *testing.T) {
	gf, _ := Assemble(SystemFaceted)
	gq, _ := Assemble(SystemQuantum)
	gh, _ := Assemble(SystemHolographic)
	if gf == gq || gq == gh || gf == gh {
		t.Fatal("systems produced identical shader source, want distinct entry points")
	}
}
