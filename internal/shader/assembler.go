// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shader implements the ShaderAssembler: it composes
// the canonical uniform declarations, the shared rotation and projection
// modules, the GeometryCatalog's lattice/warp snippets, and a per-system
// entry point into final GLSL and WGSL fragment source — one assembly per
// System, not one per geometry variant, since the `geometry` uniform
// switches lattices at runtime.
package shader

import (
	"fmt"
	"strings"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/geometry"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shader/glsl"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shader/wgsl"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

// System names the three rendering systems the adapter layer runs:
// Faceted, Quantum, Holographic differ only in their entry point body,
// never in the shared math modules.
type System uint8

const (
	SystemFaceted System = iota
	SystemQuantum
	SystemHolographic
)

func (s System) String() string {
	switch s {
	case SystemFaceted:
		return "faceted"
	case SystemQuantum:
		return "quantum"
	case SystemHolographic:
		return "holographic"
	default:
		return fmt.Sprintf("System(%d)", s)
	}
}

// ParseSystem parses the name written by System.String back into a
// System.
func ParseSystem(name string) (System, error) {
	switch name {
	case "faceted":
		return SystemFaceted, nil
	case "quantum":
		return SystemQuantum, nil
	case "holographic":
		return SystemHolographic, nil
	default:
		return 0, fmt.Errorf("shader: unknown system %q", name)
	}
}

// densitySwitchGLSL renders the runtime dispatch over all 24 geometry
// variants, GLSL flavor, used by every system's density() call.
func densitySwitchGLSL() string {
	var sb strings.Builder
	sb.WriteString("float evalGeometry(int geometryIndex, vec3 p, float gridDensity, float morphFactor, float time) {\n")
	for _, v := range geometry.All() {
		call, _ := geometry.CallExpr(v.Index)
		fmt.Fprintf(&sb, "    if (geometryIndex == %d) { return %s; }\n", int(v.Index), call)
	}
	sb.WriteString("    return 0.0;\n}\n")
	return sb.String()
}

func densitySwitchWGSL() string {
	var sb strings.Builder
	sb.WriteString("fn evalGeometry(geometryIndex: i32, p: vec3<f32>, gridDensity: f32, morphFactor: f32, time: f32) -> f32 {\n")
	for _, v := range geometry.All() {
		_, call := geometry.CallExpr(v.Index)
		fmt.Fprintf(&sb, "    if (geometryIndex == %d) { return %s; }\n", int(v.Index), call)
	}
	sb.WriteString("    return 0.0;\n}\n")
	return sb.String()
}

// entryBody returns the per-system main-body source in both languages. Only
// Holographic reads the per-layer role-intensity uniform.
func entryBody(sys System) (glslBody, wgslBody string) {
	switch sys {
	case SystemFaceted:
		return `vec4 col = vec4(vec3(evalGeometry(int(geometry), p, gridDensity, morphFactor, time)) * vec3(intensity), 1.0);
    fragColor = col;`,
			`var col = vec4<f32>(vec3<f32>(evalGeometry(i32(uniforms.geometry), p, uniforms.gridDensity, uniforms.morphFactor, uniforms.time)) * vec3<f32>(uniforms.intensity), 1.0);
    return col;`
	case SystemQuantum:
		return `float d = evalGeometry(int(geometry), p, gridDensity, morphFactor, time);
    float shimmer = 0.5 + 0.5 * sin(time * speed * 3.0 + d * 6.2831);
    fragColor = vec4(vec3(d * shimmer) * intensity, 1.0);`,
			`let d = evalGeometry(i32(uniforms.geometry), p, uniforms.gridDensity, uniforms.morphFactor, uniforms.time);
    let shimmer = 0.5 + 0.5 * sin(uniforms.time * uniforms.speed * 3.0 + d * 6.2831);
    return vec4<f32>(vec3<f32>(d * shimmer) * uniforms.intensity, 1.0);`
	default: // SystemHolographic
		return `float d = evalGeometry(int(geometry), p, gridDensity, morphFactor, time);
    float role = roleIntensity;
    fragColor = vec4(vec3(d) * intensity * role, d * role);`,
			`let d = evalGeometry(i32(uniforms.geometry), p, uniforms.gridDensity, uniforms.morphFactor, uniforms.time);
    let role = uniforms.roleIntensity;
    return vec4<f32>(vec3<f32>(d) * uniforms.intensity * role, d * role);`
	}
}

// Assemble produces the final GLSL and WGSL fragment source for sys:
// uniform declarations, shared rotation/projection modules, every catalog
// lattice and warp snippet, the geometry dispatch switch, then the
// system's entry point.
func Assemble(sys System) (glslSrc, wgslSrc string) {
	uniforms := uniform.IRUniforms()

	var g, w strings.Builder

	g.WriteString(glsl.DeclareUniforms(glsl.VersionES300, uniforms))
	g.WriteString("\n")
	g.WriteString(rotationGLSL)
	g.WriteString("\n")
	g.WriteString(projectionGLSL)
	g.WriteString("\n")

	w.WriteString(wgsl.DeclareUniforms(uniforms))
	w.WriteString("\n")
	w.WriteString(rotationWGSL)
	w.WriteString("\n")
	w.WriteString(projectionWGSL)
	w.WriteString("\n")

	for _, s := range geometry.AllWarpSnippets() {
		g.WriteString(s.GLSL)
		g.WriteString("\n")
		w.WriteString(s.WGSL)
		w.WriteString("\n")
	}
	for _, s := range geometry.AllLatticeSnippets() {
		g.WriteString(s.GLSL)
		g.WriteString("\n")
		w.WriteString(s.WGSL)
		w.WriteString("\n")
	}

	g.WriteString(densitySwitchGLSL())
	w.WriteString(densitySwitchWGSL())

	glslBody, wgslBody := entryBody(sys)

	fmt.Fprintf(&g, "\nout vec4 fragColor;\nvoid main() {\n    vec3 p = vec3(0.0);\n    %s\n}\n", glslBody)
	fmt.Fprintf(&w, "\n@fragment\nfn main() -> @location(0) vec4<f32> {\n    let p = vec3<f32>(0.0, 0.0, 0.0);\n    %s\n}\n", wgslBody)

	return g.String(), w.String()
}

// AssembleAll returns the SystemSource triple for every System, ready for
// uniform.Verify.
func AssembleAll() []uniform.SystemSource {
	systems := []System{SystemFaceted, SystemQuantum, SystemHolographic}
	out := make([]uniform.SystemSource, 0, len(systems))
	for _, s := range systems {
		g, w := Assemble(s)
		out = append(out, uniform.SystemSource{System: s.String(), GLSL: g, WGSL: w})
	}
	return out
}
