// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package uniform

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shaderir"
)

// glslUniformRe matches "uniform <type> <name>;" declarations. The
// verifier only needs declaration-level scanning, not a full GLSL
// grammar.
var glslUniformRe = regexp.MustCompile(`uniform\s+(float|int|vec2|vec3|vec4)\s+(\w+)\s*;`)

// wgslFieldRe matches "<name>: <type>," struct-member declarations inside
// a WGSL `struct Uniforms { ... }` block.
var wgslFieldRe = regexp.MustCompile(`(\w+)\s*:\s*(f32|i32|u32|vec2<f32>|vec3<f32>|vec4<f32>)\s*,?`)

// declaredType maps a source-language spelling to the shaderir.Type it
// denotes, for comparison against Schema.
func declaredType(spelling string) (shaderir.Type, bool) {
	switch spelling {
	case "float", "f32":
		return shaderir.F32(), true
	case "int", "i32", "u32":
		return shaderir.I32(), true
	case "vec2", "vec2<f32>":
		return shaderir.Vec2F32(), true
	case "vec3", "vec3<f32>":
		return shaderir.Vec3F32(), true
	default:
		return shaderir.Type{}, false
	}
}

// ScanGLSL extracts the uniform declarations from a GLSL source string.
func ScanGLSL(src string) map[string]shaderir.Type {
	out := map[string]shaderir.Type{}
	for _, m := range glslUniformRe.FindAllStringSubmatch(src, -1) {
		if t, ok := declaredType(m[1]); ok {
			out[m[2]] = t
		}
	}
	return out
}

// ScanWGSL extracts the uniform struct member declarations from a WGSL
// source string.
func ScanWGSL(src string) map[string]shaderir.Type {
	out := map[string]shaderir.Type{}
	for _, m := range wgslFieldRe.FindAllStringSubmatch(src, -1) {
		if t, ok := declaredType(m[2]); ok {
			out[m[1]] = t
		}
	}
	return out
}

// SystemSource is one system's assembled shader source in both languages.
type SystemSource struct {
	System string
	GLSL   string
	WGSL   string
}

// CoverageEntry is one (system, uniform) cell of the coverage matrix.
type CoverageEntry struct {
	System    string
	Uniform   string
	DeclaredGLSL bool
	DeclaredWGSL bool
}

// CoverageMatrix is the verifier's report: one entry per (system, uniform)
// pair found or required.
type CoverageMatrix struct {
	Entries []CoverageEntry
}

// VerificationError reports a missing required uniform or a cross-system
// type mismatch.
type VerificationError struct {
	Missing   []string // "system/uniform"
	Conflicts []string // description of type mismatches
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("uniform contract violated: %d missing, %d type conflicts", len(e.Missing), len(e.Conflicts))
}

// Verify parses each system's shader source in both shader languages and
// emits a coverage matrix. It fails if any required uniform is missing
// from a system, or if two systems disagree on a shared uniform's type.
func Verify(systems []SystemSource) (CoverageMatrix, error) {
	var matrix CoverageMatrix
	verErr := &VerificationError{}

	// sharedType records the first type seen for a uniform name across all
	// systems+languages, to detect disagreement.
	sharedType := map[string]shaderir.Type{}
	sharedFrom := map[string]string{}

	checkType := func(name string, t shaderir.Type, from string) {
		if prev, ok := sharedType[name]; ok {
			if prev.Inner != t.Inner {
				verErr.Conflicts = append(verErr.Conflicts,
					fmt.Sprintf("%s: %s declares a different type than %s", name, from, sharedFrom[name]))
			}
			return
		}
		sharedType[name] = t
		sharedFrom[name] = from
	}

	for _, sys := range systems {
		glslDecls := ScanGLSL(sys.GLSL)
		wgslDecls := ScanWGSL(sys.WGSL)

		for name, t := range glslDecls {
			checkType(name, t, sys.System+"/glsl")
		}
		for name, t := range wgslDecls {
			checkType(name, t, sys.System+"/wgsl")
		}

		for _, f := range Required() {
			_, inGLSL := glslDecls[f.Name]
			_, inWGSL := wgslDecls[f.Name]
			matrix.Entries = append(matrix.Entries, CoverageEntry{
				System: sys.System, Uniform: f.Name, DeclaredGLSL: inGLSL, DeclaredWGSL: inWGSL,
			})
			if !inGLSL {
				verErr.Missing = append(verErr.Missing, sys.System+"/glsl/"+f.Name)
			}
			if !inWGSL {
				verErr.Missing = append(verErr.Missing, sys.System+"/wgsl/"+f.Name)
			}
		}
	}

	sort.Slice(matrix.Entries, func(i, j int) bool {
		if matrix.Entries[i].System != matrix.Entries[j].System {
			return matrix.Entries[i].System < matrix.Entries[j].System
		}
		return matrix.Entries[i].Uniform < matrix.Entries[j].Uniform
	})

	if len(verErr.Missing) > 0 || len(verErr.Conflicts) > 0 {
		return matrix, verErr
	}
	return matrix, nil
}
