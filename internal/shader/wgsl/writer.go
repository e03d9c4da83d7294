// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package wgsl adapts naga's WGSL token vocabulary into a declaration
// writer for the UniformContract: given the canonical schema,
// it emits the `struct Uniforms { ... }` block and its binding.
package wgsl

import (
	"fmt"
	"strings"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shaderir"
)

// typeName maps a shaderir.Type to its WGSL spelling, the same closed
// vocabulary naga's wgsl lexer recognizes for numeric types.
func typeName(t shaderir.Type) string {
	switch inner := t.Inner.(type) {
	case shaderir.ScalarType:
		switch inner.Kind {
		case shaderir.ScalarFloat:
			return "f32"
		case shaderir.ScalarSint:
			return "i32"
		case shaderir.ScalarUint:
			return "u32"
		case shaderir.ScalarBool:
			return "bool"
		}
	case shaderir.VectorType:
		return fmt.Sprintf("vec%d<f32>", inner.Size)
	}
	return "f32"
}

// DeclareUniforms emits the `struct Uniforms {...}` block plus its
// `@group(0) @binding(0)` resource declaration, in schema order.
func DeclareUniforms(fields []shaderir.Uniform) string {
	var sb strings.Builder
	sb.WriteString("struct Uniforms {\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "  %s: %s,\n", f.Name, typeName(f.Type))
	}
	sb.WriteString("}\n\n")
	sb.WriteString("@group(0) @binding(0) var<uniform> uniforms: Uniforms;\n")
	return sb.String()
}
