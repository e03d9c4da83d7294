// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shaderir defines the intermediate representation the
// ShaderAssembler uses to describe the uniform schema and the
// shared math modules (rotations, projection, warps, lattices) before they
// are packed into GLSL or WGSL source by the shader/glsl and shader/wgsl
// writers.
//
// This is naga's ir.Module taxonomy, repurposed: Module no longer holds an
// arbitrary compiled expression graph, it holds the canonical uniform
// schema plus a fixed catalog of named source Modules that the two
// backends concatenate. The Type/ScalarKind/VectorSize vocabulary is kept
// verbatim since the canonical uniform buffer layout is exactly scalars
// and small vectors.
package shaderir

// Module is the canonical description of one system's shader: its declared
// uniforms and the ordered list of shared math snippets it includes.
type Module struct {
	// Uniforms holds the uniform schema in canonical declaration order.
	Uniforms []Uniform

	// Includes names the shared snippets concatenated
	// ahead of the per-system main body, in assembly order: rotations,
	// projection, warps, lattices.
	Includes []string

	// EntryPoint is the per-system fragment main.
	EntryPoint EntryPoint
}

// Uniform describes one field of the canonical uniform record.
type Uniform struct {
	Name     string
	Type     Type
	Required bool // false => "recommended" or "optional"
}

// Type is a scalar or small-vector type, the only shapes the canonical
// uniform buffer layout uses.
type Type struct {
	Inner TypeInner
}

// TypeInner is the closed set of type shapes a Uniform can take.
type TypeInner interface {
	typeInner()
}

// ScalarType represents a single f32/u32/i32/bool value.
type ScalarType struct {
	Kind  ScalarKind
	Width uint8 // bytes
}

func (ScalarType) typeInner() {}

// ScalarKind mirrors naga's scalar kind taxonomy.
type ScalarKind uint8

const (
	ScalarFloat ScalarKind = iota
	ScalarUint
	ScalarSint
	ScalarBool
)

// VectorType represents a vec2/vec3/vec4 of a scalar kind.
type VectorType struct {
	Size   VectorSize
	Scalar ScalarType
}

func (VectorType) typeInner() {}

// VectorSize is the component count of a vector type.
type VectorSize uint8

const (
	Vec2 VectorSize = 2
	Vec3 VectorSize = 3
	Vec4 VectorSize = 4
)

// EntryPoint is the per-system fragment main; its Body is literal
// per-language source supplied by the caller (shader.Assembler), not an
// opcode list — the assembler's job is textual composition, not general
// expression compilation.
type EntryPoint struct {
	Name       string
	BodyGLSL   string
	BodyWGSL   string
	ReadsRoles bool // true only for the Holographic system
}

// F32 is the scalar shorthand used throughout the uniform schema.
func F32() Type { return Type{Inner: ScalarType{Kind: ScalarFloat, Width: 4}} }

// I32 is the scalar shorthand for integer-valued uniforms (geometry index).
func I32() Type { return Type{Inner: ScalarType{Kind: ScalarSint, Width: 4}} }

// Vec2F32 is the vec2<f32> shorthand (resolution).
func Vec2F32() Type {
	return Type{Inner: VectorType{Size: Vec2, Scalar: ScalarType{Kind: ScalarFloat, Width: 4}}}
}

// Vec3F32 is the vec3<f32> shorthand (layerColor).
func Vec3F32() Type {
	return Type{Inner: VectorType{Size: Vec3, Scalar: ScalarType{Kind: ScalarFloat, Width: 4}}}
}
