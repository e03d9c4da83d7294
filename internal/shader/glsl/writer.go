// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl adapts naga's GLSL backend (Version and type-name
// tables) into a declaration writer for the UniformContract:
// given the canonical schema, it emits the `uniform` block every system's
// fragment program must declare.
package glsl

import (
	"fmt"
	"strings"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shaderir"
)

// Version represents a GLSL version, as naga's glsl.Version did.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool
}

// VersionES300 targets WebGL2 / OpenGL ES 3.00, the rasterization
// backend's primary target.
var VersionES300 = Version{Major: 3, Minor: 0, ES: true}

// String returns the GLSL version directive value.
func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

// typeName maps a shaderir.Type to its GLSL spelling.
func typeName(t shaderir.Type) string {
	switch inner := t.Inner.(type) {
	case shaderir.ScalarType:
		switch inner.Kind {
		case shaderir.ScalarFloat:
			return "float"
		case shaderir.ScalarSint:
			return "int"
		case shaderir.ScalarUint:
			return "uint"
		case shaderir.ScalarBool:
			return "bool"
		}
	case shaderir.VectorType:
		return fmt.Sprintf("vec%d", inner.Size)
	}
	return "float"
}

// DeclareUniforms emits one `uniform <type> <name>;` line per schema
// field, in schema order, after the #version directive; ES versions also
// get a `precision highp float;` line.
func DeclareUniforms(version Version, fields []shaderir.Uniform) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#version %s\n", version)
	if version.ES {
		sb.WriteString("precision highp float;\n")
	}
	for _, f := range fields {
		fmt.Fprintf(&sb, "uniform %s %s;\n", typeName(f.Type), f.Name)
	}
	return sb.String()
}
