// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package uniform implements the UniformContract: the
// canonical uniform schema, its GLSL/WGSL declaration text, the backend
// byte-packing rules, and the shader-sync verifier.
package uniform

import "github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shaderir"

// Tier classifies a uniform's obligation level.
type Tier uint8

const (
	TierRequired Tier = iota
	TierRecommended
	TierOptional
)

// Field describes one entry of the canonical uniform schema.
type Field struct {
	Name string
	Type shaderir.Type
	Tier Tier
}

// Schema is the canonical uniform schema, source of truth for every
// backend packing. Order matches the canonical buffer layout wherever
// the field also appears there, except dimension, which Pack writes
// before gridDensity.
var Schema = []Field{
	{Name: "time", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "resolution", Type: shaderir.Vec2F32(), Tier: TierRequired},
	{Name: "geometry", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "rot4dXY", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "rot4dXZ", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "rot4dYZ", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "rot4dXW", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "rot4dYW", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "rot4dZW", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "gridDensity", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "morphFactor", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "chaos", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "speed", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "hue", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "intensity", Type: shaderir.F32(), Tier: TierRequired},
	{Name: "dimension", Type: shaderir.F32(), Tier: TierRequired},

	{Name: "saturation", Type: shaderir.F32(), Tier: TierRecommended},
	{Name: "mouseIntensity", Type: shaderir.F32(), Tier: TierRecommended},
	{Name: "clickIntensity", Type: shaderir.F32(), Tier: TierRecommended},
	{Name: "bass", Type: shaderir.F32(), Tier: TierRecommended},
	{Name: "mid", Type: shaderir.F32(), Tier: TierRecommended},
	{Name: "high", Type: shaderir.F32(), Tier: TierRecommended},

	{Name: "mouse", Type: shaderir.Vec2F32(), Tier: TierOptional},
	{Name: "roleIntensity", Type: shaderir.F32(), Tier: TierOptional},
	{Name: "layerScale", Type: shaderir.F32(), Tier: TierOptional},
	{Name: "layerOpacity", Type: shaderir.F32(), Tier: TierOptional},
	{Name: "layerColor", Type: shaderir.Vec3F32(), Tier: TierOptional},
	{Name: "densityMult", Type: shaderir.F32(), Tier: TierOptional},
	{Name: "speedMult", Type: shaderir.F32(), Tier: TierOptional},
}

// Required returns the subset of Schema every system's fragment program
// must declare.
func Required() []Field {
	var out []Field
	for _, f := range Schema {
		if f.Tier == TierRequired {
			out = append(out, f)
		}
	}
	return out
}

// IRUniforms converts Schema into the shaderir.Uniform list the
// shader/glsl and shader/wgsl writers consume.
func IRUniforms() []shaderir.Uniform {
	out := make([]shaderir.Uniform, len(Schema))
	for i, f := range Schema {
		out[i] = shaderir.Uniform{Name: f.Name, Type: f.Type, Required: f.Tier == TierRequired}
	}
	return out
}

// ByName looks up a schema field, reporting whether it exists.
func ByName(name string) (Field, bool) {
	for _, f := range Schema {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
