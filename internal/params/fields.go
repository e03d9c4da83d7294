// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package params implements the ParameterStore: a typed,
// clamped record of 15 keystone fields, six of them rotation angles,
// dirty tracking, validation, and snapshot/restore.
package params

// Name is the closed set of canonical parameter names.
type Name string

const (
	Geometry    Name = "geometry"
	Rot4dXY     Name = "rot4dXY"
	Rot4dXZ     Name = "rot4dXZ"
	Rot4dYZ     Name = "rot4dYZ"
	Rot4dXW     Name = "rot4dXW"
	Rot4dYW     Name = "rot4dYW"
	Rot4dZW     Name = "rot4dZW"
	GridDensity Name = "gridDensity"
	MorphFactor Name = "morphFactor"
	Chaos       Name = "chaos"
	Speed       Name = "speed"
	Hue         Name = "hue"
	Saturation  Name = "saturation"
	Intensity   Name = "intensity"
	Dimension   Name = "dimension"
)

// AllNames lists the 15 canonical fields in their canonical table order.
var AllNames = []Name{
	Geometry, Rot4dXY, Rot4dXZ, Rot4dYZ, Rot4dXW, Rot4dYW, Rot4dZW,
	GridDensity, MorphFactor, Chaos, Speed, Hue, Saturation, Intensity, Dimension,
}

// domain describes a field's clamp/round/wrap behavior.
type domain struct {
	min, max float32
	def      float32
	integer  bool
	wrap     bool
}

var domains = map[Name]domain{
	Geometry:    {min: 0, max: 23, def: 0, integer: true},
	Rot4dXY:     {min: -2 * pi, max: 2 * pi, def: 0},
	Rot4dXZ:     {min: -2 * pi, max: 2 * pi, def: 0},
	Rot4dYZ:     {min: -2 * pi, max: 2 * pi, def: 0},
	Rot4dXW:     {min: -2 * pi, max: 2 * pi, def: 0},
	Rot4dYW:     {min: -2 * pi, max: 2 * pi, def: 0},
	Rot4dZW:     {min: -2 * pi, max: 2 * pi, def: 0},
	GridDensity: {min: 4, max: 100, def: 15},
	MorphFactor: {min: 0, max: 2, def: 1.0},
	Chaos:       {min: 0, max: 1, def: 0.2},
	Speed:       {min: 0.1, max: 3, def: 1.0},
	Hue:         {min: 0, max: 360, def: 200, wrap: true},
	Saturation:  {min: 0, max: 1, def: 0.8},
	Intensity:   {min: 0, max: 1, def: 0.5},
	Dimension:   {min: 3.0, max: 4.5, def: 3.8},
}

const pi = 3.14159265358979323846
