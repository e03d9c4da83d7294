// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package mathcore provides the 4D geometric substrate shared by every
// system in the engine: Vec4, Mat4, and Rotor4D (Cl(4,0)). All operations
// are pure and single-precision (f32) for GPU parity.
package mathcore

import "math"

// Vec4 is a four-component vector in single precision.
type Vec4 struct {
	X, Y, Z, W float32
}

// NewVec4 builds a Vec4 from its four components.
func NewVec4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

// Add returns v+o.
func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W}
}

// Sub returns v-o.
func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W}
}

// Scale returns v scaled by s.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Dot returns the Euclidean dot product.
func (v Vec4) Dot(o Vec4) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W
}

// Length returns the Euclidean norm.
func (v Vec4) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns v/|v|. A zero-length vector normalizes to itself
// (the zero vector) rather than producing NaN.
func (v Vec4) Normalize() Vec4 {
	l := v.Length()
	if l == 0 {
		return Vec4{}
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates between v and o at parameter t.
func (v Vec4) Lerp(o Vec4, t float32) Vec4 {
	return Vec4{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
		v.W + (o.W-v.W)*t,
	}
}
