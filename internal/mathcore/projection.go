// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package mathcore

// ProjectionMode selects how a Vec4 is projected down to three dimensions.
type ProjectionMode uint8

const (
	ProjectionPerspective ProjectionMode = iota
	ProjectionStereographic
	ProjectionOrthographic
)

// projectionEpsilon bounds the denominator in Perspective/Stereographic
// projection so it never divides by (near-)zero.
const projectionEpsilon = 1e-6

// Vec3 is the three-component result of projecting a Vec4 into R^3.
type Vec3 struct {
	X, Y, Z float32
}

// Projection is the result of projecting a Vec4: the projected point and
// whether the denominator needed clamping (an advisory "saturation" flag
// that never gates behavior, only informs callers).
type Projection struct {
	Point      Vec3
	Saturated  bool
}

// Project projects v according to mode:
//   - Perspective(distance): xyz * distance/(distance-w), |distance-w| >= eps
//   - Stereographic: xyz/(1-w), |1-w| >= eps
//   - Orthographic: drops w
func Project(v Vec4, mode ProjectionMode, distance float32) Projection {
	switch mode {
	case ProjectionPerspective:
		denom := distance - v.W
		sat := false
		if denom >= 0 && denom < projectionEpsilon {
			denom = projectionEpsilon
			sat = true
		} else if denom < 0 && denom > -projectionEpsilon {
			denom = -projectionEpsilon
			sat = true
		}
		scale := distance / denom
		return Projection{Point: Vec3{X: v.X * scale, Y: v.Y * scale, Z: v.Z * scale}, Saturated: sat}
	case ProjectionStereographic:
		denom := 1 - v.W
		sat := false
		if denom >= 0 && denom < projectionEpsilon {
			denom = projectionEpsilon
			sat = true
		} else if denom < 0 && denom > -projectionEpsilon {
			denom = -projectionEpsilon
			sat = true
		}
		scale := 1 / denom
		return Projection{Point: Vec3{X: v.X * scale, Y: v.Y * scale, Z: v.Z * scale}, Saturated: sat}
	default: // ProjectionOrthographic
		return Projection{Point: Vec3{X: v.X, Y: v.Y, Z: v.Z}}
	}
}
