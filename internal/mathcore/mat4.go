// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package mathcore

import "math"

// Mat4 is a 4x4 matrix stored column-major: M[col*4+row].
type Mat4 struct {
	M [16]float32
}

// IdentityMat4 returns the 4x4 identity matrix.
func IdentityMat4() Mat4 {
	var m Mat4
	m.M[0] = 1
	m.M[5] = 1
	m.M[10] = 1
	m.M[15] = 1
	return m
}

func (m *Mat4) at(col, row int) float32       { return m.M[col*4+row] }
func (m *Mat4) set(col, row int, v float32)    { m.M[col*4+row] = v }
func (m *Mat4) setColumn(col int, v Vec4)      { m.set(col, 0, v.X); m.set(col, 1, v.Y); m.set(col, 2, v.Z); m.set(col, 3, v.W) }

// MulVec4 applies m to v (m*v).
func (m Mat4) MulVec4(v Vec4) Vec4 {
	in := [4]float32{v.X, v.Y, v.Z, v.W}
	var out [4]float32
	for row := 0; row < 4; row++ {
		var sum float32
		for col := 0; col < 4; col++ {
			sum += m.at(col, row) * in[col]
		}
		out[row] = sum
	}
	return Vec4{X: out[0], Y: out[1], Z: out[2], W: out[3]}
}

// MulMat4 returns m*o.
func (m Mat4) MulMat4(o Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		colVec := Vec4{X: o.at(col, 0), Y: o.at(col, 1), Z: o.at(col, 2), W: o.at(col, 3)}
		out.setColumn(col, m.MulVec4(colVec))
	}
	return out
}

// planeRotationMatrix builds the fixed sparse rotation matrix for a single
// plane: identity everywhere except the 2x2 block on (i,j), matching the
// sign convention of FromPlaneAngle/ApplyToVec.
func planeRotationMatrix(plane Plane, theta float32) Mat4 {
	i, j := planeAxes(plane)
	m := IdentityMat4()
	c := float32(math.Cos(float64(theta)))
	s := float32(math.Sin(float64(theta)))
	m.set(i, i, c)
	m.set(i, j, s)
	m.set(j, i, -s)
	m.set(j, j, c)
	return m
}

// planeAxes returns the (i,j) axis pair a Plane rotates, i<j, with axes
// indexed X=0,Y=1,Z=2,W=3.
func planeAxes(p Plane) (int, int) {
	switch p {
	case PlaneXY:
		return 0, 1
	case PlaneXZ:
		return 0, 2
	case PlaneYZ:
		return 1, 2
	case PlaneXW:
		return 0, 3
	case PlaneYW:
		return 1, 3
	case PlaneZW:
		return 2, 3
	default:
		return 0, 1
	}
}

// RotationFromSixAngles composes the six per-plane rotation matrices in
// the exact normative order Rxy * Rxz * Ryz * Rxw * Ryw * Rzw.
// Must agree with Rotor4D.ToMatrix for the same six angles within 1e-5.
func RotationFromSixAngles(xy, xz, yz, xw, yw, zw float32) Mat4 {
	m := planeRotationMatrix(PlaneXY, xy)
	m = m.MulMat4(planeRotationMatrix(PlaneXZ, xz))
	m = m.MulMat4(planeRotationMatrix(PlaneYZ, yz))
	m = m.MulMat4(planeRotationMatrix(PlaneXW, xw))
	m = m.MulMat4(planeRotationMatrix(PlaneYW, yw))
	m = m.MulMat4(planeRotationMatrix(PlaneZW, zw))
	return m
}
