// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package mathcore

import "math"

// Plane names one of the six rotation planes of R^4, in the normative
// composition order XY, XZ, YZ, XW, YW, ZW.
type Plane uint8

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
	PlaneXW
	PlaneYW
	PlaneZW
)

// planeBlade maps each of the six planes to its Cl(4,0) bivector, encoded
// as a bitmask over generators e1..e4 (bit i = e_{i+1}). These, together
// with the scalar (0) and pseudoscalar (15) blades, give the eight-element
// basis {1, e12, e13, e23, e14, e24, e34, e1234} in the order coefficients
// are stored.
var planeBlade = [6]uint8{
	0b0011, // e12 = XY
	0b0101, // e13 = XZ
	0b0110, // e23 = YZ
	0b1001, // e14 = XW
	0b1010, // e24 = YW
	0b1100, // e34 = ZW
}

// basisOrder is the blade bitmask for each of the 8 rotor coefficients,
// in spec order.
var basisOrder = [8]uint8{0, 0b0011, 0b0101, 0b0110, 0b1001, 0b1010, 0b1100, 0b1111}

// vectorBlade gives the bitmask for each grade-1 basis vector e1..e4.
var vectorBlade = [4]uint8{0b0001, 0b0010, 0b0100, 0b1000}

// multiplyBlades computes a*b for two basis blades of Cl(4,0), represented
// as bitmasks over generators e1..e4, under the Euclidean metric
// (e_i^2 = +1). It returns the resulting blade and the sign picked up by
// reordering generators into canonical increasing order, cancelling
// repeated generators as it goes.
func multiplyBlades(a, b uint8) (uint8, int) {
	var seq []int
	for i := 0; i < 4; i++ {
		if a&(1<<uint(i)) != 0 {
			seq = append(seq, i)
		}
	}
	for i := 0; i < 4; i++ {
		if b&(1<<uint(i)) != 0 {
			seq = append(seq, i)
		}
	}

	sign := 1
	for {
		changed := false
		for i := 0; i+1 < len(seq); i++ {
			switch {
			case seq[i] == seq[i+1]:
				seq = append(seq[:i], seq[i+2:]...)
				changed = true
			case seq[i] > seq[i+1]:
				seq[i], seq[i+1] = seq[i+1], seq[i]
				sign = -sign
				changed = true
			default:
				continue
			}
			break
		}
		if !changed {
			break
		}
	}

	var result uint8
	for _, g := range seq {
		result |= 1 << uint(g)
	}
	return result, sign
}

// fullProduct multiplies two multivectors spanning the full 16-dimensional
// Cl(4,0) basis (indexed by blade bitmask). The rotor product is the
// restriction of this to the 8 even-grade blades a rotor occupies.
func fullProduct(a, b [16]float32) [16]float32 {
	var out [16]float32
	for ab := 0; ab < 16; ab++ {
		if a[ab] == 0 {
			continue
		}
		for bb := 0; bb < 16; bb++ {
			if b[bb] == 0 {
				continue
			}
			res, sign := multiplyBlades(uint8(ab), uint8(bb))
			out[res] += float32(sign) * a[ab] * b[bb]
		}
	}
	return out
}

// Rotor4D is an element of the even subalgebra of Cl(4,0): a scalar, six
// bivector coefficients (one per rotation plane, in XY,XZ,YZ,XW,YW,ZW
// order), and a pseudoscalar coefficient. It encodes a rotation via the
// sandwich product.
type Rotor4D struct {
	// C holds the eight coefficients in basis order
	// {1, e12, e13, e23, e14, e24, e34, e1234}.
	C [8]float32
}

// Identity returns the rotor representing no rotation.
func Identity() Rotor4D {
	r := Rotor4D{}
	r.C[0] = 1
	return r
}

// FromPlaneAngle builds the rotor for a single-plane rotation by angle
// theta (radians): scalar = cos(theta/2), the plane's bivector component
// = -sin(theta/2), all others zero.
func FromPlaneAngle(plane Plane, theta float32) Rotor4D {
	half := float64(theta) / 2
	r := Rotor4D{}
	r.C[0] = float32(math.Cos(half))
	r.C[1+int(plane)] = float32(-math.Sin(half))
	return r
}

// FromEuler6 composes the six per-plane rotors in the normative order
// Rxy * Rxz * Ryz * Rxw * Ryw * Rzw.
func FromEuler6(xy, xz, yz, xw, yw, zw float32) Rotor4D {
	r := FromPlaneAngle(PlaneXY, xy)
	r = r.Compose(FromPlaneAngle(PlaneXZ, xz))
	r = r.Compose(FromPlaneAngle(PlaneYZ, yz))
	r = r.Compose(FromPlaneAngle(PlaneXW, xw))
	r = r.Compose(FromPlaneAngle(PlaneYW, yw))
	r = r.Compose(FromPlaneAngle(PlaneZW, zw))
	return r
}

// toFull expands r's eight coefficients into the 16-dimensional blade
// space used by fullProduct.
func (r Rotor4D) toFull() [16]float32 {
	var full [16]float32
	for i, blade := range basisOrder {
		full[blade] = r.C[i]
	}
	return full
}

func fromFull(full [16]float32) Rotor4D {
	var r Rotor4D
	for i, blade := range basisOrder {
		r.C[i] = full[blade]
	}
	return r
}

// Compose returns the geometric product a*b (apply b first, then a, when
// sandwiching a vector), then renormalizes to bound drift.
func (a Rotor4D) Compose(b Rotor4D) Rotor4D {
	return fromFull(fullProduct(a.toFull(), b.toFull())).Normalized()
}

// Magnitude returns |R|, the Euclidean norm of the eight coefficients.
func (r Rotor4D) Magnitude() float32 {
	var sum float32
	for _, c := range r.C {
		sum += c * c
	}
	return float32(math.Sqrt(float64(sum)))
}

// Normalized returns r scaled to unit magnitude. A zero rotor (which never
// arises from FromPlaneAngle/FromEuler6/Compose of valid rotors) is
// returned unchanged rather than dividing by zero.
func (r Rotor4D) Normalized() Rotor4D {
	m := r.Magnitude()
	if m == 0 {
		return r
	}
	inv := 1 / m
	var out Rotor4D
	for i, c := range r.C {
		out.C[i] = c * inv
	}
	return out
}

// Reverse returns the reverse of r: grade-2 (bivector) components negate
// under reversal, while the grade-0 scalar and the grade-4 pseudoscalar
// do not.
func (r Rotor4D) Reverse() Rotor4D {
	out := r
	for i := 1; i <= 6; i++ {
		out.C[i] = -out.C[i]
	}
	return out
}

// ApplyToVec applies the sandwich product R v R~ to a vector, returning
// the rotated vector.
func (r Rotor4D) ApplyToVec(v Vec4) Vec4 {
	var vFull [16]float32
	vFull[vectorBlade[0]] = v.X
	vFull[vectorBlade[1]] = v.Y
	vFull[vectorBlade[2]] = v.Z
	vFull[vectorBlade[3]] = v.W

	rFull := r.toFull()
	rRevFull := r.Reverse().toFull()

	result := fullProduct(fullProduct(rFull, vFull), rRevFull)

	return Vec4{
		X: result[vectorBlade[0]],
		Y: result[vectorBlade[1]],
		Z: result[vectorBlade[2]],
		W: result[vectorBlade[3]],
	}
}

// ToMatrix converts r to its equivalent Mat4 by applying r to each basis
// vector; must agree with RotationFromSixAngles for the same six angles
// to within 1e-5.
func (r Rotor4D) ToMatrix() Mat4 {
	var m Mat4
	basis := [4]Vec4{
		{X: 1}, {Y: 1}, {Z: 1}, {W: 1},
	}
	for col, b := range basis {
		rotated := r.ApplyToVec(b)
		m.setColumn(col, rotated)
	}
	return m
}
