// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package mathcore

import (
	"math"
	"math/rand"
	"testing"
)

func TestIdentityRotorIsNoOp(t *testing.T) {
	v := Vec4{X: 1, Y: 2, Z: 3, W: 4}
	got := Identity().ApplyToVec(v)
	if got != v {
		t.Fatalf("Identity().ApplyToVec(%v) = %v, want unchanged", v, got)
	}
}

func TestFromPlaneAngleUnitMagnitude(t *testing.T) {
	for _, theta := range []float32{0, 0.3, math.Pi / 2, math.Pi, 2 * math.Pi, -1.7} {
		r := FromPlaneAngle(PlaneXW, theta)
		if m := r.Magnitude(); math.Abs(float64(m)-1) > 1e-5 {
			t.Errorf("FromPlaneAngle(XW, %v) magnitude = %v, want ~1", theta, m)
		}
	}
}

// TestRotorMatrixAgreement checks that for random six-angle tuples and
// random vectors, Rotor4D.ApplyToVec and RotationFromSixAngles agree.
func TestRotorMatrixAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randAngle := func() float32 { return float32(rng.Float64()*4*math.Pi - 2*math.Pi) }
	randVec := func() Vec4 {
		return Vec4{
			X: float32(rng.Float64()*20 - 10),
			Y: float32(rng.Float64()*20 - 10),
			Z: float32(rng.Float64()*20 - 10),
			W: float32(rng.Float64()*20 - 10),
		}
	}

	for trial := 0; trial < 200; trial++ {
		xy, xz, yz, xw, yw, zw := randAngle(), randAngle(), randAngle(), randAngle(), randAngle(), randAngle()
		v := randVec()

		r := FromEuler6(xy, xz, yz, xw, yw, zw)
		m := RotationFromSixAngles(xy, xz, yz, xw, yw, zw)

		fromRotor := r.ApplyToVec(v)
		fromMatrix := m.MulVec4(v)

		bound := 1e-4 * math.Max(1, float64(v.Length()))
		if d := fromRotor.Sub(fromMatrix).Length(); float64(d) > bound {
			t.Fatalf("trial %d: rotor/matrix disagree by %v (bound %v); angles=%v v=%v\nrotor=%v\nmatrix=%v",
				trial, d, bound, [6]float32{xy, xz, yz, xw, yw, zw}, v, fromRotor, fromMatrix)
		}
	}
}

// TestRotorToMatrixAgreesWithSixAngles checks that rotor.ToMatrix() and
// RotationFromSixAngles agree to within 1e-5.
func TestRotorToMatrixAgreesWithSixAngles(t *testing.T) {
	angles := [6]float32{0.4, -1.1, 2.2, 0.05, -3.0, 1.57}
	r := FromEuler6(angles[0], angles[1], angles[2], angles[3], angles[4], angles[5])
	m := RotationFromSixAngles(angles[0], angles[1], angles[2], angles[3], angles[4], angles[5])

	rm := r.ToMatrix()
	for i := range rm.M {
		if d := math.Abs(float64(rm.M[i] - m.M[i])); d > 1e-5 {
			t.Errorf("component %d: ToMatrix=%v RotationFromSixAngles=%v diff=%v", i, rm.M[i], m.M[i], d)
		}
	}
}

// TestRotorNormalizationDrift checks that after many compositions with
// per-step normalization, |R| stays within [1-1e-3, 1+1e-3].
func TestRotorNormalizationDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := Identity()
	for i := 0; i < 1000; i++ {
		theta := float32(rng.Float64()*4*math.Pi - 2*math.Pi)
		plane := Plane(rng.Intn(6))
		r = r.Compose(FromPlaneAngle(plane, theta))
		if m := r.Magnitude(); m < 1-1e-3 || m > 1+1e-3 {
			t.Fatalf("step %d: |R| = %v, outside [1-1e-3, 1+1e-3]", i, m)
		}
	}
}

func TestVec4NormalizeZero(t *testing.T) {
	z := Vec4{}
	if got := z.Normalize(); got != (Vec4{}) {
		t.Fatalf("Normalize() on zero vector = %v, want zero vector", got)
	}
}

func TestProjectionClampsNearSingular(t *testing.T) {
	p := Project(Vec4{X: 1, W: 3}, ProjectionPerspective, 3)
	if !p.Saturated {
		t.Fatal("expected Saturated=true when distance-w is ~0")
	}
	if math.IsInf(float64(p.Point.X), 0) || math.IsNaN(float64(p.Point.X)) {
		t.Fatalf("projection produced non-finite result: %v", p.Point)
	}
}

func TestProjectionOrthographicDropsW(t *testing.T) {
	p := Project(Vec4{X: 1, Y: 2, Z: 3, W: 99}, ProjectionOrthographic, 0)
	if p.Point != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("Orthographic projection = %v, want {1 2 3}", p.Point)
	}
}
