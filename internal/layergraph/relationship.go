// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package layergraph implements the LayerRelationshipGraph:
// given the keystone ParameterSet, derive one ParameterSet per follower
// role by applying its RelationshipEdge. The five roles and their edges
// are tracked as a directed graph (github.com/katalvlaran/lvlath/core)
// rooted at the keystone, so the "every follower has exactly one inbound
// edge, exactly one keystone" invariant is the graph's own in-degree
// invariant rather than ad hoc bookkeeping.
package layergraph

import (
	"fmt"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
)

// Role is one of the five layer slots the compositor assembles.
type Role uint8

const (
	Background Role = iota
	Shadow
	Content
	Highlight
	Accent
)

// roleCount is the number of layer roles (5).
const roleCount = 5

var roleNames = [roleCount]string{"background", "shadow", "content", "highlight", "accent"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "role(?)"
}

// AllRoles lists the five roles in composite (back-to-front) order.
var AllRoles = [roleCount]Role{Background, Shadow, Content, Highlight, Accent}

// ParseRole parses the name written by Role.String back into a Role.
func ParseRole(name string) (Role, error) {
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("layergraph: unknown role %q", name)
}

// Kind is a RelationshipEdge's normative function.
type Kind uint8

const (
	KindEcho Kind = iota
	KindMirror
	KindComplement
	KindHarmonic
	KindReactive
	KindChase
)

var kindNames = [...]string{"echo", "mirror", "complement", "harmonic", "reactive", "chase"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(?)"
}

// ParseKind parses the name written by Kind.String back into a Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("layergraph: unknown relationship kind %q", name)
}

// Edge is one follower role's RelationshipEdge: the Kind plus whichever
// of its parameters that Kind uses.
type Edge struct {
	Kind Kind

	Alpha float32 // Echo
	Pivot float32 // Complement
	N     float32 // Harmonic
	Gain  float32 // Reactive
	Lag   float32 // Chase, seconds; must be > 0
}

// Echo constructs an Echo(alpha) edge.
func Echo(alpha float32) Edge { return Edge{Kind: KindEcho, Alpha: alpha} }

// Mirror constructs a Mirror edge.
func Mirror() Edge { return Edge{Kind: KindMirror} }

// Complement constructs a Complement(pivot) edge.
func Complement(pivot float32) Edge { return Edge{Kind: KindComplement, Pivot: pivot} }

// Harmonic constructs a Harmonic(n) edge.
func Harmonic(n float32) Edge { return Edge{Kind: KindHarmonic, N: n} }

// Reactive constructs a Reactive(gain) edge.
func Reactive(gain float32) Edge { return Edge{Kind: KindReactive, Gain: gain} }

// Chase constructs a Chase(lagSeconds) edge.
func Chase(lagSeconds float32) Edge { return Edge{Kind: KindChase, Lag: lagSeconds} }

// gridDensityMin/Max mirror params' GridDensity domain: the
// Complement/Harmonic formulas clamp into this range directly, rather
// than deferring to ParameterStore's own clamp.
const (
	gridDensityMin float32 = 4
	gridDensityMax float32 = 100
)

func clampGridDensity(v float32) float32 {
	if v < gridDensityMin {
		return gridDensityMin
	}
	if v > gridDensityMax {
		return gridDensityMax
	}
	return v
}

// apply computes this edge's follower ParameterSet from the keystone
// snapshot k, its previous snapshot kPrev, this role's own previous
// output prevOut (for Reactive/Chase), and the elapsed time dt since the
// last derivation.
func (e Edge) apply(k, kPrev, prevOut params.Set, dt float32) params.Set {
	switch e.Kind {
	case KindEcho:
		p := k
		p.Intensity = e.Alpha * k.Intensity
		p.GridDensity = roundf(e.Alpha * k.GridDensity)
		return p
	case KindMirror:
		p := k
		p.Rot4dXY, p.Rot4dXZ, p.Rot4dYZ = -k.Rot4dXY, -k.Rot4dXZ, -k.Rot4dYZ
		p.Rot4dXW, p.Rot4dYW, p.Rot4dZW = -k.Rot4dXW, -k.Rot4dYW, -k.Rot4dZW
		p.Hue = modHue(k.Hue + 180)
		return p
	case KindComplement:
		p := k
		p.Hue = modHue(k.Hue + 180)
		p.GridDensity = clampGridDensity(2*e.Pivot - k.GridDensity)
		return p
	case KindHarmonic:
		p := k
		p.GridDensity = clampGridDensity(e.N * k.GridDensity)
		p.Hue = modHue(k.Hue + e.N*137.508)
		return p
	case KindReactive:
		return reactiveField(k, kPrev, e.Gain)
	default: // KindChase
		return chaseField(k, prevOut, dt, e.Lag)
	}
}

func roundf(v float32) float32 {
	if v >= 0 {
		return float32(int(v + 0.5))
	}
	return float32(int(v - 0.5))
}

func modHue(v float32) float32 {
	const full = 360
	m := float32(int(v/full)) * full
	v -= m
	if v < 0 {
		v += full
	}
	return v
}
