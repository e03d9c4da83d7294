// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package geometry implements the GeometryCatalog: the 24
// geometry variants encoded as 8 base lattices x 3 core-space warps, their
// index arithmetic, and the shader source fragments each contributes to
// the ShaderAssembler. The catalog does not evaluate lattices on the CPU.
package geometry

import "fmt"

// Core is a warp applied to the projected 3D point before lattice
// evaluation.
type Core uint8

const (
	CoreIdentity Core = iota
	CoreHypersphereWarp
	CoreHypertetraWarp
)

// coreCount is the number of Core variants (3).
const coreCount = 3

// Base is one of the eight signed-distance/density lattice functions
// a Core warp can combine with.
type Base uint8

const (
	BaseTetrahedron Base = iota
	BaseHypercube
	BaseSphere
	BaseTorus
	BaseKlein
	BaseFractal
	BaseWave
	BaseCrystal
)

// baseCount is the number of Base variants (8).
const baseCount = 8

// VariantCount is the total number of (core, base) pairs the catalog
// exposes.
const VariantCount = coreCount * baseCount

// Index is the flattened geometry selector, 0..23, used as the `geometry`
// uniform: index = core*8 + base.
type Index int

// Encode packs a (core, base) pair into an Index.
func Encode(core Core, base Base) Index {
	return Index(int(core)*baseCount + int(base))
}

// Decode unpacks an Index into its (core, base) pair. Decode(Encode(c,b))
// always equals (c,b) for core in 0..2 and base in 0..7 — the catalog's
// bijection invariant.
func Decode(idx Index) (Core, Base) {
	i := int(idx)
	return Core(i / baseCount), Base(i % baseCount)
}

// Clamp rounds and clamps a raw geometry value into the valid 0..23 range,
// as ParameterStore's setter does for the geometry field.
func Clamp(raw float32) Index {
	i := int(raw + 0.5)
	if i < 0 {
		i = 0
	}
	if i > VariantCount-1 {
		i = VariantCount - 1
	}
	return Index(i)
}

// coreNames and baseNames back String() and the shader snippet lookup.
var coreNames = [coreCount]string{"identity", "hypersphere", "hypertetra"}
var baseNames = [baseCount]string{
	"tetrahedron", "hypercube", "sphere", "torus", "klein", "fractal", "wave", "crystal",
}

func (c Core) String() string {
	if int(c) < len(coreNames) {
		return coreNames[c]
	}
	return fmt.Sprintf("Core(%d)", c)
}

func (b Base) String() string {
	if int(b) < len(baseNames) {
		return baseNames[b]
	}
	return fmt.Sprintf("Base(%d)", b)
}

// Variant names one catalog entry by its decoded components.
type Variant struct {
	Index Index
	Core  Core
	Base  Base
}

// All returns the 24 catalog entries in index order, for tooling (e.g.
// the `vibctl geometry` subcommand) and for exhaustive property tests.
func All() []Variant {
	out := make([]Variant, 0, VariantCount)
	for i := 0; i < VariantCount; i++ {
		core, base := Decode(Index(i))
		out = append(out, Variant{Index: Index(i), Core: core, Base: base})
	}
	return out
}
