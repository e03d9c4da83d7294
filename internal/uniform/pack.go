// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package uniform

import (
	"encoding/binary"
	"math"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
)

// BufferSize is the canonical uniform buffer layout size in bytes: 128
// bytes, before any backend-specific padding to a 16-byte boundary (128
// is already 16-byte aligned).
const BufferSize = 128

// Extras holds the uniforms that do not live in params.Set: per-frame
// values (time, resolution), reactivity inputs, and per-layer compositing
// parameters a RendererContract adapter derives.
type Extras struct {
	Time           float32
	ResolutionX    float32
	ResolutionY    float32
	MouseX         float32
	MouseY         float32
	MouseIntensity float32
	ClickIntensity float32
	Bass, Mid, High float32
	RoleIntensity  float32
	LayerScale     float32
	LayerOpacity   float32
	LayerColorR    float32
	LayerColorG    float32
	LayerColorB    float32
	DensityMult    float32
	SpeedMult      float32
}

// Pack writes the canonical uniform buffer bytes for a given ParameterSet
// snapshot and its Extras, at fixed bit-exact offsets. Backend-specific
// writers (glbackend, wgpubackend) append any further backend padding
// after this.
func Pack(p params.Set, e Extras) []byte {
	buf := make([]byte, BufferSize)
	put := func(offset int, v float32) {
		binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(v))
	}

	put(0, e.Time)
	// 4: _pad0
	put(8, e.ResolutionX)
	put(12, e.ResolutionY)
	put(16, p.Geometry)
	put(20, p.Rot4dXY)
	put(24, p.Rot4dXZ)
	put(28, p.Rot4dYZ)
	put(32, p.Rot4dXW)
	put(36, p.Rot4dYW)
	put(40, p.Rot4dZW)
	put(44, p.Dimension)
	put(48, p.GridDensity)
	put(52, p.MorphFactor)
	put(56, p.Chaos)
	put(60, p.Speed)
	put(64, p.Hue)
	put(68, p.Intensity)
	put(72, p.Saturation)
	put(76, e.MouseIntensity)
	put(80, e.ClickIntensity)
	put(84, e.Bass)
	put(88, e.Mid)
	put(92, e.High)
	put(96, e.LayerScale)
	put(100, e.LayerOpacity)
	// 104: _pad1
	put(108, e.LayerColorR)
	put(112, e.LayerColorG)
	put(116, e.LayerColorB)
	put(120, e.DensityMult)
	put(124, e.SpeedMult)

	return buf
}

// PadTo16 extends buf with zero bytes up to the next 16-byte boundary, for
// backend-specific padding beyond the first 96 normative bytes.
func PadTo16(buf []byte) []byte {
	rem := len(buf) % 16
	if rem == 0 {
		return buf
	}
	return append(buf, make([]byte, 16-rem)...)
}
