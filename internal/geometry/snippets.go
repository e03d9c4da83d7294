// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package geometry

// Snippet is one shared math module's source in both shader languages, as
// assembled by shader.Assembler. The catalog owns lattice and
// warp snippets; rotation and projection snippets live in the shader
// package since they aren't geometry-variant-specific.
type Snippet struct {
	Name string
	GLSL string
	WGSL string
}

// latticeSnippets holds one density-function snippet per Base, named
// density_<base>(p, gridDensity, morphFactor, time) -> float.
var latticeSnippets = [baseCount]Snippet{
	BaseTetrahedron: {
		Name: "density_tetrahedron",
		GLSL: `float density_tetrahedron(vec3 p, float gridDensity, float morphFactor, float time) {
    vec3 q = fract(p * gridDensity) - 0.5;
    float d = min(min(length(q - vec3(0.0)), length(q - vec3(0.3))), length(q + vec3(0.2)));
    return 1.0 - smoothstep(0.0, 0.5 * morphFactor + 0.05, d);
}`,
		WGSL: `fn density_tetrahedron(p: vec3<f32>, gridDensity: f32, morphFactor: f32, time: f32) -> f32 {
    let q = fract(p * gridDensity) - vec3<f32>(0.5);
    let d = min(min(length(q - vec3<f32>(0.0)), length(q - vec3<f32>(0.3))), length(q + vec3<f32>(0.2)));
    return 1.0 - smoothstep(0.0, 0.5 * morphFactor + 0.05, d);
}`,
	},
	BaseHypercube: {
		Name: "density_hypercube",
		GLSL: `float density_hypercube(vec3 p, float gridDensity, float morphFactor, float time) {
    vec3 q = abs(fract(p * gridDensity) - 0.5);
    return max(max(q.x, q.y), q.z) * morphFactor;
}`,
		WGSL: `fn density_hypercube(p: vec3<f32>, gridDensity: f32, morphFactor: f32, time: f32) -> f32 {
    let q = abs(fract(p * gridDensity) - vec3<f32>(0.5));
    return max(max(q.x, q.y), q.z) * morphFactor;
}`,
	},
	BaseSphere: {
		Name: "density_sphere",
		GLSL: `float density_sphere(vec3 p, float gridDensity, float morphFactor, float time) {
    float r = length(fract(p * gridDensity) - 0.5);
    return 1.0 - smoothstep(0.2, 0.5 * morphFactor, r);
}`,
		WGSL: `fn density_sphere(p: vec3<f32>, gridDensity: f32, morphFactor: f32, time: f32) -> f32 {
    let r = length(fract(p * gridDensity) - vec3<f32>(0.5));
    return 1.0 - smoothstep(0.2, 0.5 * morphFactor, r);
}`,
	},
	BaseTorus: {
		Name: "density_torus",
		GLSL: `float density_torus(vec3 p, float gridDensity, float morphFactor, float time) {
    vec3 q = fract(p * gridDensity) - 0.5;
    float ring = length(vec2(length(q.xy) - 0.3 * morphFactor, q.z));
    return 1.0 - smoothstep(0.0, 0.15, ring);
}`,
		WGSL: `fn density_torus(p: vec3<f32>, gridDensity: f32, morphFactor: f32, time: f32) -> f32 {
    let q = fract(p * gridDensity) - vec3<f32>(0.5);
    let ring = length(vec2<f32>(length(q.xy) - 0.3 * morphFactor, q.z));
    return 1.0 - smoothstep(0.0, 0.15, ring);
}`,
	},
	BaseKlein: {
		Name: "density_klein",
		GLSL: `float density_klein(vec3 p, float gridDensity, float morphFactor, float time) {
    vec3 q = fract(p * gridDensity) - 0.5;
    float u = atan(q.y, q.x);
    float v = atan(q.z, length(q.xy) - 0.25 * morphFactor);
    return 1.0 - smoothstep(0.0, 0.2, abs(sin(u * 2.0) * cos(v * 3.0)));
}`,
		WGSL: `fn density_klein(p: vec3<f32>, gridDensity: f32, morphFactor: f32, time: f32) -> f32 {
    let q = fract(p * gridDensity) - vec3<f32>(0.5);
    let u = atan2(q.y, q.x);
    let v = atan2(q.z, length(q.xy) - 0.25 * morphFactor);
    return 1.0 - smoothstep(0.0, 0.2, abs(sin(u * 2.0) * cos(v * 3.0)));
}`,
	},
	BaseFractal: {
		Name: "density_fractal",
		GLSL: `float density_fractal(vec3 p, float gridDensity, float morphFactor, float time) {
    vec3 q = fract(p * gridDensity) - 0.5;
    float scale = 1.0;
    for (int i = 0; i < 4; i++) {
        q = abs(q) - 0.3 * morphFactor;
        q *= 1.8;
        scale *= 1.8;
    }
    return 1.0 - clamp(length(q) / scale, 0.0, 1.0);
}`,
		WGSL: `fn density_fractal(p: vec3<f32>, gridDensity: f32, morphFactor: f32, time: f32) -> f32 {
    var q = fract(p * gridDensity) - vec3<f32>(0.5);
    var scale = 1.0;
    for (var i = 0; i < 4; i = i + 1) {
        q = abs(q) - vec3<f32>(0.3 * morphFactor);
        q = q * 1.8;
        scale = scale * 1.8;
    }
    return 1.0 - clamp(length(q) / scale, 0.0, 1.0);
}`,
	},
	BaseWave: {
		Name: "density_wave",
		GLSL: `float density_wave(vec3 p, float gridDensity, float morphFactor, float time) {
    vec3 q = p * gridDensity;
    return 0.5 + 0.5 * sin(q.x) * sin(q.y) * sin(q.z + time) * morphFactor;
}`,
		WGSL: `fn density_wave(p: vec3<f32>, gridDensity: f32, morphFactor: f32, time: f32) -> f32 {
    let q = p * gridDensity;
    return 0.5 + 0.5 * sin(q.x) * sin(q.y) * sin(q.z + time) * morphFactor;
}`,
	},
	BaseCrystal: {
		Name: "density_crystal",
		GLSL: `float density_crystal(vec3 p, float gridDensity, float morphFactor, float time) {
    vec3 q = abs(fract(p * gridDensity) - 0.5);
    return max(max(q.x, q.y), q.z) * morphFactor;
}`,
		WGSL: `fn density_crystal(p: vec3<f32>, gridDensity: f32, morphFactor: f32, time: f32) -> f32 {
    let q = abs(fract(p * gridDensity) - vec3<f32>(0.5));
    return max(max(q.x, q.y), q.z) * morphFactor;
}`,
	},
}

// warpSnippets holds one point-warp snippet per Core, named
// warp_<core>(p, morphFactor) -> vec3.
var warpSnippets = [coreCount]Snippet{
	CoreIdentity: {
		Name: "warp_identity",
		GLSL: `vec3 warp_identity(vec3 p, float morphFactor) {
    return p;
}`,
		WGSL: `fn warp_identity(p: vec3<f32>, morphFactor: f32) -> vec3<f32> {
    return p;
}`,
	},
	CoreHypersphereWarp: {
		Name: "warp_hypersphere",
		GLSL: `vec3 warp_hypersphere(vec3 p, float morphFactor) {
    float r2 = dot(p, p);
    float denom = 1.0 + r2;
    vec3 stereographic = 2.0 * p / denom;
    float w = (r2 - 1.0) / denom;
    return mix(p, stereographic * (1.0 + w * 0.5), clamp(morphFactor, 0.0, 2.0) * 0.5);
}`,
		WGSL: `fn warp_hypersphere(p: vec3<f32>, morphFactor: f32) -> vec3<f32> {
    let r2 = dot(p, p);
    let denom = 1.0 + r2;
    let stereographic = 2.0 * p / denom;
    let w = (r2 - 1.0) / denom;
    return mix(p, stereographic * (1.0 + w * 0.5), clamp(morphFactor, 0.0, 2.0) * 0.5);
}`,
	},
	CoreHypertetraWarp: {
		Name: "warp_hypertetra",
		GLSL: `vec3 warp_hypertetra(vec3 p, float morphFactor) {
    vec3 b = vec3(p.x + p.y, p.y + p.z, p.z + p.x) * 0.5;
    return mix(p, b, clamp(morphFactor, 0.0, 2.0) * 0.5);
}`,
		WGSL: `fn warp_hypertetra(p: vec3<f32>, morphFactor: f32) -> vec3<f32> {
    let b = vec3<f32>(p.x + p.y, p.y + p.z, p.z + p.x) * 0.5;
    return mix(p, b, clamp(morphFactor, 0.0, 2.0) * 0.5);
}`,
	},
}

// LatticeSnippet returns the density-function snippet for base.
func LatticeSnippet(base Base) Snippet { return latticeSnippets[base] }

// WarpSnippet returns the point-warp snippet for core.
func WarpSnippet(core Core) Snippet { return warpSnippets[core] }

// AllLatticeSnippets returns all eight lattice snippets in Base order.
func AllLatticeSnippets() []Snippet {
	out := make([]Snippet, baseCount)
	copy(out, latticeSnippets[:])
	return out
}

// AllWarpSnippets returns all three warp snippets in Core order.
func AllWarpSnippets() []Snippet {
	out := make([]Snippet, coreCount)
	copy(out, warpSnippets[:])
	return out
}

// CallExpr returns the GLSL/WGSL call expression selecting variant idx's
// warp then lattice, e.g. "density_sphere(warp_identity(p, morphFactor),
// gridDensity, morphFactor, time)". The ShaderAssembler's per-system main
// switches on `geometry` using these at runtime instead of compiling one
// shader per variant.
func CallExpr(idx Index) (glsl, wgsl string) {
	core, base := Decode(idx)
	w := WarpSnippet(core)
	l := LatticeSnippet(base)
	glsl = l.Name + "(" + w.Name + "(p, morphFactor), gridDensity, morphFactor, time)"
	wgsl = glsl
	return glsl, wgsl
}
