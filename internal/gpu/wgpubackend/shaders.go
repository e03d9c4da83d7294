// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package wgpubackend

// fullScreenVertexWGSL is the fixed vertex stage every assembled
// fragment program shares.
const fullScreenVertexWGSL = `@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var pos = array<vec2<f32>, 3>(vec2<f32>(-1.0, -1.0), vec2<f32>(3.0, -1.0), vec2<f32>(-1.0, 3.0));
    return vec4<f32>(pos[idx], 0.0, 1.0);
}
`

// blitWGSL implements Composite's textured full-screen pass: sample the
// source LayerSlot target and let the pipeline's baked-in BlendState
// (one pipeline per gpu.BlendMode, built in Composite) combine it with
// dst's existing contents.
const blitWGSL = `struct VSOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> VSOut {
    var pos = array<vec2<f32>, 3>(vec2<f32>(-1.0, -1.0), vec2<f32>(3.0, -1.0), vec2<f32>(-1.0, 3.0));
    var out: VSOut;
    out.pos = vec4<f32>(pos[idx], 0.0, 1.0);
    out.uv = pos[idx] * 0.5 + 0.5;
    return out;
}

@group(0) @binding(0) var srcSampler: sampler;
@group(0) @binding(1) var srcTexture: texture_2d<f32>;
struct BlitUniforms { opacity: f32 }
@group(0) @binding(2) var<uniform> blitUniforms: BlitUniforms;

@fragment
fn fs_main(in: VSOut) -> @location(0) vec4<f32> {
    let c = textureSample(srcTexture, srcSampler, in.uv);
    return vec4<f32>(c.rgb, c.a * blitUniforms.opacity);
}
`
