// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shader

// projectionGLSL and projectionWGSL mirror internal/mathcore/projection.go's three modes
// entry-for-entry, so a CPU-side preview and the GPU fragment program never
// disagree on the epsilon clamp.
var projectionGLSL = `const float PROJECTION_EPS = 1e-6;
vec3 project4D(vec4 p, int mode, float distance) {
    if (mode == 0) {
        float denom = distance - p.w;
        if (abs(denom) < PROJECTION_EPS) {
            denom = denom >= 0.0 ? PROJECTION_EPS : -PROJECTION_EPS;
        }
        float scale = distance / denom;
        return p.xyz * scale;
    } else if (mode == 1) {
        float denom = 1.0 - p.w;
        if (abs(denom) < PROJECTION_EPS) {
            denom = denom >= 0.0 ? PROJECTION_EPS : -PROJECTION_EPS;
        }
        float scale = 1.0 / denom;
        return p.xyz * scale;
    }
    return p.xyz;
}
`

var projectionWGSL = `const PROJECTION_EPS: f32 = 1e-6;
fn project4D(p: vec4<f32>, mode: i32, distance: f32) -> vec3<f32> {
    if (mode == 0) {
        var denom = distance - p.w;
        if (abs(denom) < PROJECTION_EPS) {
            denom = select(-PROJECTION_EPS, PROJECTION_EPS, denom >= 0.0);
        }
        let scale = distance / denom;
        return p.xyz * scale;
    } else if (mode == 1) {
        var denom = 1.0 - p.w;
        if (abs(denom) < PROJECTION_EPS) {
            denom = select(-PROJECTION_EPS, PROJECTION_EPS, denom >= 0.0);
        }
        let scale = 1.0 / denom;
        return p.xyz * scale;
    }
    return p.xyz;
}
`
