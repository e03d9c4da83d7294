// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shader

// rotationGLSL and rotationWGSL are the shared 4D-rotation module every
// system includes. They mirror RotationFromSixAngles
// (internal/mathcore/mat4.go) entry-by-entry so the GPU and CPU agree
// bit-for-bit on the composition order.
var rotationGLSL = `mat4 rotXY(float a) {
    float c = cos(a), s = sin(a);
    return mat4(c, s, 0.0, 0.0, -s, c, 0.0, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, 1.0);
}
mat4 rotXZ(float a) {
    float c = cos(a), s = sin(a);
    return mat4(c, 0.0, s, 0.0, 0.0, 1.0, 0.0, 0.0, -s, 0.0, c, 0.0, 0.0, 0.0, 0.0, 1.0);
}
mat4 rotYZ(float a) {
    float c = cos(a), s = sin(a);
    return mat4(1.0, 0.0, 0.0, 0.0, 0.0, c, s, 0.0, 0.0, -s, c, 0.0, 0.0, 0.0, 0.0, 1.0);
}
mat4 rotXW(float a) {
    float c = cos(a), s = sin(a);
    return mat4(c, 0.0, 0.0, s, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0.0, -s, 0.0, 0.0, c);
}
mat4 rotYW(float a) {
    float c = cos(a), s = sin(a);
    return mat4(1.0, 0.0, 0.0, 0.0, 0.0, c, 0.0, s, 0.0, 0.0, 1.0, 0.0, 0.0, -s, 0.0, c);
}
mat4 rotZW(float a) {
    float c = cos(a), s = sin(a);
    return mat4(1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, c, s, 0.0, 0.0, -s, c);
}
mat4 rotation4D(float xy, float xz, float yz, float xw, float yw, float zw) {
    return rotXY(xy) * rotXZ(xz) * rotYZ(yz) * rotXW(xw) * rotYW(yw) * rotZW(zw);
}
`

var rotationWGSL = `fn rotXY(a: f32) -> mat4x4<f32> {
    let c = cos(a); let s = sin(a);
    return mat4x4<f32>(c, s, 0.0, 0.0, -s, c, 0.0, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, 1.0);
}
fn rotXZ(a: f32) -> mat4x4<f32> {
    let c = cos(a); let s = sin(a);
    return mat4x4<f32>(c, 0.0, s, 0.0, 0.0, 1.0, 0.0, 0.0, -s, 0.0, c, 0.0, 0.0, 0.0, 0.0, 1.0);
}
fn rotYZ(a: f32) -> mat4x4<f32> {
    let c = cos(a); let s = sin(a);
    return mat4x4<f32>(1.0, 0.0, 0.0, 0.0, 0.0, c, s, 0.0, 0.0, -s, c, 0.0, 0.0, 0.0, 0.0, 1.0);
}
fn rotXW(a: f32) -> mat4x4<f32> {
    let c = cos(a); let s = sin(a);
    return mat4x4<f32>(c, 0.0, 0.0, s, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0.0, -s, 0.0, 0.0, c);
}
fn rotYW(a: f32) -> mat4x4<f32> {
    let c = cos(a); let s = sin(a);
    return mat4x4<f32>(1.0, 0.0, 0.0, 0.0, 0.0, c, 0.0, s, 0.0, 0.0, 1.0, 0.0, 0.0, -s, 0.0, c);
}
fn rotZW(a: f32) -> mat4x4<f32> {
    let c = cos(a); let s = sin(a);
    return mat4x4<f32>(1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, c, s, 0.0, 0.0, -s, c);
}
fn rotation4D(xy: f32, xz: f32, yz: f32, xw: f32, yw: f32, zw: f32) -> mat4x4<f32> {
    return rotXY(xy) * rotXZ(xz) * rotYZ(yz) * rotXW(xw) * rotYW(yw) * rotZW(zw);
}
`
