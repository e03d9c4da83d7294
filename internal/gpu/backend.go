// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package gpu defines the GpuBackend contract and the
// resource handles a RendererContract adapter consumes. Two
// implementations live in glbackend (primary rasterization, go-gl/gl +
// go-gl/glfw) and wgpubackend (secondary compute-capable, gogpu/wgpu).
package gpu

import "errors"

// ErrContextLost is returned by any operation attempted while the
// backend's context is marked lost, until Restore succeeds.
var ErrContextLost = errors.New("gpu: context lost, call Restore")

// Program is an opaque compiled-shader handle.
type Program uint64

// Buffer is an opaque GPU buffer handle.
type Buffer uint64

// Texture is an opaque GPU texture handle.
type Texture uint64

// Target is an opaque render-target handle (an offscreen layer target or
// the final framebuffer).
type Target uint64

// Language identifies which of the ShaderAssembler's two outputs a
// backend's CreateShader expects.
type Language uint8

const (
	LanguageGLSL Language = iota
	LanguageWGSL
)

// BlendMode names one of MultiCanvasCompositor's per-role composite
// operations.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendAdditive
)

func (m BlendMode) String() string {
	switch m {
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendAdditive:
		return "additive"
	default:
		return "normal"
	}
}

// Backend is the GpuBackend trait: resource creation,
// binding, draw, and context-loss handling. Methods are usable from
// construction until Dispose; after a context loss, every method but
// Restore and Dispose returns ErrContextLost until Restore succeeds.
type Backend interface {
	// Language reports which assembled shader source (GLSL or WGSL)
	// CreateShader expects.
	Language() Language

	// CreateShader compiles a (vertex, fragment) source pair into a
	// Program. vert may be empty for backends that supply a fixed
	// full-screen-triangle vertex stage.
	CreateShader(vert, frag string) (Program, error)

	// CreateUniformBuffer allocates a buffer of the given byte size (the
	// canonical uniform layout, padded to the backend's alignment).
	CreateUniformBuffer(size int) (Buffer, error)

	// UploadUniforms writes data into buf, replacing its prior contents.
	UploadUniforms(buf Buffer, data []byte) error

	// CreateTexture allocates an offscreen render target of the given
	// dimensions, used both as a LayerSlot target and as the
	// context-loss "last good frame" store.
	CreateTexture(width, height int) (Texture, error)

	// BeginFrame prepares target for drawing.
	BeginFrame(target Target) error

	// Draw binds program and uniforms and issues one full-screen draw
	// call against target.
	Draw(program Program, uniforms Buffer, target Target) error

	// EndFrame finalizes target (e.g. resolves, swaps).
	EndFrame(target Target) error

	// Composite blends src's texture contents onto dst using mode,
	// scaled by opacity (the LayerSlot's own opacity — 1 under steady
	// state, animated during a system crossfade), implementing one step
	// of a back-to-front layer composition. dst must already be the
	// active accumulation target for this frame (BeginFrame having been
	// called on it); Composite does not call BeginFrame/EndFrame itself
	// so callers can composite several sources into one dst in sequence.
	Composite(src Texture, dst Target, mode BlendMode, opacity float32) error

	// HandleContextLoss marks every outstanding resource invalid.
	// Subsequent calls other than Restore/Dispose fail with
	// ErrContextLost until Restore succeeds.
	HandleContextLoss()

	// Restore re-creates the backend's device/context state. Resource
	// handles remain valid identifiers; the backend is responsible for
	// rebuilding what they point to from the canonical parameter and
	// shader state the caller re-submits via CreateShader/
	// CreateUniformBuffer/CreateTexture.
	Restore() error

	// Dispose releases all backend resources. Idempotent.
	Dispose()
}
