// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package renderer implements the RendererContract: three
// concrete adapters — Faceted, Quantum, Holographic — each pairing one
// assembled shader.System with a gpu.Backend, mapping a ParameterSet
// snapshot to uniform buffer bytes via internal/uniform and issuing the
// backend draw call. The three adapters differ only in which
// shader.System they assemble; resource lifecycle is identical.
package renderer

import (
	"fmt"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shader"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

// System names the three RendererContract adapters, re-exported from the
// shader package so callers outside internal/shader don't need to import
// it directly.
type System = shader.System

const (
	Faceted     = shader.SystemFaceted
	Quantum     = shader.SystemQuantum
	Holographic = shader.SystemHolographic
)

// Adapter is one rendering-system implementation bound to a backend:
// init(backend) -> Adapter, resize, render, set_active, dispose.
type Adapter struct {
	system  System
	backend gpu.Backend

	program  gpu.Program
	ubo      gpu.Buffer
	width    int
	height   int
	active   bool
	disposed bool
}

// Init compiles sys's assembled shader against backend (choosing GLSL or
// WGSL per backend.Language()) and allocates its uniform buffer. A
// shader compile failure is wrapped with %w, so the orchestrator can
// still classify it with errors.As/errors.Is.
func Init(sys System, backend gpu.Backend) (*Adapter, error) {
	glslSrc, wgslSrc := shader.Assemble(sys)

	var frag string
	switch backend.Language() {
	case gpu.LanguageWGSL:
		frag = wgslSrc
	default:
		frag = glslSrc
	}

	program, err := backend.CreateShader("", frag)
	if err != nil {
		return nil, fmt.Errorf("renderer: %s: %w", sys, err)
	}

	ubo, err := backend.CreateUniformBuffer(uniform.BufferSize)
	if err != nil {
		return nil, fmt.Errorf("renderer: %s: uniform buffer: %w", sys, err)
	}

	return &Adapter{system: sys, backend: backend, program: program, ubo: ubo}, nil
}

// Resize updates the viewport dimensions fed into the `resolution`
// uniform on the next Render call.
func (a *Adapter) Resize(w, h int) {
	a.width, a.height = w, h
}

// SetActive toggles whether this adapter's role is rendered this frame
// (used during crossfade to keep a disposed-pending adapter rendering
// through the fade).
func (a *Adapter) SetActive(active bool) { a.active = active }

// Active reports the current active flag.
func (a *Adapter) Active() bool { return a.active }

// Render maps p (plus per-frame extras) to the canonical uniform bytes,
// uploads them, and issues one draw call into target.
func (a *Adapter) Render(target gpu.Target, p params.Set, extras uniform.Extras, t float32) error {
	if a.disposed {
		return fmt.Errorf("renderer: %s: render after dispose", a.system)
	}
	extras.Time = t
	extras.ResolutionX = float32(a.width)
	extras.ResolutionY = float32(a.height)

	buf := uniform.Pack(p, extras)
	if err := a.backend.UploadUniforms(a.ubo, buf); err != nil {
		return fmt.Errorf("renderer: %s: upload: %w", a.system, err)
	}
	if err := a.backend.BeginFrame(target); err != nil {
		return fmt.Errorf("renderer: %s: begin frame: %w", a.system, err)
	}
	if err := a.backend.Draw(a.program, a.ubo, target); err != nil {
		return fmt.Errorf("renderer: %s: draw: %w", a.system, err)
	}
	if err := a.backend.EndFrame(target); err != nil {
		return fmt.Errorf("renderer: %s: end frame: %w", a.system, err)
	}
	return nil
}

// Dispose is idempotent; it does not release the backend
// itself, only this adapter's program/buffer handles become unusable.
func (a *Adapter) Dispose() {
	a.disposed = true
}

// Disposed reports whether Dispose has been called.
func (a *Adapter) Disposed() bool { return a.disposed }

// System reports which RendererContract this adapter implements.
func (a *Adapter) System() System { return a.system }
