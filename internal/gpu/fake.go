// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"strings"
)

// ErrUnknownResource is returned by Fake when given a handle it never
// issued.
var ErrUnknownResource = errors.New("gpu: unknown resource handle")

// Fake is an in-memory Backend for exercising RendererContract,
// MultiCanvasCompositor, and EngineOrchestrator logic without a real GL
// or wgpu device (neither is available in a headless test run). It
// honors every contract behavior the orchestrator depends on: context
// loss/restore, shader-compile failure, and idempotent disposal.
type Fake struct {
	nextID     uint64
	programs   map[Program]bool
	buffers    map[Buffer][]byte
	textures   map[Texture]struct{ w, h int }
	lost       bool
	disposed   bool
	FailShader func(frag string) bool // test hook: force CreateShader to fail
	Lang       Language                // defaults to LanguageGLSL

	// CompositeLog records every Composite call in order, for test
	// assertions on the compositor's back-to-front sequence.
	CompositeLog Composites
}

// Language reports the language this fake expects, defaulting to GLSL;
// set Lang to LanguageWGSL to exercise a WGSL-consuming code path.
func (f *Fake) Language() Language { return f.Lang }

// NewFake constructs a ready-to-use Fake backend.
func NewFake() *Fake {
	return &Fake{
		programs: map[Program]bool{},
		buffers:  map[Buffer][]byte{},
		textures: map[Texture]struct{ w, h int }{},
	}
}

func (f *Fake) allocID() uint64 { f.nextID++; return f.nextID }

func (f *Fake) CreateShader(vert, frag string) (Program, error) {
	if f.lost {
		return 0, ErrContextLost
	}
	if f.FailShader != nil && f.FailShader(frag) {
		return 0, &ShaderCompileError{Reason: "fake: forced failure"}
	}
	if strings.TrimSpace(frag) == "" {
		return 0, &ShaderCompileError{Reason: "empty fragment source"}
	}
	id := Program(f.allocID())
	f.programs[id] = true
	return id, nil
}

func (f *Fake) CreateUniformBuffer(size int) (Buffer, error) {
	if f.lost {
		return 0, ErrContextLost
	}
	id := Buffer(f.allocID())
	f.buffers[id] = make([]byte, size)
	return id, nil
}

func (f *Fake) UploadUniforms(buf Buffer, data []byte) error {
	if f.lost {
		return ErrContextLost
	}
	if _, ok := f.buffers[buf]; !ok {
		return ErrUnknownResource
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.buffers[buf] = cp
	return nil
}

func (f *Fake) CreateTexture(width, height int) (Texture, error) {
	if f.lost {
		return 0, ErrContextLost
	}
	id := Texture(f.allocID())
	f.textures[id] = struct{ w, h int }{width, height}
	return id, nil
}

func (f *Fake) BeginFrame(target Target) error {
	if f.lost {
		return ErrContextLost
	}
	return nil
}

func (f *Fake) Draw(program Program, uniforms Buffer, target Target) error {
	if f.lost {
		return ErrContextLost
	}
	if !f.programs[program] {
		return ErrUnknownResource
	}
	if _, ok := f.buffers[uniforms]; !ok {
		return ErrUnknownResource
	}
	return nil
}

// Composites records the (src, dst, mode) triples passed to Composite,
// in call order, for test assertions on composition order/mode.
type Composites []CompositeCall

// CompositeCall is one recorded Composite invocation.
type CompositeCall struct {
	Src     Texture
	Dst     Target
	Mode    BlendMode
	Opacity float32
}

func (f *Fake) Composite(src Texture, dst Target, mode BlendMode, opacity float32) error {
	if f.lost {
		return ErrContextLost
	}
	if _, ok := f.textures[src]; !ok {
		return ErrUnknownResource
	}
	f.CompositeLog = append(f.CompositeLog, CompositeCall{Src: src, Dst: dst, Mode: mode, Opacity: opacity})
	return nil
}

func (f *Fake) EndFrame(target Target) error {
	if f.lost {
		return ErrContextLost
	}
	return nil
}

func (f *Fake) HandleContextLoss() { f.lost = true }

func (f *Fake) Restore() error {
	f.lost = false
	return nil
}

func (f *Fake) Dispose() { f.disposed = true }

// Disposed reports whether Dispose has been called, for test assertions.
func (f *Fake) Disposed() bool { return f.disposed }

// ShaderCompileError reports a shader compilation/link failure: the
// orchestrator disables only the failing system and surfaces this
// typed error, leaving other systems running.
type ShaderCompileError struct {
	Reason string
}

func (e *ShaderCompileError) Error() string { return "gpu: shader compile failed: " + e.Reason }

var _ Backend = (*Fake)(nil)
