// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glbackend is the primary GpuBackend implementation: OpenGL
// 3.3 core via go-gl/gl, windowed with go-gl/glfw. It
// renders each LayerSlot target as an offscreen framebuffer and blits a
// full-screen triangle through the assembled fragment program.
package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu"
)

// fullScreenVertexSource is the fixed vertex stage every system shares: a
// single full-screen triangle, clip-space positions baked in.
const fullScreenVertexSource = `#version 330 core
const vec2 POS[3] = vec2[3](vec2(-1.0, -1.0), vec2(3.0, -1.0), vec2(-1.0, 3.0));
void main() {
    gl_Position = vec4(POS[gl_VertexID], 0.0, 1.0);
}
` + "\x00"

// blitVertexSource/blitFragmentSource implement Composite's textured
// full-screen pass: sample the source LayerSlot target and let the fixed-
// function blend stage (configured per BlendMode in Composite) combine it
// with whatever is already in the destination framebuffer.
const blitVertexSource = `#version 330 core
const vec2 POS[3] = vec2[3](vec2(-1.0, -1.0), vec2(3.0, -1.0), vec2(-1.0, 3.0));
out vec2 vUV;
void main() {
    vec2 p = POS[gl_VertexID];
    vUV = p * 0.5 + 0.5;
    gl_Position = vec4(p, 0.0, 1.0);
}
` + "\x00"

const blitFragmentSource = `#version 330 core
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D srcTex;
uniform float opacity;
void main() {
    vec4 c = texture(srcTex, vUV);
    fragColor = vec4(c.rgb, c.a * opacity);
}
` + "\x00"

type program struct {
	glHandle uint32
}

type fbo struct {
	fbo, colorTex uint32
	width, height int
}

// Backend implements gpu.Backend over an OpenGL 3.3 core context. It
// must be constructed on the thread that owns the GL context (the GLFW
// convention: runtime.LockOSThread in the caller's main, as
// cogentcore-core's desktop driver and every go-gl example do).
type Backend struct {
	window *glfw.Window

	programs  map[gpu.Program]*program
	buffers   map[gpu.Buffer]uint32
	textures  map[gpu.Texture]uint32
	targets   map[gpu.Target]*fbo
	nextID    uint64
	lost      bool
	fullQuadVAO uint32

	blitProgram uint32 // lazily compiled by Composite
}

// New creates a hidden GLFW window bound to an OpenGL 3.3 core context
// and initializes go-gl/gl against it. width/height size the default
// framebuffer only; each LayerSlot renders to its own offscreen target.
func New(width, height int) (*Backend, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glbackend: glfw.Init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(width, height, "vib3code-engine", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glbackend: CreateWindow: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glbackend: gl.Init: %w", err)
	}

	b := &Backend{
		window:   win,
		programs: map[gpu.Program]*program{},
		buffers:  map[gpu.Buffer]uint32{},
		textures: map[gpu.Texture]uint32{},
		targets:  map[gpu.Target]*fbo{},
	}
	gl.GenVertexArrays(1, &b.fullQuadVAO)
	return b, nil
}

func (b *Backend) allocID() uint64 {
	b.nextID++
	return b.nextID
}

// CreateShader compiles frag (and vert, if non-empty, otherwise the
// shared full-screen-triangle stage) and links a program.
// Compile/link failures surface as typed errors so the orchestrator can
// disable only the failing system.
func (b *Backend) CreateShader(vert, frag string) (gpu.Program, error) {
	if b.lost {
		return 0, gpu.ErrContextLost
	}
	vertSrc := vert
	if vertSrc == "" {
		vertSrc = fullScreenVertexSource
	}
	glProg, err := compileAndLink(vertSrc, frag)
	if err != nil {
		return 0, err
	}
	id := gpu.Program(b.allocID())
	b.programs[id] = &program{glHandle: glProg}
	return id, nil
}

// CreateUniformBuffer allocates a GL uniform buffer object of size bytes.
func (b *Backend) CreateUniformBuffer(size int) (gpu.Buffer, error) {
	if b.lost {
		return 0, gpu.ErrContextLost
	}
	var ubo uint32
	gl.GenBuffers(1, &ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	id := gpu.Buffer(b.allocID())
	b.buffers[id] = ubo
	return id, nil
}

// UploadUniforms replaces buf's contents with data.
func (b *Backend) UploadUniforms(buf gpu.Buffer, data []byte) error {
	if b.lost {
		return gpu.ErrContextLost
	}
	ubo, ok := b.buffers[buf]
	if !ok {
		return fmt.Errorf("glbackend: unknown buffer %d", buf)
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return nil
}

// CreateTexture allocates an RGBA8 offscreen target (width x height) and
// its owning framebuffer, for use as a LayerSlot target.
func (b *Backend) CreateTexture(width, height int) (gpu.Texture, error) {
	if b.lost {
		return 0, gpu.ErrContextLost
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	var framebuffer uint32
	gl.GenFramebuffers(1, &framebuffer)
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return 0, fmt.Errorf("glbackend: incomplete framebuffer (status %#x)", status)
	}

	texID := gpu.Texture(b.allocID())
	b.textures[texID] = tex
	targetID := gpu.Target(texID) // a texture's target shares its handle space 1:1
	b.targets[targetID] = &fbo{fbo: framebuffer, colorTex: tex, width: width, height: height}
	return texID, nil
}

// TargetOf exposes the Target handle CreateTexture paired with a
// Texture, for callers that need both (the compositor blits a target's
// backing texture).
func TargetOf(tex gpu.Texture) gpu.Target { return gpu.Target(tex) }

// BeginFrame binds target's framebuffer and clears it.
func (b *Backend) BeginFrame(target gpu.Target) error {
	if b.lost {
		return gpu.ErrContextLost
	}
	f, ok := b.targets[target]
	if !ok {
		return fmt.Errorf("glbackend: unknown target %d", target)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.width), int32(f.height))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

// Draw binds program and uniforms at binding point 0 and issues the
// full-screen-triangle draw call.
func (b *Backend) Draw(prog gpu.Program, uniforms gpu.Buffer, target gpu.Target) error {
	if b.lost {
		return gpu.ErrContextLost
	}
	p, ok := b.programs[prog]
	if !ok {
		return fmt.Errorf("glbackend: unknown program %d", prog)
	}
	ubo, ok := b.buffers[uniforms]
	if !ok {
		return fmt.Errorf("glbackend: unknown buffer %d", uniforms)
	}
	gl.UseProgram(p.glHandle)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, 0, ubo)
	gl.BindVertexArray(b.fullQuadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	return nil
}

// Composite blits src's backing texture onto dst through the blend mode
// GL state mode implies, implementing one MultiCanvasCompositor
// back-to-front step. dst must already be bound for drawing
// by a prior BeginFrame; Composite neither begins nor ends a frame so
// callers can chain several Composite calls into one dst.
func (b *Backend) Composite(src gpu.Texture, dst gpu.Target, mode gpu.BlendMode, opacity float32) error {
	if b.lost {
		return gpu.ErrContextLost
	}
	tex, ok := b.textures[src]
	if !ok {
		return fmt.Errorf("glbackend: unknown texture %d", src)
	}
	f, ok := b.targets[dst]
	if !ok {
		return fmt.Errorf("glbackend: unknown target %d", dst)
	}
	if b.blitProgram == 0 {
		prog, err := compileAndLink(blitVertexSource, blitFragmentSource)
		if err != nil {
			return fmt.Errorf("glbackend: compile blit program: %w", err)
		}
		b.blitProgram = prog
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.Viewport(0, 0, int32(f.width), int32(f.height))
	gl.Enable(gl.BLEND)
	switch mode {
	case gpu.BlendMultiply:
		gl.BlendFunc(gl.DST_COLOR, gl.ZERO)
	case gpu.BlendScreen:
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_COLOR)
	case gpu.BlendAdditive:
		gl.BlendFunc(gl.ONE, gl.ONE)
	default: // BlendNormal
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.UseProgram(b.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	loc := gl.GetUniformLocation(b.blitProgram, gl.Str("srcTex\x00"))
	gl.Uniform1i(loc, 0)
	opLoc := gl.GetUniformLocation(b.blitProgram, gl.Str("opacity\x00"))
	gl.Uniform1f(opLoc, opacity)
	gl.BindVertexArray(b.fullQuadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.Disable(gl.BLEND)
	return nil
}

// EndFrame unbinds the framebuffer.
func (b *Backend) EndFrame(target gpu.Target) error {
	if b.lost {
		return gpu.ErrContextLost
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// HandleContextLoss marks every resource invalid: GL
// contexts are lost wholesale (driver reset, GPU removal), so there is
// nothing selective to invalidate.
func (b *Backend) HandleContextLoss() {
	b.lost = true
}

// Restore re-initializes the GL context against the existing window.
// Callers must re-submit CreateShader/CreateUniformBuffer/CreateTexture
// for every resource the orchestrator tracks; Restore only revives the
// context itself.
func (b *Backend) Restore() error {
	b.window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("glbackend: restore gl.Init: %w", err)
	}
	b.programs = map[gpu.Program]*program{}
	b.buffers = map[gpu.Buffer]uint32{}
	b.textures = map[gpu.Texture]uint32{}
	b.targets = map[gpu.Target]*fbo{}
	gl.GenVertexArrays(1, &b.fullQuadVAO)
	b.blitProgram = 0
	b.lost = false
	return nil
}

// Dispose releases the window and GL context. Idempotent.
func (b *Backend) Dispose() {
	if b.window == nil {
		return
	}
	b.window.Destroy()
	b.window = nil
}

// compileAndLink mirrors the compile-then-link-then-check-logs sequence
// used throughout the go-gl ecosystem (gl.CreateShader /
// gl.GetShaderiv(COMPILE_STATUS) / gl.GetShaderInfoLog).
func compileAndLink(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compile(gl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := compile(gl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(prog, logLen, nil, &log[0])
		gl.DeleteShader(vs)
		gl.DeleteShader(fs)
		return 0, fmt.Errorf("link failed: %s", string(log))
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return prog, nil
}

func compile(kind uint32, src string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", string(log))
	}
	return shader, nil
}

// Language reports GLSL, the only language this backend's CreateShader
// accepts.
func (b *Backend) Language() gpu.Language { return gpu.LanguageGLSL }

var _ gpu.Backend = (*Backend)(nil)
