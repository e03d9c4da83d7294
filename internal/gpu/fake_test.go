// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gpu

import "testing"

func TestFakeContextLossRejectsOperations(t *testing.T) {
	f := NewFake()
	prog, err := f.CreateShader("", "float main() {}")
	if err != nil {
		t.Fatalf("CreateShader() = %v, want nil", err)
	}
	buf, err := f.CreateUniformBuffer(128)
	if err != nil {
		t.Fatalf("CreateUniformBuffer() = %v, want nil", err)
	}

	f.HandleContextLoss()
	if err := f.UploadUniforms(buf, make([]byte, 128)); err != ErrContextLost {
		t.Fatalf("UploadUniforms() after loss = %v, want ErrContextLost", err)
	}
	if err := f.Draw(prog, buf, 0); err != ErrContextLost {
		t.Fatalf("Draw() after loss = %v, want ErrContextLost", err)
	}

	if err := f.Restore(); err != nil {
		t.Fatalf("Restore() = %v, want nil", err)
	}
	if err := f.UploadUniforms(buf, make([]byte, 128)); err != nil {
		t.Fatalf("UploadUniforms() after restore = %v, want nil", err)
	}
}

func TestFakeShaderCompileFailureIsTyped(t *testing.T) {
	f := NewFake()
	f.FailShader = func(frag string) bool { return true }
	if _, err := f.CreateShader("", "anything"); err == nil {
		t.Fatal("CreateShader() = nil error, want ShaderCompileError")
	} else if _, ok := err.(*ShaderCompileError); !ok {
		t.Fatalf("error type = %T, want *ShaderCompileError", err)
	}
}

func TestFakeDisposeIsIdempotent(t *testing.T) {
	f := NewFake()
	f.Dispose()
	f.Dispose()
	if !f.Disposed() {
		t.Fatal("Disposed() = false after Dispose(), want true")
	}
}
