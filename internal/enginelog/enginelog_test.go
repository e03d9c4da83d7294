// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package enginelog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLast(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var out map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &out); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	return out
}

func TestShaderDisabledLogsSystemAndCause(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.ShaderDisabled("quantum", errors.New("compile failed"))

	entry := decodeLast(t, &buf)
	if entry["event"] != "shader_disabled" {
		t.Errorf("event = %v, want shader_disabled", entry["event"])
	}
	if entry["system"] != "quantum" {
		t.Errorf("system = %v, want quantum", entry["system"])
	}
	if entry["error"] != "compile failed" {
		t.Errorf("error = %v, want compile failed", entry["error"])
	}
}

func TestFrameDroppedLogsCause(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.FrameDropped(errors.New("render: boom"))

	entry := decodeLast(t, &buf)
	if entry["event"] != "frame_dropped" {
		t.Errorf("event = %v, want frame_dropped", entry["event"])
	}
}

func TestProfileSwitchedLogsName(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.ProfileSwitched("storm")

	entry := decodeLast(t, &buf)
	if entry["profile"] != "storm" {
		t.Errorf("profile = %v, want storm", entry["profile"])
	}
}

func TestCrossfadeCompletedLogsFromTo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.CrossfadeCompleted("holographic", "quantum", 600*time.Millisecond)

	entry := decodeLast(t, &buf)
	if entry["from"] != "holographic" || entry["to"] != "quantum" {
		t.Errorf("from/to = %v/%v, want holographic/quantum", entry["from"], entry["to"])
	}
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop()
	l.ShaderDisabled("faceted", errors.New("x"))
	l.ContextLost()
	l.ContextRestored()
	l.FrameDropped(errors.New("x"))
	l.ProfileSwitched("legacy")
	l.CrossfadeCompleted("a", "b", time.Second)
}

func TestZeroValueDoesNotPanic(t *testing.T) {
	var l Logger
	l.ContextLost()
}
