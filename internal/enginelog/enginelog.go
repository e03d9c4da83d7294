// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package enginelog wraps a zerolog.Logger with the engine's event
// vocabulary: shader-disabled, context-lost, frame-dropped,
// profile-switched. Render-tick errors log at Warn and never panic,
// matching the "never panic on bad input" policy.
package enginelog

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the engine's structured logger. The zero value logs nothing
// rather than touching an unconfigured zerolog.Logger, so an Orchestrator
// built without New(...) never needs a nil check at the call site.
type Logger struct {
	zl    zerolog.Logger
	ready bool
}

// New builds a Logger writing to w with a timestamp on every event.
func New(w io.Writer) Logger {
	return Logger{zl: zerolog.New(w).With().Timestamp().Logger(), ready: true}
}

// Nop returns a Logger that discards every event, used as the default
// before a caller installs a real sink.
func Nop() Logger {
	return Logger{zl: zerolog.Nop(), ready: true}
}

// target returns the underlying zerolog.Logger to log through, falling
// back to a discarding one for a never-initialized zero value.
func (l Logger) target() zerolog.Logger {
	if !l.ready {
		return zerolog.Nop()
	}
	return l.zl
}

// ShaderDisabled logs that a RendererContract system's shader failed to
// compile and has been disabled for the current session: the failure model isolates it without affecting other systems.
func (l Logger) ShaderDisabled(system string, cause error) {
	l.target().Warn().Str("event", "shader_disabled").Str("system", system).Err(cause).Msg("shader compile failed, system disabled")
}

// ContextLost logs a GPU context loss signal.
func (l Logger) ContextLost() {
	l.target().Warn().Str("event", "context_lost").Msg("gpu context lost")
}

// ContextRestored logs a successful context restoration.
func (l Logger) ContextRestored() {
	l.target().Info().Str("event", "context_restored").Msg("gpu context restored")
}

// FrameDropped logs that a render tick failed and was dropped, leaving
// the prior frame as the displayed "last known good".
func (l Logger) FrameDropped(cause error) {
	l.target().Warn().Str("event", "frame_dropped").Err(cause).Msg("render tick failed, frame dropped")
}

// ProfileSwitched logs a LayerRelationshipGraph profile change.
func (l Logger) ProfileSwitched(name string) {
	l.target().Info().Str("event", "profile_switched").Str("profile", name).Msg("relationship profile switched")
}

// CrossfadeCompleted logs a completed system crossfade and its wall-clock
// duration.
func (l Logger) CrossfadeCompleted(from, to string, elapsed time.Duration) {
	l.target().Info().Str("event", "crossfade_completed").Str("from", from).Str("to", to).Dur("elapsed", elapsed).Msg("system crossfade completed")
}
