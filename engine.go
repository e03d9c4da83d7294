// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vib3d is the public entry point to the engine core: a thin
// host-facing wrapper around internal/orchestrator.Orchestrator that
// resolves a GpuBackend, wires the default logging/metrics sinks, and
// exposes the parameter, system-switch, and profile surfaces a host
// embeds against.
//
// Example usage:
//
//	eng, err := vib3d.Initialize(vib3d.Config{
//	    InitialSystem: renderer.Holographic,
//	    ProfileName:   "holographic",
//	    Viewport:      vib3d.Viewport{Width: 1280, Height: 720},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Dispose()
//	eng.SetParameter(params.Hue, 280)
//	err = eng.Tick(16*time.Millisecond, uniform.Extras{}, tSeconds)
package vib3d

import (
	"fmt"
	"time"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/enginelog"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/enginemetrics"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu/glbackend"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu/wgpubackend"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/layergraph"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/orchestrator"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/renderer"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

// BackendPreference selects which GpuBackend Initialize resolves.
type BackendPreference uint8

const (
	// Primary selects the rasterization backend (OpenGL via glbackend).
	Primary BackendPreference = iota
	// Secondary selects the compute-capable backend (WebGPU via
	// wgpubackend).
	Secondary
	// Auto tries Primary first and falls back to Secondary if the
	// primary backend fails to come up at all (no display, no GPU).
	Auto
)

func (p BackendPreference) String() string {
	switch p {
	case Secondary:
		return "secondary"
	case Auto:
		return "auto"
	default:
		return "primary"
	}
}

// ParseBackendPreference parses the name written by
// BackendPreference.String back into a BackendPreference.
func ParseBackendPreference(name string) (BackendPreference, error) {
	switch name {
	case "", "primary":
		return Primary, nil
	case "secondary":
		return Secondary, nil
	case "auto":
		return Auto, nil
	default:
		return 0, fmt.Errorf("vib3d: unknown backend preference %q", name)
	}
}

// Viewport is the initial render target size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Config is Initialize's input.
type Config struct {
	InitialSystem     renderer.System
	ProfileName       string
	Viewport          Viewport
	BackendPreference BackendPreference

	// Logger and Metrics are optional sinks; the zero Logger discards
	// every event and a nil Metrics disables instrumentation entirely,
	// so a host that doesn't care about either can leave them unset.
	Logger  enginelog.Logger
	Metrics *enginemetrics.Metrics
}

// InitError reports that Initialize could not bring up a backend or
// compile the initial system's shader.
type InitError struct {
	Reason string
	Cause  error
}

func (e *InitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vib3d: initialize failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("vib3d: initialize failed: %s", e.Reason)
}

func (e *InitError) Unwrap() error { return e.Cause }

const defaultWidth, defaultHeight = 1280, 720

// Engine is the host-facing handle to a running engine instance. Like
// the orchestrator underneath it, an Engine has no internal
// synchronization: every method must be called from the single render
// thread that owns the GPU backend.
type Engine struct {
	orch    *orchestrator.Orchestrator
	backend gpu.Backend
}

func resolveBackend(pref BackendPreference, width, height int) (gpu.Backend, error) {
	switch pref {
	case Secondary:
		return wgpubackend.New()
	case Auto:
		if b, err := glbackend.New(width, height); err == nil {
			return b, nil
		}
		return wgpubackend.New()
	default:
		return glbackend.New(width, height)
	}
}

// Initialize resolves a GpuBackend per cfg.BackendPreference, brings up
// the initial rendering system and relationship profile, and returns a
// ready-to-drive Engine.
func Initialize(cfg Config) (*Engine, error) {
	width, height := cfg.Viewport.Width, cfg.Viewport.Height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	backend, err := resolveBackend(cfg.BackendPreference, width, height)
	if err != nil {
		return nil, &InitError{Reason: "backend creation failed", Cause: err}
	}
	return initializeWithBackend(backend, cfg, width, height)
}

// initializeWithBackend is Initialize's body, factored out so tests can
// drive it against a gpu.Fake instead of a real windowed/compute
// backend.
func initializeWithBackend(backend gpu.Backend, cfg Config, width, height int) (*Engine, error) {
	orch := orchestrator.New(backend)
	orch.SetLogger(cfg.Logger)
	if cfg.Metrics != nil {
		orch.SetMetrics(cfg.Metrics)
	}

	profileName := cfg.ProfileName
	if profileName == "" {
		profileName = "holographic"
	}

	if err := orch.Initialize(orchestrator.Config{
		InitialSystem: cfg.InitialSystem,
		ProfileName:   profileName,
		Width:         width,
		Height:        height,
	}); err != nil {
		backend.Dispose()
		return nil, &InitError{Reason: "initial system failed to compile", Cause: err}
	}

	return &Engine{orch: orch, backend: backend}, nil
}

// Tick derives one ParameterSet per layer role and renders/composites
// exactly one frame, advancing a system crossfade if one is in
// progress. Errors are logged and counted internally (see
// internal/enginelog, internal/enginemetrics); a returned error means
// the frame was dropped and the previous OutputTexture contents still
// stand as the displayed frame.
func (e *Engine) Tick(dt time.Duration, extras uniform.Extras, tSeconds float32) error {
	return e.orch.Tick(dt, extras, tSeconds)
}

// OutputTexture is the backend texture handle the most recent
// successful Tick composited into; it names the same handle across
// both steady-state and crossfade rendering.
func (e *Engine) OutputTexture() gpu.Texture { return e.orch.OutputTexture() }

// ParamError reports that SetParameter/BatchSet rejected a write.
type ParamError struct {
	Name  params.Name
	Value float32
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("vib3d: set_parameter(%s, %v): out of range or unknown name", e.Name, e.Value)
}

// SetParameter applies one clamped parameter write. Failure is a no-op:
// the previous value and the store's version counter are left
// untouched, and a *ParamError is returned that the host may surface to
// diagnostics.
func (e *Engine) SetParameter(name params.Name, value float32) error {
	if !e.orch.SetParameter(name, value) {
		return &ParamError{Name: name, Value: value}
	}
	return nil
}

// BatchSet applies several parameter writes as a single throttled input
// event and a single derivation pass, matching the frame's ordering
// guarantee (parameter updates apply before derivation).
func (e *Engine) BatchSet(values map[params.Name]float32) {
	e.orch.BatchSet(values)
}

// GetParameter reads one parameter's clamped current value.
func (e *Engine) GetParameter(name params.Name) float32 {
	return e.orch.GetParameter(name)
}

// OnParameterChange registers a callback fired after a successful
// SetParameter/BatchSet. Only one callback is retained; a later
// registration replaces the prior one.
func (e *Engine) OnParameterChange(cb func(params.Name, float32)) {
	e.orch.OnParameterChange(cb)
}

// OnSystemChange registers a callback fired once a crossfade completes
// and the active system changes. Only one callback is retained.
func (e *Engine) OnSystemChange(cb func(renderer.System)) {
	e.orch.OnSystemChange(cb)
}

// SwitchError reports that SwitchSystem could not start or complete.
type SwitchError = orchestrator.SwitchError

// SwitchSystem begins a crossfade from the current system to s. Only
// one crossfade may run at a time; a switch requested mid-fade is
// rejected rather than queued or restarted. A shader compile failure
// for s disables only s — the system already rendering keeps running
// untouched.
func (e *Engine) SwitchSystem(s renderer.System) error {
	return e.orch.SwitchSystem(s)
}

// CancelPendingSwitch cancels a crossfade before its first rendered
// frame; once a crossfade has rendered at least one frame it always
// runs to completion, and CancelPendingSwitch returns an error.
func (e *Engine) CancelPendingSwitch() error {
	return e.orch.CancelPendingSwitch()
}

// ProfileError reports that SetProfile, SetRelationship, or SetKeystone
// could not apply: an unknown profile name, an unknown role, or an
// attempt to assign the keystone role its own relationship edge.
type ProfileError struct {
	Reason string
	Cause  error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("vib3d: profile operation failed: %s: %v", e.Reason, e.Cause)
}

func (e *ProfileError) Unwrap() error { return e.Cause }

// SetProfile swaps the relationship graph's active named preset
// (holographic, symmetry, chord, storm, legacy). The running Reactive/
// Chase state resets to the keystone snapshot so a profile switch never
// carries over stale low-pass history from the previous profile.
func (e *Engine) SetProfile(name string) error {
	if err := e.orch.SetProfile(name); err != nil {
		return &ProfileError{Reason: "set_profile", Cause: err}
	}
	return nil
}

// SetRelationship reassigns one follower role's RelationshipEdge,
// sourced from the current keystone.
func (e *Engine) SetRelationship(role layergraph.Role, edge layergraph.Edge) error {
	if err := e.orch.SetRelationship(role, edge); err != nil {
		return &ProfileError{Reason: "set_relationship", Cause: err}
	}
	return nil
}

// SetKeystone changes which role is the keystone; every other role's
// RelationshipEdge is re-sourced from it on the next Derive.
func (e *Engine) SetKeystone(role layergraph.Role) error {
	if err := e.orch.SetKeystone(role); err != nil {
		return &ProfileError{Reason: "set_keystone", Cause: err}
	}
	return nil
}

// GetLayerConfig reports the relationship graph's current keystone and
// per-role RelationshipEdges as a ProfileRecord, suitable for YAML
// save/load.
func (e *Engine) GetLayerConfig() ProfileRecord {
	return profileRecordFromSnapshot(e.orch.LayerConfig())
}

// HandleContextLoss marks the backend's GPU resources invalid,
// mirroring a device-lost / context-lost signal from the host platform.
// Every operation that reaches the backend (Tick, SwitchSystem) fails
// until RestoreContext succeeds; parameter and profile calls still apply.
func (e *Engine) HandleContextLoss() {
	e.orch.HandleContextLoss()
}

// RestoreContext re-creates the backend's device/context state once
// the host platform reports restoration is possible.
func (e *Engine) RestoreContext() error {
	return e.orch.RestoreContext()
}

// Dispose releases every GPU resource the Engine owns. Idempotent.
func (e *Engine) Dispose() {
	e.orch.Dispose()
}
