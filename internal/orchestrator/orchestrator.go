// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package orchestrator implements EngineOrchestrator: the
// Uninitialized → Ready → Active(system) ↔ Crossfade(from,to,t) → Active(system)
// state machine that owns the ParameterStore, LayerRelationshipGraph,
// GpuBackend, and MultiCanvasCompositor, and drives one derive-render-
// composite pass per tick.
package orchestrator

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/compositor"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/enginelog"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/enginemetrics"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/layergraph"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/renderer"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

// State names the orchestrator's position in its state machine.
type State uint8

const (
	Uninitialized State = iota
	Ready
	Active
	Crossfade
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Active:
		return "active"
	case Crossfade:
		return "crossfade"
	default:
		return "uninitialized"
	}
}

// CrossfadeDuration is the default system-switch crossfade length.
const CrossfadeDuration = 600 * time.Millisecond

// inputRateHz is the aggregate input fan-in throttle: pointer/
// tilt/audio-band updates are clamped to this rate regardless of source
// count.
const inputRateHz = 120

// ErrUninitialized is returned by any operation requiring Initialize to
// have completed.
var ErrUninitialized = errors.New("orchestrator: not initialized")

// ErrDisposed is returned by any operation attempted after Dispose.
var ErrDisposed = errors.New("orchestrator: disposed")

// SwitchError reports that SwitchSystem could not start or complete.
type SwitchError struct {
	System renderer.System
	Reason string
}

func (e *SwitchError) Error() string {
	return fmt.Sprintf("orchestrator: switch to %s failed: %s", e.System, e.Reason)
}

// Orchestrator is the EngineOrchestrator. Across a
// crossfade it keeps two Compositors alive — fromComp (fading out) and
// toComp (fading in) — compositing both into a single output target
// with linearly interpolated opacity, so mid-fade frames blend two
// complete five-layer composites rather than one.
type Orchestrator struct {
	backend gpu.Backend

	store *params.Store
	graph *layergraph.Graph

	state State
	from  renderer.System
	to    renderer.System

	active   *compositor.Compositor // steady-state (state == Active)
	fromComp *compositor.Compositor // state == Crossfade only
	toComp   *compositor.Compositor // state == Crossfade only
	fade     time.Duration          // elapsed time within the current crossfade

	outputTarget  gpu.Target
	outputTexture gpu.Texture

	width, height int

	failed   map[renderer.System]error
	limiter  *rate.Limiter
	disposed bool

	log     enginelog.Logger
	metrics *enginemetrics.Metrics

	onParameterChange func(params.Name, float32)
	onSystemChange    func(renderer.System)
}

// Config is Initialize's input.
type Config struct {
	InitialSystem renderer.System
	ProfileName   string
	Width, Height int
}

// New constructs an Orchestrator bound to backend, in the Uninitialized
// state. Call Initialize before any other operation.
func New(backend gpu.Backend) *Orchestrator {
	return &Orchestrator{
		backend: backend,
		store:   params.NewStore(),
		failed:  map[renderer.System]error{},
		limiter: rate.NewLimiter(rate.Limit(inputRateHz), inputRateHz),
		state:   Uninitialized,
	}
}

// Initialize builds the default profile, a Compositor running
// cfg.InitialSystem on every role, and the output target the composited
// frame is blitted to; transitions Uninitialized -> Ready -> Active.
// A shader compile failure for the initial system is a hard failure:
// there is no fallback system to render with yet.
func (o *Orchestrator) Initialize(cfg Config) error {
	if o.state != Uninitialized {
		return fmt.Errorf("orchestrator: Initialize called in state %s", o.state)
	}
	o.state = Ready

	profile := cfg.ProfileName
	if profile == "" {
		profile = "holographic"
	}
	graph, err := layergraph.ApplyProfile(profile)
	if err != nil {
		return fmt.Errorf("orchestrator: profile %q: %w", profile, err)
	}
	o.graph = graph
	o.width, o.height = cfg.Width, cfg.Height

	outTex, err := o.backend.CreateTexture(cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("orchestrator: create output target: %w", err)
	}
	o.outputTexture = outTex
	o.outputTarget = gpu.Target(outTex)

	active, err := compositor.New(o.backend, cfg.Width, cfg.Height, fixedSystem(cfg.InitialSystem))
	if err != nil {
		o.failed[cfg.InitialSystem] = err
		o.log.ShaderDisabled(cfg.InitialSystem.String(), err)
		if o.metrics != nil {
			o.metrics.ShaderCompileFailures.WithLabelValues(cfg.InitialSystem.String()).Inc()
		}
		return &SwitchError{System: cfg.InitialSystem, Reason: err.Error()}
	}
	o.active = active
	o.from = cfg.InitialSystem
	o.to = cfg.InitialSystem
	o.state = Active
	return nil
}

func fixedSystem(s renderer.System) func(layergraph.Role) renderer.System {
	return func(layergraph.Role) renderer.System { return s }
}

// SetLogger installs the structured logger Tick/SwitchSystem/
// HandleContextLoss report through. The
// zero-value Logger (the default) discards every event.
func (o *Orchestrator) SetLogger(l enginelog.Logger) { o.log = l }

// SetMetrics installs the Prometheus collectors Tick/SwitchSystem/
// HandleContextLoss record into. Passing nil (the default) makes every
// recording call a no-op.
func (o *Orchestrator) SetMetrics(m *enginemetrics.Metrics) { o.metrics = m }

// State reports the orchestrator's current state machine position.
func (o *Orchestrator) State() State { return o.state }

// OutputTexture exposes the final composited frame, valid once
// Initialize has returned successfully.
func (o *Orchestrator) OutputTexture() gpu.Texture { return o.outputTexture }

// SetParameter applies one clamped parameter write. Failures
// are no-ops per the failure model; the bool mirrors
// Store.Set so a caller can observe rejection without a ParamError type.
func (o *Orchestrator) SetParameter(name params.Name, value float32) bool {
	if !o.limiter.Allow() {
		return false
	}
	ok := o.store.Set(name, value)
	if ok && o.onParameterChange != nil {
		o.onParameterChange(name, o.store.Get(name))
	}
	return ok
}

// BatchSet applies several parameters atomically with one version bump
// and counts as a single throttled input event.
func (o *Orchestrator) BatchSet(values map[params.Name]float32) {
	if !o.limiter.Allow() {
		return
	}
	o.store.BatchSet(values)
	if o.onParameterChange != nil {
		for name := range values {
			o.onParameterChange(name, o.store.Get(name))
		}
	}
}

// GetParameter reads one parameter's clamped current value.
func (o *Orchestrator) GetParameter(name params.Name) float32 { return o.store.Get(name) }

// OnParameterChange registers a callback invoked after each successful
// SetParameter/BatchSet.
func (o *Orchestrator) OnParameterChange(cb func(params.Name, float32)) { o.onParameterChange = cb }

// OnSystemChange registers a callback invoked when a crossfade completes
// and the active system changes.
func (o *Orchestrator) OnSystemChange(cb func(renderer.System)) { o.onSystemChange = cb }

// SetProfile swaps the LayerRelationshipGraph's active profile. ApplyProfile always builds a fresh Graph, so Reactive/Chase
// running state naturally resets to the keystone snapshot.
func (o *Orchestrator) SetProfile(name string) error {
	graph, err := layergraph.ApplyProfile(name)
	if err != nil {
		return fmt.Errorf("orchestrator: set profile: %w", err)
	}
	o.graph = graph
	o.log.ProfileSwitched(name)
	return nil
}

// SetRelationship reassigns one follower role's RelationshipEdge.
func (o *Orchestrator) SetRelationship(role layergraph.Role, edge layergraph.Edge) error {
	return o.graph.SetRelationship(role, edge)
}

// SetKeystone changes which role is the keystone.
func (o *Orchestrator) SetKeystone(role layergraph.Role) error {
	return o.graph.SetKeystone(role)
}

// LayerConfig reports the relationship graph's current keystone and
// per-role RelationshipEdges.
func (o *Orchestrator) LayerConfig() layergraph.Snapshot {
	return o.graph.Snapshot()
}

// SwitchSystem begins a crossfade from the current system to s. Only
// one crossfade may run at a time: once a crossfade starts it always
// runs to completion, so a switch requested
// mid-fade is rejected rather than queued or restarted.
func (o *Orchestrator) SwitchSystem(s renderer.System) error {
	if o.state == Uninitialized || o.state == Ready {
		return ErrUninitialized
	}
	if o.state == Crossfade {
		return &SwitchError{System: s, Reason: "a crossfade is already in progress"}
	}
	if cause, disabled := o.failed[s]; disabled {
		return &SwitchError{System: s, Reason: "system disabled after an earlier failure: " + cause.Error()}
	}
	toComp, err := compositor.New(o.backend, o.width, o.height, fixedSystem(s))
	if err != nil {
		o.failed[s] = err
		o.log.ShaderDisabled(s.String(), err)
		if o.metrics != nil {
			o.metrics.ShaderCompileFailures.WithLabelValues(s.String()).Inc()
		}
		return &SwitchError{System: s, Reason: err.Error()}
	}
	o.fromComp = o.active
	o.toComp = toComp
	o.active = nil
	o.from = o.to
	o.to = s
	o.fade = 0
	o.state = Crossfade
	return nil
}

// CancelPendingSwitch cancels a crossfade before its first frame has
// advanced it.
func (o *Orchestrator) CancelPendingSwitch() error {
	if o.state != Crossfade || o.fade > 0 {
		return fmt.Errorf("orchestrator: no cancellable pending switch")
	}
	o.toComp.Dispose()
	o.active = o.fromComp
	o.fromComp = nil
	o.toComp = nil
	o.to = o.from
	o.state = Active
	return nil
}

// Tick derives one ParameterSet per role from the keystone snapshot and
// renders/composites exactly one frame, advancing a crossfade if one is
// in progress. Any error from the render tick is logged, counted as a
// dropped frame, and returned to the caller; the previous
// outputTexture contents stand as the displayed frame.
func (o *Orchestrator) Tick(dt time.Duration, extras uniform.Extras, tSeconds float32) error {
	if err := o.tick(dt, extras, tSeconds); err != nil {
		o.log.FrameDropped(err)
		if o.metrics != nil {
			o.metrics.FramesDropped.Inc()
		}
		return err
	}
	return nil
}

func (o *Orchestrator) tick(dt time.Duration, extras uniform.Extras, tSeconds float32) error {
	if o.disposed {
		return ErrDisposed
	}
	if o.state != Active && o.state != Crossfade {
		return ErrUninitialized
	}

	keystone := o.store.Snapshot()
	derived, err := o.graph.Derive(keystone, float32(dt.Seconds()))
	if err != nil {
		return fmt.Errorf("orchestrator: derive: %w", err)
	}
	o.store.ClearDirty()

	switch o.state {
	case Active:
		if err := o.active.Render(derived, extras, tSeconds); err != nil {
			return fmt.Errorf("orchestrator: render: %w", err)
		}
		return o.blitSingle(o.active.FinalTexture())
	default: // Crossfade
		return o.tickCrossfade(dt, derived, extras, tSeconds)
	}
}

func (o *Orchestrator) tickCrossfade(dt time.Duration, derived map[layergraph.Role]params.Set, extras uniform.Extras, tSeconds float32) error {
	if err := o.fromComp.Render(derived, extras, tSeconds); err != nil {
		return fmt.Errorf("orchestrator: render from: %w", err)
	}
	if err := o.toComp.Render(derived, extras, tSeconds); err != nil {
		return fmt.Errorf("orchestrator: render to: %w", err)
	}

	o.fade += dt
	progress := float32(o.fade) / float32(CrossfadeDuration)
	if progress > 1 {
		progress = 1
	}
	fromOpacity := 1 - progress
	toOpacity := progress

	if err := o.backend.BeginFrame(o.outputTarget); err != nil {
		return fmt.Errorf("orchestrator: begin output frame: %w", err)
	}
	if err := o.backend.Composite(o.fromComp.FinalTexture(), o.outputTarget, gpu.BlendNormal, fromOpacity); err != nil {
		return fmt.Errorf("orchestrator: composite from: %w", err)
	}
	if err := o.backend.Composite(o.toComp.FinalTexture(), o.outputTarget, gpu.BlendNormal, toOpacity); err != nil {
		return fmt.Errorf("orchestrator: composite to: %w", err)
	}
	if err := o.backend.EndFrame(o.outputTarget); err != nil {
		return fmt.Errorf("orchestrator: end output frame: %w", err)
	}

	if progress >= 1 {
		fromSystem := o.from
		toSystem := o.to
		o.fromComp.Dispose()
		o.active = o.toComp
		o.fromComp = nil
		o.toComp = nil
		o.from = o.to
		o.state = Active
		o.log.CrossfadeCompleted(fromSystem.String(), toSystem.String(), o.fade)
		if o.metrics != nil {
			o.metrics.CrossfadeDuration.Observe(o.fade.Seconds())
		}
		if o.onSystemChange != nil {
			o.onSystemChange(toSystem)
		}
	}
	return nil
}

// blitSingle composites one compositor's final texture onto the output
// target at full opacity, used in steady-state Active rendering so
// OutputTexture always names the same handle regardless of state.
func (o *Orchestrator) blitSingle(tex gpu.Texture) error {
	if err := o.backend.BeginFrame(o.outputTarget); err != nil {
		return fmt.Errorf("orchestrator: begin output frame: %w", err)
	}
	if err := o.backend.Composite(tex, o.outputTarget, gpu.BlendNormal, 1); err != nil {
		return fmt.Errorf("orchestrator: composite output: %w", err)
	}
	return o.backend.EndFrame(o.outputTarget)
}

// HandleContextLoss marks the backend's resources invalid:
// the next Tick's Render/Composite calls fail with gpu.ErrContextLost
// until RestoreContext succeeds.
func (o *Orchestrator) HandleContextLoss() {
	o.backend.HandleContextLoss()
	o.log.ContextLost()
	if o.metrics != nil {
		o.metrics.ContextLossEvents.Inc()
	}
}

// RestoreContext re-creates the backend's device/context state after a
// context loss signal, once the backend reports restoration is possible.
func (o *Orchestrator) RestoreContext() error {
	if err := o.backend.Restore(); err != nil {
		return err
	}
	o.log.ContextRestored()
	return nil
}

// Dispose tears down every live compositor and the backend. Idempotent.
func (o *Orchestrator) Dispose() {
	if o.disposed {
		return
	}
	if o.active != nil {
		o.active.Dispose()
	}
	if o.fromComp != nil {
		o.fromComp.Dispose()
	}
	if o.toComp != nil {
		o.toComp.Dispose()
	}
	o.backend.Dispose()
	o.disposed = true
}
