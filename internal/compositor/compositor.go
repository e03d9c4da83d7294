// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package compositor implements MultiCanvasCompositor: five
// LayerSlots, each independently rendered to its own offscreen target,
// then composited back-to-front into one final target with per-role
// blend modes. A role may run a different RendererContract system than
// its siblings.
package compositor

import (
	"fmt"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/gpu"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/layergraph"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/renderer"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

// defaultBlend is each role's composite blend mode absent an explicit
// override: Background Normal, Shadow Multiply, Content Normal,
// Highlight Screen, Accent Additive. Shadow could equally default to an
// alpha blend; this implementation fixes Multiply as the concrete
// default, overridable via SetBlendMode.
var defaultBlend = map[layergraph.Role]gpu.BlendMode{
	layergraph.Background: gpu.BlendNormal,
	layergraph.Shadow:      gpu.BlendMultiply,
	layergraph.Content:     gpu.BlendNormal,
	layergraph.Highlight:   gpu.BlendScreen,
	layergraph.Accent:      gpu.BlendAdditive,
}

// Slot is one LayerSlot: a role's adapter, its own offscreen
// target, and the composite-time state (opacity, blend mode) the
// compositor reads every frame.
type Slot struct {
	Role    layergraph.Role
	Adapter *renderer.Adapter
	Target  gpu.Target
	Texture gpu.Texture

	Opacity   float32 // 1 under steady state; animated during a crossfade
	BlendMode gpu.BlendMode
}

// Compositor owns the five LayerSlots and the final composite target
// they render into.
type Compositor struct {
	backend gpu.Backend
	slots   map[layergraph.Role]*Slot
	width   int
	height  int

	final       gpu.Target
	finalTex    gpu.Texture
	disposed    bool
}

// New allocates a Slot (and its offscreen target) for every role, each
// running system(role)'s RendererContract adapter against backend, plus
// the final composite target. system lets a role run a different system
// than its siblings.
func New(backend gpu.Backend, width, height int, system func(layergraph.Role) renderer.System) (*Compositor, error) {
	c := &Compositor{
		backend: backend,
		slots:   make(map[layergraph.Role]*Slot, len(layergraph.AllRoles)),
		width:   width,
		height:  height,
	}

	finalTex, err := backend.CreateTexture(width, height)
	if err != nil {
		return nil, fmt.Errorf("compositor: create final target: %w", err)
	}
	c.finalTex = finalTex
	c.final = gpu.Target(finalTex)

	for _, role := range layergraph.AllRoles {
		sys := system(role)
		adapter, err := renderer.Init(sys, backend)
		if err != nil {
			return nil, fmt.Errorf("compositor: role %s: %w", role, err)
		}
		adapter.Resize(width, height)
		adapter.SetActive(true)

		tex, err := backend.CreateTexture(width, height)
		if err != nil {
			return nil, fmt.Errorf("compositor: role %s target: %w", role, err)
		}

		c.slots[role] = &Slot{
			Role:      role,
			Adapter:   adapter,
			Target:    gpu.Target(tex),
			Texture:   tex,
			Opacity:   1,
			BlendMode: defaultBlend[role],
		}
	}
	return c, nil
}

// Slot exposes a role's LayerSlot state, e.g. for a caller overriding
// opacity during a crossfade.
func (c *Compositor) Slot(role layergraph.Role) *Slot { return c.slots[role] }

// SetBlendMode overrides role's composite blend mode away from the
// package default.
func (c *Compositor) SetBlendMode(role layergraph.Role, mode gpu.BlendMode) {
	if s, ok := c.slots[role]; ok {
		s.BlendMode = mode
	}
}

// FinalTexture exposes the composited frame's backing texture, for a
// caller that presents it (e.g. blits to a visible swapchain target).
func (c *Compositor) FinalTexture() gpu.Texture { return c.finalTex }

// Render draws each role's RendererContract into its own target using
// the corresponding derived ParameterSet from derived, then composites
// back-to-front into the final target.
func (c *Compositor) Render(derived map[layergraph.Role]params.Set, extras uniform.Extras, t float32) error {
	if c.disposed {
		return fmt.Errorf("compositor: render after dispose")
	}
	for _, role := range layergraph.AllRoles {
		s := c.slots[role]
		if !s.Adapter.Active() {
			continue
		}
		p, ok := derived[role]
		if !ok {
			return fmt.Errorf("compositor: missing derived parameters for role %s", role)
		}
		if err := s.Adapter.Render(s.Target, p, extras, t); err != nil {
			return fmt.Errorf("compositor: role %s: %w", role, err)
		}
	}

	if err := c.backend.BeginFrame(c.final); err != nil {
		return fmt.Errorf("compositor: begin final frame: %w", err)
	}
	for _, role := range layergraph.AllRoles {
		s := c.slots[role]
		if !s.Adapter.Active() || s.Opacity <= 0 {
			continue
		}
		if err := c.backend.Composite(s.Texture, c.final, s.BlendMode, s.Opacity); err != nil {
			return fmt.Errorf("compositor: composite role %s: %w", role, err)
		}
	}
	if err := c.backend.EndFrame(c.final); err != nil {
		return fmt.Errorf("compositor: end final frame: %w", err)
	}
	return nil
}

// Resize updates every slot's (and the final target's) reported
// viewport dimensions. It does not reallocate GPU textures; callers
// that need new target sizes must build a new Compositor, mirroring
// RendererContract's own resize contract.
func (c *Compositor) Resize(width, height int) {
	c.width, c.height = width, height
	for _, s := range c.slots {
		s.Adapter.Resize(width, height)
	}
}

// Dispose tears down every slot's adapter. Idempotent.
func (c *Compositor) Dispose() {
	if c.disposed {
		return
	}
	for _, s := range c.slots {
		s.Adapter.Dispose()
	}
	c.disposed = true
}

// Disposed reports whether Dispose has been called.
func (c *Compositor) Disposed() bool { return c.disposed }
