// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layergraph

import "github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"

// reactiveField implements the Reactive(gain) relationship: the follower
// takes the keystone's current value plus gain times the keystone's
// frame-to-frame change, so it overshoots while the keystone moves and
// matches it when the keystone is still. Only speed, morphFactor and
// chaos react; every other field is copied from the keystone.
func reactiveField(k, kPrev params.Set, gain float32) params.Set {
	p := k
	p.Speed = k.Speed + gain*(k.Speed-kPrev.Speed)
	p.MorphFactor = k.MorphFactor + gain*(k.MorphFactor-kPrev.MorphFactor)
	p.Chaos = k.Chaos + gain*(k.Chaos-kPrev.Chaos)
	return p
}

// chaseField implements the Chase(lagSeconds) relationship:
// the follower exponentially approaches the keystone's current value
// with time constant lagSeconds, using prevOut (this role's own last
// derived snapshot) rather than the keystone's previous snapshot, so
// the lag compounds frame over frame instead of resetting each tick.
func chaseField(k, prevOut params.Set, dt, lagSeconds float32) params.Set {
	if lagSeconds <= 0 {
		return k
	}
	w := dt / lagSeconds
	if w > 1 {
		w = 1
	}
	p := k
	p.Rot4dXY = chase1(prevOut.Rot4dXY, k.Rot4dXY, w)
	p.Rot4dXZ = chase1(prevOut.Rot4dXZ, k.Rot4dXZ, w)
	p.Rot4dYZ = chase1(prevOut.Rot4dYZ, k.Rot4dYZ, w)
	p.Rot4dXW = chase1(prevOut.Rot4dXW, k.Rot4dXW, w)
	p.Rot4dYW = chase1(prevOut.Rot4dYW, k.Rot4dYW, w)
	p.Rot4dZW = chase1(prevOut.Rot4dZW, k.Rot4dZW, w)
	p.Hue = modHue(chase1(prevOut.Hue, k.Hue, w))
	return p
}

func chase1(prev, target, w float32) float32 {
	return prev + w*(target-prev)
}
