// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layergraph

import (
	"errors"
	"fmt"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/params"
	"github.com/katalvlaran/lvlath/core"
)

// ErrNotFollower is returned by SetRelationship for the keystone role,
// which by definition has no inbound RelationshipEdge.
var ErrNotFollower = errors.New("layergraph: keystone role has no relationship edge")

// metadataKey is the lvlath Vertex.Metadata key under which a follower's
// Edge is stored; lvlath's own Edge type carries only ID/From/To/Weight,
// so the RelationshipEdge payload rides on the follower vertex instead.
const metadataKey = "relationship"

// Graph is the LayerRelationshipGraph: a directed graph of
// the five Role vertices, rooted at one keystone, where every follower
// has exactly one inbound edge carrying its RelationshipEdge. Built on
// github.com/katalvlaran/lvlath/core so the "one keystone, one inbound
// edge per follower" invariant is verified via the graph's own Degree,
// not bespoke bookkeeping.
type Graph struct {
	g        *core.Graph
	keystone Role

	// running holds each follower's last derived Set, consulted by
	// Chase so it filters against its own prior output rather than the
	// keystone's.
	running [roleCount]params.Set
	// prevKeystone is the keystone snapshot as of the previous Derive
	// call, consulted by Reactive.
	prevKeystone params.Set
	initialized  bool
}

// New builds a Graph with all five role vertices present and no edges;
// callers must SetKeystone and then SetRelationship (or ApplyProfile)
// before calling Derive.
func New() *Graph {
	g := core.NewGraph(core.WithDirected(true))
	for _, r := range AllRoles {
		_ = g.AddVertex(r.String())
	}
	lg := &Graph{g: g, keystone: Content}
	return lg
}

// SetKeystone designates role as the keystone. Any existing inbound edge
// on role is removed and every follower's edge is re-sourced from role;
// the previous keystone becomes a follower carrying the edge role had,
// so every non-keystone role keeps exactly one inbound edge.
func (lg *Graph) SetKeystone(role Role) error {
	prev := lg.keystone
	prevEdge, hadEdge := lg.Relationship(role)
	if err := lg.clearInbound(role); err != nil {
		return err
	}
	lg.keystone = role
	if role != prev && hadEdge {
		for _, r := range AllRoles {
			e, ok := lg.Relationship(r)
			if r == role || r == prev || !ok {
				continue
			}
			if err := lg.SetRelationship(r, e); err != nil {
				return err
			}
		}
		if err := lg.SetRelationship(prev, prevEdge); err != nil {
			return err
		}
	}
	lg.resetRunning()
	return nil
}

// Keystone reports the current keystone role.
func (lg *Graph) Keystone() Role { return lg.keystone }

// SetRelationship assigns role's RelationshipEdge, sourced from the
// current keystone. role must not be the keystone itself.
func (lg *Graph) SetRelationship(role Role, edge Edge) error {
	if role == lg.keystone {
		return ErrNotFollower
	}
	if err := lg.clearInbound(role); err != nil {
		return err
	}
	if _, err := lg.g.AddEdge(lg.keystone.String(), role.String(), 0); err != nil {
		return fmt.Errorf("layergraph: add edge %s->%s: %w", lg.keystone, role, err)
	}
	verts := lg.g.VerticesMap()
	v, ok := verts[role.String()]
	if !ok {
		return fmt.Errorf("layergraph: missing vertex %s", role)
	}
	if v.Metadata == nil {
		v.Metadata = map[string]interface{}{}
	}
	v.Metadata[metadataKey] = edge
	return nil
}

// Relationship returns role's current RelationshipEdge, if any.
func (lg *Graph) Relationship(role Role) (Edge, bool) {
	verts := lg.g.VerticesMap()
	v, ok := verts[role.String()]
	if !ok || v.Metadata == nil {
		return Edge{}, false
	}
	e, ok := v.Metadata[metadataKey].(Edge)
	return e, ok
}

// Snapshot is a read-only view of the graph's current keystone and each
// follower's RelationshipEdge, independent of the lvlath vertex storage
// underneath. It is the shape GetLayerConfig serializes as a
// ProfileRecord.
type Snapshot struct {
	Keystone Role
	Edges    map[Role]Edge
}

// Snapshot captures the graph's current keystone and follower edges.
func (lg *Graph) Snapshot() Snapshot {
	edges := make(map[Role]Edge, roleCount-1)
	for _, r := range AllRoles {
		if r == lg.keystone {
			continue
		}
		if e, ok := lg.Relationship(r); ok {
			edges[r] = e
		}
	}
	return Snapshot{Keystone: lg.keystone, Edges: edges}
}

// clearInbound removes any existing inbound edge on role along with its
// stored Edge metadata, leaving role with in-degree 0.
func (lg *Graph) clearInbound(role Role) error {
	verts := lg.g.VerticesMap()
	v, ok := verts[role.String()]
	if !ok {
		return fmt.Errorf("layergraph: unknown role %s", role)
	}
	for _, e := range lg.g.Edges() {
		if e.To == role.String() {
			if err := lg.g.RemoveEdge(e.ID); err != nil {
				return fmt.Errorf("layergraph: remove edge %s: %w", e.ID, err)
			}
		}
	}
	delete(v.Metadata, metadataKey)
	return nil
}

// CheckInvariant verifies exactly one keystone with zero inbound edges
// and every other role with exactly one inbound edge, using the graph's own Degree accounting.
func (lg *Graph) CheckInvariant() error {
	for _, r := range AllRoles {
		in, _, _, err := lg.g.Degree(r.String())
		if err != nil {
			return fmt.Errorf("layergraph: degree(%s): %w", r, err)
		}
		if r == lg.keystone {
			if in != 0 {
				return fmt.Errorf("layergraph: keystone %s has %d inbound edges, want 0", r, in)
			}
			continue
		}
		if in != 1 {
			return fmt.Errorf("layergraph: follower %s has %d inbound edges, want 1", r, in)
		}
	}
	return nil
}

func (lg *Graph) resetRunning() {
	for i := range lg.running {
		lg.running[i] = params.Set{}
	}
	lg.initialized = false
}

// Derive computes one ParameterSet per follower role from the keystone
// snapshot k. dt is the elapsed time in seconds since the
// previous Derive call, used by Chase; it is ignored on the first call
// after construction or a keystone/profile change. The keystone's own
// role is included unchanged in the result for callers that iterate
// AllRoles uniformly.
func (lg *Graph) Derive(k params.Set, dt float32) (map[Role]params.Set, error) {
	if err := lg.CheckInvariant(); err != nil {
		return nil, err
	}
	out := make(map[Role]params.Set, roleCount)
	out[lg.keystone] = k

	prevK := k
	if lg.initialized {
		prevK = lg.prevKeystone
	}

	for _, r := range AllRoles {
		if r == lg.keystone {
			continue
		}
		edge, ok := lg.Relationship(r)
		if !ok {
			return nil, fmt.Errorf("layergraph: follower %s has no relationship edge", r)
		}
		prevOut := lg.running[r]
		if !lg.initialized {
			prevOut = k
		}
		derived := edge.apply(k, prevK, prevOut, dt)
		out[r] = derived
		lg.running[r] = derived
	}
	lg.prevKeystone = k
	lg.initialized = true
	return out, nil
}
