// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vib3d

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/layergraph"
)

// profileSchemaVersion is bumped whenever RelationshipRecord's required
// fields change shape. Unknown optional fields in a loaded record are
// ignored by yaml.v3's default decoding, so older records stay loadable
// across additive changes.
const profileSchemaVersion = 1

// RelationshipRecord is one follower role's RelationshipEdge in a
// save/load-friendly shape: the Kind's name plus whichever scalar that
// Kind uses. Zero-valued fields (including every field Kind does not
// use) are omitted when marshaled and decode as zero.
type RelationshipRecord struct {
	Kind  string  `yaml:"kind"`
	Alpha float32 `yaml:"alpha,omitempty"`
	Pivot float32 `yaml:"pivot,omitempty"`
	N     float32 `yaml:"n,omitempty"`
	Gain  float32 `yaml:"gain,omitempty"`
	Lag   float32 `yaml:"lag,omitempty"`
}

// ProfileRecord is the LayerRelationshipGraph's save/load form: a
// keystone role, an ordered map of role to RelationshipRecord, and a
// schema version tag.
type ProfileRecord struct {
	SchemaVersion int                            `yaml:"schema_version"`
	Keystone      string                         `yaml:"keystone"`
	Edges         map[string]RelationshipRecord `yaml:"edges"`
}

func edgeToRecord(e layergraph.Edge) RelationshipRecord {
	return RelationshipRecord{
		Kind:  e.Kind.String(),
		Alpha: e.Alpha,
		Pivot: e.Pivot,
		N:     e.N,
		Gain:  e.Gain,
		Lag:   e.Lag,
	}
}

func recordToEdge(r RelationshipRecord) (layergraph.Edge, error) {
	kind, err := layergraph.ParseKind(r.Kind)
	if err != nil {
		return layergraph.Edge{}, err
	}
	return layergraph.Edge{
		Kind:  kind,
		Alpha: r.Alpha,
		Pivot: r.Pivot,
		N:     r.N,
		Gain:  r.Gain,
		Lag:   r.Lag,
	}, nil
}

func profileRecordFromSnapshot(snap layergraph.Snapshot) ProfileRecord {
	edges := make(map[string]RelationshipRecord, len(snap.Edges))
	for role, edge := range snap.Edges {
		edges[role.String()] = edgeToRecord(edge)
	}
	return ProfileRecord{
		SchemaVersion: profileSchemaVersion,
		Keystone:      snap.Keystone.String(),
		Edges:         edges,
	}
}

// Snapshot converts a ProfileRecord back into a layergraph.Snapshot,
// validating every role and kind name.
func (p ProfileRecord) Snapshot() (layergraph.Snapshot, error) {
	keystone, err := layergraph.ParseRole(p.Keystone)
	if err != nil {
		return layergraph.Snapshot{}, fmt.Errorf("vib3d: profile record: %w", err)
	}
	edges := make(map[layergraph.Role]layergraph.Edge, len(p.Edges))
	for roleName, rec := range p.Edges {
		role, err := layergraph.ParseRole(roleName)
		if err != nil {
			return layergraph.Snapshot{}, fmt.Errorf("vib3d: profile record: %w", err)
		}
		edge, err := recordToEdge(rec)
		if err != nil {
			return layergraph.Snapshot{}, fmt.Errorf("vib3d: profile record: role %s: %w", roleName, err)
		}
		edges[role] = edge
	}
	return layergraph.Snapshot{Keystone: keystone, Edges: edges}, nil
}

// WriteProfile encodes p as YAML to w.
func WriteProfile(w io.Writer, p ProfileRecord) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(p)
}

// ReadProfile decodes a ProfileRecord previously written by
// WriteProfile. Unknown fields in r are ignored, so a record saved by a
// newer schema version still loads here as long as every field this
// version requires is present.
func ReadProfile(r io.Reader) (ProfileRecord, error) {
	var p ProfileRecord
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return ProfileRecord{}, fmt.Errorf("vib3d: decode profile record: %w", err)
	}
	return p, nil
}
