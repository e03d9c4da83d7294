// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package layergraph

import "fmt"

// ApplyProfile wires Content as keystone and assigns the other four
// roles' RelationshipEdges per one of the five named presets:
// holographic, symmetry, chord, storm, legacy. Reactive/Chase
// running state is reset so a profile switch doesn't carry over a
// stale low-pass history from the previous profile.
func ApplyProfile(name string) (*Graph, error) {
	lg := New()
	if err := lg.SetKeystone(Content); err != nil {
		return nil, err
	}
	edges, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("layergraph: unknown profile %q", name)
	}
	for role, edge := range edges {
		if err := lg.SetRelationship(role, edge); err != nil {
			return nil, err
		}
	}
	return lg, nil
}

// ProfileNames lists the valid ApplyProfile preset names.
var ProfileNames = []string{"holographic", "symmetry", "chord", "storm", "legacy"}

var profiles = map[string]map[Role]Edge{
	"holographic": {
		Background: Echo(0.4),
		Shadow:      Echo(0.6),
		Highlight:   Harmonic(2),
		Accent:      Harmonic(3),
	},
	"symmetry": {
		Background: Echo(0.5),
		Shadow:      Mirror(),
		Highlight:   Mirror(),
		Accent:      Complement(50),
	},
	"chord": {
		Background: Harmonic(1.5),
		Shadow:      Harmonic(2),
		Highlight:   Harmonic(3),
		Accent:      Harmonic(5),
	},
	"storm": {
		Background: Chase(0.5),
		Shadow:      Reactive(1.2),
		Highlight:   Reactive(0.8),
		Accent:      Chase(0.1),
	},
	// legacy reproduces the historical static-multiplier behavior with
	// fixed Echo multipliers per role.
	"legacy": {
		Background: Echo(0.4),
		Shadow:      Echo(0.6),
		Highlight:   Echo(1.2),
		Accent:      Echo(1.5),
	},
}
