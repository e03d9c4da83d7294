// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vib3d

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/renderer"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shader"
)

// configRecord is Config's YAML-friendly shape: enums round-trip as
// their string name rather than a raw integer, so a saved config file
// stays readable and stable across a reordering of the underlying
// iota values.
type configRecord struct {
	InitialSystem     string `yaml:"initial_system"`
	ProfileName       string `yaml:"profile_name"`
	Width             int    `yaml:"width"`
	Height            int    `yaml:"height"`
	BackendPreference string `yaml:"backend_preference"`
}

// WriteConfig encodes cfg as YAML to w. Logger and Metrics are not
// serializable host state and are not written; ReadConfig returns a cfg
// with both at their zero value.
func WriteConfig(w io.Writer, cfg Config) error {
	rec := configRecord{
		InitialSystem:     cfg.InitialSystem.String(),
		ProfileName:       cfg.ProfileName,
		Width:             cfg.Viewport.Width,
		Height:            cfg.Viewport.Height,
		BackendPreference: cfg.BackendPreference.String(),
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(rec)
}

// ReadConfig decodes a Config previously written by WriteConfig.
func ReadConfig(r io.Reader) (Config, error) {
	var rec configRecord
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return Config{}, fmt.Errorf("vib3d: decode config: %w", err)
	}

	sys, err := shader.ParseSystem(rec.InitialSystem)
	if err != nil {
		return Config{}, fmt.Errorf("vib3d: decode config: %w", err)
	}
	pref, err := ParseBackendPreference(rec.BackendPreference)
	if err != nil {
		return Config{}, fmt.Errorf("vib3d: decode config: %w", err)
	}

	return Config{
		InitialSystem:     renderer.System(sys),
		ProfileName:       rec.ProfileName,
		Viewport:          Viewport{Width: rec.Width, Height: rec.Height},
		BackendPreference: pref,
	}, nil
}
