// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/geometry"
)

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "List the 24 geometry catalog entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, v := range geometry.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d  %-12s %s\n", v.Index, v.Core, v.Base)
		}
		return nil
	},
}
