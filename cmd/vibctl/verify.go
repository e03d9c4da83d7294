// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shader"
	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/uniform"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the uniform contract across every assembled system",
	RunE: func(cmd *cobra.Command, args []string) error {
		systems := shader.AssembleAll()
		matrix, err := uniform.Verify(systems)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d systems, %d (system, uniform) entries covered\n",
			len(systems), len(matrix.Entries))
		return nil
	},
}
