// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Domusgpt/vib3codeSDKv3.0.0-sub002/internal/shader"
)

var assembleLanguage string

func init() {
	assembleCmd.Flags().StringVarP(&assembleLanguage, "language", "l", "glsl", "shader language to print: glsl or wgsl")
}

var assembleCmd = &cobra.Command{
	Use:   "assemble <faceted|quantum|holographic>",
	Short: "Assemble and print one system's shader source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := shader.ParseSystem(args[0])
		if err != nil {
			return err
		}
		glslSrc, wgslSrc := shader.Assemble(sys)
		switch assembleLanguage {
		case "glsl":
			fmt.Fprintln(cmd.OutOrStdout(), glslSrc)
		case "wgsl":
			fmt.Fprintln(cmd.OutOrStdout(), wgslSrc)
		default:
			return fmt.Errorf("vibctl: unknown language %q, want glsl or wgsl", assembleLanguage)
		}
		return nil
	},
}
