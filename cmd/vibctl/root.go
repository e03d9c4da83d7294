// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "vibctl",
	Short: "Development CLI for the engine core",
	Long:  `vibctl assembles shader source, verifies the uniform contract, and lists the geometry catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(geometryCmd)
}
