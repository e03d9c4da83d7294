// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command vibctl is a development CLI for the engine core: assembling
// and printing a system's shader source, verifying the uniform
// contract across every system, and listing the geometry catalog.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
