// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cospdx",
		Short: "Compile SPDX JSON Schemas to CDDL and convert SPDX documents to CBOR",
	}

	rootCmd.AddCommand(newGenCmd())
	rootCmd.AddCommand(newConvCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
