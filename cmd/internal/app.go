// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/achamayou/draft-chamayou-cospdx/internal/commands"
)

// Run is the main application logic, extracted for testability.
func Run(ctx context.Context) error {
	rootCmd := commands.NewRootCmd()
	rootCmd.SilenceUsage = true
	return rootCmd.ExecuteContext(ctx)
}
