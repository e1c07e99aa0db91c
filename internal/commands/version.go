// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package commands

import (
	"github.com/spf13/cobra"

	"github.com/achamayou/draft-chamayou-cospdx/internal/prompts"
	"github.com/achamayou/draft-chamayou-cospdx/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts.PrintResult([]prompts.ResultField{
				{Label: "Version", Value: version.Version},
				{Label: "Commit", Value: version.Commit},
				{Label: "Built", Value: version.Date},
			}, "")
			return nil
		},
	}
}
