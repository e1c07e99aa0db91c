// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/achamayou/draft-chamayou-cospdx/internal/jschema"
	"github.com/achamayou/draft-chamayou-cospdx/internal/prompts"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <schema>",
		Short: "Show definition and reference statistics for a schema",
		Example: `  # Summarize the SPDX 3.0.1 schema
  cospdx stats spdx-json-schema.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args[0])
		},
	}
	return cmd
}

func runStats(schemaPath string) error {
	root, err := jschema.Load(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	stats, err := jschema.Summarize(root)
	if err != nil {
		return err
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Definitions", Value: strconv.Itoa(stats.Definitions)},
		{Label: "References", Value: strconv.Itoa(stats.References)},
		{Label: "Definitions with no references", Value: strconv.Itoa(stats.Leaves)},
	}, "")
	return nil
}
