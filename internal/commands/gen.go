// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/achamayou/draft-chamayou-cospdx/internal/cddl"
	"github.com/achamayou/draft-chamayou-cospdx/internal/jschema"
	"github.com/achamayou/draft-chamayou-cospdx/internal/prompts"
)

type genOptions struct {
	schema string
	output string
}

func newGenCmd() *cobra.Command {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen [schema]",
		Short: "Compile an SPDX JSON Schema into the CoSPDX CDDL grammar",
		Long: `Compile an SPDX JSON Schema into the CoSPDX CDDL grammar.

Each schema definition yields exactly one grammar production; field names
and enumerated values are interned as small integers, and the two interning
tables are appended to the grammar for the converter to load.`,
		Example: `  # Print the grammar to stdout
  cospdx gen spdx-json-schema.json

  # Write the grammar to a file
  cospdx gen spdx-json-schema.json -o cospdx.cddl`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.schema = args[0]
			}
			return runGen(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func runGen(opts *genOptions) error {
	if err := prompts.RunPathForm("Schema file", "e.g., spdx-json-schema.json", &opts.schema); err != nil {
		return err
	}

	root, err := jschema.Load(opts.schema)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	grammar, err := cddl.Emit(root)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = os.Stdout.Write(grammar)
		return err
	}

	if err := os.WriteFile(opts.output, grammar, 0o600); err != nil {
		return fmt.Errorf("failed to write grammar: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Schema", Value: opts.schema},
		{Label: "Grammar", Value: opts.output},
	}, "Grammar generated")
	return nil
}
