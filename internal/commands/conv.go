// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/achamayou/draft-chamayou-cospdx/internal/prompts"
	"github.com/achamayou/draft-chamayou-cospdx/internal/transcode"
)

type convOptions struct {
	document string
	grammar  string
	output   string
}

func newConvCmd() *cobra.Command {
	opts := &convOptions{}

	cmd := &cobra.Command{
		Use:   "conv [document]",
		Short: "Convert an SPDX JSON document to CoSPDX CBOR",
		Long: `Convert an SPDX JSON document to CoSPDX CBOR.

The interning tables are reloaded from the grammar on every conversion.
Field names become integer label codes, enumerated and constant values
become their interned codes, digest hex becomes raw bytes, and timestamps
become tagged epoch seconds. The document is assumed to conform to the
SPDX schema; no validation is performed.`,
		Example: `  # Convert a document
  cospdx conv sbom.spdx.json -g cospdx.cddl

  # Convert to an explicit output path
  cospdx conv sbom.spdx.json -g cospdx.cddl -o sbom.cbor`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.document = args[0]
			}
			return runConv(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.grammar, "grammar", "g", "", "CoSPDX CDDL grammar file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: document path with .cbor extension)")

	return cmd
}

func runConv(opts *convOptions) error {
	if err := prompts.RunPathForm("SPDX document", "e.g., sbom.spdx.json", &opts.document); err != nil {
		return err
	}
	if err := prompts.RunPathForm("Grammar file", "e.g., cospdx.cddl", &opts.grammar); err != nil {
		return err
	}
	if opts.output == "" {
		opts.output = strings.TrimSuffix(opts.document, ".json") + ".cbor"
	}

	grammarFile, err := os.Open(opts.grammar) //nolint:gosec // path is provided by caller
	if err != nil {
		return fmt.Errorf("failed to open grammar: %w", err)
	}
	defer grammarFile.Close() //nolint:errcheck

	tables, err := transcode.LoadTables(grammarFile)
	if err != nil {
		return fmt.Errorf("failed to load interning tables: %w", err)
	}

	docJSON, err := os.ReadFile(opts.document) //nolint:gosec // path is provided by caller
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	encoded, err := transcode.Document(docJSON, tables)
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, encoded, 0o600); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Document", Value: fmt.Sprintf("%s (%d bytes)", opts.document, len(docJSON))},
		{Label: "Output", Value: fmt.Sprintf("%s (%d bytes)", opts.output, len(encoded))},
		{Label: "Ratio", Value: fmt.Sprintf("%.2f", float64(len(encoded))/float64(len(docJSON)))},
	}, "Document converted")
	return nil
}
