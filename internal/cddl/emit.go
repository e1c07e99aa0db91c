// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package cddl

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/achamayou/draft-chamayou-cospdx/internal/jschema"
)

const grammarHeader = "; https://raw.githubusercontent.com/achamayou/draft-chamayou-cospdx/refs/heads/main/cospdx.cddl"

// UnmappedError reports definitions left without a production after a full
// compilation pass, ranked by transitive reference count so the most
// structurally central ones come first. A non-empty unmapped set is always
// fatal: an incomplete grammar would silently under-specify the binary
// format.
type UnmappedError struct {
	Definitions []UnmappedDefinition
}

// UnmappedDefinition is one definition that matched no shape variant.
type UnmappedDefinition struct {
	Name      string
	TotalRefs int
}

func (e *UnmappedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d definitions could not be mapped:", len(e.Definitions))
	for _, d := range e.Definitions {
		fmt.Fprintf(&b, "\n  %s (%d transitive references)", d.Name, d.TotalRefs)
	}
	return b.String()
}

// Emit compiles a full schema into the CoSPDX CDDL grammar text: the entry
// point production, one block of productions per non-empty profile, the
// shared AnyObject fallback, then both interning tables.
func Emit(root *jschema.Node) ([]byte, error) {
	defs, err := jschema.Defs(root)
	if err != nil {
		return nil, err
	}

	compiler := NewCompiler()
	grouping := NewGrouping(defs)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n", grammarHeader)

	// The whole-document shape is an entry point built from every
	// top-level key that is not schema metadata.
	top := jschema.TopLevel(root)
	entry, err := compiler.Expr(top)
	if err != nil {
		return nil, fmt.Errorf("in entry point: %w", err)
	}
	fmt.Fprintf(&buf, "; Entry Point\nSPDX_Document = %s\n\n", entry)

	var unmapped []UnmappedDefinition
	for profileName, definitions := range grouping.Profiles() {
		if len(definitions) == 0 {
			// Not all profiles define types.
			continue
		}
		fmt.Fprintf(&buf, "; %s Profile\n\n", profileName)
		for _, def := range definitions {
			err := emitDefinition(&buf, compiler, def)
			if errors.Is(err, ErrUnrecognized) {
				// An unrecognized node anywhere in the definition, top
				// level or nested, leaves it without a production. The
				// pass continues so every unmapped definition gets
				// collected and ranked in one report.
				unmapped = append(unmapped, UnmappedDefinition{
					Name:      def.Name,
					TotalRefs: jschema.TotalRefs(def.Name, defs),
				})
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("in definition %s: %w", def.Name, err)
			}
		}
		buf.WriteByte('\n')
	}

	fmt.Fprintf(&buf, "AnyObject = { * any => any }\n\n")
	fmt.Fprintf(&buf, "; %s\n%s\n\n", compiler.Labels.Description(), compiler.Labels.LabelDefinitions(grouping))
	fmt.Fprintf(&buf, "; %s\n%s\n", compiler.Consts.Description(), compiler.Consts.Definitions())

	if len(unmapped) > 0 {
		sort.SliceStable(unmapped, func(i, j int) bool {
			return unmapped[i].TotalRefs > unmapped[j].TotalRefs
		})
		return nil, &UnmappedError{Definitions: unmapped}
	}
	return buf.Bytes(), nil
}

// emitDefinition prints the production(s) for one recognized definition,
// applying the canonicalization overrides where the name calls for one.
func emitDefinition(buf *bytes.Buffer, compiler *Compiler, def Definition) error {
	name := def.Name
	switch {
	case digestValueTypes[name]:
		fmt.Fprintf(buf, "%s_wrapped = #6.108(bstr) ; Strings in SPDX-JSON, usually hex-encoded\n", name)
		fmt.Fprintf(buf, "%s = ~%s_wrapped\n", name, name)

	case datetimeTypes[name]:
		fmt.Fprintf(buf, "%s = #6.1(uint) ; ISO8601 UTC with second-precision strings in SPDX-JSON\n", name)

	case extensibleTypes[name]:
		expr, err := compiler.Expr(def.Node)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "%s = $%s ; Socket for eventual post-SPDX 3.0.1 extensions\n", name, name)
		for _, value := range strings.Split(expr, " / ") {
			fmt.Fprintf(buf, "$%s /= %s\n", name, strings.TrimSpace(value))
		}

	case name == "SHACLClass":
		expr, err := compiler.Expr(def.Node)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "%s = { label.type => $label.type } ; Socket for eventual post-SPDX 3.0.1 extensions\n", name)
		for _, value := range typeChoices(expr) {
			fmt.Fprintf(buf, "$label.type /= %s\n", value)
		}

	case quantityTypes[name]:
		// SPDX allows either float or strings matching the decimal-number
		// pattern. CoSPDX must make one choice for canonicality and takes
		// the string representation, which avoids precision loss when a
		// document is converted back to SPDX-JSON.
		fmt.Fprintf(buf, "%s = %s ; CoSPDX representation of quantities\n", name, patternExpr(QuantityPattern))

	case name == "BlankNode":
		fmt.Fprintf(buf, "%s = %s ; CoSPDX representation of blank nodes\n", name, patternExpr(BlankNodePattern))

	case contentTypes[name]:
		fmt.Fprintf(buf, "%s = %s ; CoSPDX representation of content types\n", name, patternExpr(ContentTypePattern))

	case name == "IRI":
		fmt.Fprintf(buf, "%s = %s ; CoSPDX representation of IRIs\n", name, patternExpr(IRIPattern))

	case semverTypes[name]:
		fmt.Fprintf(buf, "%s = %s ; CoSPDX representation of versions\n", name, patternExpr(SemverPattern))

	default:
		expr, err := compiler.Expr(def.Node)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "%s = %s\n", name, expr)
	}
	return nil
}

// typeChoices extracts the alternation choices of the type field from an
// object expression like "{ label.type => A / B }".
func typeChoices(expr string) []string {
	_, after, ok := strings.Cut(expr, " => ")
	if !ok {
		return nil
	}
	before, _, _ := strings.Cut(after, "}")
	var choices []string
	for _, value := range strings.Split(before, " / ") {
		choices = append(choices, strings.TrimSpace(value))
	}
	return choices
}
