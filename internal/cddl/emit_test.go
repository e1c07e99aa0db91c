// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package cddl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit_EndToEnd(t *testing.T) {
	root := mustDecode(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$defs": {
			"Name": {"type": "string", "pattern": "^[a-z]+$"},
			"Person": {
				"type": "object",
				"properties": {
					"name": {"$ref": "#/$defs/Name"},
					"comment": {"$ref": "#/$defs/Name"}
				},
				"required": ["name"]
			}
		},
		"type": "object",
		"properties": {
			"person": {"$ref": "#/$defs/Person"}
		}
	}`)

	out, err := Emit(root)
	require.NoError(t, err)
	grammar := string(out)

	assert.Contains(t, grammar, "; Entry Point\nSPDX_Document = { ?label.person => Person }")
	assert.Contains(t, grammar, `Name = tstr .regexp "^[a-z]+$"`)
	// The optionality marker lands on exactly the optional property, and
	// both property names are replaced by freshly interned label codes.
	assert.Contains(t, grammar, "Person = { label.name => Name, ?label.comment => Name }")
	assert.Contains(t, grammar, "AnyObject = { * any => any }")
	assert.Contains(t, grammar, "; Value mapping for label entries (0-3)")
	assert.Contains(t, grammar, "label.person = 1")
	assert.Contains(t, grammar, "label.name = 2")
	assert.Contains(t, grammar, "label.comment = 3")
	assert.Contains(t, grammar, "; Value mapping for const entries (1000-1000)")
}

func TestEmit_ProfileBlocks(t *testing.T) {
	root := mustDecode(t, `{
		"$defs": {
			"CreationInfo": {"type": "boolean"},
			"software_File": {"type": "boolean"},
			"security_Vulnerability": {"type": "boolean"}
		},
		"type": "object",
		"properties": {}
	}`)

	out, err := Emit(root)
	require.NoError(t, err)
	grammar := string(out)

	software := strings.Index(grammar, "; Software Profile")
	security := strings.Index(grammar, "; Security Profile")
	core := strings.Index(grammar, "; Core Profile")
	require.True(t, software >= 0 && security >= 0 && core >= 0)
	assert.Less(t, software, security)
	assert.Less(t, security, core)

	// Empty profiles print no block header.
	assert.NotContains(t, grammar, "; Dataset Profile")
}

func TestEmit_CanonicalizationOverrides(t *testing.T) {
	root := mustDecode(t, `{
		"$defs": {
			"prop_Hash_hashValue": {"type": "string"},
			"prop_CreationInfo_created": {"type": "string", "pattern": "^\\d{4}"},
			"IRI": {"type": "string", "pattern": "^(?!_:).+:.+$"},
			"BlankNode": {"type": "string", "pattern": "^_:.+$"},
			"prop_ExternalRef_contentType": {"type": "string", "pattern": "^[^\\/]+\\/[^\\/]+$"},
			"prop_CreationInfo_specVersion": {"type": "string"},
			"prop_security_EpssVulnAssessmentRelationship_security_percentile": {"type": "number", "minimum": 0},
			"AnyClass": {"anyOf": [{"$ref": "#/$defs/A"}, {"$ref": "#/$defs/B"}]},
			"SHACLClass": {
				"type": "object",
				"properties": {"type": {"enum": ["first", "second"]}},
				"required": ["type"]
			},
			"A": {"type": "boolean"},
			"B": {"type": "boolean"}
		},
		"type": "object",
		"properties": {}
	}`)

	out, err := Emit(root)
	require.NoError(t, err)
	grammar := string(out)

	assert.Contains(t, grammar, "prop_Hash_hashValue_wrapped = #6.108(bstr) ; Strings in SPDX-JSON, usually hex-encoded")
	assert.Contains(t, grammar, "prop_Hash_hashValue = ~prop_Hash_hashValue_wrapped")
	assert.Contains(t, grammar, "prop_CreationInfo_created = #6.1(uint) ; ISO8601 UTC with second-precision strings in SPDX-JSON")
	assert.Contains(t, grammar, `IRI = tstr .regexp "[^_].*:.+|_[^:].*:.+" ; CoSPDX representation of IRIs`)
	assert.Contains(t, grammar, `BlankNode = tstr .regexp "_:.+" ; CoSPDX representation of blank nodes`)
	assert.Contains(t, grammar, `prop_ExternalRef_contentType = tstr .regexp "[^/]+/[^/]+" ; CoSPDX representation of content types`)
	assert.Contains(t, grammar, `prop_security_EpssVulnAssessmentRelationship_security_percentile = tstr .regexp "-?[0-9]+(\\.[0-9]*)?" ; CoSPDX representation of quantities`)
	assert.Contains(t, grammar, "prop_CreationInfo_specVersion = tstr .regexp \"(0|[1-9][0-9]*)\\\\.")

	assert.Contains(t, grammar, "AnyClass = $AnyClass ; Socket for eventual post-SPDX 3.0.1 extensions")
	assert.Contains(t, grammar, "$AnyClass /= A")
	assert.Contains(t, grammar, "$AnyClass /= B")

	assert.Contains(t, grammar, "SHACLClass = { label.type => $label.type } ; Socket for eventual post-SPDX 3.0.1 extensions")
	assert.Contains(t, grammar, "$label.type /= const.first")
	assert.Contains(t, grammar, "$label.type /= const.second")
}

func TestEmit_UnmappedDefinitionsAreFatalAndRanked(t *testing.T) {
	root := mustDecode(t, `{
		"$defs": {
			"Fine": {"type": "string"},
			"Leaf": {"oneOf": []},
			"Central": {
				"oneOf": [],
				"extraKey": {"$ref": "#/$defs/Fine"}
			}
		},
		"type": "object",
		"properties": {}
	}`)

	out, err := Emit(root)
	assert.Nil(t, out)

	var unmappedErr *UnmappedError
	require.ErrorAs(t, err, &unmappedErr)
	require.Len(t, unmappedErr.Definitions, 2)
	// Ranked by transitive reference count, most central first.
	assert.Equal(t, "Central", unmappedErr.Definitions[0].Name)
	assert.Equal(t, 1, unmappedErr.Definitions[0].TotalRefs)
	assert.Equal(t, "Leaf", unmappedErr.Definitions[1].Name)
}

func TestEmit_NestedUnrecognizedIsQueuedNotFatalMidPass(t *testing.T) {
	root := mustDecode(t, `{
		"$defs": {
			"Bad": {"anyOf": [{"oneOf": []}]},
			"AlsoBad": {"oneOf": []},
			"Fine": {"type": "string"}
		},
		"type": "object",
		"properties": {}
	}`)

	out, err := Emit(root)
	assert.Nil(t, out)

	// An unrecognized node nested inside a composite leaves its enclosing
	// definition unmapped like a top-level one; the pass keeps going so the
	// report covers every such definition.
	var unmappedErr *UnmappedError
	require.ErrorAs(t, err, &unmappedErr)
	require.Len(t, unmappedErr.Definitions, 2)
	names := []string{unmappedErr.Definitions[0].Name, unmappedErr.Definitions[1].Name}
	assert.ElementsMatch(t, []string{"Bad", "AlsoBad"}, names)
}

func TestEmit_MissingDefsTable(t *testing.T) {
	_, err := Emit(mustDecode(t, `{"type": "object", "properties": {}}`))
	assert.Error(t, err)
}

func TestEmit_EntryPointErrorIsFatal(t *testing.T) {
	root := mustDecode(t, `{
		"$defs": {"A": {"type": "string"}},
		"oneOf": []
	}`)

	_, err := Emit(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry point")
}
