// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package jschema

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_JSON(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))
	root, err := loader.LoadFile("simple.json")
	require.NoError(t, err)

	defs, err := Defs(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Person"}, defs.Keys())

	person := defs.Child("Person")
	require.NotNil(t, person)
	assert.Equal(t, []string{"name", "age"}, person.Child("properties").Keys())
}

func TestLoadFile_YAML(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))
	root, err := loader.LoadFile("simple.yaml")
	require.NoError(t, err)

	props := root.Child("properties")
	require.NotNil(t, props)
	// Mapping order survives YAML decoding too.
	assert.Equal(t, []string{"zebra", "apple"}, props.Keys())

	minimum, ok := props.Child("apple").Num("minimum")
	require.True(t, ok)
	assert.Equal(t, "0", minimum.String())
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"))
	_, err := loader.LoadFile("simple.toml")
	assert.Error(t, err)
}

func TestDecode_ByExtension(t *testing.T) {
	node, err := Decode([]byte(`{"type": "string"}`), "schema.json")
	require.NoError(t, err)
	assert.Equal(t, "string", node.Str("type"))

	node, err = Decode([]byte("type: string\n"), "schema.yaml")
	require.NoError(t, err)
	assert.Equal(t, "string", node.Str("type"))

	_, err = Decode([]byte("whatever"), "schema.txt")
	assert.Error(t, err)
}
