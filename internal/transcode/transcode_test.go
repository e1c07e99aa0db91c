// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package transcode

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyTables() *Tables {
	return &Tables{
		Labels: map[string]int{},
		Enums:  map[string]int{},
		Consts: map[string]any{},
	}
}

func TestConvert_LabelSubstitution(t *testing.T) {
	tables := emptyTables()
	tables.Labels["name"] = 2

	doc, err := DecodeDocument([]byte(`{"name": "thing", "unknownField": "kept"}`))
	require.NoError(t, err)

	out, err := Convert(doc, tables)
	require.NoError(t, err)

	assert.Equal(t, "thing", out[2])
	// Fields the schema does not know keep their textual name.
	assert.Equal(t, "kept", out["unknownField"])
}

func TestConvert_DigestHexToBytes(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"hashValue": "deadbeef"}`))
	require.NoError(t, err)

	out, err := Convert(doc, emptyTables())
	require.NoError(t, err)

	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, out["hashValue"])
}

func TestConvert_MalformedDigestIsFatal(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"hashValue": "xyz"}`))
	require.NoError(t, err)

	_, err = Convert(doc, emptyTables())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hashValue")
}

func TestConvert_TimestampToTaggedEpoch(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{
		"created": "2024-01-01T00:00:00Z",
		"builtTime": "2024-01-01T01:00:00+01:00"
	}`))
	require.NoError(t, err)

	out, err := Convert(doc, emptyTables())
	require.NoError(t, err)

	assert.Equal(t, cbor.Tag{Number: 1, Content: int64(1704067200)}, out["created"])
	// A literal 'Z' and an equivalent explicit offset give the same epoch.
	assert.Equal(t, cbor.Tag{Number: 1, Content: int64(1704067200)}, out["builtTime"])
}

func TestConvert_UnparseableTimestampIsFatal(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"created": "yesterday"}`))
	require.NoError(t, err)

	_, err = Convert(doc, emptyTables())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created")
}

func TestConvert_ConstAndEnumSubstitution(t *testing.T) {
	tables := emptyTables()
	tables.Consts["noAssertion"] = int64(1001)
	tables.Enums["contains"] = 500

	doc, err := DecodeDocument([]byte(`{
		"copyrightText": "noAssertion",
		"relationshipType": "contains",
		"comment": "free text"
	}`))
	require.NoError(t, err)

	out, err := Convert(doc, tables)
	require.NoError(t, err)

	assert.Equal(t, int64(1001), out["copyrightText"])
	assert.Equal(t, 500, out["relationshipType"])
	assert.Equal(t, "free text", out["comment"])
}

func TestConvert_RecursesIntoObjectsAndArrays(t *testing.T) {
	tables := emptyTables()
	tables.Labels["name"] = 2

	doc, err := DecodeDocument([]byte(`{
		"creationInfo": {"name": "tool"},
		"element": [{"name": "pkg"}, "scalar", 7]
	}`))
	require.NoError(t, err)

	out, err := Convert(doc, tables)
	require.NoError(t, err)

	inner, ok := out["creationInfo"].(map[any]any)
	require.True(t, ok)
	assert.Equal(t, "tool", inner[2])

	items, ok := out["element"].([]any)
	require.True(t, ok)
	first, ok := items[0].(map[any]any)
	require.True(t, ok)
	assert.Equal(t, "pkg", first[2])
	assert.Equal(t, "scalar", items[1])
	assert.Equal(t, int64(7), items[2])
}

func TestConvert_QuantityStringsStayStrings(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"percentile": "0.975", "score": 7.5}`))
	require.NoError(t, err)

	out, err := Convert(doc, emptyTables())
	require.NoError(t, err)

	// The numeric-looking string is never coerced to floating point.
	assert.Equal(t, "0.975", out["percentile"])
	assert.Equal(t, 7.5, out["score"])
}

func TestMarshal_Deterministic(t *testing.T) {
	tables := emptyTables()
	tables.Labels["a"] = 1
	tables.Labels["b"] = 2

	docJSON := []byte(`{"a": "x", "b": "y", "c": {"a": "z"}}`)

	first, err := Document(docJSON, tables)
	require.NoError(t, err)
	second, err := Document(docJSON, tables)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDocument_EncodesIntegerKeyedMap(t *testing.T) {
	tables := emptyTables()
	tables.Labels["name"] = 2

	out, err := Document([]byte(`{"name": "x"}`), tables)
	require.NoError(t, err)

	var decoded map[any]any
	require.NoError(t, cbor.Unmarshal(out, &decoded))
	// CBOR decodes integer keys as uint64.
	assert.Equal(t, "x", decoded[uint64(2)])
}

func TestDocument_NoPartialOutputOnError(t *testing.T) {
	out, err := Document([]byte(`{"hashValue": "nothex"}`), emptyTables())
	assert.Error(t, err)
	assert.Nil(t, out)
}
