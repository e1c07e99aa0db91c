// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package transcode

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
)

// epochTag is the CBOR tag for epoch-based date/time (RFC 8949 §3.4.2).
const epochTag = 1

var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// DecodeDocument parses an SPDX JSON document. Numbers are kept in source
// form so quantities are never coerced through float64.
func DecodeDocument(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// Convert recursively rewrites a document against the interning tables:
// field names become their label codes where one exists (unknown fields
// keep their name, for forward compatibility), nested objects and
// object-valued array elements are rewritten in place, and field values go
// through the per-field canonicalization rules. The input document is not
// validated against the schema; the caller supplies a conforming document.
func Convert(doc map[string]any, tables *Tables) (map[any]any, error) {
	out := make(map[any]any, len(doc))
	for key, value := range doc {
		var val any = value
		switch v := value.(type) {
		case map[string]any:
			converted, err := Convert(v, tables)
			if err != nil {
				return nil, err
			}
			val = converted
		case []any:
			items := make([]any, len(v))
			for i, item := range v {
				if child, ok := item.(map[string]any); ok {
					converted, err := Convert(child, tables)
					if err != nil {
						return nil, err
					}
					items[i] = converted
				} else {
					items[i] = normalize(item)
				}
			}
			val = items
		}

		converted, err := convertValue(key, val, tables)
		if err != nil {
			return nil, err
		}

		var outKey any = key
		if code, ok := tables.Labels[key]; ok {
			outKey = code
		}
		out[outKey] = converted
	}
	return out, nil
}

// convertValue applies the per-field value rules: digest hex to raw bytes,
// timestamp text to tagged epoch seconds, interned constant and enumerated
// values to their codes, anything else unchanged.
func convertValue(key string, value any, tables *Tables) (any, error) {
	if key == "hashValue" {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("digest field %q is not a string: %v", key, value)
		}
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("malformed hex in digest field %q: %w", key, err)
		}
		return raw, nil
	}

	if key == "created" || strings.HasSuffix(key, "Time") {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("timestamp field %q is not a string: %v", key, value)
		}
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("unparseable timestamp in field %q: %w", key, err)
		}
		return cbor.Tag{Number: epochTag, Content: ts.Unix()}, nil
	}

	if s, ok := value.(string); ok {
		if code, ok := tables.Consts[s]; ok {
			return code, nil
		}
		if code, ok := tables.Enums[s]; ok {
			return code, nil
		}
	}

	return normalize(value), nil
}

// normalize converts parser number tokens into concrete CBOR-encodable
// numbers.
func normalize(value any) any {
	n, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// Marshal encodes a converted document as deterministic CBOR, so repeated
// conversions of the same document are byte-identical.
func Marshal(doc map[any]any) ([]byte, error) {
	return encMode.Marshal(doc)
}

// Document converts a JSON document against a grammar's tables and returns
// the CBOR encoding. Nothing is emitted on error; a partially converted
// document never escapes.
func Document(docJSON []byte, tables *Tables) ([]byte, error) {
	doc, err := DecodeDocument(docJSON)
	if err != nil {
		return nil, err
	}
	converted, err := Convert(doc, tables)
	if err != nil {
		return nil, err
	}
	return Marshal(converted)
}
