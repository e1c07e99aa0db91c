// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

// Package jschema provides JSON Schema loading, parsing, and traversal
// utilities over raw schema nodes with preserved key order.
package jschema

import (
	"bytes"
	"fmt"
	"iter"

	json "github.com/goccy/go-json"
)

// Number is a JSON number kept in its source form, so that schema bounds
// like "minimum: 0" survive without float conversion.
type Number = json.Number

// Node is one schema node: an ordered mapping from string keys to values.
// Values are *Node, []any (elements *Node or scalars), string, Number,
// bool, or nil. A node carries no explicit tag; its shape is inferred
// structurally by the compiler.
type Node struct {
	keys   []string
	values map[string]any
}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{values: make(map[string]any)}
}

// Set assigns a value to a key, appending the key to the order if new.
func (n *Node) Set(key string, value any) {
	if _, ok := n.values[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.values[key] = value
}

// Get returns the value for a key and whether the key is present.
func (n *Node) Get(key string) (any, bool) {
	v, ok := n.values[key]
	return v, ok
}

// Has reports whether the key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.values[key]
	return ok
}

// Str returns the string value for a key, or "" if absent or not a string.
func (n *Node) Str(key string) string {
	s, _ := n.values[key].(string)
	return s
}

// Child returns the child node for a key, or nil if absent or not a node.
func (n *Node) Child(key string) *Node {
	c, _ := n.values[key].(*Node)
	return c
}

// List returns the list value for a key, or nil.
func (n *Node) List(key string) []any {
	l, _ := n.values[key].([]any)
	return l
}

// Num returns the numeric value for a key and whether it was present and
// numeric.
func (n *Node) Num(key string) (Number, bool) {
	v, ok := n.values[key].(Number)
	return v, ok
}

// Keys returns the keys in insertion order. The slice must not be mutated.
func (n *Node) Keys() []string {
	return n.keys
}

// Len returns the number of keys.
func (n *Node) Len() int {
	return len(n.keys)
}

// Entries iterates over (key, value) pairs in insertion order.
func (n *Node) Entries() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range n.keys {
			if !yield(key, n.values[key]) {
				return
			}
		}
	}
}

// KeysExactly reports whether the node's key set equals the given set.
func (n *Node) KeysExactly(names ...string) bool {
	if len(n.keys) != len(names) {
		return false
	}
	for _, name := range names {
		if !n.Has(name) {
			return false
		}
	}
	return true
}

// KeysWithin reports whether every key of the node is in the given set.
func (n *Node) KeysWithin(names ...string) bool {
	for _, key := range n.keys {
		found := false
		for _, name := range names {
			if key == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// KeysInclude reports whether every given name is a key of the node.
func (n *Node) KeysInclude(names ...string) bool {
	for _, name := range names {
		if !n.Has(name) {
			return false
		}
	}
	return true
}

// String renders the node as compact JSON, for diagnostics.
func (n *Node) String() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range n.keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%q: ", key)
		switch v := n.values[key].(type) {
		case *Node:
			buf.WriteString(v.String())
		case []any:
			fmt.Fprintf(&buf, "[%d items]", len(v))
		case string:
			fmt.Fprintf(&buf, "%q", v)
		default:
			fmt.Fprintf(&buf, "%v", v)
		}
	}
	buf.WriteByte('}')
	return buf.String()
}

// DecodeJSON parses a JSON document into a Node, preserving object key
// order via the token stream (the same technique the key-order extractor
// uses, applied to the whole tree).
func DecodeJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	value, err := decodeValue(dec, tok)
	if err != nil {
		return nil, err
	}
	node, ok := value.(*Node)
	if !ok {
		return nil, fmt.Errorf("document root is not an object")
	}
	return node, nil
}

func decodeValue(dec *json.Decoder, tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		node := NewNode()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is not a string: %v", keyTok)
			}
			valTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			value, err := decodeValue(dec, valTok)
			if err != nil {
				return nil, err
			}
			node.Set(key, value)
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return node, nil
	case '[':
		var items []any
		for dec.More() {
			itemTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			item, err := decodeValue(dec, itemTok)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// Defs returns the schema's top-level definition table.
func Defs(root *Node) (*Node, error) {
	defs := root.Child("$defs")
	if defs == nil {
		return nil, fmt.Errorf("schema has no $defs table")
	}
	return defs, nil
}

// TopLevel returns the entry-point node: every top-level schema key that is
// not a schema-metadata key (prefixed with '$').
func TopLevel(root *Node) *Node {
	top := NewNode()
	for key, value := range root.Entries() {
		if len(key) > 0 && key[0] == '$' {
			continue
		}
		top.Set(key, value)
	}
	return top
}
