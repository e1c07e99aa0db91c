// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

// Package cddl compiles an SPDX JSON Schema into the CoSPDX CDDL grammar:
// it classifies schema nodes into a closed set of shapes, translates each
// shape into a CDDL type expression, interns field names and constant
// values as small integers, and emits one production per definition.
package cddl

import (
	"github.com/achamayou/draft-chamayou-cospdx/internal/jschema"
)

// Shape is the structurally-recognized category of a schema node.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeString
	ShapeNumber
	ShapeInteger
	ShapeAnyOf
	ShapeEnum
	ShapeBoolean
	ShapeRef
	ShapeConst
	ShapeObject
	ShapeAllOf
	ShapeArray
	ShapeIfThenElse
	ShapeNotConst
	ShapeIfThenElseObject
)

var shapeNames = map[Shape]string{
	ShapeUnrecognized:     "unrecognized",
	ShapeString:           "string",
	ShapeNumber:           "number",
	ShapeInteger:          "integer",
	ShapeAnyOf:            "anyOf",
	ShapeEnum:             "enum",
	ShapeBoolean:          "boolean",
	ShapeRef:              "ref",
	ShapeConst:            "const",
	ShapeObject:           "object",
	ShapeAllOf:            "allOf",
	ShapeArray:            "array",
	ShapeIfThenElse:       "if/then/else",
	ShapeNotConst:         "not-const",
	ShapeIfThenElseObject: "if/then/else object",
}

func (s Shape) String() string {
	return shapeNames[s]
}

// classifiers lists one recognizer per shape in priority order. The first
// match wins: some key sets are strict subsets of others (a reference-only
// node is a subset of an object-with-reference node), and this ordering
// encodes the intended precedence.
var classifiers = []struct {
	shape Shape
	match func(*jschema.Node) bool
}{
	{ShapeString, isString},
	{ShapeNumber, isNumber},
	{ShapeInteger, isInteger},
	{ShapeAnyOf, isAnyOf},
	{ShapeEnum, isEnum},
	{ShapeBoolean, isBoolean},
	{ShapeRef, isRef},
	{ShapeConst, isConst},
	{ShapeObject, isObject},
	{ShapeAllOf, isAllOf},
	{ShapeArray, isArray},
	{ShapeIfThenElse, isIfThenElse},
	{ShapeNotConst, isNotConst},
	{ShapeIfThenElseObject, isIfThenElseObject},
}

// Classify decides which shape variant a schema node is. It is total: it
// returns exactly one variant, or ShapeUnrecognized.
func Classify(node *jschema.Node) Shape {
	for _, c := range classifiers {
		if c.match(node) {
			return c.shape
		}
	}
	return ShapeUnrecognized
}

func isString(n *jschema.Node) bool {
	return n.Str("type") == "string" && n.KeysWithin("type", "pattern", "allOf")
}

func isNumber(n *jschema.Node) bool {
	return n.Str("type") == "number" && n.KeysWithin("type", "minimum", "maximum")
}

func isInteger(n *jschema.Node) bool {
	return n.Str("type") == "integer" && n.KeysWithin("type", "minimum", "maximum")
}

func isAnyOf(n *jschema.Node) bool {
	return n.KeysExactly("anyOf")
}

func isEnum(n *jschema.Node) bool {
	return n.KeysExactly("enum")
}

func isBoolean(n *jschema.Node) bool {
	return n.Str("type") == "boolean"
}

func isRef(n *jschema.Node) bool {
	if n.KeysExactly("$ref") {
		return true
	}
	return n.KeysExactly("$ref", "type", "unevaluatedProperties") &&
		n.Str("type") == "object"
}

func isConst(n *jschema.Node) bool {
	return n.KeysExactly("const")
}

func isObject(n *jschema.Node) bool {
	if n.Str("type") != "object" {
		return false
	}
	if !n.KeysWithin("type", "unevaluatedProperties", "anyOf", "required", "properties") {
		return false
	}
	// An explicit property list and a union of shapes are exclusive.
	return !(n.Has("properties") && n.Has("anyOf"))
}

func isAllOf(n *jschema.Node) bool {
	return n.KeysExactly("allOf")
}

func isArray(n *jschema.Node) bool {
	return n.Str("type") == "array" &&
		n.KeysWithin("type", "items", "minItems", "description")
}

func isIfThenElse(n *jschema.Node) bool {
	return n.KeysExactly("if", "then", "else")
}

func isNotConst(n *jschema.Node) bool {
	if !n.KeysExactly("not") {
		return false
	}
	child := n.Child("not")
	return child != nil && isConst(child)
}

func isIfThenElseObject(n *jschema.Node) bool {
	return n.Str("type") == "object" &&
		n.KeysWithin("type", "unevaluatedProperties", "required", "properties", "if", "then", "else") &&
		n.KeysInclude("if", "then", "else")
}
