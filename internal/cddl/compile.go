// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package cddl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/achamayou/draft-chamayou-cospdx/internal/jschema"
)

// Namespace offsets for the two interning tables. Disjoint ranges let a
// decoder tell field labels from constant values positionally.
const (
	LabelOffset = 0
	ConstOffset = 1000
)

// ErrUnrecognized marks a node that matched no known shape variant.
var ErrUnrecognized = errors.New("unrecognized schema shape")

// UnsupportedError reports a recognized shape carrying a detail the
// translation does not support (an upper bound on a number, a negation of
// anything but one constant, a non-trivial else branch). These fail loudly
// rather than silently truncating the grammar.
type UnsupportedError struct {
	Detail string
	Node   *jschema.Node
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported schema: %s: %s", e.Detail, e.Node)
}

func unsupported(detail string, node *jschema.Node) error {
	return &UnsupportedError{Detail: detail, Node: node}
}

// Compiler translates classified schema nodes into CDDL type expressions.
// It owns the two interning tables for the run; construct one Compiler per
// compilation and thread it through, there is no shared global state.
type Compiler struct {
	Labels *Interner
	Consts *Interner
}

// NewCompiler creates a Compiler with fresh interning tables at the
// standard offsets.
func NewCompiler() *Compiler {
	return &Compiler{
		Labels: NewInterner("label", LabelOffset),
		Consts: NewInterner("const", ConstOffset),
	}
}

// Expr translates a schema node into a CDDL type expression.
func (c *Compiler) Expr(node *jschema.Node) (string, error) {
	return c.expr(node, false)
}

// expr translates a node. In unwrap mode, group-producing shapes return
// their bare member list (and references their unwrapped "~Name" form) so
// the caller can splice them into an enclosing group.
func (c *Compiler) expr(node *jschema.Node, unwrap bool) (string, error) {
	switch shape := Classify(node); shape {
	case ShapeString:
		return c.stringExpr(node)
	case ShapeNumber:
		return c.numberExpr(node)
	case ShapeInteger:
		return c.integerExpr(node)
	case ShapeAnyOf:
		return c.anyOfExpr(node.List("anyOf"), node)
	case ShapeEnum:
		return c.enumExpr(node)
	case ShapeBoolean:
		return "bool", nil
	case ShapeRef:
		return refExpr(node, unwrap)
	case ShapeConst:
		return c.constExpr(node)
	case ShapeObject:
		return c.objectExpr(node, unwrap)
	case ShapeAllOf:
		return c.allOfExpr(node, unwrap)
	case ShapeArray:
		return c.arrayExpr(node)
	case ShapeIfThenElse:
		return c.ifThenElseExpr(node)
	case ShapeNotConst:
		// Not directly representable in CDDL; this neutralizes the one
		// "anything but this constant" idiom in extension_Extension.
		return "", nil
	case ShapeIfThenElseObject:
		return c.ifThenElseObjectExpr(node)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnrecognized, node)
	}
}

// escapePattern doubles backslashes: '\' must be escaped in CDDL regexps.
func escapePattern(pattern string) string {
	return strings.ReplaceAll(pattern, `\`, `\\`)
}

func patternExpr(pattern string) string {
	return fmt.Sprintf(`tstr .regexp "%s"`, escapePattern(pattern))
}

func (c *Compiler) stringExpr(node *jschema.Node) (string, error) {
	if node.Has("pattern") {
		return patternExpr(node.Str("pattern")), nil
	}

	if node.Has("allOf") {
		// AND-ed single-pattern fragments become an alternation of pattern
		// productions. Alternation is weaker than conjunction; this is a
		// deliberate over-approximation.
		var parts []string
		for _, value := range node.List("allOf") {
			sub, ok := value.(*jschema.Node)
			if !ok || !sub.KeysExactly("pattern") {
				return "", unsupported("allOf member of a string must be a single pattern", node)
			}
			parts = append(parts, patternExpr(sub.Str("pattern")))
		}
		return strings.Join(parts, " / "), nil
	}

	return "tstr", nil
}

func (c *Compiler) numberExpr(node *jschema.Node) (string, error) {
	if node.Has("maximum") {
		return "", unsupported("maximum bound on a number is not representable", node)
	}
	minimum, ok := node.Num("minimum")
	if !ok {
		return "float", nil
	}
	if negative(minimum) {
		return "float", nil
	}
	return fmt.Sprintf("float .ge %s", minimum), nil
}

func (c *Compiler) integerExpr(node *jschema.Node) (string, error) {
	if node.Has("maximum") {
		return "", unsupported("maximum bound on an integer is not representable", node)
	}
	minimum, ok := node.Num("minimum")
	if !ok || negative(minimum) {
		return "int", nil
	}
	if minimum.String() == "0" {
		return "uint", nil
	}
	return fmt.Sprintf("uint .ge %s", minimum), nil
}

func negative(n jschema.Number) bool {
	return strings.HasPrefix(n.String(), "-")
}

func (c *Compiler) anyOfExpr(members []any, node *jschema.Node) (string, error) {
	var parts []string
	for _, value := range members {
		sub, ok := value.(*jschema.Node)
		if !ok {
			return "", unsupported("anyOf member is not a schema node", node)
		}
		part, err := c.expr(sub, false)
		if err != nil {
			return "", fmt.Errorf("in anyOf: %w", err)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " / "), nil
}

func (c *Compiler) enumExpr(node *jschema.Node) (string, error) {
	var parts []string
	for _, value := range node.List("enum") {
		switch v := value.(type) {
		case string:
			interned, err := c.Consts.Get(v)
			if err != nil {
				return "", err
			}
			parts = append(parts, interned)
		case jschema.Number:
			parts = append(parts, v.String())
		case bool:
			parts = append(parts, fmt.Sprintf("%t", v))
		default:
			return "", unsupported("enum value is neither string nor literal", node)
		}
	}
	return strings.Join(parts, " / "), nil
}

func refExpr(node *jschema.Node, unwrap bool) (string, error) {
	ref := node.Str("$ref")
	idx := strings.LastIndex(ref, "/")
	if idx < 0 || ref[:idx] != "#/$defs" {
		return "", unsupported("reference outside #/$defs", node)
	}
	name := ref[idx+1:]
	if unwrap {
		return "~" + name, nil
	}
	return name, nil
}

func (c *Compiler) constExpr(node *jschema.Node) (string, error) {
	value, ok := node.Get("const")
	s, isString := value.(string)
	if !ok || !isString {
		return "", unsupported("const value is not a string", node)
	}
	return c.Consts.Get(s)
}

func (c *Compiler) objectExpr(node *jschema.Node, unwrap bool) (string, error) {
	if node.Has("anyOf") {
		return c.anyOfExpr(node.List("anyOf"), node)
	}

	if props := node.Child("properties"); props != nil {
		required := make(map[string]bool)
		for _, value := range node.List("required") {
			if name, ok := value.(string); ok {
				required[name] = true
			}
		}
		var parts []string
		for propName, value := range props.Entries() {
			propSchema, ok := value.(*jschema.Node)
			if !ok {
				return "", unsupported("property schema is not a node", node)
			}
			part, err := c.expr(propSchema, false)
			if err != nil {
				return "", fmt.Errorf("in property %q: %w", propName, err)
			}
			optionality := "?"
			if required[propName] {
				optionality = ""
			}
			internedName, err := c.Labels.Get(propName)
			if err != nil {
				return "", err
			}
			parts = append(parts, fmt.Sprintf("%s%s => %s", optionality, internedName, part))
		}
		if len(parts) == 0 && unevaluatedAllowed(node) {
			// Hundreds of otherwise-empty object productions collapse to
			// one shared AnyObject.
			if unwrap {
				return "~AnyObject", nil
			}
			return "AnyObject", nil
		}
		return group(parts, unwrap), nil
	}

	if node.Has("required") {
		// Only a required-field list, no per-field type information.
		var parts []string
		for _, value := range node.List("required") {
			propName, ok := value.(string)
			if !ok {
				return "", unsupported("required entry is not a string", node)
			}
			internedName, err := c.Labels.Get(propName)
			if err != nil {
				return "", err
			}
			parts = append(parts, internedName+" => any")
		}
		return group(parts, unwrap), nil
	}

	return "", unsupported("object with neither properties nor required", node)
}

func unevaluatedAllowed(node *jschema.Node) bool {
	value, ok := node.Get("unevaluatedProperties")
	if !ok {
		return true
	}
	allowed, isBool := value.(bool)
	return !isBool || allowed
}

func group(parts []string, unwrap bool) string {
	inner := strings.Join(parts, ", ")
	if unwrap {
		return inner
	}
	return "{ " + inner + " }"
}

func (c *Compiler) allOfExpr(node *jschema.Node, unwrap bool) (string, error) {
	var parts []string
	for _, value := range node.List("allOf") {
		sub, ok := value.(*jschema.Node)
		if !ok {
			return "", unsupported("allOf member is not a schema node", node)
		}
		part, err := c.expr(sub, true)
		if err != nil {
			return "", fmt.Errorf("in allOf: %w", err)
		}
		parts = append(parts, part)
	}
	return group(parts, unwrap), nil
}

func (c *Compiler) arrayExpr(node *jschema.Node) (string, error) {
	items := node.Child("items")
	if items == nil {
		return "", unsupported("array without an items schema", node)
	}
	itemExpr, err := c.expr(items, false)
	if err != nil {
		return "", fmt.Errorf("in array items: %w", err)
	}
	if minItems, ok := node.Num("minItems"); ok && minItems.String() != "0" {
		return fmt.Sprintf("[ + %s ]", itemExpr), nil
	}
	return fmt.Sprintf("[ * %s ]", itemExpr), nil
}

// checkTrivialElse enforces that an "else" branch, when present, is the
// negative-acknowledgement marker idiom ("Not a ..."); anything else is
// unsupported.
func checkTrivialElse(node *jschema.Node) error {
	value, ok := node.Get("else")
	if !ok || value == nil {
		return nil
	}
	elseNode, isNode := value.(*jschema.Node)
	if !isNode {
		return unsupported("else branch is not a schema node", node)
	}
	if elseNode.Len() == 0 {
		return nil
	}
	if !elseNode.KeysExactly("const") {
		return unsupported("else branch is not a single constant", node)
	}
	marker, _ := elseNode.Get("const")
	if s, isString := marker.(string); !isString || !strings.HasPrefix(s, "Not a") {
		return unsupported("else branch is not a negative-acknowledgement marker", node)
	}
	return nil
}

func (c *Compiler) ifThenElseExpr(node *jschema.Node) (string, error) {
	var parts []string
	for _, branch := range []string{"if", "then"} {
		sub, ok := node.Get(branch)
		branchNode, isNode := sub.(*jschema.Node)
		if !ok || !isNode {
			return "", unsupported(branch+" branch is not a schema node", node)
		}
		part, err := c.expr(branchNode, true)
		if err != nil {
			return "", fmt.Errorf("in %s: %w", branch, err)
		}
		parts = append(parts, part)
	}
	if err := checkTrivialElse(node); err != nil {
		return "", err
	}
	return "{ " + simplifyGroup(parts) + " }", nil
}

func (c *Compiler) ifThenElseObjectExpr(node *jschema.Node) (string, error) {
	var firstPart []string
	for _, branch := range []string{"if", "then"} {
		branchNode := node.Child(branch)
		if branchNode == nil {
			return "", unsupported(branch+" branch is not a schema node", node)
		}
		part, err := c.expr(branchNode, true)
		if err != nil {
			return "", fmt.Errorf("in %s: %w", branch, err)
		}
		firstPart = append(firstPart, part)
	}

	elseNode := node.Child("else")
	if elseNode == nil {
		return "", unsupported("else branch is not a schema node", node)
	}
	elsePart, err := c.expr(elseNode, true)
	if err != nil {
		return "", fmt.Errorf("in else: %w", err)
	}

	return fmt.Sprintf("{ %s } / { %s }", simplifyGroup(firstPart), simplifyGroup([]string{elsePart})), nil
}
