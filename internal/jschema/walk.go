// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package jschema

import (
	"iter"
	"strings"
)

// Walk returns an iterator over every (key, scalar) pair in the node tree.
// It descends into child nodes and into node-valued elements of sequences;
// scalar sequence elements are not yielded. This is a structural walk over
// the closed set of node shapes (mapping, sequence, scalar), not a
// schema-semantic one.
func Walk(node *Node) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		walk(node, yield)
	}
}

func walk(node *Node, yield func(string, any) bool) bool {
	for key, value := range node.Entries() {
		switch v := value.(type) {
		case *Node:
			if !walk(v, yield) {
				return false
			}
		case []any:
			for _, item := range v {
				if child, ok := item.(*Node); ok {
					if !walk(child, yield) {
						return false
					}
				}
			}
		default:
			if !yield(key, value) {
				return false
			}
		}
	}
	return true
}

// Refs counts the $ref occurrences in one node.
func Refs(node *Node) int {
	count := 0
	for key := range Walk(node) {
		if key == "$ref" {
			count++
		}
	}
	return count
}

// TotalRefs counts every $ref edge transitively reachable from the named
// definition. Edges are counted per occurrence, not per distinct target; a
// visited set guarantees termination on cyclic reference graphs.
func TotalRefs(name string, defs *Node) int {
	count := 0
	seen := make(map[string]bool)
	unresolved := []string{name}
	for len(unresolved) > 0 {
		nodeName := unresolved[len(unresolved)-1]
		unresolved = unresolved[:len(unresolved)-1]
		seen[nodeName] = true
		node := defs.Child(nodeName)
		if node == nil {
			continue
		}
		for key, value := range Walk(node) {
			if key != "$ref" {
				continue
			}
			count++
			ref, ok := value.(string)
			if !ok {
				continue
			}
			refName := ref[strings.LastIndex(ref, "/")+1:]
			if !seen[refName] {
				seen[refName] = true
				unresolved = append(unresolved, refName)
			}
		}
	}
	return count
}

// Stats summarizes a schema's definition table.
type Stats struct {
	Definitions int // entries in $defs
	References  int // $ref occurrences in the whole schema
	Leaves      int // definitions containing no references
}

// Summarize computes definition and reference statistics for a schema.
func Summarize(root *Node) (Stats, error) {
	defs, err := Defs(root)
	if err != nil {
		return Stats{}, err
	}
	s := Stats{
		Definitions: defs.Len(),
		References:  Refs(root),
	}
	for _, value := range defs.Entries() {
		if node, ok := value.(*Node); ok && Refs(node) == 0 {
			s.Leaves++
		}
	}
	return s, nil
}
