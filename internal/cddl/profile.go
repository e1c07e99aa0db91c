// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package cddl

import (
	"iter"
	"strings"

	"github.com/achamayou/draft-chamayou-cospdx/internal/jschema"
)

// profileNames lists the additional SPDX profiles; anything else goes into
// "Core". The set is closed: grouping is used only for output organization
// and label documentation, never for semantics.
var profileNames = []string{
	"Software",
	"Security",
	"Licensing",
	"SimpleLicensing",
	"ExpandedLicensing",
	"Dataset",
	"AI",
	"Build",
	"Lite",
	"Extension",
}

// Definition is one named entry of the schema's definition table.
type Definition struct {
	Name string
	Node *jschema.Node
}

// Grouping partitions definitions into profile buckets by name prefix.
// Both the bare profile name and its "prop_"-prefixed form match, so that
// individual-property definitions land in the same bucket as their owning
// class. Constructed once per compilation run.
type Grouping struct {
	profiles   map[string][]Definition
	profileMap map[string]string // lowercase prefix -> canonical profile name
}

// NewGrouping partitions a definition table.
func NewGrouping(defs *jschema.Node) *Grouping {
	g := &Grouping{
		profiles:   make(map[string][]Definition),
		profileMap: make(map[string]string),
	}
	for _, name := range profileNames {
		lower := strings.ToLower(name)
		g.profileMap[lower] = name
		g.profileMap["prop_"+lower] = name
		g.profiles[name] = nil
	}
	g.profiles["Core"] = nil

	for name, value := range defs.Entries() {
		node, ok := value.(*jschema.Node)
		if !ok {
			continue
		}
		lower := strings.ToLower(name)
		core := true
		for prefix, profile := range g.profileMap {
			if strings.HasPrefix(lower, prefix) {
				g.profiles[profile] = append(g.profiles[profile], Definition{name, node})
				core = false
			}
		}
		if core {
			g.profiles["Core"] = append(g.profiles["Core"], Definition{name, node})
		}
	}
	return g
}

// Profiles iterates over (profile name, definitions) in the fixed output
// order: the profile list order, then Core.
func (g *Grouping) Profiles() iter.Seq2[string, []Definition] {
	return func(yield func(string, []Definition) bool) {
		for _, name := range profileNames {
			if !yield(name, g.profiles[name]) {
				return
			}
		}
		yield("Core", g.profiles["Core"])
	}
}

// ToProfile is the reverse lookup from a lowercase prefix to its canonical
// profile name. Unknown prefixes report false.
func (g *Grouping) ToProfile(prefix string) (string, bool) {
	name, ok := g.profileMap[strings.ToLower(prefix)]
	return name, ok
}
