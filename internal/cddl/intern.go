// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package cddl

import (
	"fmt"
	"strings"
)

var escaper = strings.NewReplacer(":", "_", "/", "_")

// Interner assigns stable, contiguous integer codes to strings within one
// namespace. Each distinct string, once interned, keeps the same integer for
// the lifetime of the run: first seen gets the next integer, no reuse, no
// reordering.
type Interner struct {
	prefix         string
	startingOffset int
	latestIndex    int
	entries        map[string]int
	order          []string          // interned names in assignment order
	originals      map[string]string // escaped form -> original string
}

// NewInterner creates an interner for one namespace. Codes are assigned
// starting at offset+1.
func NewInterner(prefix string, offset int) *Interner {
	return &Interner{
		prefix:         prefix,
		startingOffset: offset,
		latestIndex:    offset,
		entries:        make(map[string]int),
		originals:      make(map[string]string),
	}
}

// escapeName maps a string onto a valid CDDL identifier. The space of
// possible JSON strings is greater than the space of valid CDDL
// identifiers; this is not a general escaping mechanism, it covers the
// characters SPDX values use (':' and '/') and detects any collision
// between distinct originals. A collision is fatal: silently renaming one
// side would make two distinct fields indistinguishable in the binary form.
func (i *Interner) escapeName(name string) (string, error) {
	escaped := escaper.Replace(name)
	if original, ok := i.originals[escaped]; ok && original != name {
		return "", fmt.Errorf("name collision after escaping: %q and %q -> %q", original, name, escaped)
	}
	i.originals[escaped] = name
	return escaped, nil
}

// Get returns the interned CDDL identifier for an entry, assigning the next
// integer code on first sight.
func (i *Interner) Get(entry string) (string, error) {
	interned, err := i.escapeName(i.prefix + "." + entry)
	if err != nil {
		return "", err
	}
	if _, ok := i.entries[interned]; !ok {
		i.latestIndex++
		i.entries[interned] = i.latestIndex
		i.order = append(i.order, interned)
	}
	return interned, nil
}

// Index returns the integer code assigned to an interned name.
func (i *Interner) Index(internedName string) (int, bool) {
	index, ok := i.entries[internedName]
	return index, ok
}

// Len returns the number of interned entries.
func (i *Interner) Len() int {
	return len(i.order)
}

// Definitions renders the table as "NAME = INDEX" declarations in
// increasing code order.
func (i *Interner) Definitions() string {
	var b strings.Builder
	for n, name := range i.order {
		if n > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s = %d", name, i.entries[name])
	}
	return b.String()
}

// Description summarizes the namespace and its code range.
func (i *Interner) Description() string {
	return fmt.Sprintf("Value mapping for %s entries (%d-%d)", i.prefix, i.startingOffset, i.latestIndex)
}

// LabelDefinitions renders the table like Definitions, with each
// declaration preceded by a documentation comment linking the owning
// profile's property page when the owning profile is resolvable.
func (i *Interner) LabelDefinitions(grouping *Grouping) string {
	var b strings.Builder
	for _, name := range i.order {
		fullName := strings.TrimPrefix(name, i.prefix+".")
		profile := "Core"
		property := fullName
		resolvable := true
		if prefix, rest, ok := strings.Cut(fullName, "_"); ok {
			property = rest
			profile, resolvable = grouping.ToProfile(prefix)
		}
		if resolvable && !strings.HasPrefix(fullName, "@") && fullName != "type" {
			fmt.Fprintf(&b, "; https://spdx.github.io/spdx-spec/v3.0.1/model/%s/Properties/%s/\n", profile, property)
		}
		fmt.Fprintf(&b, "%s = %d\n", name, i.entries[name])
	}
	return strings.TrimRight(b.String(), "\n")
}
