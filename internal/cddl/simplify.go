// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package cddl

import "strings"

// DropWeakerConstraints reduces a merged list of "field => type" fragments,
// removing a fragment when a stronger one for the same field exists
// elsewhere in the list. A fragment is weaker when it is marked optional
// ("?field => ...") while the same field also appears required, or when its
// value is the unconstrained "any" placeholder while another fragment gives
// the field a concrete type. Surviving fragments keep their original order.
func DropWeakerConstraints(fragments []string) []string {
	defined := make(map[string]bool)
	weaker := make(map[string]int)
	for pos, fragment := range fragments {
		label, value, ok := strings.Cut(fragment, " => ")
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(label, "?"):
			weaker[label[1:]] = pos
		case value == "any":
			weaker[label] = pos
		default:
			defined[label] = true
		}
	}

	dropped := make(map[int]bool)
	for label, pos := range weaker {
		if defined[label] {
			dropped[pos] = true
		}
	}

	kept := make([]string, 0, len(fragments))
	for pos, fragment := range fragments {
		if !dropped[pos] {
			kept = append(kept, fragment)
		}
	}
	return kept
}

// simplifyGroup joins unwrapped fragments into one comma-separated group
// body, dropping weaker constraints across the merged field list. Each
// input part may itself be a comma-joined fragment list (the unwrapped form
// of an object or allOf), so the join is re-split before filtering.
func simplifyGroup(parts []string) string {
	fragments := strings.Split(strings.Join(parts, ", "), ", ")
	return strings.Join(DropWeakerConstraints(fragments), ", ")
}
