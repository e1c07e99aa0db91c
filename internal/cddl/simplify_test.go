// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package cddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDropWeakerConstraints(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      []string
	}{
		{
			"optional dropped when required exists",
			[]string{"?label.a => tstr", "label.a => tstr"},
			[]string{"label.a => tstr"},
		},
		{
			"any dropped when concrete exists",
			[]string{"label.a => any", "label.a => tstr"},
			[]string{"label.a => tstr"},
		},
		{
			"no duplicate fields means no pruning",
			[]string{"label.a => tstr", "?label.b => uint", "label.c => any"},
			[]string{"label.a => tstr", "?label.b => uint", "label.c => any"},
		},
		{
			"order of survivors is preserved",
			[]string{"label.z => tstr", "?label.a => uint", "label.a => uint", "label.b => bool"},
			[]string{"label.z => tstr", "label.a => uint", "label.b => bool"},
		},
		{
			"non-field fragments pass through",
			[]string{"~SomeGroup", "label.a => tstr"},
			[]string{"~SomeGroup", "label.a => tstr"},
		},
		{
			"independent weaker fragments both dropped",
			[]string{"?label.a => tstr", "label.b => any", "label.a => tstr", "label.b => uint"},
			[]string{"label.a => tstr", "label.b => uint"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DropWeakerConstraints(tt.fragments))
		})
	}
}

func TestSimplifyGroup_ResplitsJoinedParts(t *testing.T) {
	// Each part may itself be a comma-joined unwrapped fragment list.
	got := simplifyGroup([]string{
		"label.type => const.X, ?label.a => any",
		"label.a => tstr",
	})
	assert.Equal(t, "label.type => const.X, label.a => tstr", got)
}
