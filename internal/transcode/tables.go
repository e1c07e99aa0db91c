// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

// Package transcode rewrites SPDX JSON documents into the CoSPDX binary
// form, using the interning tables re-parsed from an emitted CDDL grammar.
package transcode

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Tables holds the interning tables reconstructed from a grammar's
// "label.NAME = N", "enum.NAME = N" and "const.NAME = VALUE" declarations.
// Loaded once per conversion and treated as immutable for its duration.
type Tables struct {
	Labels map[string]int
	Enums  map[string]int
	Consts map[string]any
}

// LoadTables parses the line-oriented interning declarations out of a
// grammar text. Lines that are not such declarations (productions,
// comments) are ignored. Enum and const names must never overlap; an
// overlap would make a document value's substitution ambiguous and is
// fatal at load time.
func LoadTables(r io.Reader) (*Tables, error) {
	t := &Tables{
		Labels: make(map[string]int),
		Enums:  make(map[string]int),
		Consts: make(map[string]any),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "label."):
			name, value, err := directive(line, "label.")
			if err != nil {
				return nil, err
			}
			code, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid label code in %q: %w", line, err)
			}
			t.Labels[name] = code
		case strings.HasPrefix(line, "enum."):
			name, value, err := directive(line, "enum.")
			if err != nil {
				return nil, err
			}
			code, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid enum code in %q: %w", line, err)
			}
			t.Enums[name] = code
		case strings.HasPrefix(line, "const."):
			name, value, err := directive(line, "const.")
			if err != nil {
				return nil, err
			}
			if code, err := strconv.ParseInt(value, 10, 64); err == nil {
				t.Consts[name] = code
			} else {
				t.Consts[name] = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if overlap := t.overlap(); len(overlap) > 0 {
		return nil, fmt.Errorf("enum and const names overlap: %s", strings.Join(overlap, ", "))
	}
	return t, nil
}

func directive(line, prefix string) (name, value string, err error) {
	name, value, ok := strings.Cut(strings.TrimPrefix(line, prefix), "=")
	if !ok {
		return "", "", fmt.Errorf("malformed declaration: %q", line)
	}
	return strings.TrimSpace(name), strings.TrimSpace(value), nil
}

func (t *Tables) overlap() []string {
	var names []string
	for name := range t.Consts {
		if _, ok := t.Enums[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
