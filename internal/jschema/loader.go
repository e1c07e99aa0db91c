// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The CoSPDX Authors

package jschema

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses schema bytes into a Node. The format is determined from
// the file name extension.
func Decode(data []byte, filePath string) (*Node, error) {
	switch {
	case strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml"):
		return DecodeYAML(data)
	case strings.HasSuffix(filePath, ".json"):
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("format not supported: %s", filePath)
	}
}

// Load reads and parses a schema file from the OS filesystem.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	return Decode(data, path)
}

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a schema file.
// The format is determined from the file extension.
func (l *Loader) LoadFile(filePath string) (*Node, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return Decode(data, filePath)
}

// DecodeYAML parses a YAML document into a Node. Mapping key order is
// preserved, which yaml.Node guarantees and plain map decoding would not.
func DecodeYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("expected a single YAML document")
	}
	value, err := fromYAML(doc.Content[0])
	if err != nil {
		return nil, err
	}
	node, ok := value.(*Node)
	if !ok {
		return nil, fmt.Errorf("document root is not a mapping")
	}
	return node, nil
}

func fromYAML(y *yaml.Node) (any, error) {
	switch y.Kind {
	case yaml.MappingNode:
		node := NewNode()
		for i := 0; i+1 < len(y.Content); i += 2 {
			key := y.Content[i].Value
			value, err := fromYAML(y.Content[i+1])
			if err != nil {
				return nil, err
			}
			node.Set(key, value)
		}
		return node, nil
	case yaml.SequenceNode:
		var items []any
		for _, c := range y.Content {
			item, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.ScalarNode:
		switch y.Tag {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := y.Decode(&b); err != nil {
				return nil, err
			}
			return b, nil
		case "!!int", "!!float":
			return Number(y.Value), nil
		default:
			return y.Value, nil
		}
	case yaml.AliasNode:
		return fromYAML(y.Alias)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", y.Kind)
	}
}
