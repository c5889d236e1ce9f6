// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docio reads and writes document snapshots as YAML or JSON.
package docio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholarform/internal/segment"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// Encoding is a snapshot serialization.
type Encoding string

const (
	YAML Encoding = "yaml"
	JSON Encoding = "json"
)

// ParseEncoding maps a name or file extension to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("unknown snapshot encoding %q (want yaml or json)", name)
}

// IsSnapshot reports whether path names a document snapshot rather than an
// upload.
func IsSnapshot(path string) bool {
	_, err := ParseEncoding(filepath.Ext(path))
	return err == nil
}

// Ext returns the file extension for e, including the dot.
func (e Encoding) Ext() string {
	return "." + string(e)
}

// Marshal encodes doc.
func Marshal(doc types.Document, enc Encoding) ([]byte, error) {
	switch enc {
	case YAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	case JSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unknown snapshot encoding %q", enc)
}

// Unmarshal decodes a snapshot and restores the invariants a hand-edited
// file may have broken: section IDs are made unique, the style falls back
// to Custom when unknown, and the bibliography is never nil.
func Unmarshal(data []byte, enc Encoding) (types.Document, error) {
	var doc types.Document
	switch enc {
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return types.Document{}, fmt.Errorf("parsing YAML snapshot: %w", err)
		}
	case JSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return types.Document{}, fmt.Errorf("parsing JSON snapshot: %w", err)
		}
	default:
		return types.Document{}, fmt.Errorf("unknown snapshot encoding %q", enc)
	}

	doc.Sections = segment.NormalizeIDs(doc.Sections)
	doc.Style = style.ParseStyle(string(doc.Style))
	if doc.Bibliography == nil {
		doc.Bibliography = []types.Citation{}
	}
	return doc, nil
}

// Load reads the snapshot at path, choosing the encoding by extension.
func Load(path string) (types.Document, error) {
	enc, err := ParseEncoding(filepath.Ext(path))
	if err != nil {
		return types.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading snapshot: %w", err)
	}
	doc, err := Unmarshal(data, enc)
	if err != nil {
		return types.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path, choosing the encoding by extension.
func Save(path string, doc types.Document) error {
	enc, err := ParseEncoding(filepath.Ext(path))
	if err != nil {
		return err
	}
	data, err := Marshal(doc, enc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
