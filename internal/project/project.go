// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package project assembles a document from a paper project directory: a
// project.yaml manifest, numbered Markdown section files (NN-slug.md), and
// a references.yaml or references.md bibliography.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholarform/internal/export"
	"github.com/pdiddy/scholarform/internal/extract"
	"github.com/pdiddy/scholarform/internal/segment"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

const (
	manifestFile       = "project.yaml"
	referencesYAMLFile = "references.yaml"
	referencesTextFile = "references.md"
)

// sectionFilePattern matches numbered section files: NN-slug.md.
var sectionFilePattern = regexp.MustCompile(`^\d+-.+\.md$`)

// citationPattern matches inline citations: [Key] or [Key1; Key2].
var citationPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

// citationKeyPattern matches the SurnameYear keys issued by the exporters,
// with an optional collision suffix, and the refN keys of authorless
// entries.
var citationKeyPattern = regexp.MustCompile(`^(?:(?:[A-Z][a-z0-9]*)?\d{4}(?:[a-z]|-\d+)?|ref\d+)$`)

// Manifest is the project.yaml of a paper project.
type Manifest struct {
	types.DocumentMetadata `yaml:",inline"`

	Style     string `yaml:"style,omitempty"`
	PaperSize string `yaml:"paper_size,omitempty"`
	ShowIndex bool   `yaml:"show_index,omitempty"`
}

// LoadManifest reads project.yaml from a paper project directory.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// SectionFiles returns the numbered section files of dir in natural order,
// so 2-methods.md precedes 10-appendix.md.
func SectionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading project directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && sectionFilePattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(names))

	files := make([]string, len(names))
	for i, n := range names {
		files[i] = filepath.Join(dir, n)
	}
	return files, nil
}

// LoadReferences returns the project bibliography. references.yaml holds
// citation records directly; references.md is parsed like the reference
// list of an upload; a file without a reference-list header is read as
// one. IDs are renumbered from 1. A project with neither file has an empty
// bibliography.
func LoadReferences(dir string) ([]types.Citation, error) {
	data, err := os.ReadFile(filepath.Join(dir, referencesYAMLFile))
	switch {
	case err == nil:
		var bib []types.Citation
		if err := yaml.Unmarshal(data, &bib); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", referencesYAMLFile, err)
		}
		for i := range bib {
			bib[i].ID = i + 1
		}
		if bib == nil {
			bib = []types.Citation{}
		}
		return bib, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", referencesYAMLFile, err)
	}

	data, err = os.ReadFile(filepath.Join(dir, referencesTextFile))
	switch {
	case err == nil:
		text := string(data)
		if _, ok := extract.Locate(text); !ok {
			text = "References\n" + text
		}
		return extract.Extract(text), nil
	case errors.Is(err, os.ErrNotExist):
		return []types.Citation{}, nil
	}
	return nil, fmt.Errorf("reading %s: %w", referencesTextFile, err)
}

// Load assembles the document of a paper project. A section file may hold
// several Markdown headings; each one opens a section.
func Load(dir string) (types.Document, error) {
	m, err := LoadManifest(dir)
	if err != nil {
		return types.Document{}, err
	}
	files, err := SectionFiles(dir)
	if err != nil {
		return types.Document{}, err
	}

	var sections []types.Section
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return types.Document{}, fmt.Errorf("reading %s: %w", filepath.Base(f), err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		for _, s := range segment.SegmentMarkdown(string(data)) {
			// Every file numbers from section-1; renumber across the project.
			s.ID = ""
			sections = append(sections, s)
		}
	}

	bib, err := LoadReferences(dir)
	if err != nil {
		return types.Document{}, err
	}

	doc := types.Document{
		Metadata:     m.DocumentMetadata,
		Sections:     segment.NormalizeIDs(sections),
		Bibliography: bib,
		Style:        types.StyleAPA,
		ViewMode:     types.ViewPrint,
		ShowIndex:    m.ShowIndex,
	}
	if strings.TrimSpace(doc.Metadata.Title) == "" {
		doc.Metadata.Title = filepath.Base(filepath.Clean(dir))
	}
	if m.Style != "" {
		doc.Style = style.ParseStyle(m.Style)
	}
	if size, ok := style.ParsePaperSize(m.PaperSize); ok {
		doc.PaperSize = size
	} else {
		doc.PaperSize = style.RecommendedPaperSize(doc.Style)
	}
	return doc, nil
}

// ValidateCitations scans the section files for inline citation keys and
// returns, sorted, those that match no bibliography entry of the project.
func ValidateCitations(dir string) ([]string, error) {
	bib, err := LoadReferences(dir)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(bib))
	for _, k := range export.CitationKeys(bib) {
		known[k] = true
	}

	files, err := SectionFiles(dir)
	if err != nil {
		return nil, err
	}

	missing := make(map[string]bool)
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Base(f), err)
		}
		for _, key := range citationKeys(string(data)) {
			if !known[key] {
				missing[key] = true
			}
		}
	}

	var out []string
	for key := range missing {
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}

// citationKeys finds every citation key in text. Bracketed text that is not
// a key, such as a Markdown link label, is skipped.
func citationKeys(text string) []string {
	var keys []string
	for _, m := range citationPattern.FindAllStringSubmatch(text, -1) {
		for _, part := range strings.Split(m[1], ";") {
			if key := strings.TrimSpace(part); citationKeyPattern.MatchString(key) {
				keys = append(keys, key)
			}
		}
	}
	return keys
}
