// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/scholarform/pkg/types"
)

// writeFile is a test helper that creates a file with the given content.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const referencesYAML = `- authors: ["Smith, J."]
  year: "2020"
  title: A Study of Things
  source: Journal of Examples
  type: journal
- authors: ["Adams, B."]
  year: "1999"
  title: Early Alphabet
  source: Alpha Review
  type: journal
`

func TestLoadManifest(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Manifest
		wantErr bool
	}{
		{
			name: "full manifest",
			yaml: `title: On Things
author: Jane Doe
course: HIST 101
style: mla
paper_size: a4
show_index: true
`,
			want: Manifest{
				DocumentMetadata: types.DocumentMetadata{Title: "On Things", Author: "Jane Doe", Course: "HIST 101"},
				Style:            "mla",
				PaperSize:        "a4",
				ShowIndex:        true,
			},
		},
		{
			name: "empty manifest",
			yaml: "{}\n",
			want: Manifest{},
		},
		{
			name:    "invalid yaml",
			yaml:    ":::bad\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "project.yaml", tt.yaml)

			m, err := LoadManifest(dir)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(*m, tt.want) {
				t.Errorf("manifest = %+v, want %+v", *m, tt.want)
			}
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := LoadManifest(t.TempDir()); err == nil {
		t.Error("expected error for missing project.yaml")
	}
}

func TestSectionFiles(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		wantFiles []string
	}{
		{
			name:      "natural order",
			files:     []string{"10-appendix.md", "2-methods.md", "1-introduction.md"},
			wantFiles: []string{"1-introduction.md", "2-methods.md", "10-appendix.md"},
		},
		{
			name:      "excludes non-md",
			files:     []string{"01-intro.md", "project.yaml", "references.md", "README.txt"},
			wantFiles: []string{"01-intro.md"},
		},
		{
			name:      "excludes non-numbered",
			files:     []string{"01-intro.md", "notes.md", "ab-draft.md"},
			wantFiles: []string{"01-intro.md"},
		},
		{
			name:      "empty directory",
			files:     []string{},
			wantFiles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, dir, f, "content")
			}

			files, err := SectionFiles(dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			basenames := []string{}
			for _, f := range files {
				basenames = append(basenames, filepath.Base(f))
			}
			if !reflect.DeepEqual(basenames, tt.wantFiles) {
				t.Errorf("files = %v, want %v", basenames, tt.wantFiles)
			}
		})
	}
}

func TestLoadReferences(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "references.yaml", referencesYAML)
		writeFile(t, dir, "references.md", "References\nIgnored, I. (2001). Never Read Here. Some Journal.")

		bib, err := LoadReferences(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bib) != 2 {
			t.Fatalf("len = %d, want 2", len(bib))
		}
		if bib[0].ID != 1 || bib[1].ID != 2 {
			t.Errorf("IDs = %d, %d, want 1, 2", bib[0].ID, bib[1].ID)
		}
		if bib[1].Title != "Early Alphabet" {
			t.Errorf("Title = %q, want %q", bib[1].Title, "Early Alphabet")
		}
	})

	t.Run("markdown", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "references.md", "# References\n\nSmith, J. (2020). A Study of Things. Journal of Examples.\n")

		bib, err := LoadReferences(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bib) != 1 {
			t.Fatalf("len = %d, want 1", len(bib))
		}
		if got := bib[0].Source; got != "Journal of Examples" {
			t.Errorf("Source = %q, want %q", got, "Journal of Examples")
		}
	})

	t.Run("markdown without header", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "references.md",
			"Smith, J. (2020). A Study of Things. Journal of Examples.\n\n"+
				"Doe, A. (2019). Another Study Entirely. University Press.\n")

		bib, err := LoadReferences(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bib) != 2 {
			t.Fatalf("len = %d, want 2", len(bib))
		}
		if got := bib[1].Title; got != "Another Study Entirely" {
			t.Errorf("Title = %q, want %q", got, "Another Study Entirely")
		}
	})

	t.Run("none", func(t *testing.T) {
		bib, err := LoadReferences(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if bib == nil || len(bib) != 0 {
			t.Errorf("bib = %#v, want empty slice", bib)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "references.yaml", "title: [unclosed\n")
		if _, err := LoadReferences(dir); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "project.yaml", "title: On Things\nauthor: Jane Doe\nstyle: Chicago\nshow_index: true\n")
	writeFile(t, dir, "1-introduction.md", "# Introduction\n\nFirst para.\n\nSecond para.\n")
	writeFile(t, dir, "2-body.md", "# Methods\nWe sampled.\n\n# Results\nIt worked.\n")
	writeFile(t, dir, "3-empty.md", "  \n")
	writeFile(t, dir, "references.yaml", referencesYAML)

	doc, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Metadata.Title != "On Things" || doc.Metadata.Author != "Jane Doe" {
		t.Errorf("metadata = %+v", doc.Metadata)
	}
	if doc.Style != types.StyleChicago {
		t.Errorf("Style = %q, want Chicago", doc.Style)
	}
	if doc.PaperSize != types.PaperA4 {
		t.Errorf("PaperSize = %q, want the Chicago recommendation a4", doc.PaperSize)
	}
	if !doc.ShowIndex {
		t.Error("ShowIndex = false, want true")
	}

	var ids, titles []string
	for _, s := range doc.Sections {
		ids = append(ids, s.ID)
		titles = append(titles, s.Title)
	}
	if want := []string{"section-1", "section-2", "section-3"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("IDs = %v, want %v", ids, want)
	}
	if want := []string{"Introduction", "Methods", "Results"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
	if got := doc.Sections[0].Content[0].Text; got != "First para.\n\nSecond para." {
		t.Errorf("intro text = %q", got)
	}
	if len(doc.Bibliography) != 2 {
		t.Errorf("len(Bibliography) = %d, want 2", len(doc.Bibliography))
	}
}

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "my-paper")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "project.yaml", "{}\n")

	doc, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Metadata.Title != "my-paper" {
		t.Errorf("Title = %q, want the directory name", doc.Metadata.Title)
	}
	if doc.Style != types.StyleAPA || doc.PaperSize != types.PaperLetter {
		t.Errorf("Style, PaperSize = %q, %q, want APA, letter", doc.Style, doc.PaperSize)
	}
	if doc.Sections == nil || len(doc.Sections) != 0 {
		t.Errorf("Sections = %#v, want empty slice", doc.Sections)
	}
	if doc.Bibliography == nil || len(doc.Bibliography) != 0 {
		t.Errorf("Bibliography = %#v, want empty slice", doc.Bibliography)
	}
}

func TestValidateCitations(t *testing.T) {
	tests := []struct {
		name        string
		sections    map[string]string
		wantMissing []string
	}{
		{
			name:     "all keys present",
			sections: map[string]string{"01-intro.md": "Things were studied [Smith2020; Adams1999]."},
		},
		{
			name: "missing keys reported once, sorted",
			sections: map[string]string{
				"01-intro.md":   "As shown [Vaswani2017] and [Smith2020].",
				"02-methods.md": "Again [Vaswani2017]; see also [Brown2020a].",
			},
			wantMissing: []string{"Brown2020a", "Vaswani2017"},
		},
		{
			name:     "links and notes are not keys",
			sections: map[string]string{"01-intro.md": "See [the site](https://example.org) and [1] and [sic]."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "references.yaml", referencesYAML)
			for name, content := range tt.sections {
				writeFile(t, dir, name, content)
			}

			missing, err := ValidateCitations(dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", missing, tt.wantMissing)
			}
		})
	}
}

func TestCitationKeys(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"[Smith2020]", []string{"Smith2020"}},
		{"[Smith2020; Doe2019b]", []string{"Smith2020", "Doe2019b"}},
		{"[Lee2001-27] and [ref4]", []string{"Lee2001-27", "ref4"}},
		{"[not a key] [1] [smith2020]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := citationKeys(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("citationKeys(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
