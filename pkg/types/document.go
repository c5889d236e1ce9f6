// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the structured document shared by ingestion,
// layout, rendering, and export.
package types

// AcademicStyle names a formatting convention governing layout and citation
// string form.
type AcademicStyle string

const (
	StyleAPA     AcademicStyle = "APA"
	StyleMLA     AcademicStyle = "MLA"
	StyleChicago AcademicStyle = "Chicago"
	StyleCustom  AcademicStyle = "Custom"
)

// PaperSize identifies the physical sheet used by the print layout.
type PaperSize string

const (
	PaperA4     PaperSize = "a4"
	PaperLetter PaperSize = "letter"
	PaperLegal  PaperSize = "legal"
)

// ViewMode selects the preferred render target for a document.
type ViewMode string

const (
	ViewPrint ViewMode = "print"
	ViewWeb   ViewMode = "web"
)

// CitationType classifies a bibliography entry from lexical cues.
type CitationType string

const (
	CitationJournal CitationType = "journal"
	CitationBook    CitationType = "book"
	CitationWebsite CitationType = "website"
	CitationOther   CitationType = "other"
)

// DocumentMetadata holds the free-form title block of a document. None of
// the fields has a required format.
type DocumentMetadata struct {
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author" yaml:"author"`
	Course      string `json:"course,omitempty" yaml:"course,omitempty"`
	Instructor  string `json:"instructor,omitempty" yaml:"instructor,omitempty"`
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`
	Date        string `json:"date" yaml:"date"`
}

// ContentBlock is the atomic unit of a section: an optional subtitle plus a
// body. Text may contain paragraph breaks denoted by blank lines.
type ContentBlock struct {
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Text     string `json:"text" yaml:"text"`
}

// Section is a titled, ordered unit of document content.
type Section struct {
	// ID is unique within a document.
	ID string `json:"id" yaml:"id"`

	Title string `json:"title" yaml:"title"`

	// Content is in reading order. It may be empty for a heading that is
	// immediately followed by another heading.
	Content []ContentBlock `json:"content" yaml:"content"`
}

// Citation is a structured bibliographic reference parsed from a
// bibliography block.
type Citation struct {
	// ID is the acceptance order within the bibliography, starting at 1.
	// It is not stable across documents.
	ID int `json:"id" yaml:"id"`

	// Authors holds at least one author string in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is a four-digit year string.
	Year string `json:"year" yaml:"year"`

	Title    string       `json:"title" yaml:"title"`
	Source   string       `json:"source" yaml:"source"`
	Location string       `json:"location,omitempty" yaml:"location,omitempty"`
	Note     string       `json:"note,omitempty" yaml:"note,omitempty"`
	Type     CitationType `json:"type" yaml:"type"`
}

// FirstAuthor returns the first author string, or "" when there is none.
func (c Citation) FirstAuthor() string {
	if len(c.Authors) == 0 {
		return ""
	}
	return c.Authors[0]
}

// Document is the structured representation produced by ingestion. From the
// core's perspective it is an immutable snapshot.
type Document struct {
	// ID is derived from the ingested bytes; empty for hand-built documents.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	Metadata DocumentMetadata `json:"metadata" yaml:"metadata"`

	// Sections are in stored (reading) order.
	Sections []Section `json:"sections" yaml:"sections"`

	// Bibliography keeps extraction order. Renderers sort by first-author
	// surname at presentation time.
	Bibliography []Citation `json:"bibliography" yaml:"bibliography"`

	Style     AcademicStyle `json:"style" yaml:"style"`
	PaperSize PaperSize     `json:"paper_size" yaml:"paper_size"`
	ViewMode  ViewMode      `json:"view_mode" yaml:"view_mode"`
	ShowIndex bool          `json:"show_index" yaml:"show_index"`
}
