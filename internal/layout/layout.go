// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout derives the logical page numbers of a document. Every
// render target and export encoder calls Compute so that page numbers,
// section order, and bibliography position agree across outputs.
package layout

import (
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// Pagination is the page plan of a document.
type Pagination struct {
	// TitlePage reports whether page 1 is a title page.
	TitlePage bool `json:"title_page"`

	// TOCPage is the table of contents page, or 0 when the document has none.
	TOCPage int `json:"toc_page,omitempty"`

	// InlineHeader reports whether the first section carries the
	// author/course/date block in place of a title page.
	InlineHeader bool `json:"inline_header"`

	// SectionOrder lists section IDs in render order.
	SectionOrder []string `json:"section_order"`

	// SectionPages maps a section ID to its page number.
	SectionPages map[string]int `json:"section_pages"`

	// BibliographyPage is the page the reference list starts on.
	BibliographyPage int `json:"bibliography_page"`
}

// HasTOC reports whether the plan includes a table of contents.
func (p Pagination) HasTOC() bool {
	return p.TOCPage > 0
}

// PageOf returns the page of section id, or 0 when id is not in the plan.
func (p Pagination) PageOf(id string) int {
	return p.SectionPages[id]
}

// Offsets for the two style families. Styles that print a title page start
// content one page later and leave an extra page before the bibliography.
const (
	tocPageInline = 1
	tocPageTitled = 2
	baseInline    = 1
	baseTitled    = 2
	gapInline     = 1
	gapTitled     = 2
)

// Compute returns the page plan for doc under its style.
func Compute(doc types.Document) Pagination {
	titled := style.For(doc.Style).TitlePageRequired

	p := Pagination{
		TitlePage:    titled,
		SectionOrder: make([]string, 0, len(doc.Sections)),
		SectionPages: make(map[string]int, len(doc.Sections)),
	}

	base, gap := baseInline, gapInline
	if titled {
		base, gap = baseTitled, gapTitled
	}
	if doc.ShowIndex {
		p.TOCPage = tocPageInline
		if titled {
			p.TOCPage = tocPageTitled
		}
		base++
	}
	p.InlineHeader = !titled && !doc.ShowIndex

	for i, s := range doc.Sections {
		p.SectionOrder = append(p.SectionOrder, s.ID)
		p.SectionPages[s.ID] = base + i
	}
	p.BibliographyPage = base + len(doc.Sections) - 1 + gap
	return p
}
