// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render produces XHTML views of a document: a paginated print view
// sized to the paper and a continuous web view. Both take page numbers and
// section order from layout.Compute and format the bibliography with the
// document's style.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/scholarform/internal/cite"
	"github.com/pdiddy/scholarform/internal/segment"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// Element classes shared by both views.
const (
	ClassPage         = "page"
	ClassTitlePage    = "title-page"
	ClassTOC          = "toc"
	ClassSection      = "section"
	ClassBibliography = "bibliography"
	ClassCitation     = "citation"
	ClassRunningHead  = "running-head"
	ClassHeaderBlock  = "header-block"
)

// View renders doc in the given mode. Any mode other than web is print.
func View(doc types.Document, mode types.ViewMode) *etree.Document {
	if mode == types.ViewWeb {
		return Web(doc)
	}
	return Print(doc)
}

// Write serializes x as indented XHTML.
func Write(w io.Writer, x *etree.Document) error {
	x.Indent(2)
	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("writing XHTML: %w", err)
	}
	return nil
}

// Bytes serializes x as indented XHTML.
func Bytes(x *etree.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, x); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newDocument starts an XHTML document and returns it with its body.
func newDocument(title, css string) (*etree.Document, *etree.Element) {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := x.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")

	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=utf-8")
	head.CreateElement("title").SetText(title)
	head.CreateElement("style").SetText(css)

	return x, html.CreateElement("body")
}

// stylesheet returns the CSS for rules. Print views add the @page size.
func stylesheet(r style.Rules, paper *style.Paper) string {
	var b strings.Builder
	if paper != nil {
		fmt.Fprintf(&b, "@page { size: %s %s; margin: 1in; }\n", paper.Width, paper.Height)
		fmt.Fprintf(&b, ".%s { width: %s; min-height: %s; page-break-after: always; }\n", ClassPage, paper.Width, paper.Height)
		fmt.Fprintf(&b, ".%s { text-align: right; }\n", ClassRunningHead)
	}
	fmt.Fprintf(&b, "body { font-family: %s; font-size: %s; line-height: %s; }\n", r.FontFamily, r.FontSize, r.LineHeight)
	fmt.Fprintf(&b, "h1 { text-align: %s; font-size: 1em; font-weight: bold; }\n", r.HeadingAlignment)
	fmt.Fprintf(&b, "p { text-indent: %s; margin: 0; }\n", r.ParagraphIndent)
	fmt.Fprintf(&b, ".%s { text-indent: -0.5in; padding-left: 0.5in; }\n", ClassCitation)
	return b.String()
}

// appendSection writes a section heading and its content blocks. Subtitles
// become second-level headings.
func appendSection(parent *etree.Element, s types.Section) {
	parent.CreateElement("h1").SetText(s.Title)
	for _, block := range s.Content {
		if block.Subtitle != "" {
			parent.CreateElement("h2").SetText(block.Subtitle)
		}
		for _, para := range segment.Paragraphs(block.Text) {
			parent.CreateElement("p").SetText(para)
		}
	}
}

// appendBibliography writes the heading and the surname-sorted citations.
func appendBibliography(parent *etree.Element, doc types.Document) {
	parent.CreateElement("h1").SetText(style.BibliographyHeading(doc.Style))
	for _, c := range cite.Sorted(doc.Bibliography) {
		p := parent.CreateElement("p")
		p.CreateAttr("class", ClassCitation)
		appendRuns(p, cite.FormatRuns(c, doc.Style))
	}
}

// appendRuns writes citation runs as text with <i> for italic spans.
func appendRuns(parent *etree.Element, runs cite.Runs) {
	for _, r := range runs {
		if r.Italic {
			parent.CreateElement("i").SetText(r.Text)
			continue
		}
		parent.CreateText(r.Text)
	}
}

// metadataLines returns the non-empty metadata lines of a header block.
func metadataLines(m types.DocumentMetadata) []string {
	var lines []string
	for _, s := range []string{m.Author, m.Instructor, m.Course, m.Institution, m.Date} {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}
