package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/scholarform/internal/cite"
	"github.com/pdiddy/scholarform/internal/layout"
	"github.com/pdiddy/scholarform/internal/segment"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// DOCXMIMEType is the media type of a WordprocessingML package.
const DOCXMIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// WordprocessingML namespaces.
const (
	nsW     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Paragraph style IDs written to styles.xml.
const (
	StyleTitle        = "Title"
	StyleHeading1     = "Heading1"
	StyleHeading2     = "Heading2"
	StyleTOCHeading   = "TOCHeading"
	StyleBibliography = "Bibliography"
)

const (
	twipsPerInch = 1440
	halfInch     = twipsPerInch / 2
)

// indent selects the first-line treatment of a paragraph.
type indent int

const (
	indentNone indent = iota
	indentFirstLine
	indentHanging
)

// DOCX encodes doc as a WordprocessingML package. Pages break where the
// print view breaks them: after the title page, after the table of
// contents, and between sections. The header carries the style's running
// page number.
func DOCX(doc types.Document) (Result, error) {
	rules := style.For(doc.Style)
	plan := layout.Compute(doc)

	w := newBodyWriter(rules)

	if plan.TitlePage {
		w.paragraph(StyleTitle, style.AlignCenter, indentNone).text(doc.Metadata.Title)
		for _, line := range metadataLines(doc.Metadata) {
			w.paragraph("", style.AlignCenter, indentNone).text(line)
		}
		w.pageBreak()
	}

	byID := make(map[string]types.Section, len(doc.Sections))
	for _, s := range doc.Sections {
		byID[s.ID] = s
	}
	heading := style.BibliographyHeading(doc.Style)

	if plan.HasTOC() {
		w.paragraph(StyleTOCHeading, "", indentNone).text("Table of Contents")
		for _, id := range plan.SectionOrder {
			w.tocEntry(byID[id].Title, plan.PageOf(id))
		}
		w.tocEntry(heading, plan.BibliographyPage)
		w.pageBreak()
	}

	for i, id := range plan.SectionOrder {
		if i > 0 {
			w.pageBreak()
		}
		if i == 0 && plan.InlineHeader {
			for _, line := range metadataLines(doc.Metadata) {
				w.paragraph("", "", indentNone).text(line)
			}
			w.paragraph("", style.AlignCenter, indentNone).text(doc.Metadata.Title)
		}
		s := byID[id]
		w.paragraph(StyleHeading1, "", indentNone).text(s.Title)
		for _, block := range s.Content {
			if block.Subtitle != "" {
				w.paragraph(StyleHeading2, "", indentNone).text(block.Subtitle)
			}
			for _, para := range segment.Paragraphs(block.Text) {
				w.paragraph("", "", w.bodyIndent).text(para)
			}
		}
	}

	w.pageBreak()
	w.paragraph(StyleHeading1, "", indentNone).text(heading)
	for _, c := range cite.Sorted(doc.Bibliography) {
		p := w.paragraph(StyleBibliography, "", indentHanging)
		for _, r := range cite.FormatRuns(c, doc.Style) {
			p.run(r.Text, r.Italic)
		}
	}
	w.sectionProperties(style.PaperFor(doc.PaperSize))

	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{"word/_rels/document.xml.rels", documentRels()},
		{"word/document.xml", w.doc},
		{"word/styles.xml", stylesPart(rules)},
		{"word/header1.xml", headerPart(rules, doc.Metadata.Author)},
		{"docProps/core.xml", corePart(doc.Metadata)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return Result{}, fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := part.doc.WriteTo(f); err != nil {
			return Result{}, fmt.Errorf("writing %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return Result{}, fmt.Errorf("closing DOCX package: %w", err)
	}
	return Result{Data: buf.Bytes(), MIMEType: DOCXMIMEType, Filename: Filename(doc, ".docx")}, nil
}

func metadataLines(m types.DocumentMetadata) []string {
	var lines []string
	for _, s := range []string{m.Author, m.Instructor, m.Course, m.Institution, m.Date} {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// bodyWriter appends paragraphs to word/document.xml.
type bodyWriter struct {
	doc        *etree.Document
	body       *etree.Element
	bodyIndent indent
}

func newBodyWriter(r style.Rules) *bodyWriter {
	doc := newPart()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)

	w := &bodyWriter{doc: doc, body: root.CreateElement("w:body")}
	if r.IndentsParagraphs() {
		w.bodyIndent = indentFirstLine
	}
	return w
}

// para is one w:p element.
type para struct {
	el *etree.Element
}

func (w *bodyWriter) paragraph(styleID string, align style.Alignment, ind indent) para {
	p := w.body.CreateElement("w:p")
	if styleID == "" && align == "" && ind == indentNone {
		return para{p}
	}
	ppr := p.CreateElement("w:pPr")
	if styleID != "" {
		ppr.CreateElement("w:pStyle").CreateAttr("w:val", styleID)
	}
	switch ind {
	case indentFirstLine:
		ppr.CreateElement("w:ind").CreateAttr("w:firstLine", strconv.Itoa(halfInch))
	case indentHanging:
		el := ppr.CreateElement("w:ind")
		el.CreateAttr("w:left", strconv.Itoa(halfInch))
		el.CreateAttr("w:hanging", strconv.Itoa(halfInch))
	}
	if align != "" {
		ppr.CreateElement("w:jc").CreateAttr("w:val", string(align))
	}
	return para{p}
}

func (p para) text(s string) {
	p.run(s, false)
}

func (p para) run(s string, italic bool) {
	r := p.el.CreateElement("w:r")
	if italic {
		r.CreateElement("w:rPr").CreateElement("w:i")
	}
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(s)
}

func (w *bodyWriter) pageBreak() {
	w.body.CreateElement("w:p").CreateElement("w:r").CreateElement("w:br").CreateAttr("w:type", "page")
}

// tocEntry writes "title<TAB>page" against a right tab stop.
func (w *bodyWriter) tocEntry(title string, page int) {
	p := w.body.CreateElement("w:p")
	tab := p.CreateElement("w:pPr").CreateElement("w:tabs").CreateElement("w:tab")
	tab.CreateAttr("w:val", "right")
	tab.CreateAttr("w:leader", "dot")
	tab.CreateAttr("w:pos", strconv.Itoa(6*twipsPerInch))

	para{p}.text(title)
	p.CreateElement("w:r").CreateElement("w:tab")
	para{p}.text(strconv.Itoa(page))
}

func (w *bodyWriter) sectionProperties(paper style.Paper) {
	sect := w.body.CreateElement("w:sectPr")
	hdr := sect.CreateElement("w:headerReference")
	hdr.CreateAttr("w:type", "default")
	hdr.CreateAttr("r:id", "rIdHeader")

	sz := sect.CreateElement("w:pgSz")
	sz.CreateAttr("w:w", strconv.Itoa(mmToTwips(paper.Width)))
	sz.CreateAttr("w:h", strconv.Itoa(mmToTwips(paper.Height)))

	mar := sect.CreateElement("w:pgMar")
	for _, side := range []string{"w:top", "w:right", "w:bottom", "w:left"} {
		mar.CreateAttr(side, strconv.Itoa(twipsPerInch))
	}
	mar.CreateAttr("w:header", strconv.Itoa(halfInch))
}

// mmToTwips converts a dimension such as "215.9mm" to twentieths of a point.
func mmToTwips(dim string) int {
	mm, err := strconv.ParseFloat(strings.TrimSuffix(dim, "mm"), 64)
	if err != nil {
		return 0
	}
	return int(mm/25.4*twipsPerInch + 0.5)
}

func newPart() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

func contentTypes() *etree.Document {
	doc := newPart()
	root := doc.CreateElement("Types")
	root.CreateAttr("xmlns", nsTypes)

	def := func(ext, ct string) {
		el := root.CreateElement("Default")
		el.CreateAttr("Extension", ext)
		el.CreateAttr("ContentType", ct)
	}
	override := func(part, ct string) {
		el := root.CreateElement("Override")
		el.CreateAttr("PartName", part)
		el.CreateAttr("ContentType", ct)
	}
	def("rels", "application/vnd.openxmlformats-package.relationships+xml")
	def("xml", "application/xml")
	override("/word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml")
	override("/word/styles.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml")
	override("/word/header1.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml")
	override("/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml")
	return doc
}

func relationships(rels ...[3]string) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsRels)
	for _, r := range rels {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", r[0])
		el.CreateAttr("Type", r[1])
		el.CreateAttr("Target", r[2])
	}
	return doc
}

func packageRels() *etree.Document {
	return relationships(
		[3]string{"rIdDocument", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument", "word/document.xml"},
		[3]string{"rIdCore", "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties", "docProps/core.xml"},
	)
}

func documentRels() *etree.Document {
	return relationships(
		[3]string{"rIdStyles", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles", "styles.xml"},
		[3]string{"rIdHeader", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header", "header1.xml"},
	)
}

// stylesPart declares the default font and spacing of rules and the
// paragraph styles the body refers to.
func stylesPart(r style.Rules) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsW)

	defaults := root.CreateElement("w:docDefaults")
	rpr := defaults.CreateElement("w:rPrDefault").CreateElement("w:rPr")
	fonts := rpr.CreateElement("w:rFonts")
	font := primaryFont(r.FontFamily)
	fonts.CreateAttr("w:ascii", font)
	fonts.CreateAttr("w:hAnsi", font)
	fonts.CreateAttr("w:cs", font)
	rpr.CreateElement("w:sz").CreateAttr("w:val", strconv.Itoa(halfPoints(r.FontSize)))
	spacing := defaults.CreateElement("w:pPrDefault").CreateElement("w:pPr").CreateElement("w:spacing")
	spacing.CreateAttr("w:line", strconv.Itoa(lineTwips(r.LineHeight)))
	spacing.CreateAttr("w:lineRule", "auto")
	spacing.CreateAttr("w:after", "0")

	addStyle := func(id, name string, align style.Alignment, bold, italic bool) {
		st := root.CreateElement("w:style")
		st.CreateAttr("w:type", "paragraph")
		st.CreateAttr("w:styleId", id)
		st.CreateElement("w:name").CreateAttr("w:val", name)
		st.CreateElement("w:basedOn").CreateAttr("w:val", "Normal")
		if align != "" {
			st.CreateElement("w:pPr").CreateElement("w:jc").CreateAttr("w:val", string(align))
		}
		if bold || italic {
			rp := st.CreateElement("w:rPr")
			if bold {
				rp.CreateElement("w:b")
			}
			if italic {
				rp.CreateElement("w:i")
			}
		}
	}

	normal := root.CreateElement("w:style")
	normal.CreateAttr("w:type", "paragraph")
	normal.CreateAttr("w:default", "1")
	normal.CreateAttr("w:styleId", "Normal")
	normal.CreateElement("w:name").CreateAttr("w:val", "Normal")

	addStyle(StyleTitle, "Title", style.AlignCenter, true, false)
	addStyle(StyleHeading1, "heading 1", r.HeadingAlignment, true, false)
	addStyle(StyleHeading2, "heading 2", style.AlignLeft, true, true)
	addStyle(StyleTOCHeading, "TOC Heading", style.AlignCenter, true, false)
	addStyle(StyleBibliography, "Bibliography", "", false, false)
	return doc
}

// headerPart writes the running head: the style's page number prefix, if
// any, followed by a PAGE field.
func headerPart(r style.Rules, author string) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("w:hdr")
	root.CreateAttr("xmlns:w", nsW)

	p := root.CreateElement("w:p")
	p.CreateElement("w:pPr").CreateElement("w:jc").CreateAttr("w:val", string(style.AlignRight))
	if prefix := strings.TrimSuffix(r.PageNumber(1, author), "1"); prefix != "" {
		para{p}.text(prefix)
	}
	fld := p.CreateElement("w:fldSimple")
	fld.CreateAttr("w:instr", "PAGE")
	para{fld}.text("1")
	return doc
}

func corePart(m types.DocumentMetadata) *etree.Document {
	doc := newPart()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	root.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	root.CreateElement("dc:title").SetText(m.Title)
	if m.Author != "" {
		root.CreateElement("dc:creator").SetText(m.Author)
	}
	return doc
}

// primaryFont returns the first family of a CSS font-family list.
func primaryFont(family string) string {
	first, _, _ := strings.Cut(family, ",")
	return strings.Trim(strings.TrimSpace(first), `'"`)
}

// halfPoints converts "12pt" to Word's half-point unit.
func halfPoints(size string) int {
	pt, err := strconv.ParseFloat(strings.TrimSuffix(size, "pt"), 64)
	if err != nil {
		return 24
	}
	return int(pt * 2)
}

// lineTwips converts a CSS line-height multiplier to Word's 240ths.
func lineTwips(height string) int {
	f, err := strconv.ParseFloat(height, 64)
	if err != nil {
		return 240
	}
	return int(f*240 + 0.5)
}
