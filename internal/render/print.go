package render

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/pdiddy/scholarform/internal/layout"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// Print renders the paginated view. Every page is a div of class "page"
// carrying its logical number in data-page and the style's running head.
func Print(doc types.Document) *etree.Document {
	rules := style.For(doc.Style)
	paper := style.PaperFor(doc.PaperSize)
	plan := layout.Compute(doc)

	x, body := newDocument(doc.Metadata.Title, stylesheet(rules, &paper))

	page := func(n int, class string) *etree.Element {
		div := body.CreateElement("div")
		div.CreateAttr("class", ClassPage+" "+class)
		div.CreateAttr("data-page", strconv.Itoa(n))
		head := div.CreateElement("div")
		head.CreateAttr("class", ClassRunningHead)
		head.SetText(rules.PageNumber(n, doc.Metadata.Author))
		return div
	}

	if plan.TitlePage {
		tp := page(1, ClassTitlePage)
		h := tp.CreateElement("h1")
		h.SetText(doc.Metadata.Title)
		for _, line := range metadataLines(doc.Metadata) {
			tp.CreateElement("p").SetText(line)
		}
	}

	if plan.HasTOC() {
		appendTOC(page(plan.TOCPage, ClassTOC), doc, plan)
	}

	byID := make(map[string]types.Section, len(doc.Sections))
	for _, s := range doc.Sections {
		byID[s.ID] = s
	}
	for i, id := range plan.SectionOrder {
		div := page(plan.PageOf(id), ClassSection)
		div.CreateAttr("id", id)
		if i == 0 && plan.InlineHeader {
			appendHeaderBlock(div, doc.Metadata)
		}
		appendSection(div, byID[id])
	}

	appendBibliography(page(plan.BibliographyPage, ClassBibliography), doc)
	return x
}

// appendTOC lists every section and the bibliography with its page.
func appendTOC(parent *etree.Element, doc types.Document, plan layout.Pagination) {
	parent.CreateElement("h1").SetText("Table of Contents")
	list := parent.CreateElement("ol")
	entry := func(title string, page int) {
		li := list.CreateElement("li")
		li.CreateElement("span").SetText(title)
		num := li.CreateElement("span")
		num.CreateAttr("class", "toc-page")
		num.SetText(strconv.Itoa(page))
	}
	for _, s := range doc.Sections {
		entry(s.Title, plan.PageOf(s.ID))
	}
	entry(style.BibliographyHeading(doc.Style), plan.BibliographyPage)
}

// appendHeaderBlock writes the author/course/date lines and the centered
// title that replace a title page.
func appendHeaderBlock(parent *etree.Element, m types.DocumentMetadata) {
	block := parent.CreateElement("div")
	block.CreateAttr("class", ClassHeaderBlock)
	for _, line := range metadataLines(m) {
		block.CreateElement("p").SetText(line)
	}
	title := block.CreateElement("p")
	title.CreateAttr("class", "header-title")
	title.CreateAttr("style", "text-align: center; text-indent: 0;")
	title.SetText(m.Title)
}
