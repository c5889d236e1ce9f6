package render

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/scholarform/internal/layout"
	"github.com/pdiddy/scholarform/internal/style"
	"github.com/pdiddy/scholarform/pkg/types"
)

// Web renders the continuous view: a title banner, the sections, and the
// bibliography last. It carries no page numbers.
func Web(doc types.Document) *etree.Document {
	plan := layout.Compute(doc)
	x, body := newDocument(doc.Metadata.Title, stylesheet(style.For(doc.Style), nil))

	article := body.CreateElement("article")

	banner := article.CreateElement("header")
	banner.CreateElement("h1").SetText(doc.Metadata.Title)
	var byline []string
	for _, s := range []string{doc.Metadata.Author, doc.Metadata.Date} {
		if s = strings.TrimSpace(s); s != "" {
			byline = append(byline, s)
		}
	}
	if len(byline) > 0 {
		p := banner.CreateElement("p")
		p.CreateAttr("class", "byline")
		p.SetText(strings.Join(byline, " • "))
	}

	byID := make(map[string]types.Section, len(doc.Sections))
	for _, s := range doc.Sections {
		byID[s.ID] = s
	}
	for i, id := range plan.SectionOrder {
		sec := article.CreateElement("section")
		sec.CreateAttr("class", ClassSection)
		sec.CreateAttr("id", id)
		sec.CreateAttr("data-order", strconv.Itoa(i+1))
		appendSection(sec, byID[id])
	}

	bib := article.CreateElement("section")
	bib.CreateAttr("class", ClassBibliography)
	appendBibliography(bib, doc)
	return x
}
