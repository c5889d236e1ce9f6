// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholarform/pkg/types"
)

func sampleDoc(s types.AcademicStyle, showIndex bool) types.Document {
	return types.Document{
		Metadata: types.DocumentMetadata{
			Title:  "On Things",
			Author: "Jane Doe",
			Course: "HIST 101",
			Date:   "March 1, 2026",
		},
		Sections: []types.Section{
			{ID: "section-1", Title: "Introduction", Content: []types.ContentBlock{{Text: "First para.\n\nSecond para."}}},
			{ID: "section-2", Title: "Methods", Content: []types.ContentBlock{{Subtitle: "Sampling", Text: "We sampled."}}},
			{ID: "section-3", Title: "Results", Content: []types.ContentBlock{}},
		},
		Bibliography: []types.Citation{
			{ID: 1, Authors: []string{"Zed, A."}, Year: "2001", Title: "Late Alphabet", Source: "Zeta Journal"},
			{ID: 2, Authors: []string{"Adams, B."}, Year: "1999", Title: "Early Alphabet", Source: "Alpha Review"},
		},
		Style:     s,
		PaperSize: types.PaperLetter,
		ShowIndex: showIndex,
	}
}

func texts(els []*etree.Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.Text()
	}
	return out
}

func attrs(els []*etree.Element, key string) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.SelectAttrValue(key, "")
	}
	return out
}

func TestPrintAPAWithTOC(t *testing.T) {
	x := Print(sampleDoc(types.StyleAPA, true))

	pages := x.FindElements("//div[@data-page]")
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "7"}, attrs(pages, "data-page"))
	assert.Equal(t, "page title-page", pages[0].SelectAttrValue("class", ""))
	assert.Equal(t, "page toc", pages[1].SelectAttrValue("class", ""))
	assert.Equal(t, "page bibliography", pages[5].SelectAttrValue("class", ""))

	assert.Equal(t, []string{"3", "4", "5", "7"}, texts(x.FindElements("//span[@class='toc-page']")))
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "7"}, texts(x.FindElements("//div[@class='running-head']")))

	assert.Empty(t, x.FindElements("//div[@class='header-block']"))

	intro := x.FindElement("//div[@id='section-1']")
	require.NotNil(t, intro)
	assert.Equal(t, []string{"First para.", "Second para."}, texts(intro.SelectElements("p")))

	methods := x.FindElement("//div[@id='section-2']")
	require.NotNil(t, methods)
	assert.Equal(t, "Sampling", methods.SelectElement("h2").Text())

	bib := x.FindElements("//p[@class='citation']")
	require.Len(t, bib, 2)
	assert.True(t, strings.HasPrefix(bib[0].Text(), "Adams, B. (1999)"))
	assert.Equal(t, "Alpha Review", bib[0].SelectElement("i").Text())
	assert.Equal(t, "References", x.FindElement("//div[@data-page='7']/h1").Text())
}

func TestPrintMLAInlineHeader(t *testing.T) {
	x := Print(sampleDoc(types.StyleMLA, false))

	pages := x.FindElements("//div[@data-page]")
	assert.Equal(t, []string{"1", "2", "3", "4"}, attrs(pages, "data-page"))
	assert.Equal(t, "Doe 1", x.FindElement("//div[@class='running-head']").Text())

	blocks := x.FindElements("//div[@class='header-block']")
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"Jane Doe", "HIST 101", "March 1, 2026", "On Things"}, texts(blocks[0].SelectElements("p")))
	assert.Equal(t, "Works Cited", x.FindElement("//div[@data-page='4']/h1").Text())
}

func TestPrintPaperSize(t *testing.T) {
	doc := sampleDoc(types.StyleChicago, false)
	doc.PaperSize = types.PaperA4

	css := Print(doc).FindElement("//style").Text()
	assert.Contains(t, css, "size: 210mm 297mm")
	assert.Contains(t, css, "text-align: center")
}

func TestWeb(t *testing.T) {
	x := Web(sampleDoc(types.StyleAPA, true))

	assert.Empty(t, x.FindElements("//*[@data-page]"))
	assert.Equal(t, "Jane Doe • March 1, 2026", x.FindElement("//p[@class='byline']").Text())

	sections := x.FindElements("//section[@class='section']")
	assert.Equal(t, []string{"section-1", "section-2", "section-3"}, attrs(sections, "id"))
	assert.Equal(t, []string{"1", "2", "3"}, attrs(sections, "data-order"))

	bib := x.FindElements("//section[@class='bibliography']/p")
	require.Len(t, bib, 2)
	assert.Equal(t, "Alpha Review", bib[0].SelectElement("i").Text())
}

func TestViewAndWrite(t *testing.T) {
	doc := sampleDoc(types.StyleCustom, false)

	assert.NotNil(t, View(doc, types.ViewWeb).FindElement("//article"))
	assert.Nil(t, View(doc, types.ViewPrint).FindElement("//article"))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Print(doc)))
	assert.True(t, strings.HasPrefix(buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, buf.String(), "Bibliography")

	data, err := Bytes(Web(doc))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<article>")
}
